package archive

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"
	"github.com/zhulik/pips"
	"github.com/zhulik/pips/apply"

	"tunelytics/internal/core"
	"tunelytics/internal/nats"
)

const (
	consumerName = "stats-archiver"
	batchSize    = 25
)

var (
	updatesArchived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tunelytics_stat_updates_archived_total",
		Help: "The total number of stat updates written to the archive",
	}, []string{"status"})
)

// Archiver drains the stats stream into Postgres in batches.
type Archiver struct {
	Logger  *slog.Logger
	NATS    *nats.NATS
	Archive core.StatsArchive
}

func (a *Archiver) Init(_ context.Context) error {
	a.Logger = a.Logger.With("component", "archive.Archiver")
	return nil
}

func (a *Archiver) Run(ctx context.Context) error {
	return a.NATS.ConsumeToPipeline(ctx, nats.StreamName, consumerName,
		pips.New[jetstream.Msg, any]().
			Then(apply.Batch[jetstream.Msg](batchSize)).
			Then(
				apply.Map(func(ctx context.Context, msgs []jetstream.Msg) (any, error) {
					return nil, a.archive(ctx, msgs)
				}),
			),
	)
}

func (a *Archiver) archive(ctx context.Context, msgs []jetstream.Msg) error {
	updates := make([]core.StatUpdate, 0, len(msgs))

	for _, msg := range msgs {
		var update core.StatUpdate
		if err := json.Unmarshal(msg.Data(), &update); err != nil {
			// A broken message is logged and acked, redelivery will not
			// fix it.
			updatesArchived.WithLabelValues("malformed").Inc()
			a.Logger.Warn("skipping malformed stat update", "error", err)
			continue
		}
		updates = append(updates, update)
	}

	if err := a.Archive.InsertUpdates(ctx, updates...); err != nil {
		updatesArchived.WithLabelValues("error").Inc()
		return err
	}

	updatesArchived.WithLabelValues("ok").Add(float64(len(updates)))

	return lo.Reduce(msgs, func(err error, msg jetstream.Msg, _ int) error {
		if ackErr := msg.Ack(); err == nil {
			return ackErr
		}
		return err
	}, nil)
}
