package publisher

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	libnats "github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"
	"github.com/zhulik/pips"
	"github.com/zhulik/pips/apply"

	"tunelytics/internal/core"
	"tunelytics/internal/nats"
)

const (
	subject   = nats.StreamName + ".stats"
	cursorKey = "last_round"
)

var (
	updatesPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tunelytics_stat_updates_published_total",
		Help: "The total number of stat updates published to JetStream",
	}, []string{"status"})
)

// Publisher fans freshly aggregated snapshots out to JetStream, one
// StatUpdate message per post, with a deterministic message id so repeated
// rounds over unchanged data de-duplicate on the broker side.
type Publisher struct {
	Logger *slog.Logger
	Source core.SnapshotSource
	NATS   *nats.NATS
}

func (p *Publisher) Init(_ context.Context) error {
	p.Logger = p.Logger.With("component", "publisher")
	return nil
}

func (p *Publisher) Run(ctx context.Context) error {
	return pips.New[*core.Snapshot, any]().
		Then(
			apply.Map(func(ctx context.Context, snapshot *core.Snapshot) (any, error) {
				return nil, p.publish(ctx, snapshot)
			}),
		).
		Run(ctx, p.Source.C()).
		Wait(ctx)
}

func (p *Publisher) publish(ctx context.Context, snapshot *core.Snapshot) error {
	for _, update := range Updates(snapshot) {
		payload, err := json.Marshal(update)
		if err != nil {
			return err
		}

		msg := &libnats.Msg{
			Subject: subject,
			Data:    payload,
			Header: libnats.Header{
				libnats.MsgIdHdr: []string{messageID(update)},
			},
		}

		if _, err := p.NATS.JS.PublishMsg(ctx, msg); err != nil {
			updatesPublished.WithLabelValues("error").Inc()
			return err
		}
		updatesPublished.WithLabelValues("ok").Inc()
	}

	_, err := p.NATS.KV.Put(ctx, cursorKey, []byte(strconv.FormatInt(snapshot.Round, 10)))
	if err != nil {
		return err
	}

	p.Logger.Debug("snapshot published", "round", snapshot.Round)
	return nil
}

// Updates flattens a snapshot into per-post stat updates, one for every
// post that has stats or is quoted.
func Updates(snapshot *core.Snapshot) []core.StatUpdate {
	ids := lo.Uniq(append(lo.Keys(snapshot.Stats), lo.Keys(snapshot.Quotes)...))

	updates := lo.Map(ids, func(id int64, _ int) core.StatUpdate {
		update := core.StatUpdate{
			PostID:     id,
			Quotes:     snapshot.Quotes[id],
			Round:      snapshot.Round,
			ObservedAt: snapshot.TakenAt,
		}
		if s, ok := snapshot.Stats[id]; ok {
			update.Likes = s.Likes
			update.Comments = s.Comments
			update.Reposts = s.Reposts
			update.Bookmarks = s.Bookmarks
		}
		return update
	})

	slices.SortFunc(updates, func(a, b core.StatUpdate) int {
		return cmp.Compare(a.PostID, b.PostID)
	})
	return updates
}

func messageID(update core.StatUpdate) string {
	// Content-addressed: identical stats across rounds collapse into one
	// broker message.
	return fmt.Sprintf("%d-%d-%d-%d-%d-%d",
		update.PostID, update.Likes, update.Comments, update.Reposts, update.Bookmarks, update.Quotes)
}
