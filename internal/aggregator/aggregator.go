package aggregator

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/zhulik/pips"

	"tunelytics/internal/aggregate"
	"tunelytics/internal/config"
	"tunelytics/internal/core"
	"tunelytics/internal/ledger"
	"tunelytics/internal/normalize"
)

var (
	roundsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tunelytics_aggregation_rounds_total",
		Help: "The total number of aggregation rounds",
	}, []string{"status"})

	roundDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tunelytics_aggregation_round_seconds",
		Help:    "Duration of a full fetch-normalize-fold round",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
	})

	snapshotPosts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tunelytics_snapshot_posts",
		Help: "Number of posts in the latest snapshot",
	})
)

// Aggregator drives the poll loop: every interval it re-fetches everything
// the ledger reader can see, normalizes it and folds it into a fresh
// snapshot. Derived state is rebuilt from scratch each round — there is no
// incremental bookkeeping to drift.
//
// Consumers either read the latest snapshot (Current) or stream new ones
// (C). A round that completes after shutdown is discarded, never
// published.
type Aggregator struct {
	Logger     *slog.Logger
	Config     *config.Config
	Reader     core.LedgerReader
	Fetcher    *ledger.Fetcher
	Normalizer *normalize.Normalizer

	current atomic.Pointer[core.Snapshot]
	round   atomic.Int64
	ch      chan pips.D[*core.Snapshot]
}

func (a *Aggregator) Init(_ context.Context) error {
	a.Logger = a.Logger.With("component", "aggregator")
	a.ch = make(chan pips.D[*core.Snapshot], 1)
	return nil
}

func (a *Aggregator) Shutdown(_ context.Context) error {
	close(a.ch)
	return nil
}

func (a *Aggregator) HealthCheck(_ context.Context) error {
	return nil
}

// Current returns the latest snapshot, nil before the first round
// completes.
func (a *Aggregator) Current() *core.Snapshot {
	return a.current.Load()
}

// C streams freshly produced snapshots. When a consumer lags, older
// snapshots are dropped — only the newest state matters.
func (a *Aggregator) C() <-chan pips.D[*core.Snapshot] {
	return a.ch
}

func (a *Aggregator) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.Config.PollInterval())
	defer ticker.Stop()

	a.runRound(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			a.runRound(ctx)
		}
	}
}

func (a *Aggregator) runRound(ctx context.Context) {
	started := time.Now()

	snapshot := a.Round(ctx)

	if ctx.Err() != nil {
		// The round finished after cancellation, its result is stale.
		roundsTotal.WithLabelValues("discarded").Inc()
		return
	}

	roundDuration.Observe(time.Since(started).Seconds())
	roundsTotal.WithLabelValues("ok").Inc()
	snapshotPosts.Set(float64(len(snapshot.Posts)))

	a.current.Store(snapshot)

	select {
	case a.ch <- pips.NewD(snapshot):
	default:
		// Consumer is behind, drop the stale one and queue the new one.
		select {
		case <-a.ch:
		default:
		}
		a.ch <- pips.NewD(snapshot)
	}

	a.Logger.Debug("aggregation round complete",
		"round", snapshot.Round,
		"posts", len(snapshot.Posts),
		"targets", len(snapshot.Stats),
		"plays", len(snapshot.Plays),
		"took", time.Since(started))
}

// Round performs one full aggregation pass. Failures of individual writers
// degrade to empty contributions; an unreachable registry degrades to an
// empty snapshot. "No data yet" is a valid state, not an error.
func (a *Aggregator) Round(ctx context.Context) *core.Snapshot {
	writers := a.Config.WriterList()
	if writers == nil {
		var err error
		writers, err = a.Reader.ListWriters(ctx)
		if err != nil {
			a.Logger.Warn("writer registry unreachable, producing empty snapshot", "error", err)
			writers = nil
		}
	}

	schemas := ledger.Schemas()

	interactions := a.Normalizer.Interactions(a.Fetcher.FetchAll(ctx, schemas.Interaction, writers))
	posts := a.Normalizer.Posts(a.Fetcher.FetchAll(ctx, schemas.Post, writers))
	plays := a.Normalizer.Plays(a.Fetcher.FetchAll(ctx, schemas.PlayEvent, writers))

	return &core.Snapshot{
		Round:   a.round.Add(1),
		TakenAt: time.Now(),
		Posts:   aggregate.CollapseVersions(posts),
		Stats:   aggregate.BuildStats(interactions, ""),
		Quotes:  aggregate.CountQuotes(posts),
		Plays:   plays,
	}
}
