package ledger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"

	"tunelytics/internal/core"
)

var (
	writerFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tunelytics_writer_fetches_total",
		Help: "The total number of per-writer record fetches",
	}, []string{"schema", "status"})
)

// Fetcher concatenates the contributions of many independent writers.
// Fetches run in parallel, one per writer: the ledger has no global order
// across writers, so arrival order is irrelevant — the aggregation fold
// sorts globally before processing.
type Fetcher struct {
	Logger *slog.Logger
	Reader core.LedgerReader
}

func (f *Fetcher) Init(_ context.Context) error {
	f.Logger = f.Logger.With("component", "ledger.Fetcher")
	return nil
}

// FetchAll fetches the schema's rows from every writer and concatenates
// them. A failed writer contributes nothing instead of failing the round;
// stale counts self-heal on the next poll.
func (f *Fetcher) FetchAll(ctx context.Context, schemaID string, writers []string) []core.RawRecord {
	results := make([][]core.RawRecord, len(writers))

	var wg sync.WaitGroup
	for i, writer := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			rows, err := f.Reader.FetchRecords(ctx, schemaID, writer)
			if err != nil {
				writerFetches.WithLabelValues(schemaID, "error").Inc()
				f.Logger.Warn("writer fetch failed, treating contribution as empty",
					"writer", core.AddressKey(writer), "schema", schemaID, "error", err)
				return
			}

			writerFetches.WithLabelValues(schemaID, "ok").Inc()
			results[i] = rows
		}()
	}
	wg.Wait()

	return lo.Flatten(results)
}
