package normalize

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"tunelytics/internal/core"
)

var (
	recordsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tunelytics_records_rejected_total",
		Help: "The total number of raw records skipped during normalization",
	}, []string{"schema", "reason"})
)

// Normalizer decodes batches of raw positional rows into typed records.
// A malformed row is skipped with a logged reason; it never aborts the
// rest of the batch.
type Normalizer struct {
	Logger *slog.Logger
}

func (n *Normalizer) Init(_ context.Context) error {
	n.Logger = n.Logger.With("component", "normalize.Normalizer")
	return nil
}

func (n *Normalizer) Interactions(rows []core.RawRecord) []core.Interaction {
	return decodeAll(n, "interaction", rows, DecodeInteraction)
}

func (n *Normalizer) Posts(rows []core.RawRecord) []core.Post {
	return decodeAll(n, "post", rows, DecodePost)
}

func (n *Normalizer) Plays(rows []core.RawRecord) []core.PlayEvent {
	return decodeAll(n, "play_event", rows, DecodePlayEvent)
}

func decodeAll[T any](n *Normalizer, schema string, rows []core.RawRecord, decode func(core.RawRecord) (T, error)) []T {
	out := make([]T, 0, len(rows))

	for _, row := range rows {
		record, err := decode(row)
		if err != nil {
			recordsRejected.WithLabelValues(schema, rejectReason(err)).Inc()
			n.Logger.Debug("skipping record", "schema", schema, "error", err)
			continue
		}
		out = append(out, record)
	}

	return out
}

func rejectReason(err error) string {
	if errors.Is(err, core.ErrUnknownEnum) {
		return "unknown_enum"
	}
	return "malformed"
}
