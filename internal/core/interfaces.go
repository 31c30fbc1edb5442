package core

import (
	"context"

	"github.com/zhulik/pips"
)

// LedgerReader fetches raw positional records from the ledger indexer.
// There is no ordering or de-duplication contract: results may be empty,
// partial or duplicated, and differ between calls.
type LedgerReader interface {
	FetchRecords(ctx context.Context, schemaID, writer string) ([]RawRecord, error)
	ListWriters(ctx context.Context) ([]string, error)
}

// SnapshotSource exposes the latest aggregated snapshot and a stream of
// freshly produced ones.
type SnapshotSource interface {
	Current() *Snapshot
	C() <-chan pips.D[*Snapshot]
}

// StatsArchive persists stat updates for audit and backfill. It is an
// append-only sink, never read back on the aggregation path.
type StatsArchive interface {
	InsertUpdates(ctx context.Context, updates ...StatUpdate) error
}
