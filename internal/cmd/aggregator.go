package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"tunelytics/internal/aggregator"
	"tunelytics/internal/api"
	"tunelytics/internal/cmd/flags"
	"tunelytics/internal/core"
	"tunelytics/internal/ledger"
	"tunelytics/internal/metrics"
	"tunelytics/internal/nats"
	"tunelytics/internal/normalize"
	"tunelytics/internal/publisher"
)

var aggregatorCmd = &cli.Command{
	Name:  "aggregator",
	Usage: "Poll the ledger indexer, fold records into social state, publish stat updates and serve the API",
	Flags: []cli.Flag{
		flags.NATSURL,
		flags.NATSInit,
		flags.IndexerURL,
		flags.PollInterval,
		flags.Writers,
		flags.APIAddr,
		flags.MetricsAddr,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide[core.LedgerReader](&ledger.Client{}),
			pal.Provide(&ledger.Fetcher{}),
			pal.Provide(&normalize.Normalizer{}),
			pal.Provide[core.SnapshotSource](&aggregator.Aggregator{}),
			pal.Provide(&publisher.Publisher{}),
			pal.Provide(&api.Server{}),
			pal.Provide(&metrics.HTTPServer{}),
			nats.Provide(),
		)
	},
}
