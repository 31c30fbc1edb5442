package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/k0kubun/pp"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"tunelytics/internal/cmd/flags"
	"tunelytics/internal/core"
	"tunelytics/internal/ledger"
	"tunelytics/internal/normalize"
	"tunelytics/internal/trending"
)

var topLimit = &cli.IntFlag{
	Name:  "limit",
	Usage: "How many tokens to print",
	Value: 20,
}

var topCmd = &cli.Command{
	Name:  "top",
	Usage: "Fetch play events once and print the current trending ranking",
	Flags: []cli.Flag{
		flags.IndexerURL,
		flags.Writers,
		topLimit,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide[core.LedgerReader](&ledger.Client{}),
			pal.Provide(&ledger.Fetcher{}),
			pal.Provide(&normalize.Normalizer{}),
			pal.Provide(&topRunner{limit: int(c.Int("limit"))}),
		)
	},
}

type topRunner struct {
	Logger     *slog.Logger
	Reader     core.LedgerReader
	Fetcher    *ledger.Fetcher
	Normalizer *normalize.Normalizer

	limit int
}

func (t *topRunner) Run(ctx context.Context) error {
	writers, err := t.Reader.ListWriters(ctx)
	if err != nil {
		return err
	}

	plays := t.Normalizer.Plays(t.Fetcher.FetchAll(ctx, ledger.Schemas().PlayEvent, writers))

	candidates := lo.Uniq(lo.Map(plays, func(p core.PlayEvent, _ int) int64 {
		return p.TokenID
	}))

	scores := trending.Score(plays, candidates, trending.DefaultWindow, t.limit, time.Now())

	pp.Println(scores)
	return nil
}
