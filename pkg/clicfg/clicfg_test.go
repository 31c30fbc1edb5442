package clicfg_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"tunelytics/pkg/clicfg"
)

type testConfig struct {
	Name     string  `flag:"name"`
	Count    int     `flag:"count"`
	Ratio    float64 `flag:"ratio"`
	Verbose  bool    `flag:"verbose"`
	Untagged string
}

func parse(t *testing.T, args []string) testConfig {
	t.Helper()

	var cfg testConfig
	cmd := &cli.Command{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Value: "default"},
			&cli.IntFlag{Name: "count"},
			&cli.Float64Flag{Name: "ratio"},
			&cli.BoolFlag{Name: "verbose"},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			return clicfg.ParseFlags(c, &cfg)
		},
	}

	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return cfg
}

func TestParseFlags(t *testing.T) {
	t.Parallel()

	cfg := parse(t, []string{"--name", "tunelytics", "--count", "7", "--ratio", "0.5", "--verbose"})

	assert.Equal(t, "tunelytics", cfg.Name)
	assert.Equal(t, 7, cfg.Count)
	assert.Equal(t, 0.5, cfg.Ratio)
	assert.True(t, cfg.Verbose)
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	cfg := parse(t, nil)

	assert.Equal(t, "default", cfg.Name)
	assert.Zero(t, cfg.Count)
	assert.False(t, cfg.Verbose)
}

func TestParseFlags_UntaggedFieldLeftAlone(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	cfg.Untagged = "keep"

	cmd := &cli.Command{
		Action: func(_ context.Context, c *cli.Command) error {
			return clicfg.ParseFlags(c, &cfg)
		},
	}
	require.NoError(t, cmd.Run(context.Background(), []string{"test"}))

	assert.Equal(t, "keep", cfg.Untagged)
}

func TestParseFlags_RejectsNonPointer(t *testing.T) {
	t.Parallel()

	cmd := &cli.Command{
		Action: func(_ context.Context, c *cli.Command) error {
			return clicfg.ParseFlags(c, testConfig{})
		},
	}

	assert.ErrorIs(t, cmd.Run(context.Background(), []string{"test"}), clicfg.ErrCannotParseFlags)
}
