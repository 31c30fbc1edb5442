package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"resty.dev/v3"

	"tunelytics/internal/config"
	"tunelytics/internal/core"
	"tunelytics/pkg/retry"
)

const (
	recordsPath = "/v1/records/{schema}/{writer}"
	writersPath = "/v1/writers"

	fetchAttempts = 3
)

// Client talks to the ledger indexer. The indexer decodes contract events
// into per-entity positional rows; this client only moves bytes, typing
// happens in normalize.
type Client struct {
	Logger *slog.Logger
	Config *config.Config

	client *resty.Client
}

func (c *Client) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "ledger.Client")
	c.client = resty.NewWithTransportSettings(&resty.TransportSettings{
		DialerTimeout:         1 * time.Second,
		DialerKeepAlive:       1 * time.Second,
		IdleConnTimeout:       1 * time.Second,
		TLSHandshakeTimeout:   1 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 5 * time.Second,
	})
	return nil
}

func (c *Client) Shutdown(_ context.Context) error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().WithContext(ctx)
}

// FetchRecords returns every row the given writer has published for the
// schema. No ordering or de-duplication is guaranteed by the indexer.
func (c *Client) FetchRecords(ctx context.Context, schemaID, writer string) ([]core.RawRecord, error) {
	type records struct {
		Rows []core.RawRecord `json:"rows"`
	}

	var rows []core.RawRecord

	fetch := retry.WrapWithRetry(func() error {
		res, err := c.r(ctx).
			SetPathParam("schema", schemaID).
			SetPathParam("writer", core.AddressKey(writer)).
			SetResult(&records{}).
			Get(c.Config.IndexerURL + recordsPath)
		if err != nil {
			return err
		}
		if res.IsError() {
			return fmt.Errorf("%w: indexer returned %s", core.ErrWriterFetch, res.Status())
		}

		rows = res.Result().(*records).Rows
		return nil
	}, retry.Always, fetchAttempts)

	if err := fetch(); err != nil {
		return nil, fmt.Errorf("%w: writer %s: %w", core.ErrWriterFetch, core.AddressKey(writer), err)
	}
	return rows, nil
}

// ListWriters returns every writer address known to the indexer registry.
func (c *Client) ListWriters(ctx context.Context) ([]string, error) {
	type writers struct {
		Writers []string `json:"writers"`
	}

	res, err := c.r(ctx).
		SetResult(&writers{}).
		Get(c.Config.IndexerURL + writersPath)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("indexer returned %s", res.Status())
	}

	return res.Result().(*writers).Writers, nil
}
