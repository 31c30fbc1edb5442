package nats

import (
	"context"
	"log/slog"
	"time"

	libnats "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/zhulik/pips"

	"tunelytics/internal/config"
)

const (
	appName = "tunelytics"

	// StreamName carries per-post stat updates produced by the aggregator.
	StreamName = appName
	// KVBucket holds small aggregator state, e.g. the last round cursor.
	KVBucket = appName

	fetchBatchSize = 100
)

type NATS struct {
	Logger *slog.Logger
	Config *config.Config

	JS jetstream.JetStream
	KV jetstream.KeyValue
}

func (n *NATS) Init(ctx context.Context) error {
	n.Logger = n.Logger.With("component", "nats")

	nc, err := libnats.Connect(n.Config.NATSURL)
	if err != nil {
		return err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return err
	}

	n.JS = js

	if n.Config.NATSInit {
		if err := n.initNATS(ctx); err != nil {
			return err
		}
	}

	kv, err := js.KeyValue(ctx, KVBucket)
	if err != nil {
		return err
	}
	n.KV = kv

	return nil
}

func (n *NATS) HealthCheck(context.Context) error {
	_, err := n.JS.Conn().RTT()
	return err
}

func (n *NATS) Shutdown(context.Context) error {
	return n.JS.Conn().Drain()
}

// ConsumeToPipeline feeds the named durable consumer into the pipeline and
// blocks until the context is done or the pipeline fails.
func (n *NATS) ConsumeToPipeline(ctx context.Context, stream, consumer string, pipeline *pips.Pipeline[jetstream.Msg, any]) error {
	cons, err := n.JS.Consumer(ctx, stream, consumer)
	if err != nil {
		return err
	}

	ch := make(chan pips.D[jetstream.Msg])

	go func() {
		defer close(ch)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			batch, err := cons.Fetch(fetchBatchSize, jetstream.FetchMaxWait(time.Second))
			if err != nil {
				ch <- pips.ErrD[jetstream.Msg](err)
				continue
			}

			for msg := range batch.Messages() {
				ch <- pips.NewD(msg)
			}
		}
	}()

	return pipeline.Run(ctx, ch).Wait(ctx)
}

func (n *NATS) initNATS(ctx context.Context) error {
	n.Logger.Info("Initializing NATS")
	_, err := n.JS.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{appName + ".*"},
		MaxAge:   24 * time.Hour,
	})
	if err != nil {
		return err
	}
	n.Logger.Info("Stream created or updated", "name", StreamName)

	_, err = n.JS.CreateOrUpdateConsumer(ctx, StreamName, jetstream.ConsumerConfig{
		Durable:       "stats-archiver",
		FilterSubject: StreamName + ".stats",
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return err
	}
	n.Logger.Info("Consumer created or updated", "name", "stats-archiver")

	_, err = n.JS.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: KVBucket,
	})
	if err != nil {
		return err
	}
	n.Logger.Info("KeyValue created or updated", "name", KVBucket)

	return nil
}
