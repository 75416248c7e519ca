package jetstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/adapter"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/messaging"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	// PublishRetries bounds how often a failed publish is retried
	PublishRetries uint64
}

// StreamSubjects are the subjects the ledger stream captures
var StreamSubjects = []string{
	domain.DEPOSIT_CONFIRMED_SUBJECT_PREFIX + ".>",
	domain.DIVERGENCE_ALERT_SUBJECT,
}

type publisher struct {
	nc      adapter.NatsConn
	js      adapter.JetStream
	retries uint64
}

// ConnectionOptions returns the NATS options shared by the publisher and the deposit bridge
func ConnectionOptions(name string, maxReconnects int, reconnectWait time.Duration) []nats.Option {
	return []nats.Option{
		nats.Name(name),
		nats.MaxReconnects(maxReconnects),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}
}

// NewPublisher connects to NATS, makes sure the ledger stream exists and returns a publisher
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream) (messaging.Publisher, error) {
	nc, js, err := natsJS.Connect(cfg.URL, ConnectionOptions(cfg.ConnectionName, cfg.MaxReconnects, cfg.ReconnectWait)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	if err := js.EnsureStream(ctx, jetstream.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: StreamSubjects,
	}); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{
		nc:      nc,
		js:      js,
		retries: cfg.PublishRetries,
	}, nil
}

// PublishDivergence publishes a balance divergence alert
func (p *publisher) PublishDivergence(ctx context.Context, alert *domain.DivergenceAlert) error {
	return p.publish(ctx, domain.DIVERGENCE_ALERT_SUBJECT, alert.ID, alert)
}

// PublishDepositConfirmed publishes a deposit confirmation, deduplicated by its idempotency key
func (p *publisher) PublishDepositConfirmed(ctx context.Context, event *domain.DepositConfirmedEvent) error {
	return p.publish(ctx, domain.DepositSubject(event.Currency), event.IdempotencyKey, event)
}

func (p *publisher) publish(ctx context.Context, subject, msgID string, payload interface{}) error {
	logger.DebugCtx(ctx, "Publishing NATS message", zap.String("subject", subject), zap.String("msgID", msgID))

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	var opts []jetstream.PublishOpt
	if msgID != "" {
		opts = append(opts, jetstream.WithMsgID(msgID))
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), p.retries),
		ctx,
	)
	err = backoff.Retry(func() error {
		_, err := p.js.Publish(ctx, subject, data, opts...)
		return err
	}, b)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	return nil
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
