package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/adapter"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/ledger"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/metrics"
	ledgerjs "github.com/feral-file/ff-yield-ledger/internal/providers/jetstream"
)

// Message results
const (
	resultCredited  = "credited"
	resultDuplicate = "duplicate"
	resultRejected  = "rejected"
	resultRetry     = "retry"
)

// Config holds the configuration for the deposit bridge
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int
}

// Bridge consumes deposit-confirmed events and credits them to the ledger
type Bridge interface {
	// Run consumes until the context is canceled
	Run(ctx context.Context) error
	// Close closes the bridge and cleans up resources
	Close()
}

type bridge struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	ledger ledger.Ledger
	config Config
}

// NewBridge creates a new deposit bridge
func NewBridge(cfg Config, natsJS adapter.NatsJetStream, l ledger.Ledger) (Bridge, error) {
	nc, js, err := natsJS.Connect(cfg.URL, ledgerjs.ConnectionOptions(cfg.ConnectionName, cfg.MaxReconnects, cfg.ReconnectWait)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &bridge{
		nc:     nc,
		js:     js,
		ledger: l,
		config: cfg,
	}, nil
}

// Run starts the deposit bridge
func (b *bridge) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting deposit bridge", zap.String("stream", b.config.StreamName), zap.String("consumer", b.config.ConsumerName))

	if err := b.js.EnsureStream(ctx, jetstream.StreamConfig{
		Name:     b.config.StreamName,
		Subjects: ledgerjs.StreamSubjects,
	}); err != nil {
		return fmt.Errorf("failed to ensure stream %s: %w", b.config.StreamName, err)
	}

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.config.StreamName, jetstream.ConsumerConfig{
		Durable:       b.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       b.config.AckWaitTimeout,
		MaxDeliver:    b.config.MaxDeliver,
		FilterSubject: domain.DEPOSIT_CONFIRMED_SUBJECT_PREFIX + ".*",
	})
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.InfoCtx(ctx, "Started consuming deposit events")

	// Messages are credited one at a time; the unique key makes redelivery harmless
	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Shutting down deposit bridge")
			return ctx.Err()
		case msg := <-msgChan:
			b.handleMessage(ctx, msg)
		}
	}
}

// handleMessage credits a single deposit event and settles the message
func (b *bridge) handleMessage(ctx context.Context, msg adapter.Message) {
	var deliveries uint64
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		deliveries = metadata.NumDelivered
	}

	var event domain.DepositConfirmedEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to unmarshal deposit event: %w", err), zap.String("subject", msg.Subject()))
		b.term(ctx, msg)
		return
	}

	currency, err := domain.ParseCurrency(string(event.Currency))
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("subject", msg.Subject()), zap.String("idempotencyKey", event.IdempotencyKey))
		b.term(ctx, msg)
		return
	}
	event.Currency = currency

	if expected := domain.DepositSubject(currency); !strings.EqualFold(msg.Subject(), expected) {
		logger.ErrorCtx(ctx, fmt.Errorf("deposit event for %s published on %s", event.Currency, msg.Subject()),
			zap.String("idempotencyKey", event.IdempotencyKey))
		b.term(ctx, msg)
		return
	}

	logger.InfoCtx(ctx, "Received deposit event",
		zap.Uint64("userID", event.UserID),
		zap.String("currency", string(event.Currency)),
		zap.String("amount", event.Amount.String()),
		zap.String("idempotencyKey", event.IdempotencyKey),
		zap.Uint64("deliveryCount", deliveries))

	result, err := b.ledger.CreditExternalDeposit(ctx, ledger.CreditDepositInput{
		UserID:         event.UserID,
		Currency:       event.Currency,
		Amount:         event.Amount,
		IdempotencyKey: event.IdempotencyKey,
		Metadata:       event.Metadata,
	})
	if err != nil {
		if isPermanent(err) {
			logger.ErrorCtx(ctx, fmt.Errorf("rejected deposit event: %w", err),
				zap.String("idempotencyKey", event.IdempotencyKey))
			b.term(ctx, msg)
			return
		}

		logger.ErrorCtx(ctx, fmt.Errorf("failed to credit deposit event: %w", err),
			zap.String("idempotencyKey", event.IdempotencyKey),
			zap.Uint64("deliveryCount", deliveries))
		metrics.DepositEventsTotal.WithLabelValues(resultRetry).Inc()
		if err := msg.Nak(); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to NAK message: %w", err))
		}
		return
	}

	if result.Created {
		metrics.DepositEventsTotal.WithLabelValues(resultCredited).Inc()
	} else {
		metrics.DepositEventsTotal.WithLabelValues(resultDuplicate).Inc()
	}

	if err := msg.Ack(); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to ACK message: %w", err))
	}
}

func (b *bridge) term(ctx context.Context, msg adapter.Message) {
	metrics.DepositEventsTotal.WithLabelValues(resultRejected).Inc()
	if err := msg.Term(); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to terminate message: %w", err))
	}
}

// isPermanent reports whether redelivering the event can never succeed.
// An unknown user is retried because registration may still be in flight.
func isPermanent(err error) bool {
	return errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrUnsupportedCurrency) ||
		errors.Is(err, domain.ErrMissingIdempotencyKey) ||
		errors.Is(err, domain.ErrIdempotencyKeyConflict)
}

// Close closes the bridge and cleans up resources
func (b *bridge) Close() {
	if b.nc == nil {
		return
	}

	if err := b.nc.Drain(); err != nil {
		logger.Error(fmt.Errorf("failed to drain NATS connection: %w", err))
		b.nc.Close()
	}
}
