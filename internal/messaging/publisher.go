package messaging

import (
	"context"

	"github.com/feral-file/ff-yield-ledger/internal/domain"
)

// Publisher defines the interface for publishing ledger events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishDivergence publishes a balance divergence alert
	PublishDivergence(ctx context.Context, alert *domain.DivergenceAlert) error
	// PublishDepositConfirmed publishes a deposit confirmation on its currency subject
	PublishDepositConfirmed(ctx context.Context, event *domain.DepositConfirmedEvent) error
	// Close closes the connection
	Close()
}
