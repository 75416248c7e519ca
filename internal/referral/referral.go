package referral

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/store"
	"github.com/feral-file/ff-yield-ledger/internal/store/schema"
)

const (
	// referralCodeLength is taken from the random tail of a ULID
	referralCodeLength = 10

	maxCodeAttempts = 5
)

// ChainIndex registers users and materializes their referral chains
//
//go:generate mockgen -source=referral.go -destination=../mocks/referral.go -package=mocks -mock_names=ChainIndex=MockChainIndex
type ChainIndex interface {
	// Register creates a user under the inviter owning inviterCode. An existing user is returned unchanged.
	Register(ctx context.Context, userID uint64, inviterCode *string) (*schema.User, error)
	// Ancestors returns a user's chain, nearest ancestor first
	Ancestors(ctx context.Context, userID uint64) ([]uint64, error)
}

// CodeGenerator produces candidate referral codes
type CodeGenerator func() string

type chainIndex struct {
	store   store.Store
	newCode CodeGenerator
}

// NewChainIndex creates a referral chain index. A nil generator uses ULID-derived codes.
func NewChainIndex(st store.Store, gen CodeGenerator) ChainIndex {
	if gen == nil {
		gen = NewReferralCode
	}
	return &chainIndex{store: st, newCode: gen}
}

// NewReferralCode returns a short code from the random part of a ULID
func NewReferralCode() string {
	id := ulid.Make().String()
	return id[len(id)-referralCodeLength:]
}

func (c *chainIndex) Register(ctx context.Context, userID uint64, inviterCode *string) (*schema.User, error) {
	existing, err := c.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	var (
		code      *string
		inviterID *uint64
		chain     []uint64
	)
	if inviterCode != nil && strings.TrimSpace(*inviterCode) != "" {
		trimmed := strings.TrimSpace(*inviterCode)
		code = &trimmed
		inviterID, chain, err = c.resolveChain(ctx, userID, trimmed)
		if err != nil {
			return nil, err
		}
	}

	for attempt := 1; ; attempt++ {
		user, created, err := c.store.CreateUser(ctx, store.CreateUserInput{
			ID:            userID,
			ReferralCode:  c.newCode(),
			InviterCode:   code,
			InviterID:     inviterID,
			AncestorChain: chain,
		})
		if err == nil {
			if created {
				logger.InfoCtx(ctx, "Registered user",
					zap.Uint64("userID", userID),
					zap.Int("chainLength", len(chain)))
			}
			return user, nil
		}

		// Only a referral code collision is worth another attempt
		if !store.IsUniqueViolation(err) || attempt >= maxCodeAttempts {
			return nil, fmt.Errorf("failed to register user %d: %w", userID, err)
		}
		logger.WarnCtx(ctx, "Referral code collision, retrying",
			zap.Uint64("userID", userID),
			zap.Int("attempt", attempt))
	}
}

// resolveChain builds [inviter] + inviter's chain capped at the max depth.
// An unresolvable inviter or a chain containing the user yields an empty chain.
func (c *chainIndex) resolveChain(ctx context.Context, userID uint64, inviterCode string) (*uint64, []uint64, error) {
	inviter, err := c.store.GetUserByReferralCode(ctx, inviterCode)
	if err != nil {
		return nil, nil, err
	}
	if inviter == nil {
		logger.WarnCtx(ctx, "Inviter code did not resolve, registering without referral chain",
			zap.Uint64("userID", userID),
			zap.String("inviterCode", inviterCode))
		return nil, nil, nil
	}

	ancestors, err := inviter.Ancestors()
	if err != nil {
		return nil, nil, err
	}

	chain := make([]uint64, 0, domain.MaxReferralDepth)
	chain = append(chain, inviter.ID)
	chain = append(chain, ancestors...)
	if len(chain) > domain.MaxReferralDepth {
		chain = chain[:domain.MaxReferralDepth]
	}

	if slices.Contains(chain, userID) {
		logger.WarnCtx(ctx, "Referral chain would contain the user itself, registering without referral chain",
			zap.Uint64("userID", userID),
			zap.Uint64("inviterID", inviter.ID))
		return nil, nil, nil
	}

	return &inviter.ID, chain, nil
}

func (c *chainIndex) Ancestors(ctx context.Context, userID uint64) ([]uint64, error) {
	user, err := c.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrUserNotFound, userID)
	}
	return user.Ancestors()
}
