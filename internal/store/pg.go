package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/store/schema"
)

const (
	// pgUniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations
	pgUniqueViolation = "23505"

	defaultListLimit = 20
)

type txContextKey struct{}

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero settings fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint violation
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Transaction runs fn in a database transaction carried by the context passed to it
func (s *pgStore) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// getDB returns the transaction carried by ctx, or the base connection
func (s *pgStore) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return s.db.WithContext(ctx)
}

// =============================================================================
// Users
// =============================================================================

// CreateUser inserts a user, or returns the existing one unchanged
func (s *pgStore) CreateUser(ctx context.Context, input CreateUserInput) (*schema.User, bool, error) {
	chain := input.AncestorChain
	if chain == nil {
		chain = []uint64{}
	}
	chainJSON, err := json.Marshal(chain)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal ancestor chain: %w", err)
	}

	user := schema.User{
		ID:            input.ID,
		ReferralCode:  input.ReferralCode,
		InviterCode:   input.InviterCode,
		InviterID:     input.InviterID,
		AncestorChain: chainJSON,
	}

	created := false
	// A nested transaction becomes a savepoint, so a referral code collision
	// leaves any outer transaction usable for a retry.
	err = s.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&user)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			if err := tx.Where("id = ?", input.ID).First(&user).Error; err != nil {
				return fmt.Errorf("failed to get existing user: %w", err)
			}
			return nil
		}

		created = true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, created, nil
}

// GetUserByID retrieves a user by ID
func (s *pgStore) GetUserByID(ctx context.Context, id uint64) (*schema.User, error) {
	var user schema.User
	err := s.getDB(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByReferralCode retrieves a user by referral code
func (s *pgStore) GetUserByReferralCode(ctx context.Context, code string) (*schema.User, error) {
	var user schema.User
	err := s.getDB(ctx).Where("referral_code = ?", code).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by referral code: %w", err)
	}
	return &user, nil
}

// =============================================================================
// Ledger
// =============================================================================

// InsertTransaction inserts a ledger row with ON CONFLICT (idempotency_key) DO NOTHING.
// When the key already exists the existing row is returned and nothing is written.
// A concurrent insert of the same key blocks on the unique index until the first
// transaction commits, then observes its row.
func (s *pgStore) InsertTransaction(ctx context.Context, input InsertTransactionInput) (*InsertTransactionResult, error) {
	if !domain.IsValidTransactionKind(input.Kind) {
		return nil, fmt.Errorf("invalid transaction kind: %s", input.Kind)
	}

	status := input.Status
	if status == "" {
		status = domain.TransactionStatusCompleted
	}
	if !domain.IsValidTransactionStatus(status) || status == domain.TransactionStatusCancelled {
		return nil, fmt.Errorf("%w: cannot insert with status %s", domain.ErrInvalidTransactionState, status)
	}

	metadata := input.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction metadata: %w", err)
	}

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	row := schema.Transaction{
		UserID:              input.UserID,
		Kind:                input.Kind,
		Currency:            input.Currency,
		Amount:              input.Amount,
		Status:              status,
		IdempotencyKey:      input.IdempotencyKey,
		SourceTransactionID: input.SourceTransactionID,
		Metadata:            metadataJSON,
		CreatedAt:           createdAt,
	}
	if status == domain.TransactionStatusCompleted {
		row.CompletedAt = &createdAt
	}

	var result *InsertTransactionResult
	err = s.Transaction(ctx, func(ctx context.Context) error {
		tx := s.getDB(ctx)

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "idempotency_key"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}

		// ID is 0 when the key already existed
		if row.ID == 0 {
			if input.IdempotencyKey == nil {
				return errors.New("transaction insert returned no id")
			}
			existing, err := s.GetTransactionByIdempotencyKey(ctx, *input.IdempotencyKey)
			if err != nil {
				return err
			}
			if existing == nil {
				return fmt.Errorf("transaction with idempotency key %q conflicted but was not found", *input.IdempotencyKey)
			}
			if existing.UserID != input.UserID || existing.Kind != input.Kind || existing.Currency != input.Currency {
				return fmt.Errorf("%w: key %q belongs to transaction %d", domain.ErrIdempotencyKeyConflict, *input.IdempotencyKey, existing.ID)
			}
			result = &InsertTransactionResult{Transaction: existing, Created: false}
			return nil
		}

		if status == domain.TransactionStatusCompleted {
			if err := applyBalanceDelta(tx, row.UserID, row.Currency, row.Amount); err != nil {
				return err
			}
		}

		result = &InsertTransactionResult{Transaction: &row, Created: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// applyBalanceDelta adds delta to the materialized balance, creating the row if needed
func applyBalanceDelta(tx *gorm.DB, userID uint64, currency domain.Currency, delta decimal.Decimal) error {
	balance := schema.Balance{
		UserID:   userID,
		Currency: currency,
		Amount:   delta,
	}

	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "currency"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"amount":     gorm.Expr("balances.amount + EXCLUDED.amount"),
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(&balance).Error; err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	return nil
}

// GetTransactionByID retrieves a ledger row by ID
func (s *pgStore) GetTransactionByID(ctx context.Context, id uint64) (*schema.Transaction, error) {
	var row schema.Transaction
	err := s.getDB(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &row, nil
}

// GetTransactionByIdempotencyKey retrieves a ledger row by idempotency key
func (s *pgStore) GetTransactionByIdempotencyKey(ctx context.Context, key string) (*schema.Transaction, error) {
	var row schema.Transaction
	err := s.getDB(ctx).Where("idempotency_key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transaction by idempotency key: %w", err)
	}
	return &row, nil
}

// ListTransactions retrieves ledger rows matching the filter, newest first
func (s *pgStore) ListTransactions(ctx context.Context, filter TransactionFilter) ([]schema.Transaction, uint64, error) {
	query := s.getDB(ctx).Model(&schema.Transaction{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if len(filter.Kinds) > 0 {
		query = query.Where("kind IN ?", filter.Kinds)
	}
	if filter.Currency != nil {
		query = query.Where("currency = ?", *filter.Currency)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SourceTransactionID != nil {
		query = query.Where("source_transaction_id = ?", *filter.SourceTransactionID)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var rows []schema.Transaction
	if err := query.Order("id DESC").
		Limit(limit).
		Offset(int(filter.Offset)). //nolint:gosec,G115
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	return rows, uint64(total), nil //nolint:gosec,G115
}

// lockTransaction loads a ledger row with FOR UPDATE
func (s *pgStore) lockTransaction(tx *gorm.DB, id uint64) (*schema.Transaction, error) {
	var row schema.Transaction
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", domain.ErrTransactionNotFound, id)
		}
		return nil, fmt.Errorf("failed to lock transaction: %w", err)
	}
	return &row, nil
}

// CompleteTransaction moves a pending row to completed exactly once
func (s *pgStore) CompleteTransaction(ctx context.Context, id uint64, completedAt time.Time) (*schema.Transaction, bool, error) {
	var (
		row     *schema.Transaction
		changed bool
	)

	err := s.Transaction(ctx, func(ctx context.Context) error {
		tx := s.getDB(ctx)

		var err error
		row, err = s.lockTransaction(tx, id)
		if err != nil {
			return err
		}

		switch row.Status {
		case domain.TransactionStatusCompleted:
			return nil
		case domain.TransactionStatusCancelled:
			return fmt.Errorf("%w: transaction %d is cancelled", domain.ErrInvalidTransactionState, id)
		}

		if err := tx.Model(row).Updates(map[string]interface{}{
			"status":       domain.TransactionStatusCompleted,
			"completed_at": completedAt,
		}).Error; err != nil {
			return fmt.Errorf("failed to complete transaction: %w", err)
		}

		if err := applyBalanceDelta(tx, row.UserID, row.Currency, row.Amount); err != nil {
			return err
		}

		row.Status = domain.TransactionStatusCompleted
		row.CompletedAt = &completedAt
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return row, changed, nil
}

// CancelTransaction moves a pending row to cancelled; the row stays as history
func (s *pgStore) CancelTransaction(ctx context.Context, id uint64) (*schema.Transaction, bool, error) {
	var (
		row     *schema.Transaction
		changed bool
	)

	err := s.Transaction(ctx, func(ctx context.Context) error {
		tx := s.getDB(ctx)

		var err error
		row, err = s.lockTransaction(tx, id)
		if err != nil {
			return err
		}

		switch row.Status {
		case domain.TransactionStatusCancelled:
			return nil
		case domain.TransactionStatusCompleted:
			return fmt.Errorf("%w: transaction %d is completed", domain.ErrInvalidTransactionState, id)
		}

		if err := tx.Model(row).Update("status", domain.TransactionStatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel transaction: %w", err)
		}

		row.Status = domain.TransactionStatusCancelled
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return row, changed, nil
}

// SumCompletedTransactions replays the ledger for a user and currency
func (s *pgStore) SumCompletedTransactions(ctx context.Context, userID uint64, currency domain.Currency) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := s.getDB(ctx).Model(&schema.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND currency = ? AND status = ?", userID, currency, domain.TransactionStatusCompleted).
		Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum completed transactions: %w", err)
	}
	return sum, nil
}

// SumPendingDebits sums the pending negative rows of a user and currency
func (s *pgStore) SumPendingDebits(ctx context.Context, userID uint64, currency domain.Currency) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := s.getDB(ctx).Model(&schema.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND currency = ? AND status = ? AND amount < 0", userID, currency, domain.TransactionStatusPending).
		Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum pending debits: %w", err)
	}
	return sum, nil
}

// =============================================================================
// Balances
// =============================================================================

// GetBalance retrieves the materialized balance row
func (s *pgStore) GetBalance(ctx context.Context, userID uint64, currency domain.Currency) (*schema.Balance, error) {
	return s.getBalance(s.getDB(ctx), userID, currency)
}

// LockBalance retrieves the materialized balance row with FOR UPDATE
func (s *pgStore) LockBalance(ctx context.Context, userID uint64, currency domain.Currency) (*schema.Balance, error) {
	return s.getBalance(s.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID, currency)
}

func (s *pgStore) getBalance(tx *gorm.DB, userID uint64, currency domain.Currency) (*schema.Balance, error) {
	var balance schema.Balance
	err := tx.Where("user_id = ? AND currency = ?", userID, currency).First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return &balance, nil
}

// ListBalances pages through balance rows in key order
func (s *pgStore) ListBalances(ctx context.Context, after *BalanceCursor, limit int) ([]schema.Balance, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := s.getDB(ctx).Model(&schema.Balance{})
	if after != nil {
		query = query.Where("(user_id, currency) > (?, ?)", after.UserID, after.Currency)
	}

	var balances []schema.Balance
	if err := query.Order("user_id ASC, currency ASC").Limit(limit).Find(&balances).Error; err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	return balances, nil
}

// =============================================================================
// Farming positions
// =============================================================================

// GetFarmingPosition retrieves a user's position in a farming product
func (s *pgStore) GetFarmingPosition(ctx context.Context, userID uint64, productID string) (*schema.FarmingPosition, error) {
	var position schema.FarmingPosition
	err := s.getDB(ctx).Where("user_id = ? AND product_id = ?", userID, productID).First(&position).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get farming position: %w", err)
	}
	return &position, nil
}

// ListAccruablePositionIDs pages through IDs of active positions with a positive deposit
func (s *pgStore) ListAccruablePositionIDs(ctx context.Context, afterID uint64, limit int) ([]uint64, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	var ids []uint64
	err := s.getDB(ctx).Model(&schema.FarmingPosition{}).
		Where("active = ? AND deposit_amount > 0 AND id > ?", true, afterID).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accruable positions: %w", err)
	}
	return ids, nil
}

// LockAccruablePosition locks an accruable position with FOR UPDATE SKIP LOCKED
func (s *pgStore) LockAccruablePosition(ctx context.Context, id uint64) (*schema.FarmingPosition, error) {
	var position schema.FarmingPosition
	err := s.getDB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("id = ? AND active = ? AND deposit_amount > 0", id, true).
		First(&position).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock farming position: %w", err)
	}
	return &position, nil
}

// LockFarmingPosition locks a user's position in a farming product with FOR UPDATE
func (s *pgStore) LockFarmingPosition(ctx context.Context, userID uint64, productID string) (*schema.FarmingPosition, error) {
	var position schema.FarmingPosition
	err := s.getDB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&position).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock farming position: %w", err)
	}
	return &position, nil
}

// CreateFarmingPosition inserts an empty position, or returns the existing one
func (s *pgStore) CreateFarmingPosition(ctx context.Context, input CreateFarmingPositionInput) (*schema.FarmingPosition, error) {
	position := schema.FarmingPosition{
		UserID:        input.UserID,
		ProductID:     input.ProductID,
		Currency:      input.Currency,
		DepositAmount: decimal.Zero,
		Rate:          input.Rate,
		LastAccrualAt: input.LastAccrualAt,
		Active:        true,
	}

	tx := s.getDB(ctx)
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(&position).Error; err != nil {
		return nil, fmt.Errorf("failed to create farming position: %w", err)
	}

	if position.ID == 0 {
		existing, err := s.GetFarmingPosition(ctx, input.UserID, input.ProductID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("farming position for user %d in %s conflicted but was not found", input.UserID, input.ProductID)
		}
		return existing, nil
	}

	return &position, nil
}

// UpdateFarmingPosition applies the non-nil fields of update
func (s *pgStore) UpdateFarmingPosition(ctx context.Context, id uint64, update FarmingPositionUpdate) error {
	updates := map[string]interface{}{
		"updated_at": gorm.Expr("now()"),
	}
	if update.DepositAmount != nil {
		updates["deposit_amount"] = *update.DepositAmount
	}
	if update.Rate != nil {
		updates["rate"] = *update.Rate
	}
	if update.LastAccrualAt != nil {
		updates["last_accrual_at"] = *update.LastAccrualAt
	}
	if update.Active != nil {
		updates["active"] = *update.Active
	}

	result := s.getDB(ctx).Model(&schema.FarmingPosition{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update farming position: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", domain.ErrPositionNotFound, id)
	}

	return nil
}

// =============================================================================
// Key-value store
// =============================================================================

// SetKeyValue sets a key-value pair in the key-value store
func (s *pgStore) SetKeyValue(ctx context.Context, key string, value string) error {
	kv := schema.KeyValueStore{
		Key:   key,
		Value: value,
	}

	if err := s.getDB(ctx).Save(&kv).Error; err != nil {
		return fmt.Errorf("failed to set key-value: %w", err)
	}

	return nil
}

// GetKeyValue retrieves a value by key from the key-value store
func (s *pgStore) GetKeyValue(ctx context.Context, key string) (string, error) {
	var kv schema.KeyValueStore
	err := s.getDB(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get key-value: %w", err)
	}

	return kv.Value, nil
}
