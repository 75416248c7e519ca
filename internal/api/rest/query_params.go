package rest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/store"
)

const (
	DEFAULT_PAGE_SIZE = 20
	MAX_PAGE_SIZE     = 100
)

// ListTransactionsQueryParams holds query parameters for GET /users/:user_id/transactions
type ListTransactionsQueryParams struct {
	Currency      string     `form:"currency"`
	Kinds         []string   `form:"kind"`
	Status        string     `form:"status"`
	CreatedAfter  *time.Time `form:"created_after" time_format:"2006-01-02T15:04:05Z07:00"`
	CreatedBefore *time.Time `form:"created_before" time_format:"2006-01-02T15:04:05Z07:00"`

	// Pagination
	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// ParseListTransactionsQuery parses query parameters for GET /users/:user_id/transactions
func ParseListTransactionsQuery(c *gin.Context) (*ListTransactionsQueryParams, error) {
	var params ListTransactionsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limits
	if params.Limit <= 0 {
		params.Limit = DEFAULT_PAGE_SIZE
	}
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}

	return &params, nil
}

// Filter converts the query into a store filter scoped to userID
func (p *ListTransactionsQueryParams) Filter(userID uint64) (store.TransactionFilter, error) {
	filter := store.TransactionFilter{
		UserID:        &userID,
		CreatedAfter:  p.CreatedAfter,
		CreatedBefore: p.CreatedBefore,
		Limit:         p.Limit,
		Offset:        p.Offset,
	}

	if p.Currency != "" {
		currency, err := domain.ParseCurrency(p.Currency)
		if err != nil {
			return filter, err
		}
		filter.Currency = &currency
	}

	for _, k := range p.Kinds {
		kind := domain.TransactionKind(strings.ToUpper(k))
		if !domain.IsValidTransactionKind(kind) {
			return filter, fmt.Errorf("invalid kind: %s", k)
		}
		filter.Kinds = append(filter.Kinds, kind)
	}

	if p.Status != "" {
		status := domain.TransactionStatus(strings.ToLower(p.Status))
		if !domain.IsValidTransactionStatus(status) {
			return filter, fmt.Errorf("invalid status: %s", p.Status)
		}
		filter.Status = &status
	}

	return filter, nil
}

func parseIDParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, c.Param(name))
	}
	return id, nil
}
