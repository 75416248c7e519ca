package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// User represents the users table - a ledger participant and its materialized referral chain
type User struct {
	// ID is the user identifier supplied by the identity layer
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement:false"`
	// ReferralCode is the code other users register with to become this user's referrals
	ReferralCode string `gorm:"column:referral_code;not null;uniqueIndex;type:text"`
	// InviterCode is the referral code the user registered with, kept even when it did not resolve
	InviterCode *string `gorm:"column:inviter_code;type:text"`
	// InviterID is the resolved direct inviter (level 1 ancestor)
	InviterID *uint64 `gorm:"column:inviter_id;index"`
	// AncestorChain is a JSON array of ancestor user IDs, nearest first, at most 20 entries
	AncestorChain datatypes.JSON `gorm:"column:ancestor_chain;not null;type:jsonb;default:'[]'"`
	// CreatedAt is the timestamp when the user was registered
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// Ancestors decodes the materialized referral chain
func (u *User) Ancestors() ([]uint64, error) {
	if len(u.AncestorChain) == 0 {
		return nil, nil
	}
	var ids []uint64
	if err := json.Unmarshal(u.AncestorChain, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode ancestor chain of user %d: %w", u.ID, err)
	}
	return ids, nil
}
