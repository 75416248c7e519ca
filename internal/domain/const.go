package domain

import "time"

const (
	// MaxReferralDepth is the number of ancestors kept in a user's referral chain
	MaxReferralDepth = 20

	// AccrualPeriod is the unit the farming rate is expressed in
	AccrualPeriod = 24 * time.Hour

	// Idempotency key prefixes for ledger rows produced by the engine itself
	YIELD_KEY_PREFIX      = "yield"
	COMMISSION_KEY_PREFIX = "commission"

	// NATS subjects
	DEPOSIT_CONFIRMED_SUBJECT_PREFIX = "deposits.confirmed"
	DIVERGENCE_ALERT_SUBJECT         = "alerts.ledger.divergence"

	// Metadata keys written on ledger rows
	METADATA_KEY_FLAGGED     = "key_flagged"
	METADATA_KEY_FLAG_REASON = "key_flag_reason"
)
