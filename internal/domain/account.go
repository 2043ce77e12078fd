// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

// PlatformAccountID is the reserved system account collecting fees and
// funding habit-staking bonuses.
const PlatformAccountID = "platform"

var (
	// ErrUnknownAccount indicates that the account does not exist.
	ErrUnknownAccount = errors.New("unknown account")
	// ErrAccountExists indicates that the account id is already taken.
	ErrAccountExists = errors.New("account already exists")
	// ErrInsufficientFunds indicates that the available balance is too low.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrConflict indicates a lost storage-level race; the caller should
	// retry the whole operation.
	ErrConflict = errors.New("storage conflict")
)

// Account holds the two balances of a user or of the platform itself.
//
// Available plus Held always equals the sum of all committed ledger
// entries applied to the account. Held funds are earmarked for pending
// commitments and wagers and only the escrow and wager engines move them.
type Account struct {
	ID        string    `json:"id"`
	Currency  string    `json:"currency"`
	Available int64     `json:"available"`
	Held      int64     `json:"held"`
	CreatedAt time.Time `json:"created_at"`
}

// Balance is the committed balance pair of an account.
type Balance struct {
	Available int64  `json:"available"`
	Held      int64  `json:"held"`
	Currency  string `json:"currency"`
}
