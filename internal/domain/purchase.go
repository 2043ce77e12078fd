package domain

import "errors"

var (
	// ErrInvalidCategory indicates a category outside the operation's accepted set.
	ErrInvalidCategory = errors.New("invalid settlement category")
	// ErrSelfPurchase indicates a direct payment where buyer and payee are
	// the same account.
	ErrSelfPurchase = errors.New("buyer and payee are the same account")
)

// PurchaseResult is the committed split of a direct payment: a micro-task
// reward, a digital-goods sale or a crowdfunding contribution.
type PurchaseResult struct {
	Buyer       string   `json:"buyer"`
	Payee       string   `json:"payee"`
	Category    Category `json:"category"`
	Gross       int64    `json:"gross"`
	Net         int64    `json:"net"`
	PlatformFee int64    `json:"platform_fee"`
}
