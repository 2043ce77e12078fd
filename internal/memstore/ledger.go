package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/payday-kr/settlement-core/internal/domain"
)

// Ledger is an in-memory append-only ledger store.
//
// The mutex is the single serialization point; it is held only for the
// duration of one apply or read, never across a caller-visible boundary.
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	entries  []domain.Entry
	byCorr   map[string][]int
	nextID   int64
}

// NewLedger returns an empty in-memory ledger.
func NewLedger() *Ledger {
	return &Ledger{
		accounts: make(map[string]*domain.Account),
		byCorr:   make(map[string][]int),
		nextID:   1,
	}
}

// CreateAccount registers an account. The opening available balance
// represents already-collected funds handed over by the payment layer.
func (l *Ledger) CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accounts[account.ID]; ok {
		return domain.Account{}, domain.ErrAccountExists
	}

	account.Held = 0
	account.CreatedAt = time.Now().UTC()
	l.accounts[account.ID] = &account

	return account, nil
}

// GetAccount returns the account with the given id.
func (l *Ledger) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrUnknownAccount
	}

	return *a, nil
}

// BalanceOf returns the committed balances of the account.
func (l *Ledger) BalanceOf(ctx context.Context, id string) (domain.Balance, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accounts[id]
	if !ok {
		return domain.Balance{}, domain.ErrUnknownAccount
	}

	return domain.Balance{Available: a.Available, Held: a.Held, Currency: a.Currency}, nil
}

// Apply commits all entries of one correlation group atomically.
//
// A correlation id that already committed fails with ErrCorrelationExists
// and leaves the ledger untouched, so replayed settlements can return the
// original result instead of double-applying.
func (l *Ledger) Apply(ctx context.Context, entries []domain.Entry) ([]domain.Entry, error) {
	if len(entries) == 0 {
		return nil, domain.ErrEmptyEntryGroup
	}

	corr := entries[0].CorrelationID
	for _, e := range entries {
		if e.CorrelationID != corr {
			return nil, domain.ErrMixedCorrelation
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.byCorr[corr]; ok {
		return nil, domain.ErrCorrelationExists
	}

	// Validate every entry before mutating anything so a failure leaves
	// no partial application observable.
	next := make(map[string]domain.Balance, len(entries))
	for _, e := range entries {
		a, ok := l.accounts[e.AccountID]
		if !ok {
			return nil, domain.ErrUnknownAccount
		}

		b, ok := next[e.AccountID]
		if !ok {
			b = domain.Balance{Available: a.Available, Held: a.Held}
		}

		b.Available += e.Available
		b.Held += e.Held

		if b.Available < 0 || b.Held < 0 {
			return nil, domain.ErrInsufficientFunds
		}

		next[e.AccountID] = b
	}

	now := time.Now().UTC()
	committed := make([]domain.Entry, 0, len(entries))

	for _, e := range entries {
		e.ID = l.nextID
		e.CreatedAt = now
		l.nextID++

		l.byCorr[corr] = append(l.byCorr[corr], len(l.entries))
		l.entries = append(l.entries, e)
		committed = append(committed, e)
	}

	for id, b := range next {
		l.accounts[id].Available = b.Available
		l.accounts[id].Held = b.Held
	}

	return committed, nil
}

// ListByCorrelation returns all committed entries of one correlation group.
func (l *Ledger) ListByCorrelation(ctx context.Context, correlationID string) ([]domain.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idxs, ok := l.byCorr[correlationID]
	if !ok {
		return []domain.Entry{}, nil
	}

	items := make([]domain.Entry, 0, len(idxs))
	for _, i := range idxs {
		items = append(items, l.entries[i])
	}

	return items, nil
}
