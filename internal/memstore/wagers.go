package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/payday-kr/settlement-core/internal/domain"
)

// Wagers is an in-memory wagers repository.
type Wagers struct {
	mu           sync.Mutex
	items        map[string]*domain.Wager
	participants map[string][]participant
}

type participant struct {
	accountID     string
	correlationID string
}

// NewWagers returns an empty in-memory wagers repository.
func NewWagers() *Wagers {
	return &Wagers{
		items:        make(map[string]*domain.Wager),
		participants: make(map[string][]participant),
	}
}

// Create stores a new wager in state OPEN.
func (r *Wagers) Create(ctx context.Context, w domain.Wager) (domain.Wager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w.State = domain.WagerOpen
	w.Participants = 0
	w.CreatedAt = time.Now().UTC()
	r.items[w.ID] = &w

	return w, nil
}

// Get returns the wager with the given id.
func (r *Wagers) Get(ctx context.Context, id string) (domain.Wager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.items[id]
	if !ok {
		return domain.Wager{}, domain.ErrWagerNotFound
	}

	return *w, nil
}

// Participants returns the account ids entered into the wager, in entry order.
func (r *Wagers) Participants(ctx context.Context, id string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nil, domain.ErrWagerNotFound
	}

	out := make([]string, 0, len(r.participants[id]))
	for _, p := range r.participants[id] {
		out = append(out, p.accountID)
	}

	return out, nil
}

// AddParticipant registers an entrant while the wager is OPEN and under
// capacity, recording the correlation id of the entry's stake hold. The
// check and the insert are one atomic step, so concurrent entries cannot
// oversubscribe the wager. On a duplicate entrant the stored correlation
// id is returned alongside ErrDuplicateEntry.
func (r *Wagers) AddParticipant(ctx context.Context, id, accountID, correlationID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.items[id]
	if !ok {
		return "", domain.ErrWagerNotFound
	}

	if w.State != domain.WagerOpen {
		return "", domain.ErrWagerClosed
	}

	if w.Participants >= w.MaxParticipants {
		return "", domain.ErrWagerFull
	}

	for _, p := range r.participants[id] {
		if p.accountID == accountID {
			return p.correlationID, domain.ErrDuplicateEntry
		}
	}

	r.participants[id] = append(r.participants[id], participant{accountID: accountID, correlationID: correlationID})
	w.Participants++

	return correlationID, nil
}

// RemoveParticipant withdraws an entrant whose stake hold failed to apply.
func (r *Wagers) RemoveParticipant(ctx context.Context, id, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.items[id]
	if !ok {
		return domain.ErrWagerNotFound
	}

	for i, p := range r.participants[id] {
		if p.accountID == accountID {
			r.participants[id] = append(r.participants[id][:i], r.participants[id][i+1:]...)
			w.Participants--

			return nil
		}
	}

	return domain.ErrUnknownAccount
}

// SetState transitions the wager from one state to another exactly once,
// recording the settlement correlation id when one applies.
func (r *Wagers) SetState(ctx context.Context, id string, from, to domain.WagerState, correlationID string) (domain.Wager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.items[id]
	if !ok {
		return domain.Wager{}, domain.ErrWagerNotFound
	}

	if w.State != from {
		return domain.Wager{}, stateError(w.State, to)
	}

	w.State = to
	if correlationID != "" {
		w.CorrelationID = correlationID
	}

	return *w, nil
}

func stateError(current domain.WagerState, requested domain.WagerState) error {
	switch requested {
	case domain.WagerSettled:
		if current == domain.WagerSettled {
			return domain.ErrAlreadySettled
		}

		return domain.ErrNotLocked
	case domain.WagerVoid:
		return domain.ErrCannotVoid
	default:
		return domain.ErrWagerClosed
	}
}
