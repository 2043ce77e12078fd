// Package memstore provides in-memory implementations of the settlement
// storage contracts.
//
// It backs the "memory" db driver for local runs and the concurrency tests.
// Any storage engine satisfying the same contracts is substitutable; the
// Postgres repos are the production implementations.
package memstore

// Store bundles the three in-memory repositories.
type Store struct {
	Ledger      *Ledger
	Commitments *Commitments
	Wagers      *Wagers
}

// New returns an empty store.
func New() *Store {
	return &Store{
		Ledger:      NewLedger(),
		Commitments: NewCommitments(),
		Wagers:      NewWagers(),
	}
}
