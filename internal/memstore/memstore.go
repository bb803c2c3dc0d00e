// Package memstore is an in-memory implementation of the store contracts.
// It backs the server when no database is reachable (demo mode) and the
// service tests. Records are kept in insertion order; callers needing
// chronological order sort by CreatedAt themselves.
package memstore

import "context"

type Store struct {
	Users     *UserStore
	Products  *ProductStore
	Locations *LocationStore
	Transfers *TransferStore
	Settings  *SettingsStore
}

func New() *Store {
	return &Store{
		Users:     NewUserStore(),
		Products:  NewProductStore(),
		Locations: NewLocationStore(),
		Transfers: NewTransferStore(),
		Settings:  NewSettingsStore(),
	}
}

// Ping satisfies the health checker; memory is always reachable.
func (s *Store) Ping(ctx context.Context) error { return nil }
