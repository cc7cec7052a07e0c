// internal/store/store.go
package store

import (
	"go.uber.org/zap"

	"github.com/unclebandit/marketinghub-backend/internal/config"
)

// Record is one row of a collection: field name -> scalar or array value.
// Both backends hand out the same shape for a given logical operation.
type Record = map[string]any

// Filters is a conjunction of exact-equality constraints. No range,
// substring, or inequality filtering exists at this layer.
type Filters = map[string]any

// Store is the single persistence capability set. Every call site is
// written against it; nothing branches on which backend is active.
type Store interface {
	// Fetch returns all records of the collection matching every filter by
	// exact equality. An unknown collection yields an empty result, not an
	// error.
	Fetch(collection string, filters Filters) ([]Record, error)

	// Insert stores the record and returns it with a freshly assigned
	// unique id merged in.
	Insert(collection string, rec Record) (Record, error)

	// Update merges patch fields over the record with the given id and
	// returns the result. A missing id is a soft no-op: (nil, nil).
	Update(collection, id string, patch Record) (Record, error)

	// Count reports how many records match the filters, with the same
	// equality-only semantics as Fetch.
	Count(collection string, filters Filters) (int, error)
}

// Modes reported by Open.
const (
	ModeDatabase = "database"
	ModeMock     = "mock"
)

// Open selects the backend once for the process lifetime. Missing
// credentials, MOCK_MODE=true, or a connection failure at startup all fall
// back to the seeded in-memory mock; live mode is never retried per-call.
func Open(cfg config.Config, log *zap.SugaredLogger) (Store, string) {
	if !cfg.HasDatabase() {
		log.Infow("⚠️ database credentials missing, mock mode enabled")
		return NewMockSeeded(), ModeMock
	}

	pg, err := OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Warnw("⚠️ database connection failed, mock mode enabled", "error", err)
		return NewMockSeeded(), ModeMock
	}

	log.Infow("✅ connected to database")
	return pg, ModeDatabase
}

// matches reports whether the record satisfies every filter by exact
// equality. Shared by the mock backend and tests.
func matches(rec Record, filters Filters) bool {
	for k, want := range filters {
		if rec[k] != want {
			return false
		}
	}
	return true
}
