// internal/activity/activity.go
package activity

import (
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/marketinghub-backend/internal/model"
	"github.com/unclebandit/marketinghub-backend/internal/store"
)

// Logger appends who-did-what-to-which records to the activity_log
// collection. Entries are never mutated or deleted.
type Logger struct {
	Store store.Store
	Log   *zap.SugaredLogger
}

func NewLogger(s store.Store, log *zap.SugaredLogger) *Logger {
	return &Logger{Store: s, Log: log}
}

// Record inserts one entry with a capture-time timestamp and returns the
// stored record.
func (l *Logger) Record(actorEmail, action, entityType, entityID string, metadata map[string]any) (store.Record, error) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	entry := store.Record{
		"actor_email": actorEmail,
		"action":      action,
		"entity_type": entityType,
		"entity_id":   entityID,
		"metadata":    metadata,
		"created_at":  time.Now().UTC().Format(time.RFC3339),
	}
	return l.Store.Insert(model.CollectionActivityLog, entry)
}

// BestEffort records an entry as a side effect of a successful mutation.
// The primary write is already durable; an audit failure is logged and
// swallowed rather than rolled into the caller's result.
func (l *Logger) BestEffort(actorEmail, action, entityType, entityID string, metadata map[string]any) {
	if _, err := l.Record(actorEmail, action, entityType, entityID, metadata); err != nil {
		l.Log.Warnw("audit write failed",
			"actor", actorEmail, "action", action,
			"entity_type", entityType, "entity_id", entityID,
			"error", err)
	}
}

// List fetches entries matching the equality filters, truncated to limit.
// Ordering beyond store insertion order is not guaranteed.
func (l *Logger) List(limit int, filters store.Filters) ([]store.Record, error) {
	entries, err := l.Store.Fetch(model.CollectionActivityLog, filters)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
