// internal/store/postgres.go
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/unclebandit/marketinghub-backend/internal/model"
)

// Postgres stores each collection as a (id TEXT PRIMARY KEY, doc JSONB)
// table, with the id mirrored inside the document so equality filters on
// "id" work the same as on any other field.
type Postgres struct {
	DB     *sql.DB
	tables map[string]bool
}

var _ Store = (*Postgres)(nil)

// OpenPostgres connects and pings once. Callers decide what a failure
// means (Open falls back to mock).
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return NewPostgres(db), nil
}

// NewPostgres wraps an existing connection.
func NewPostgres(db *sql.DB) *Postgres {
	tables := make(map[string]bool, len(model.Collections))
	for _, c := range model.Collections {
		tables[c] = true
	}
	return &Postgres{DB: db, tables: tables}
}

func (p *Postgres) Fetch(collection string, filters Filters) ([]Record, error) {
	if !p.tables[collection] {
		return []Record{}, nil
	}

	query := fmt.Sprintf(`SELECT doc FROM %s`, collection)
	args := []interface{}{}
	if len(filters) > 0 {
		fjson, err := json.Marshal(filters)
		if err != nil {
			return nil, err
		}
		query += ` WHERE doc @> $1::jsonb`
		args = append(args, string(fjson))
	}
	query += ` ORDER BY doc->>'created_at', id`

	rows, err := p.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (p *Postgres) Insert(collection string, rec Record) (Record, error) {
	if !p.tables[collection] {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	stored := cloneRecord(rec)
	stored["id"] = uuid.NewString()
	doc, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2::jsonb)`, collection)
	if _, err := p.DB.Exec(query, stored["id"], string(doc)); err != nil {
		return nil, err
	}
	return stored, nil
}

func (p *Postgres) Update(collection, id string, patch Record) (Record, error) {
	if !p.tables[collection] {
		return nil, nil
	}

	doc, err := json.Marshal(patch)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE %s SET doc = doc || $2::jsonb WHERE id = $1 RETURNING doc`, collection)
	var raw []byte
	err = p.DB.QueryRow(query, id, string(doc)).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (p *Postgres) Count(collection string, filters Filters) (int, error) {
	if !p.tables[collection] {
		return 0, nil
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, collection)
	args := []interface{}{}
	if len(filters) > 0 {
		fjson, err := json.Marshal(filters)
		if err != nil {
			return 0, err
		}
		query += ` WHERE doc @> $1::jsonb`
		args = append(args, string(fjson))
	}

	var n int
	if err := p.DB.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
