package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Predicate selects records during Find, FindOne and DeleteMany.
type Predicate func(Record) bool

// Store is a schema-agnostic record store over named collections. Records
// keep their insertion order. Every mutation runs in one transaction on a
// single-connection pool, so writers to the same collection are serialized
// and a failed mutation leaves the persisted state untouched.
type Store struct {
	db     *DB
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewStore creates a store over db. A nil logger discards diagnostics.
func NewStore(db *DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		db:     db,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Get returns the full contents of a collection in insertion order. A
// collection that has never been written reads as empty. Rows whose payload
// no longer parses are skipped and logged; the read still succeeds with the
// remaining records.
func (s *Store) Get(ctx context.Context, collection string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fields FROM records WHERE collection = ? ORDER BY position, rowid`,
		collection)
	if err != nil {
		return nil, fmt.Errorf("reading collection %s: %w", collection, err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec, err := decodeRecord(payload)
		if err != nil {
			s.logger.Warn("skipping unreadable record",
				"collection", collection, "id", id, "error", err)
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collection %s: %w", collection, err)
	}
	return records, nil
}

// Set replaces the entire collection in one transaction. Records missing an
// id or creation timestamp are backfilled on the way in.
func (s *Store) Set(ctx context.Context, collection string, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning set: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM records WHERE collection = ?`, collection); err != nil {
		return fmt.Errorf("clearing collection %s: %w", collection, err)
	}

	for i, rec := range records {
		stored := rec.Clone()
		if stored.ID() == "" {
			stored[FieldID] = s.newID()
		}
		if stored.String(FieldCreatedAt) == "" {
			stored[FieldCreatedAt] = s.timestamp()
		}
		payload, err := encodeRecord(stored)
		if err != nil {
			return fmt.Errorf("encoding record %s: %w", stored.ID(), err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (collection, id, position, fields) VALUES (?, ?, ?, ?)`,
			collection, stored.ID(), i, payload); err != nil {
			return fmt.Errorf("writing record %s: %w", stored.ID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing set: %w", err)
	}
	return nil
}

// Add appends fields as a new record with a generated id and creation
// timestamp, and returns the stored record.
func (s *Store) Add(ctx context.Context, collection string, fields map[string]any) (Record, error) {
	rec := Record(fields).Clone()
	rec[FieldID] = s.newID()
	rec[FieldCreatedAt] = s.timestamp()

	payload, err := encodeRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (collection, id, position, fields)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM records WHERE collection = ?), ?)`,
		collection, rec.ID(), collection, payload)
	if err != nil {
		return nil, fmt.Errorf("adding record to %s: %w", collection, err)
	}
	return rec, nil
}

// GetByID returns the record with the given id, or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, collection, id string) (Record, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT fields FROM records WHERE collection = ? AND id = ?`,
		collection, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting record %s: %w", id, err)
	}

	rec, err := decodeRecord(payload)
	if err != nil {
		// The row exists but its payload is unreadable: degrade to the bare
		// envelope rather than failing the caller.
		s.logger.Warn("unreadable record payload",
			"collection", collection, "id", id, "error", err)
		return Record{FieldID: id}, nil
	}
	return rec, nil
}

// Find returns all records satisfying match, in insertion order. A nil
// match selects everything.
func (s *Store) Find(ctx context.Context, collection string, match Predicate) ([]Record, error) {
	records, err := s.Get(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if match == nil || match(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// FindOne returns the first record satisfying match, or ErrNotFound.
func (s *Store) FindOne(ctx context.Context, collection string, match Predicate) (Record, error) {
	records, err := s.Get(ctx, collection)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if match == nil || match(rec) {
			return rec, nil
		}
	}
	return nil, ErrNotFound
}

// Update merges partial fields into the existing record and stamps
// updatedAt. Unspecified fields are untouched. The id and createdAt fields
// are immutable; attempts to change them are dropped from the partial.
// Returns ErrNotFound when the id does not exist.
func (s *Store) Update(ctx context.Context, collection, id string, partial map[string]any) (Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning update: %w", err)
	}
	defer tx.Rollback()

	var payload string
	err = tx.QueryRowContext(ctx,
		`SELECT fields FROM records WHERE collection = ? AND id = ?`,
		collection, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading record %s: %w", id, err)
	}

	rec, decErr := decodeRecord(payload)
	if decErr != nil {
		// The stored payload is unreadable: rebuild from the envelope so
		// the update still lands.
		s.logger.Warn("rebuilding unreadable record",
			"collection", collection, "id", id, "error", decErr)
		rec = Record{FieldID: id}
	}

	for k, v := range partial {
		if k == FieldID || k == FieldCreatedAt {
			continue
		}
		rec[k] = v
	}
	rec[FieldUpdatedAt] = s.timestamp()

	encoded, err := encodeRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding record %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE records SET fields = ? WHERE collection = ? AND id = ?`,
		encoded, collection, id); err != nil {
		return nil, fmt.Errorf("updating record %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing update: %w", err)
	}
	return rec, nil
}

// Delete removes the record with the given id, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return fmt.Errorf("deleting record %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMany removes every record satisfying match and reports how many
// were removed.
func (s *Store) DeleteMany(ctx context.Context, collection string, match Predicate) (int, error) {
	records, err := s.Get(ctx, collection)
	if err != nil {
		return 0, err
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		if match == nil || match(rec) {
			ids = append(ids, rec.ID())
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM records WHERE collection = ? AND id = ?`, collection, id); err != nil {
			return 0, fmt.Errorf("deleting record %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing delete: %w", err)
	}
	return len(ids), nil
}

// Search returns records whose string fields contain term,
// case-insensitively. With explicit fields only those are examined;
// otherwise every string-valued field is. An empty or whitespace term
// returns the whole collection unfiltered.
func (s *Store) Search(ctx context.Context, collection, term string, fields ...string) ([]Record, error) {
	records, err := s.Get(ctx, collection)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return records, nil
	}

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if recordMatches(rec, needle, fields) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func recordMatches(rec Record, needle string, fields []string) bool {
	if len(fields) > 0 {
		for _, key := range fields {
			if v, ok := rec[key].(string); ok &&
				strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
		return false
	}
	for _, v := range rec {
		if str, ok := v.(string); ok &&
			strings.Contains(strings.ToLower(str), needle) {
			return true
		}
	}
	return false
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func decodeRecord(payload string) (Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func encodeRecord(rec Record) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
