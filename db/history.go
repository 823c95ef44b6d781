// Package db persists estimation history. The estimation core never touches
// this package; persistence is an external collaborator concern wired in by
// the server.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"bill-optimizer/core/types"
	"bill-optimizer/internal/errors"
)

// Record is one persisted estimation
type Record struct {
	ID             string              `json:"id"`
	CreatedAt      time.Time           `json:"created_at"`
	Input          types.RawUserInput  `json:"input"`
	EstimatedUnits float64             `json:"estimated_units"`
	PredictedBill  float64             `json:"predicted_bill"`
	Method         types.Method        `json:"method"`
	Confidence     float64             `json:"confidence"`
}

// HistoryStore records and lists estimations
type HistoryStore interface {
	// SaveEstimation appends one estimation to the history
	SaveEstimation(ctx context.Context, input types.RawUserInput, result types.EstimationResult) (string, error)

	// RecentEstimations returns the newest records, most recent first
	RecentEstimations(ctx context.Context, limit int) ([]Record, error)

	// Close releases the underlying database
	Close() error
}

// SQLiteStore is the SQLite-backed history store
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the history database. WAL mode keeps
// concurrent server reads cheap.
func OpenSQLite(path string) (*SQLiteStore, error) {
	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Storage("failed to open history database", err).WithContext("path", path)
	}

	if err := database.Ping(); err != nil {
		return nil, errors.Storage("failed to ping history database", err)
	}
	if _, err := database.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, errors.Storage("failed to enable WAL mode", err)
	}

	s := &SQLiteStore{db: database}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// migrate creates the estimations table if it does not exist. The raw input
// is kept as a JSON blob alongside the queryable outcome columns.
func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS estimations (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		input JSON NOT NULL,
		estimated_units REAL NOT NULL,
		predicted_bill REAL NOT NULL,
		method TEXT NOT NULL,
		confidence REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_estimations_created_at ON estimations(created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return errors.Storage("failed to create estimations table", err)
	}
	return nil
}

// SaveEstimation appends one estimation and returns its id
func (s *SQLiteStore) SaveEstimation(ctx context.Context, input types.RawUserInput, result types.EstimationResult) (string, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return "", errors.Storage("failed to encode input", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO estimations (id, created_at, input, estimated_units, predicted_bill, method, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC(), string(payload),
		result.EstimatedUnits, result.PredictedBill, string(result.Method), result.Confidence,
	)
	if err != nil {
		return "", errors.Storage("failed to insert estimation", err)
	}
	return id, nil
}

// RecentEstimations returns the newest records, most recent first
func (s *SQLiteStore) RecentEstimations(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, input, estimated_units, predicted_bill, method, confidence
		FROM estimations
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Storage("failed to query estimations", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var payload string
		var method string
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &payload, &rec.EstimatedUnits, &rec.PredictedBill, &method, &rec.Confidence); err != nil {
			return nil, errors.Storage("failed to scan estimation row", err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Input); err != nil {
			return nil, errors.Storage("failed to decode stored input", err)
		}
		rec.Method = types.Method(method)
		records = append(records, rec)
	}
	return records, rows.Err()
}
