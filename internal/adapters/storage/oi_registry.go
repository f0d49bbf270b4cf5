package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Sentinel errors for the operator registry
var (
	// ErrOperatorNotFound indicates no operator is registered for the OI
	ErrOperatorNotFound = errors.New("operator not found")

	// ErrRegistryClosed indicates the registry has been closed
	ErrRegistryClosed = errors.New("operator registry is closed")
)

// DatabaseError wraps database-specific errors with context
type DatabaseError struct {
	Op  string // Operation that failed (e.g., "lookup", "insert")
	Err error  // Underlying error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database %s failed: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// OIRegistry resolves roaming-consortium Organization Identifiers to the
// operator names registered with the Wi-Fi Alliance. It implements
// ports.OperatorRepository.
type OIRegistry struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool

	// Prepared statement for better performance
	lookupStmt *sql.Stmt
}

// OIEntry represents a single registry entry. OIs are stored in their
// lowercase hex form without separators, e.g. "506f9a".
type OIEntry struct {
	OI          string
	Operator    string
	Country     string
	LastUpdated time.Time
}

// FormatOI renders an OI value in the registry's key form.
func FormatOI(oi uint64) string {
	return fmt.Sprintf("%06x", oi)
}

// NewOIRegistry opens (and if needed initializes) the operator registry.
func NewOIRegistry(dbPath string) (*OIRegistry, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, &DatabaseError{Op: "open", Err: err}
	}

	// Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &DatabaseError{Op: "ping", Err: err}
	}

	registry := &OIRegistry{db: db}

	if err := registry.initializeSchema(); err != nil {
		db.Close()
		return nil, &DatabaseError{Op: "initialize_schema", Err: err}
	}

	stmt, err := db.Prepare("SELECT operator FROM oi_registry WHERE oi = ?")
	if err != nil {
		db.Close()
		return nil, &DatabaseError{Op: "prepare_statement", Err: err}
	}
	registry.lookupStmt = stmt

	return registry, nil
}

// initializeSchema creates the registry table if it doesn't exist
func (r *OIRegistry) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS oi_registry (
		oi TEXT PRIMARY KEY,
		operator TEXT NOT NULL,
		country TEXT,
		last_updated INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_operator ON oi_registry(operator);
	`

	_, err := r.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// LookupOperator implements ports.OperatorRepository
func (r *OIRegistry) LookupOperator(ctx context.Context, oi uint64) (string, error) {
	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return "", ErrRegistryClosed
	}
	r.mu.RUnlock()

	var operator string
	err := r.lookupStmt.QueryRowContext(ctx, FormatOI(oi)).Scan(&operator)

	if err == sql.ErrNoRows {
		return "", ErrOperatorNotFound
	}
	if err != nil {
		return "", &DatabaseError{Op: "lookup", Err: err}
	}
	return operator, nil
}

// InsertOI adds or replaces a single registry entry.
func (r *OIRegistry) InsertOI(ctx context.Context, entry OIEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}

	query := `
	INSERT OR REPLACE INTO oi_registry (oi, operator, country, last_updated)
	VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.OI,
		entry.Operator,
		entry.Country,
		entry.LastUpdated.Unix(),
	)

	if err != nil {
		return &DatabaseError{Op: "insert", Err: err}
	}

	return nil
}

// BulkInsertOIs inserts many entries in a single transaction.
func (r *OIRegistry) BulkInsertOIs(ctx context.Context, entries []OIEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &DatabaseError{Op: "begin_transaction", Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO oi_registry (oi, operator, country, last_updated)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return &DatabaseError{Op: "prepare_bulk_insert", Err: err}
	}
	defer stmt.Close()

	for _, entry := range entries {
		_, err := stmt.ExecContext(ctx,
			entry.OI,
			entry.Operator,
			entry.Country,
			entry.LastUpdated.Unix(),
		)
		if err != nil {
			return &DatabaseError{Op: "bulk_insert_entry", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &DatabaseError{Op: "commit_transaction", Err: err}
	}

	return nil
}

// Count returns the number of registered operators.
func (r *OIRegistry) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return 0, ErrRegistryClosed
	}

	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM oi_registry").Scan(&count)
	if err != nil {
		return 0, &DatabaseError{Op: "count", Err: err}
	}
	return count, nil
}

// Close implements ports.OperatorRepository
func (r *OIRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if r.lookupStmt != nil {
		r.lookupStmt.Close()
	}
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
