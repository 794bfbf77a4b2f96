package senders

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikey/llm-mail-agent/internal/core"
	"go.uber.org/zap"
)

// SQLiteDirectory is a SQLite implementation of the
// core.SenderDirectory interface
type SQLiteDirectory struct {
	db      *sql.DB
	trusted trustedDomains
	logger  *zap.Logger
}

// NewSQLiteDirectory creates a new SQLite sender directory
func NewSQLiteDirectory(dbPath string, trustedDomainList []string, logger *zap.Logger) (*SQLiteDirectory, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS known_senders (
			email TEXT PRIMARY KEY,
			name TEXT,
			trust_level TEXT DEFAULT 'normal',
			created_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteDirectory{
		db:      db,
		trusted: newTrustedDomains(trustedDomainList),
		logger:  logger,
	}, nil
}

// IsKnown reports whether an address is recorded or carries a trusted domain
func (d *SQLiteDirectory) IsKnown(ctx context.Context, email string) (bool, error) {
	key := normalizeEmail(email)
	if d.trusted.contains(key) {
		return true, nil
	}

	var found string
	err := d.db.QueryRowContext(ctx, `
		SELECT email FROM known_senders WHERE email = ?
	`, key).Scan(&found)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to query known senders: %w", err)
	}
	return true, nil
}

// Add records a sender. Adding an existing address returns the stored
// record unchanged.
func (d *SQLiteDirectory) Add(ctx context.Context, email, name string) (*core.KnownSender, error) {
	key := normalizeEmail(email)

	if existing, err := d.get(ctx, key); err == nil {
		return existing, nil
	} else if err != ErrNotFound {
		return nil, err
	}

	now := time.Now()
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO known_senders (email, name, trust_level, created_at)
		VALUES (?, ?, 'normal', ?)
		ON CONFLICT(email) DO NOTHING
	`, key, name, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert known sender: %w", err)
	}

	// Re-read: a concurrent insert may have won the conflict
	return d.get(ctx, key)
}

// List returns all recorded senders ordered by name
func (d *SQLiteDirectory) List(ctx context.Context) ([]*core.KnownSender, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT email, name, trust_level, created_at
		FROM known_senders ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query known senders: %w", err)
	}
	defer rows.Close()

	var out []*core.KnownSender
	for rows.Next() {
		record := &core.KnownSender{}
		if err := rows.Scan(&record.Email, &record.Name, &record.TrustLevel, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan known sender: %w", err)
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// Close closes the underlying database
func (d *SQLiteDirectory) Close() error {
	return d.db.Close()
}

func (d *SQLiteDirectory) get(ctx context.Context, key string) (*core.KnownSender, error) {
	record := &core.KnownSender{}
	err := d.db.QueryRowContext(ctx, `
		SELECT email, name, trust_level, created_at
		FROM known_senders WHERE email = ?
	`, key).Scan(&record.Email, &record.Name, &record.TrustLevel, &record.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query known sender: %w", err)
	}
	return record, nil
}
