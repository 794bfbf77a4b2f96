package senders

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mikey/llm-mail-agent/internal/core"
	"go.uber.org/zap"
)

// MySQLDirectory is a MySQL implementation of the
// core.SenderDirectory interface
type MySQLDirectory struct {
	db      *sql.DB
	trusted trustedDomains
	logger  *zap.Logger
}

// NewMySQLDirectory creates a new MySQL sender directory
func NewMySQLDirectory(dsn string, trustedDomainList []string, logger *zap.Logger) (*MySQLDirectory, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS known_senders (
			email VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255),
			trust_level VARCHAR(50) DEFAULT 'normal',
			created_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLDirectory{
		db:      db,
		trusted: newTrustedDomains(trustedDomainList),
		logger:  logger,
	}, nil
}

// IsKnown reports whether an address is recorded or carries a trusted domain
func (d *MySQLDirectory) IsKnown(ctx context.Context, email string) (bool, error) {
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
func (d *MySQLDirectory) Add(ctx context.Context, email, name string) (*core.KnownSender, error) {
	key := normalizeEmail(email)

	if existing, err := d.get(ctx, key); err == nil {
		return existing, nil
	} else if err != ErrNotFound {
		return nil, err
	}

	_, err := d.db.ExecContext(ctx, `
		INSERT IGNORE INTO known_senders (email, name, trust_level, created_at)
		VALUES (?, ?, 'normal', ?)
	`, key, name, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to insert known sender: %w", err)
	}

	return d.get(ctx, key)
}

// List returns all recorded senders ordered by name
func (d *MySQLDirectory) List(ctx context.Context) ([]*core.KnownSender, error) {
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
func (d *MySQLDirectory) Close() error {
	return d.db.Close()
}

func (d *MySQLDirectory) get(ctx context.Context, key string) (*core.KnownSender, error) {
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
