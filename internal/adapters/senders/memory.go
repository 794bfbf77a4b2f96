package senders

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mikey/llm-mail-agent/internal/core"
	"go.uber.org/zap"
)

// MemoryDirectory is an in-memory implementation of the
// core.SenderDirectory interface
type MemoryDirectory struct {
	records map[string]*core.KnownSender
	trusted trustedDomains
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewMemoryDirectory creates a new in-memory sender directory
func NewMemoryDirectory(trustedDomainList []string, logger *zap.Logger) *MemoryDirectory {
	return &MemoryDirectory{
		records: make(map[string]*core.KnownSender),
		trusted: newTrustedDomains(trustedDomainList),
		logger:  logger,
	}
}

// IsKnown reports whether an address is recorded or carries a trusted domain
func (d *MemoryDirectory) IsKnown(ctx context.Context, email string) (bool, error) {
	key := normalizeEmail(email)
	if d.trusted.contains(key) {
		return true, nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.records[key]
	return ok, nil
}

// Add records a sender. Adding an existing address returns the stored
// record unchanged.
func (d *MemoryDirectory) Add(ctx context.Context, email, name string) (*core.KnownSender, error) {
	key := normalizeEmail(email)

	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.records[key]; ok {
		return existing, nil
	}

	record := &core.KnownSender{
		Email:      key,
		Name:       name,
		TrustLevel: "normal",
		CreatedAt:  time.Now(),
	}
	d.records[key] = record

	d.logger.Debug("Recorded known sender", zap.String("email", key))
	return record, nil
}

// List returns all recorded senders ordered by name
func (d *MemoryDirectory) List(ctx context.Context) ([]*core.KnownSender, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*core.KnownSender, 0, len(d.records))
	for _, record := range d.records {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
