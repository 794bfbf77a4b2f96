package senders

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a sender record does not exist
var ErrNotFound = errors.New("sender not found")

// normalizeEmail lower-cases and trims an address. The directory key
// is case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// trustedDomains holds domains whose senders are implicitly known
type trustedDomains struct {
	domains []string
}

func newTrustedDomains(domains []string) trustedDomains {
	normalized := make([]string, 0, len(domains))
	for _, domain := range domains {
		if d := strings.ToLower(strings.TrimSpace(domain)); d != "" {
			normalized = append(normalized, d)
		}
	}
	return trustedDomains{domains: normalized}
}

// contains reports whether the address's domain is trusted
func (t trustedDomains) contains(email string) bool {
	if len(t.domains) == 0 {
		return false
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	domain := strings.ToLower(parts[1])
	for _, trusted := range t.domains {
		if trusted == domain {
			return true
		}
	}
	return false
}
