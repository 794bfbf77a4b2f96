package core

import (
	"regexp"
	"strings"
)

// KeywordMatcher finds configured keywords in text. Matching is a
// case-insensitive substring test with no word-boundary requirement,
// so "ai" matches inside "said". False positives are acceptable here:
// they trigger human review rather than skipping it.
type KeywordMatcher struct {
	keywords []string
}

// NewKeywordMatcher creates a matcher over the given keyword list
func NewKeywordMatcher(keywords []string) *KeywordMatcher {
	return &KeywordMatcher{keywords: keywords}
}

// Keywords returns the configured keyword list
func (m *KeywordMatcher) Keywords() []string {
	return m.keywords
}

// FindMatches returns the configured keywords appearing in text, in
// configuration order
func (m *KeywordMatcher) FindMatches(text string) []string {
	textLower := strings.ToLower(text)
	var found []string
	for _, keyword := range m.keywords {
		if strings.Contains(textLower, strings.ToLower(keyword)) {
			found = append(found, keyword)
		}
	}
	return found
}

// commitmentPatterns match first-person commitment language. The last
// pattern requires a confirm-like word followed anywhere later in the
// text by one of the commitment nouns.
var commitmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bi will\b`),
	regexp.MustCompile(`\bi'll\b`),
	regexp.MustCompile(`\bi commit\b`),
	regexp.MustCompile(`\bi promise\b`),
	regexp.MustCompile(`\bi agree\b`),
	regexp.MustCompile(`\bwe will\b`),
	regexp.MustCompile(`\bwe'll\b`),
	regexp.MustCompile(`\bguarantee\b`),
	regexp.MustCompile(`\bconfirm(ed|ing)?\b.*\b(payment|delivery|date|deadline)\b`),
}

// ContainsCommitments reports whether text contains commitment language
func ContainsCommitments(text string) bool {
	textLower := strings.ToLower(text)
	for _, pattern := range commitmentPatterns {
		if pattern.MatchString(textLower) {
			return true
		}
	}
	return false
}
