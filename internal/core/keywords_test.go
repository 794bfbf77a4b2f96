package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindMatchesIsSubstringBased(t *testing.T) {
	matcher := NewKeywordMatcher([]string{"ai", "urgent"})

	found := matcher.FindMatches("He said it was URGENT")
	assert.Equal(t, []string{"ai", "urgent"}, found)
}

func TestFindMatchesPreservesConfigurationOrder(t *testing.T) {
	matcher := NewKeywordMatcher([]string{"payment", "contract", "urgent"})

	found := matcher.FindMatches("urgent: the contract needs a payment")
	assert.Equal(t, []string{"payment", "contract", "urgent"}, found)
}

func TestFindMatchesNoMatches(t *testing.T) {
	matcher := NewKeywordMatcher([]string{"invoice"})

	assert.Empty(t, matcher.FindMatches("see you tomorrow"))
}

func TestContainsCommitments(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"first person will", "I will deliver the report on Friday.", true},
		{"contraction", "I'll get back to you tomorrow.", true},
		{"plural will", "We will review the proposal.", true},
		{"promise", "I promise this is the last change.", true},
		{"guarantee", "We guarantee delivery by Monday.", true},
		{"confirm payment", "I can confirm the payment went through.", true},
		{"confirmed deadline", "It was confirmed that the deadline moved.", true},
		{"guaranteed is not guarantee", "The rate is guaranteed for a year.", false},
		{"confirm without object", "Please confirm you received this.", false},
		{"plain text", "Thanks for the update.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsCommitments(tt.text))
		})
	}
}
