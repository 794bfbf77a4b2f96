package core

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ExtractJSON returns the first balanced {...} region of text, or ""
// when none exists. LLM responses often wrap the JSON object in prose.
func ExtractJSON(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// ParseClassification normalizes a loosely-typed mapping into a
// Classification. Unrecognized or missing categories default to
// FYI_ONLY, confidence is clamped into [0,1]. Never fails.
func ParseClassification(raw map[string]any) Classification {
	category := Category(strings.ToUpper(coerceString(raw["category"])))
	valid := false
	for _, c := range ValidCategories {
		if category == c {
			valid = true
			break
		}
	}
	if !valid {
		category = CategoryFYIOnly
	}

	confidence := coerceFloat(raw["confidence"], 0.5)
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	return Classification{
		Category:   category,
		Confidence: confidence,
		Reasoning:  coerceString(raw["reasoning"]),
	}
}

// ParseClassificationResponse extracts and parses the JSON object in a
// raw LLM response. A response with no parseable object degrades to
// the default classification.
func ParseClassificationResponse(response string) Classification {
	raw := decodeObject(response)
	if raw == nil {
		return Classification{
			Category:   CategoryFYIOnly,
			Confidence: 0.5,
			Reasoning:  "Failed to parse response",
		}
	}
	return ParseClassification(raw)
}

// ParseMeetingExtraction normalizes a loosely-typed mapping into a
// MeetingExtraction. String fields coerce from lists and vice versa,
// duration defaults to 60 minutes and must be positive.
func ParseMeetingExtraction(raw map[string]any) MeetingExtraction {
	duration := int(coerceFloat(raw["duration_minutes"], 60))
	if duration <= 0 {
		duration = 60
	}

	return MeetingExtraction{
		HasMeetingRequest: coerceBool(raw["has_meeting_request"]),
		Title:             coerceString(raw["title"]),
		ProposedTimes:     coerceStringList(raw["proposed_times"]),
		DurationMinutes:   duration,
		Attendees:         coerceStringList(raw["attendees"]),
		Location:          coerceString(raw["location"]),
		Notes:             coerceString(raw["notes"]),
	}
}

// ParseMeetingExtractionResponse extracts and parses the JSON object
// in a raw LLM response, degrading to the empty extraction
func ParseMeetingExtractionResponse(response string) MeetingExtraction {
	raw := decodeObject(response)
	if raw == nil {
		return MeetingExtraction{DurationMinutes: 60}
	}
	return ParseMeetingExtraction(raw)
}

// FallbackClassification is the deterministic heuristic used when the
// LLM call fails. Rules are checked in fixed priority order; the first
// match wins.
func FallbackClassification(email *Email) Classification {
	combined := strings.ToLower(email.Subject + " " + email.BestBody())

	meetingWords := []string{"meeting", "call", "schedule", "calendar", "invite"}
	for _, word := range meetingWords {
		if strings.Contains(combined, word) {
			return Classification{
				Category:   CategoryMeetingRequest,
				Confidence: 0.6,
				Reasoning:  "Contains meeting-related keywords",
			}
		}
	}

	replyMarkers := []string{"?", "please", "could you", "can you", "would you"}
	for _, marker := range replyMarkers {
		if strings.Contains(combined, marker) {
			return Classification{
				Category:   CategoryNeedsReply,
				Confidence: 0.6,
				Reasoning:  "Contains question or request patterns",
			}
		}
	}

	taskWords := []string{"todo", "task", "action", "deadline", "due"}
	for _, word := range taskWords {
		if strings.Contains(combined, word) {
			return Classification{
				Category:   CategoryTaskAction,
				Confidence: 0.6,
				Reasoning:  "Contains task-related keywords",
			}
		}
	}

	return Classification{
		Category:   CategoryFYIOnly,
		Confidence: 0.5,
		Reasoning:  "Fallback classification",
	}
}

// FallbackExtraction is the deterministic heuristic used when meeting
// extraction via the LLM fails
func FallbackExtraction(email *Email) MeetingExtraction {
	combined := strings.ToLower(email.Subject + " " + email.BestBody())

	hasMeeting := false
	for _, word := range []string{
		"meeting", "call", "schedule", "calendar", "invite",
		"available", "discuss", "catch up", "sync",
	} {
		if strings.Contains(combined, word) {
			hasMeeting = true
			break
		}
	}

	duration := 60
	switch {
	case strings.Contains(combined, "30 min"), strings.Contains(combined, "half hour"):
		duration = 30
	case strings.Contains(combined, "2 hour"):
		duration = 120
	case strings.Contains(combined, "15 min"):
		duration = 15
	}

	var attendees []string
	if email.FromAddress != "" {
		attendees = []string{email.FromAddress}
	}

	return MeetingExtraction{
		HasMeetingRequest: hasMeeting,
		Title:             email.Subject,
		ProposedTimes:     []string{},
		DurationMinutes:   duration,
		Attendees:         attendees,
	}
}

func decodeObject(response string) map[string]any {
	jsonStr := ExtractJSON(response)
	if jsonStr == "" {
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil
	}
	return raw
}

func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []any:
		parts := coerceStringList(v)
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

func coerceFloat(v any, fallback float64) float64 {
	switch f := v.(type) {
	case float64:
		return f
	case int:
		return float64(f)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(f), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func coerceBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "1":
			return true
		}
	}
	return false
}

func coerceStringList(v any) []string {
	switch list := v.(type) {
	case []any:
		var out []string
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return list
	case string:
		if list == "" {
			return nil
		}
		var out []string
		for _, part := range strings.Split(list, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	default:
		return nil
	}
}
