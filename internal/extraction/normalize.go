package extraction

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const maxNoteLength = 100

// rawDraft matches whatever the provider chose to return. Amount and tax are
// kept raw because providers sometimes return them as quoted strings.
type rawDraft struct {
	Date     string          `json:"date"`
	Amount   json.RawMessage `json:"amount"`
	Tax      json.RawMessage `json:"tax"`
	Category string          `json:"category"`
	Note     string          `json:"note"`
}

// parseDraftJSON parses the JSON response from a provider and applies the
// per-field fallback policy.
func parseDraftJSON(text string) (*DraftFields, error) {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	// Find the JSON object boundaries - look for first { and last }
	startIdx := strings.Index(text, "{")
	endIdx := strings.LastIndex(text, "}")
	if startIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("%w: no JSON object found", ErrBadResponse)
	}
	text = text[startIdx : endIdx+1]

	var raw rawDraft
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	return normalizeDraft(raw), nil
}

// normalizeDraft fills in defaults for anything the provider left out:
// today's date, zero amounts, "Uncategorized", and a length-capped note.
func normalizeDraft(raw rawDraft) *DraftFields {
	draft := &DraftFields{
		Date:     strings.TrimSpace(raw.Date),
		Amount:   coerceNumber(raw.Amount),
		Tax:      coerceNumber(raw.Tax),
		Category: strings.TrimSpace(raw.Category),
		Note:     truncateRunes(raw.Note, maxNoteLength),
	}

	if draft.Date == "" {
		draft.Date = time.Now().Format("2006-01-02")
	}
	if draft.Category == "" {
		draft.Category = "Uncategorized"
	}

	return draft
}

// coerceNumber converts a raw JSON value to a float64. Accepts numbers and
// numeric strings; anything else (null, absent, garbage) coerces to 0.
func coerceNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return parsed
		}
	}

	return 0
}

// truncateRunes takes the first n characters of s, with no word-boundary
// awareness. Operates on runes so multibyte notes are never split.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
