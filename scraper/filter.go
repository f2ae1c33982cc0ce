package scraper

import (
	"math"
	"strings"

	"uk-parliament-scraper/models"
)

// filterCurrent keeps the records whose end-date field marks an
// open-ended period: a missing field, nil, the empty string, or one of
// the null-date sentinels the feeds use. Any other value means the
// period has closed. Output order matches input order and the input is
// never mutated.
func filterCurrent(records []models.Record, endDateField string) []models.Record {
	kept := make([]models.Record, 0, len(records))
	for _, rec := range records {
		val, ok := rec[endDateField]
		if !ok || isOpenEnded(val) {
			kept = append(kept, rec)
		}
	}
	return kept
}

// isOpenEnded decides whether an end-date value denotes "still active".
// The first branch recognizes the null-date representations the feeds
// mix (nil, empty string, NaT/NaN markers, floating-point NaN); values
// of any other type fall through to a truthiness check, so exotic
// values cannot panic the filter.
func isOpenEnded(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case string:
		trimmed := strings.TrimSpace(v)
		return trimmed == "" || trimmed == "NaT" || trimmed == "NaN"
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	}
	return isFalsy(val)
}

// isFalsy is the fallback for value types the sentinel check does not
// recognize: zero values read as open-ended, anything else as a real
// end date.
func isFalsy(val any) bool {
	switch v := val.(type) {
	case bool:
		return !v
	case int:
		return v == 0
	case int64:
		return v == 0
	case uint:
		return v == 0
	}
	return false
}
