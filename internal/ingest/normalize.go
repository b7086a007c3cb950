package ingest

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/angelmondragon/sportomic-backend/pkg/enums"
	"github.com/angelmondragon/sportomic-backend/pkg/types"
	"github.com/jinzhu/now"
)

// Record is a loosely typed row. After Normalize, id-like fields hold
// types.ObjectID when they had the canonical shape and date fields hold
// time.Time when they parsed.
type Record map[string]any

const idField = "_id"

var dateFields = map[enums.Dataset][]string{
	enums.DatasetMembers:      {"join_date"},
	enums.DatasetBookings:     {"booking_date"},
	enums.DatasetTransactions: {"transaction_date"},
}

var boolFields = map[enums.Dataset][]string{
	enums.DatasetMembers: {"is_trial_user", "converted_from_trial"},
}

// isoLayouts are tried first with the standard parser. Layouts without a zone
// are read as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// dateParser handles the loose date-only forms. It must never see a layout
// with a time of day: now.Parse fills clock fields it does not recognise
// from the wall clock.
var dateParser = &now.Config{
	TimeLocation: time.UTC,
	TimeFormats: []string{
		"2006/01/02",
		"2006-01",
		"Jan 2, 2006",
		"January 2, 2006",
	},
}

func parseDateString(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	t, err := dateParser.Parse(s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// Normalize coerces raw into its canonical shape for dataset. It never
// fails: values that cannot be coerced are kept as they came.
func Normalize(dataset enums.Dataset, raw map[string]any) Record {
	out := make(Record, len(raw))
	for key, value := range raw {
		if isIDField(key) {
			value = canonicalID(value)
		}
		out[key] = value
	}

	for _, field := range dateFields[dataset] {
		if value, ok := out[field]; ok {
			out[field] = canonicalDate(value)
		}
	}

	for _, field := range boolFields[dataset] {
		if value, ok := out[field].(string); ok {
			switch value {
			case "true":
				out[field] = true
			case "false":
				out[field] = false
			}
		}
	}

	return out
}

func isIDField(key string) bool {
	return key == idField || key == "id" || strings.HasSuffix(key, "_id")
}

func canonicalID(value any) any {
	s, ok := value.(string)
	if !ok || !types.IsObjectIDHex(s) {
		return value
	}
	id, err := types.ParseObjectID(s)
	if err != nil {
		return value
	}
	return id
}

func canonicalDate(value any) any {
	if t, ok := parseDate(value); ok {
		return t
	}
	return value
}

// parseDate accepts timestamps, date strings and epoch milliseconds. Zero
// and empty values are left alone.
func parseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v.UTC(), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return time.Time{}, false
		}
		return parseDateString(trimmed)
	case float64:
		return fromEpochMillis(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return fromEpochMillis(f)
	case int64:
		return fromEpochMillis(float64(v))
	case int:
		return fromEpochMillis(float64(v))
	}
	return time.Time{}, false
}

func fromEpochMillis(ms float64) (time.Time, bool) {
	if ms == 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}
