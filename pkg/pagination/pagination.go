package pagination

import (
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MinLimit is the smallest page any list endpoint returns.
	MinLimit = 1
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 100
)

// NormalizeLimit clamps a numeric limit into [MinLimit, MaxLimit].
func NormalizeLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ParseLimit never fails: blank or non-numeric input yields DefaultLimit,
// numeric input is clamped.
func ParseLimit(raw string) int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultLimit
	}
	limit, err := strconv.Atoi(trimmed)
	if err != nil {
		return DefaultLimit
	}
	return NormalizeLimit(limit)
}
