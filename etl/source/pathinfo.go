package source

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Bounds on plausible pulse years. The dataset starts in 2018; the upper
// bound leaves room for future quarters without accepting arbitrary numbers.
const (
	MinYear = 2018
	MaxYear = 2030
)

// YearQuarter recovers the temporal coordinates encoded in a document path
// of the form .../<year>/<quarter>.json. Segments are scanned left to right;
// the first in-range 4-digit segment is the year and the segment immediately
// after it, extension stripped, must be a quarter in 1..4. Both '/' and '\'
// separators are tolerated. ok is false when no such adjacent pair exists,
// which callers treat as "skip this document".
func YearQuarter(path string) (year, quarter int, ok bool) {
	parts := strings.Split(strings.ReplaceAll(path, `\`, "/"), "/")

	for i, part := range parts {
		if len(part) != 4 || !allDigits(part) {
			continue
		}
		y, err := strconv.Atoi(part)
		if err != nil || y < MinYear || y > MaxYear {
			continue
		}
		if i+1 >= len(parts) {
			continue
		}
		next := strings.TrimSuffix(parts[i+1], filepath.Ext(parts[i+1]))
		if !allDigits(next) {
			continue
		}
		q, err := strconv.Atoi(next)
		if err != nil || q < 1 || q > 4 {
			continue
		}
		return y, q, true
	}

	return 0, 0, false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
