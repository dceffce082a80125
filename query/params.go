package query

import (
	"strconv"
	"strings"
)

// Params holds the raw query-string values of a list request. Every field is
// a string so binding never fails; normalization happens in the builders.
type Params struct {
	Category  string `form:"category"`
	Featured  string `form:"featured"`
	Published string `form:"published"`
	Rating    string `form:"rating"`
	Search    string `form:"search"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
	Page      string `form:"page"`
	Limit     string `form:"limit"`
	Range     string `form:"range"`
	View      string `form:"view"`
}

// ParsePage returns the 1-indexed page, or DefaultPage for anything that is
// not a positive integer.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return DefaultPage
	}
	return n
}

// ParsePageSize returns the page size, or DefaultPageSize for anything that
// is not a positive integer. A positive max caps the result.
func ParsePageSize(raw string, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		n = DefaultPageSize
	}
	if max > 0 && n > max {
		n = max
	}
	return n
}

// ParseDirection defaults to Desc.
func ParseDirection(raw string) Direction {
	if strings.EqualFold(strings.TrimSpace(raw), string(Asc)) {
		return Asc
	}
	return Desc
}

// ParseBool parses a true/false filter. ok is false for "", "all" and any
// unrecognized value, which callers treat as no filter.
func ParseBool(raw string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// ParseRating accepts integers in [1,5]; anything else is no filter.
func ParseRating(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > 5 {
		return 0, false
	}
	return n, true
}

func isAll(raw string) bool {
	v := strings.TrimSpace(raw)
	return v == "" || strings.EqualFold(v, "all")
}
