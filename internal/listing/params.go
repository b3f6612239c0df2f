// Package listing turns loosely-typed query parameters into filter, sort and
// pagination specifications for the portal's public listing pages, and runs
// the resulting reads against a persistence layer.
package listing

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// FirstParam collapses a query value that may be absent, a single string or
// a repeated key into one scalar string. No trimming happens here.
func FirstParam(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Param is FirstParam over a url.Values lookup.
func Param(q url.Values, key string) string {
	if q == nil {
		return ""
	}
	return FirstParam(q[key])
}

// ParsePage reads a 1-based page number. It accepts the same leniency as a
// browser parseInt (leading whitespace, optional sign, trailing garbage) and
// falls back to 1 whenever the result is missing or below 1. Values too large
// for an int become math.MaxInt and are clamped to the last page later.
func ParsePage(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}

	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) && s[0] != '-' {
		return math.MaxInt
	}
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParseBound reads an optional numeric range bound. Anything that is not a
// finite number means the bound was not supplied.
func ParseBound(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParseFlag reads a boolean toggle such as searchDescription=true.
func ParseFlag(s string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && v
}
