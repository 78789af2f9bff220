package model

import "strings"

// Placeholder is the value roster operators use to mark an empty assignment
// cell in the store.
const Placeholder = "-"

// SplitList converts a delimited string into a list of trimmed, non-empty
// entries. Both commas and semicolons are accepted as separators since the
// roster sheets are edited by hand.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// NormalizeSet trims entries and drops empty ones, preserving order.
func NormalizeSet(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// SameText compares two values case-insensitively after trimming whitespace.
func SameText(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// ContainsFold reports whether needle occurs in haystack, ignoring case.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}

// HasAll reports whether every entry of required is present in actual,
// compared case-insensitively.
func HasAll(required, actual []string) bool {
	have := make(map[string]struct{}, len(actual))
	for _, a := range actual {
		have[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}
	for _, r := range required {
		if _, ok := have[strings.ToLower(strings.TrimSpace(r))]; !ok {
			return false
		}
	}
	return true
}

// IsUnassigned reports whether an assignment cell holds no real reference.
func IsUnassigned(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || v == Placeholder
}

// statusIn reports whether status matches one of the candidates,
// case-insensitively.
func statusIn(status string, candidates ...string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
