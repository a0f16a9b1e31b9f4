// Package repository provides typed access to the flat social tables. Each
// entity owns its positional CSV schema; multi-valued fields are stored as
// comma-joined strings with surrounding whitespace trimmed on parse.
package repository

import "strings"

// splitList parses a comma-joined field into its non-empty trimmed parts.
func splitList(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	parts := strings.Split(field, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// joinList is the inverse of splitList.
func joinList(values []string) string {
	return strings.Join(values, ",")
}
