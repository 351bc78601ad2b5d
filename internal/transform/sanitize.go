package transform

import (
	"strings"

	"dataforge/internal/table"
)

// sanitizeReplacer strips characters used in common injection payloads
// (delimiters, quoting, markup, SQL comments) from raw text values. This is
// character stripping, not escaping: a value made entirely of these
// characters becomes the empty string.
var sanitizeReplacer = strings.NewReplacer(
	`"`, "",
	";", "",
	"'", "",
	"`", "",
	"(", "", ")", "",
	"[", "", "]", "",
	"{", "", "}", "",
	"<", "", ">", "",
	"-", "",
	"#", "",
)

// SanitizeString returns s with all denylisted characters removed. Case and
// whitespace are preserved; lowering/trimming is the normalizer's job.
func SanitizeString(s string) string { return sanitizeReplacer.Replace(s) }

// Sanitize returns a copy of the table with SanitizeString applied to every
// text-typed cell. Non-text columns and null cells pass through unchanged.
func Sanitize(t *table.Table) *table.Table {
	return mapText(t, SanitizeString)
}

// NormalizeString returns the lowercase, whitespace-trimmed form of s. It is
// idempotent.
func NormalizeString(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// CleanStrings returns a copy of the table with NormalizeString applied to
// every text-typed cell, making downstream joins and group-bys on text keys
// tolerant of case and whitespace variants across sources.
func CleanStrings(t *table.Table) *table.Table {
	return mapText(t, NormalizeString)
}

// clean applies the standard security-and-cleaning prefix shared by every
// table transform: sanitize first, then normalize.
func clean(t *table.Table) *table.Table {
	return CleanStrings(Sanitize(t))
}

// mapText applies fn to every non-null cell of every Text column, returning
// a new table.
func mapText(t *table.Table, fn func(string) string) *table.Table {
	out := t.Copy()
	for i, col := range out.Columns {
		if col.Kind != table.Text {
			continue
		}
		for _, row := range out.Rows {
			if s, ok := row[i].(string); ok {
				row[i] = fn(s)
			}
		}
	}
	return out
}
