// Package fraud holds the record-reconciliation and IP-synthesis logic that
// enriches flagged transactions for the monitoring dashboard. Everything in
// this package is pure and total: no I/O, no errors, deterministic output.
package fraud

import (
	"strings"

	"github.com/username/fraudsight/src/models"
)

// SentinelDate is the epoch fallback used when no valid date is available.
const SentinelDate = "1970-01-01"

// NormalizeDate converts a date string to the canonical YYYY-MM-DD form.
// Empty input yields the sentinel. A dash-separated value whose first
// segment is a 4-digit year is already canonical and passes through; a
// three-segment value that is not year-first is reinterpreted as
// DD-MM-YYYY and reassembled with zero-padded month and day. Anything else
// is returned unchanged. Both user transaction dates and flagged dates must
// go through this one function before any equality comparison.
func NormalizeDate(input string) string {
	if input == "" {
		return SentinelDate
	}
	if strings.Contains(input, "-") {
		parts := strings.Split(input, "-")
		if len(parts) == 3 {
			if len(parts[0]) == 4 {
				return input
			}
			dd, mm, yyyy := parts[0], parts[1], parts[2]
			return yyyy + "-" + pad2(mm) + "-" + pad2(dd)
		}
	}
	return input
}

// ComposeFlaggedDate produces the canonical date for a flagged transaction.
// A composite date field takes precedence and is normalized; otherwise split
// day/month/year components are assembled directly, since they are already
// unambiguous and must not be run through day-first reinterpretation.
func ComposeFlaggedDate(f models.FlaggedTransaction) string {
	if f.RawDate != "" {
		return NormalizeDate(f.RawDate)
	}
	if f.Day != "" && f.Month != "" && f.Year != "" {
		return f.Year + "-" + pad2(f.Month) + "-" + pad2(f.Day)
	}
	return SentinelDate
}

// pad2 left-pads with zeros to two characters, leaving longer values alone.
func pad2(s string) string {
	if len(s) < 2 {
		return strings.Repeat("0", 2-len(s)) + s
	}
	return s
}
