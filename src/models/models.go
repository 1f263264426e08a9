package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are emitted as plain JSON numbers, matching what the dashboard
	// frontend consumes.
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction is a single outbound transaction owned by a user. Dates are
// kept as strings in whatever convention the source document used; they are
// normalized at comparison time.
type Transaction struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Location string          `json:"location"`
	Date     string          `json:"date"`
}

// User is the canonical representation of a user document. Transactions
// preserve the iteration order of the underlying document mapping.
type User struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	City         string        `json:"city"`
	Transactions []Transaction `json:"transactions"`
}

// FlaggedTransaction is a suspicious-transaction report from the external
// fraud signal. It carries no reliable reference to the transaction that
// produced it; UserRef is the optional explicit user reference, authoritative
// when present. The date arrives either as a composite string (RawDate) or as
// split Day/Month/Year components.
type FlaggedTransaction struct {
	ID       string
	Amount   decimal.Decimal
	Location string
	RawDate  string
	Day      string
	Month    string
	Year     string
	UserRef  string
	// ReportedIP is the IP address recorded on the document itself, as
	// opposed to the synthesized display address.
	ReportedIP string
}

// EnrichedFlaggedTransaction is a flagged transaction annotated with its
// best-guess owning user and a synthesized display IP. UserID is null when
// resolution failed; the IP address is always present.
type EnrichedFlaggedTransaction struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Location  string          `json:"location"`
	Date      string          `json:"date"`
	IPAddress string          `json:"ipAddress"`
	UserID    *string         `json:"userId"`
	UserName  *string         `json:"userName,omitempty"`
	UserCity  *string         `json:"userCity,omitempty"`
}

// Resolved reports whether the record was matched to an owning user.
func (e *EnrichedFlaggedTransaction) Resolved() bool {
	return e.UserID != nil
}

// CoerceAmount converts an arbitrary document value to a decimal amount.
// Missing or malformed values coerce to zero; this function never fails.
func CoerceAmount(v any) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(val)
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// CoerceString converts an arbitrary document value to a string. Whole
// numbers render without a fractional part, so a numeric user reference
// like 3 becomes "3".
func CoerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// RiskLevel buckets a user's flagged-transaction count for display.
func RiskLevel(flaggedCount int) string {
	switch {
	case flaggedCount > 3:
		return "high"
	case flaggedCount > 0:
		return "medium"
	default:
		return "low"
	}
}
