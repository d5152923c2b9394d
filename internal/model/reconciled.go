package model

import "github.com/shopspring/decimal"

// Status classifies a reconciled invoice.
type Status string

const (
	StatusMatch      Status = "Match"
	StatusMismatch   Status = "Mismatch"
	StatusMissingInB Status = "Missing in 3B"
	StatusMissingInA Status = "Missing in 2B"
)

// Sentinels written in place of values that do not exist for a row.
const (
	NotFound      = "Not Found"
	NotApplicable = "N/A"
)

// Flagged reports whether the status needs client follow-up.
func (s Status) Flagged() bool {
	switch s {
	case StatusMismatch, StatusMissingInA, StatusMissingInB:
		return true
	default:
		return false
	}
}

// ReconciledRow is one line of reconciliation output.
type ReconciledRow struct {
	InvoiceID  string
	GSTIN      string
	AmountA    string          // raw 2B amount text, or NotFound
	AmountB    string          // raw 3B amount text, or NotFound
	Delta      decimal.Decimal // A - B; zero when either side is missing
	Difference string          // formatted Delta, or NotApplicable
	Status     Status
}

// Compared reports whether both sides were present.
func (r ReconciledRow) Compared() bool {
	return r.Status == StatusMatch || r.Status == StatusMismatch
}

// Summary aggregates a row sequence by status.
type Summary struct {
	Total      int `json:"total"`
	Matches    int `json:"matches"`
	Mismatches int `json:"mismatches"`
	MissingInA int `json:"missing_in_2b"`
	MissingInB int `json:"missing_in_3b"`

	// Records dropped for an empty identifier. Not part of Total.
	SkippedA int `json:"skipped_2b"`
	SkippedB int `json:"skipped_3b"`
}

// Flagged returns the number of rows that need follow-up.
func (s Summary) Flagged() int {
	return s.Mismatches + s.MissingInA + s.MissingInB
}
