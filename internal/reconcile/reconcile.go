// Package reconcile matches GSTR-2B records against GSTR-3B records by
// invoice identifier and classifies every pairing.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/gstcopilot/gstcopilot/internal/amount"
	"github.com/gstcopilot/gstcopilot/internal/model"
)

// DefaultThreshold is the absolute difference above which a matched pair
// is a Mismatch.
var DefaultThreshold = decimal.NewFromInt(100)

// Options names the fields to compare and the mismatch threshold.
type Options struct {
	KeyField     string
	AmountFieldA string
	AmountFieldB string
	GSTINField   string
	Threshold    decimal.Decimal
	Currency     amount.Currency
}

// DefaultOptions returns the column names used by GSTR-2B/3B exports.
func DefaultOptions() Options {
	return Options{
		KeyField:     "Invoice ID",
		AmountFieldA: "2B Amount",
		AmountFieldB: "3B Amount",
		GSTINField:   "Supplier GSTIN",
		Threshold:    DefaultThreshold,
		Currency:     amount.Rupee,
	}
}

// Report is the output of Run.
type Report struct {
	Rows    []model.ReconciledRow
	Summary model.Summary
}

// Run reconciles a against b and summarizes the result, including the
// number of records each side dropped for an empty identifier.
func Run(a, b []model.Record, opts Options) Report {
	rows := Reconcile(a, b, opts)
	sum := Summarize(rows)
	sum.SkippedA = CountUnkeyed(a, opts.KeyField)
	sum.SkippedB = CountUnkeyed(b, opts.KeyField)
	return Report{Rows: rows, Summary: sum}
}

// Reconcile returns one row per keyed record of a, in order, followed by
// one row per keyed record of b whose identifier was not matched.
//
// Identifiers compare by exact string equality. When b holds duplicate
// identifiers only the first is matched; later duplicates of a matched
// identifier produce no row. Records with an empty identifier are dropped.
// Lookup uses an index over b, so cost is O(len(a)+len(b)).
func Reconcile(a, b []model.Record, opts Options) []model.ReconciledRow {
	index := make(map[string]model.Record, len(b))
	for _, rb := range b {
		id := rb.Value(opts.KeyField)
		if id == "" {
			continue
		}
		if _, dup := index[id]; !dup {
			index[id] = rb
		}
	}

	seen := make(map[string]bool)
	rows := make([]model.ReconciledRow, 0, len(a)+len(b))

	for _, ra := range a {
		id := ra.Value(opts.KeyField)
		if id == "" {
			continue
		}

		rb, ok := index[id]
		if !ok {
			rows = append(rows, model.ReconciledRow{
				InvoiceID:  id,
				GSTIN:      ra.Value(opts.GSTINField),
				AmountA:    ra.Value(opts.AmountFieldA),
				AmountB:    model.NotFound,
				Difference: model.NotApplicable,
				Status:     model.StatusMissingInB,
			})
			continue
		}

		rows = append(rows, compare(id, ra, rb, opts))
		seen[id] = true
	}

	for _, rb := range b {
		id := rb.Value(opts.KeyField)
		if id == "" || seen[id] {
			continue
		}
		rows = append(rows, model.ReconciledRow{
			InvoiceID:  id,
			GSTIN:      rb.Value(opts.GSTINField),
			AmountA:    model.NotFound,
			AmountB:    rb.Value(opts.AmountFieldB),
			Difference: model.NotApplicable,
			Status:     model.StatusMissingInA,
		})
	}

	return rows
}

func compare(id string, ra, rb model.Record, opts Options) model.ReconciledRow {
	rawA := ra.Value(opts.AmountFieldA)
	rawB := rb.Value(opts.AmountFieldB)
	delta := opts.Currency.Normalize(rawA).Sub(opts.Currency.Normalize(rawB))

	status := model.StatusMatch
	if delta.Abs().GreaterThan(opts.Threshold) {
		status = model.StatusMismatch
	}

	gstin := ra.Value(opts.GSTINField)
	if gstin == "" {
		gstin = rb.Value(opts.GSTINField)
	}

	return model.ReconciledRow{
		InvoiceID:  id,
		GSTIN:      gstin,
		AmountA:    rawA,
		AmountB:    rawB,
		Delta:      delta,
		Difference: opts.Currency.Format(delta),
		Status:     status,
	}
}

// Summarize counts rows by status. Total always equals len(rows).
func Summarize(rows []model.ReconciledRow) model.Summary {
	s := model.Summary{Total: len(rows)}
	for _, r := range rows {
		switch r.Status {
		case model.StatusMatch:
			s.Matches++
		case model.StatusMismatch:
			s.Mismatches++
		case model.StatusMissingInA:
			s.MissingInA++
		case model.StatusMissingInB:
			s.MissingInB++
		}
	}
	return s
}

// CountUnkeyed returns the number of records with an empty key field.
func CountUnkeyed(records []model.Record, keyField string) int {
	n := 0
	for _, r := range records {
		if r.Value(keyField) == "" {
			n++
		}
	}
	return n
}

// Flagged returns the rows that need client follow-up, in order.
func Flagged(rows []model.ReconciledRow) []model.ReconciledRow {
	var out []model.ReconciledRow
	for _, r := range rows {
		if r.Status.Flagged() {
			out = append(out, r)
		}
	}
	return out
}
