package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/gstcopilot/gstcopilot/internal/amount"
	"github.com/gstcopilot/gstcopilot/internal/model"
)

// Header is the CSV header of a results file.
const Header = "Invoice ID,Supplier GSTIN,2B Amount,3B Amount,Diff,Status"

const (
	numFields  = 6
	colInvoice = 0
	colGSTIN   = 1
	colAmountA = 2
	colAmountB = 3
	colDiff    = 4
	colStatus  = 5
)

// WriteCSV writes rows to w (including header), in order. Fields holding a
// comma, such as "₹1,500", are quoted.
func WriteCSV(w io.Writer, rows []model.ReconciledRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(MarshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a results file written by WriteCSV. Differences are parsed
// back to Delta with cur.
func ReadCSV(r io.Reader, cur amount.Currency) ([]model.ReconciledRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading results CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	if !slices.Equal(records[0], strings.Split(Header, ",")) {
		return nil, fmt.Errorf("results CSV must start with header %q, got %q", Header, strings.Join(records[0], ","))
	}

	var rows []model.ReconciledRow
	for i, rec := range records[1:] {
		row, err := UnmarshalRow(rec, cur)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// MarshalRow converts a row to CSV fields.
func MarshalRow(row model.ReconciledRow) []string {
	rec := make([]string, numFields)
	rec[colInvoice] = row.InvoiceID
	rec[colGSTIN] = row.GSTIN
	rec[colAmountA] = row.AmountA
	rec[colAmountB] = row.AmountB
	rec[colDiff] = row.Difference
	rec[colStatus] = string(row.Status)
	return rec
}

// UnmarshalRow converts CSV fields to a row.
func UnmarshalRow(rec []string, cur amount.Currency) (model.ReconciledRow, error) {
	if len(rec) != numFields {
		return model.ReconciledRow{}, fmt.Errorf("expected %d fields, got %d", numFields, len(rec))
	}

	status, err := parseStatus(rec[colStatus])
	if err != nil {
		return model.ReconciledRow{}, err
	}

	row := model.ReconciledRow{
		InvoiceID:  rec[colInvoice],
		GSTIN:      rec[colGSTIN],
		AmountA:    rec[colAmountA],
		AmountB:    rec[colAmountB],
		Difference: rec[colDiff],
		Status:     status,
	}
	if row.Compared() {
		row.Delta = cur.Normalize(row.Difference)
	}
	return row, nil
}

func parseStatus(s string) (model.Status, error) {
	switch st := model.Status(s); st {
	case model.StatusMatch, model.StatusMismatch, model.StatusMissingInA, model.StatusMissingInB:
		return st, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}
