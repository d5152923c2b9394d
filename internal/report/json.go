package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/gstcopilot/gstcopilot/internal/model"
)

type jsonRow struct {
	InvoiceID  string           `json:"invoice_id"`
	GSTIN      string           `json:"supplier_gstin"`
	AmountA    string           `json:"amount_2b"`
	AmountB    string           `json:"amount_3b"`
	Delta      *decimal.Decimal `json:"delta,omitempty"`
	Difference string           `json:"diff"`
	Status     model.Status     `json:"status"`
}

type jsonReport struct {
	Meta
	Summary model.Summary `json:"summary"`
	Rows    []jsonRow     `json:"rows"`
}

// WriteJSON writes meta, summary and rows as an indented JSON document.
func WriteJSON(w io.Writer, meta Meta, rows []model.ReconciledRow, sum model.Summary) error {
	doc := jsonReport{Meta: meta, Summary: sum, Rows: make([]jsonRow, 0, len(rows))}
	for _, r := range rows {
		jr := jsonRow{
			InvoiceID:  r.InvoiceID,
			GSTIN:      r.GSTIN,
			AmountA:    r.AmountA,
			AmountB:    r.AmountB,
			Difference: r.Difference,
			Status:     r.Status,
		}
		if r.Compared() {
			d := r.Delta
			jr.Delta = &d
		}
		doc.Rows = append(doc.Rows, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}
