// Package drafts builds client communication about flagged invoices.
package drafts

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/gstcopilot/gstcopilot/internal/model"
	"github.com/gstcopilot/gstcopilot/internal/reconcile"
)

// Placeholders used when a parameter is left empty.
const (
	PlaceholderClient = "[Client Name]"
	PlaceholderMonth  = "[Month]"
	PlaceholderFirm   = "[Your Firm Name]"
)

// Params personalizes a draft.
type Params struct {
	ClientName string
	Month      string
	FirmName   string
}

func (p Params) withPlaceholders() Params {
	if p.ClientName == "" {
		p.ClientName = PlaceholderClient
	}
	if p.Month == "" {
		p.Month = PlaceholderMonth
	}
	if p.FirmName == "" {
		p.FirmName = PlaceholderFirm
	}
	return p
}

var emailTemplate = template.Must(template.New("email").Parse(
	`Subject: GST Invoice Mismatch – Action Needed

Hi {{.ClientName}},

We found {{len .Rows}} mismatch(es) between your GSTR-2B and 3B filings for {{.Month}}. Kindly review and re-upload the corrected invoices:

{{range .Rows}}- {{.InvoiceID}}: {{.AmountA}} vs {{.AmountB}} → {{.Difference}} mismatch
{{end}}
Please update the records at the earliest.

Regards,
{{.FirmName}}`))

var messageTemplate = template.Must(template.New("message").Parse(
	`Hi {{.ClientName}}! Found {{.Count}} mismatch(es) in your GST returns ({{.First.InvoiceID}} = {{.First.Difference}} diff{{if gt .Count 1}} and {{.More}} more{{end}}). Please re-upload and let me know once done.`))

// Email returns an email draft listing every flagged row. It returns "" when
// nothing is flagged.
func Email(rows []model.ReconciledRow, p Params) (string, error) {
	flagged := reconcile.Flagged(rows)
	if len(flagged) == 0 {
		return "", nil
	}

	data := struct {
		Params
		Rows []model.ReconciledRow
	}{p.withPlaceholders(), flagged}

	var b strings.Builder
	if err := emailTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering email draft: %w", err)
	}
	return b.String(), nil
}

// Message returns a short chat message about the first flagged row. It
// returns "" when nothing is flagged.
func Message(rows []model.ReconciledRow, p Params) (string, error) {
	flagged := reconcile.Flagged(rows)
	if len(flagged) == 0 {
		return "", nil
	}

	data := struct {
		Params
		Count int
		More  int
		First model.ReconciledRow
	}{p.withPlaceholders(), len(flagged), len(flagged) - 1, flagged[0]}

	var b strings.Builder
	if err := messageTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering message draft: %w", err)
	}
	return b.String(), nil
}
