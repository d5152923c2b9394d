package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/gstcopilot/gstcopilot/internal/model"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"statusClass": statusClass,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>GSTR-2B vs 3B Reconciliation</title>
<style>
body{font-family:sans-serif;margin:2rem;color:#1e293b}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #cbd5e1;padding:.4rem .8rem;text-align:left}
.summary{display:flex;gap:1rem;margin-bottom:1.5rem}
.card{padding:.75rem 1rem;border-radius:.5rem;background:#f1f5f9}
tr.match{background:#f0fdf4}
tr.mismatch{background:#fef2f2}
tr.missing{background:#fefce8}
</style>
</head>
<body>
<h1>Analysis Results</h1>
<p class="meta">Run {{.Meta.RunID}} &middot; {{.Meta.GeneratedAt.Format "2006-01-02 15:04 MST"}} &middot; 2B: {{.Meta.SourceA}} &middot; 3B: {{.Meta.SourceB}}</p>
<div class="summary">
{{- range .Cards}}
<div class="card" data-label="{{.label}}"><span class="label">{{.label}}</span> <strong class="value">{{.value}}</strong></div>
{{- end}}
</div>
<table>
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr class="{{statusClass .Status}}"><td>{{.InvoiceID}}</td><td>{{.GSTIN}}</td><td>{{.AmountA}}</td><td>{{.AmountB}}</td><td>{{.Difference}}</td><td class="status">{{.Status}}</td></tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

// WriteHTML renders a standalone HTML page with summary cards and the
// results table.
func WriteHTML(w io.Writer, meta Meta, rows []model.ReconciledRow, sum model.Summary) error {
	cards := make([]map[string]any, 0, 7)
	for _, l := range summaryLines(sum) {
		cards = append(cards, map[string]any{"label": l.label, "value": l.value})
	}

	data := struct {
		Meta   Meta
		Cards  []map[string]any
		Header []string
		Rows   []model.ReconciledRow
	}{
		Meta:   meta,
		Cards:  cards,
		Header: strings.Split(Header, ","),
		Rows:   rows,
	}
	if err := htmlTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering HTML report: %w", err)
	}
	return nil
}

func statusClass(s model.Status) string {
	switch s {
	case model.StatusMatch:
		return "match"
	case model.StatusMismatch:
		return "mismatch"
	default:
		return "missing"
	}
}
