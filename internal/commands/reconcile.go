package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gstcopilot/gstcopilot/internal/config"
	"github.com/gstcopilot/gstcopilot/internal/model"
	"github.com/gstcopilot/gstcopilot/internal/reconcile"
	"github.com/gstcopilot/gstcopilot/internal/report"
	"github.com/gstcopilot/gstcopilot/internal/table"
)

type reconcileParams struct {
	file2B    string
	file3B    string
	sample    bool
	threshold string
	out       string
	format    string
	showRows  bool
}

func newReconcileCommand(g *globalFlags) *cobra.Command {
	var p reconcileParams

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare a GSTR-2B export with a GSTR-3B export by invoice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(g.configPath)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), g.verbose)
			return runReconcile(cmd.OutOrStdout(), logger, cfg, p)
		},
	}

	cmd.Flags().StringVar(&p.file2B, "2b", "", "GSTR-2B export (.csv or .xlsx)")
	cmd.Flags().StringVar(&p.file3B, "3b", "", "GSTR-3B export (.csv or .xlsx)")
	cmd.Flags().BoolVar(&p.sample, "sample", false, "use built-in sample data instead of files")
	cmd.Flags().StringVar(&p.threshold, "threshold", "", "mismatch threshold (overrides config)")
	cmd.Flags().StringVarP(&p.out, "out", "o", "", "write results to this file")
	cmd.Flags().StringVar(&p.format, "format", "", "output format: csv, xlsx, json or html (default from --out extension)")
	cmd.Flags().BoolVar(&p.showRows, "rows", true, "print the results table")

	return cmd
}

func runReconcile(out io.Writer, logger *log.Logger, cfg *config.Config, p reconcileParams) error {
	opts := cfg.Options()
	if p.threshold != "" {
		t, err := decimal.NewFromString(p.threshold)
		if err != nil {
			return fmt.Errorf("parsing --threshold %q: %w", p.threshold, err)
		}
		if t.IsNegative() {
			return fmt.Errorf("--threshold must not be negative, got %s", t)
		}
		opts.Threshold = t
	}

	if p.format != "" && p.out == "" {
		return fmt.Errorf("--format %s requires --out", p.format)
	}

	format := ""
	if p.out != "" {
		var err error
		if format, err = outputFormat(p.out, p.format); err != nil {
			return err
		}
	}

	a, b, meta, err := loadInputs(logger, p)
	if err != nil {
		return err
	}

	warnMissingColumns(logger, "2B", a, opts.KeyField, opts.GSTINField, opts.AmountFieldA)
	warnMissingColumns(logger, "3B", b, opts.KeyField, opts.GSTINField, opts.AmountFieldB)

	rep := reconcile.Run(a, b, opts)
	logger.Debugf("[Reconcile] %d rows, threshold %s", len(rep.Rows), opts.Threshold)
	if rep.Summary.SkippedA > 0 {
		logger.Warnf("[Reconcile] skipped %d 2B rows with empty %q", rep.Summary.SkippedA, opts.KeyField)
	}
	if rep.Summary.SkippedB > 0 {
		logger.Warnf("[Reconcile] skipped %d 3B rows with empty %q", rep.Summary.SkippedB, opts.KeyField)
	}

	printSummary(out, rep.Summary)
	if p.showRows && len(rep.Rows) > 0 {
		fmt.Fprintln(out)
		printRows(out, rep.Rows)
	}

	if p.out == "" {
		return nil
	}
	if err := writeReport(p.out, format, meta, rep); err != nil {
		return err
	}
	logger.Infof("[Reconcile] wrote %s (%s)", p.out, format)
	fmt.Fprintf(out, "\nResults written to %s\n", p.out)
	return nil
}

func loadInputs(logger *log.Logger, p reconcileParams) (a, b []model.Record, meta report.Meta, err error) {
	if p.sample {
		logger.Debugf("[Reconcile] using built-in sample data")
		return table.Parse(sample2B), table.Parse(sample3B), report.NewMeta("sample-2b", "sample-3b"), nil
	}
	if p.file2B == "" || p.file3B == "" {
		return nil, nil, report.Meta{}, fmt.Errorf("both --2b and --3b are required (or use --sample)")
	}

	a, err = table.LoadFile(p.file2B)
	if err != nil {
		return nil, nil, report.Meta{}, fmt.Errorf("2B file: %w", err)
	}
	logger.Debugf("[Reconcile] loaded %d records from %s", len(a), p.file2B)

	b, err = table.LoadFile(p.file3B)
	if err != nil {
		return nil, nil, report.Meta{}, fmt.Errorf("3B file: %w", err)
	}
	logger.Debugf("[Reconcile] loaded %d records from %s", len(b), p.file3B)

	return a, b, report.NewMeta(filepath.Base(p.file2B), filepath.Base(p.file3B)), nil
}

func warnMissingColumns(logger *log.Logger, side string, records []model.Record, want ...string) {
	for _, col := range table.MissingColumns(records, want...) {
		logger.Warnf("[Reconcile] %s input has no %q column; its values read as empty", side, col)
	}
}

var outputFormats = []string{"csv", "xlsx", "json", "html"}

func outputFormat(path, explicit string) (string, error) {
	f := strings.ToLower(explicit)
	if f == "" {
		f = strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	}
	if f == "" {
		return "csv", nil
	}
	for _, known := range outputFormats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want one of %s)", f, strings.Join(outputFormats, ", "))
}

func writeReport(path, format string, meta report.Meta, rep reconcile.Report) error {
	var buf bytes.Buffer
	var err error
	switch format {
	case "csv":
		err = report.WriteCSV(&buf, rep.Rows)
	case "xlsx":
		err = report.WriteXLSX(&buf, rep.Rows, rep.Summary)
	case "json":
		err = report.WriteJSON(&buf, meta, rep.Rows, rep.Summary)
	case "html":
		err = report.WriteHTML(&buf, meta, rep.Rows, rep.Summary)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func printSummary(w io.Writer, s model.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "Total Records:\t%d\n", s.Total)
	fmt.Fprintf(tw, "Matches:\t%d\n", s.Matches)
	fmt.Fprintf(tw, "Mismatches:\t%d\n", s.Mismatches)
	fmt.Fprintf(tw, "Missing in 2B:\t%d\n", s.MissingInA)
	fmt.Fprintf(tw, "Missing in 3B:\t%d\n", s.MissingInB)
	if s.SkippedA+s.SkippedB > 0 {
		fmt.Fprintf(tw, "Skipped (no invoice ID):\t%d (2B), %d (3B)\n", s.SkippedA, s.SkippedB)
	}
	tw.Flush()
}

func printRows(w io.Writer, rows []model.ReconciledRow) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ReplaceAll(report.Header, ",", "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(report.MarshalRow(r), "\t"))
	}
	tw.Flush()
}
