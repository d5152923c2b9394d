package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/gstcopilot/gstcopilot/internal/config"
	"github.com/gstcopilot/gstcopilot/internal/drafts"
	"github.com/gstcopilot/gstcopilot/internal/report"
)

type draftParams struct {
	results string
	kind    string
	drafts.Params
}

func newDraftCommand(g *globalFlags) *cobra.Command {
	var p draftParams

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Draft client messages from a reconciliation results CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(g.configPath)
			if err != nil {
				return err
			}
			if p.FirmName == "" {
				p.FirmName = cfg.Firm.Name
			}
			logger := newLogger(cmd.ErrOrStderr(), g.verbose)
			return runDraft(cmd.OutOrStdout(), logger, cfg, p)
		},
	}

	cmd.Flags().StringVar(&p.results, "results", "", "results CSV written by reconcile --out (required)")
	_ = cmd.MarkFlagRequired("results")
	cmd.Flags().StringVar(&p.kind, "kind", "both", "draft kind: email, sms or both")
	cmd.Flags().StringVar(&p.ClientName, "client", "", "client name")
	cmd.Flags().StringVar(&p.Month, "month", "", "return period, e.g. \"March 2025\"")
	cmd.Flags().StringVar(&p.FirmName, "firm", "", "firm name (default from config)")

	return cmd
}

func runDraft(out io.Writer, logger *log.Logger, cfg *config.Config, p draftParams) error {
	var wantEmail, wantSMS bool
	switch p.kind {
	case "email":
		wantEmail = true
	case "sms":
		wantSMS = true
	case "both":
		wantEmail, wantSMS = true, true
	default:
		return fmt.Errorf("unknown --kind %q (want email, sms or both)", p.kind)
	}

	f, err := os.Open(p.results)
	if err != nil {
		return fmt.Errorf("opening results: %w", err)
	}
	defer f.Close()

	rows, err := report.ReadCSV(f, cfg.CurrencyFormat())
	if err != nil {
		return fmt.Errorf("reading %s: %w", p.results, err)
	}
	logger.Debugf("[Draft] read %d rows from %s", len(rows), p.results)

	email, err := drafts.Email(rows, p.Params)
	if err != nil {
		return err
	}
	if email == "" {
		fmt.Fprintln(out, "No mismatches found; nothing to draft.")
		return nil
	}

	if wantEmail {
		fmt.Fprintf(out, "=== Email ===\n%s\n", email)
	}
	if wantSMS {
		msg, err := drafts.Message(rows, p.Params)
		if err != nil {
			return err
		}
		if wantEmail {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "=== Message ===\n%s\n", msg)
	}
	return nil
}
