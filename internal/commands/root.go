package commands

import (
	"fmt"
	"io"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/gstcopilot/gstcopilot/internal/buildinfo"
	"github.com/gstcopilot/gstcopilot/internal/config"
)

// globalFlags are persistent flags shared by all subcommands.
type globalFlags struct {
	configPath string
	verbose    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "gstcopilot",
		Short:   "Reconcile GSTR-2B against GSTR-3B and draft client follow-ups",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default ./"+config.FileName+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log progress to stderr")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newReconcileCommand(g))
	rootCmd.AddCommand(newDraftCommand(g))

	return rootCmd
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	l := log.New("gstcopilot")
	l.SetOutput(w)
	l.SetHeader("${level} ${prefix}")
	l.DisableColor()
	if verbose {
		l.SetLevel(log.DEBUG)
	} else {
		l.SetLevel(log.WARN)
	}
	return l
}
