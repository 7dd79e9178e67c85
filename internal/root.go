package internal

import (
	"fmt"

	"github.com/egerke001/halfop/internal/checker"
	"github.com/egerke001/halfop/internal/logger"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "halfop",
		Short: "Release feed watcher that stages HalfOp updates",
		Long: `halfop checks the HalfOp release feed for a version different from the one
installed and downloads the matching artifact into a staging folder. The
staged artifact replaces the installed one on the next restart.`,
		Example: `halfop update
halfop update --check-only
halfop run --config ~/.config/halfop/config.yml`,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.ConfigureLoggerFromFlags()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", checker.Version)
				return err
			}
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolP("version", "v", false, "Print version information")

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default ~/.config/halfop/config.yml)")
	pf.CountVarP(&logger.FlagVerboseCount, "verbose", "V", "Increase log verbosity")
	pf.BoolVarP(&logger.FlagQuiet, "quiet", "q", false, "Only print warnings and errors")
	pf.BoolVarP(&logger.FlagSilent, "silent", "s", false, "Print nothing")
	pf.BoolVar(&logger.FlagJSON, "json", false, "Emit logs as JSON")

	RegisterSubCommands(cmd)

	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
