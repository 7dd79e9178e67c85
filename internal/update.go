package internal

import (
	"github.com/egerke001/halfop/internal/errs"
	"github.com/egerke001/halfop/internal/logger"
	"github.com/egerke001/halfop/internal/middleware"
	"github.com/egerke001/halfop/internal/notifier"
	"github.com/egerke001/halfop/internal/update"
	"github.com/egerke001/halfop/internal/utils"

	"github.com/spf13/cobra"
)

func NewUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check the release feed now and stage a new version",
		Long: `Check the release feed now. When the latest release differs from the
installed version, its artifact is downloaded into the staging folder and
picked up on the next restart.

Examples:
  halfop update               # check and stage
  halfop update --check-only  # only report whether an update exists
  halfop update --report      # print a summary table afterwards`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.ConfigFrom(cmd)
			if err != nil {
				return err
			}

			checkOnly, _ := cmd.Flags().GetBool("check-only")
			report, _ := cmd.Flags().GetBool("report")

			out := cmd.OutOrStdout()
			initiator := notifier.NewWriter(out, !logger.FlagJSON)
			u := newUpdater(cfg, update.GoExecutor{}, notifier.DebugLog{})

			initiator.Notify(notifier.Info("%s", errs.Msg(errs.Checking, update.DefaultAppName)))

			var res update.Outcome
			if checkOnly {
				res = u.Probe(cmd.Context(), initiator)
			} else {
				res = u.Check(cmd.Context(), initiator)
			}

			if res.State == update.StateStaged && !logger.FlagJSON {
				notifier.DisplayStagedUpdate(out, res.CurrentVersion, res.NewVersion)
			}

			if report {
				logger.SetOutput(out)
				utils.RenderTable("", []string{"Field", "Value"}, res.Rows())
			}

			if !res.Success() {
				return middleware.ErrLogged
			}
			return nil
		},
	}

	cmd.Flags().Bool("check-only", false, "Report whether an update is available without downloading it")
	cmd.Flags().Bool("report", false, "Print a summary table of the check")

	return cmd
}
