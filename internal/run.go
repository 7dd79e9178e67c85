package internal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/egerke001/halfop/internal/logger"
	"github.com/egerke001/halfop/internal/middleware"
	"github.com/egerke001/halfop/internal/notifier"
	"github.com/egerke001/halfop/internal/scheduler"
	"github.com/egerke001/halfop/internal/update"

	"github.com/spf13/cobra"
)

func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Stay in the background and check for updates automatically",
		Long: `Run as the host process: check once on startup (unless disabled), then on
the cron schedule from auto_update.schedule. SIGHUP triggers a check on
demand. SIGINT or SIGTERM stop the process after the running check ends.

Examples:
  halfop run                    # startup check, then follow the schedule
  halfop run --once             # startup check only, then exit
  halfop run --no-update-check  # skip the startup check`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.ConfigFrom(cmd)
			if err != nil {
				return err
			}

			once, _ := cmd.Flags().GetBool("once")
			noUpdate, _ := cmd.Flags().GetBool("no-update-check")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var dispatcher scheduler.Dispatcher
			defer dispatcher.Wait()

			u := newUpdater(cfg, &dispatcher, notifier.Console{})

			sched, err := scheduler.NewScheduler()
			if err != nil {
				return err
			}
			defer func() {
				if err := sched.Shutdown(); err != nil {
					logger.Debug("scheduler shutdown: %v", err)
				}
			}()

			triggers := &scheduler.Triggers{
				Config:    cfg,
				Checker:   u,
				Scheduler: sched,
				AppName:   update.DefaultAppName,
			}

			startup := make(chan update.Outcome, 1)
			started := triggers.Startup(ctx, noUpdate, func(o update.Outcome) { startup <- o })

			if once {
				if started {
					<-startup
				}
				return nil
			}

			periodic, err := triggers.Periodic()
			if err != nil {
				logger.LogError("%v", err)
				return middleware.ErrLogged
			}
			if periodic {
				sched.Start()
				if next, err := sched.NextRun(scheduler.JobUpdateCheck); err == nil {
					logger.Info("next scheduled update check at %s", next.Format("2006-01-02 15:04"))
				}
			}

			return waitForSignals(ctx, u)
		},
	}

	cmd.Flags().Bool("once", false, "Exit after the startup check")
	cmd.Flags().Bool("no-update-check", false, "Skip the startup check")

	return cmd
}

// waitForSignals runs a check on SIGHUP until ctx is done.
func waitForSignals(ctx context.Context, u *update.Updater) error {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return nil
		case <-hup:
			logger.Info("SIGHUP received, checking for updates")
			u.CheckAsync(ctx, nil, nil)
		}
	}
}
