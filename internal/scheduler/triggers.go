package scheduler

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/egerke001/halfop/internal/config"
	"github.com/egerke001/halfop/internal/errs"
	"github.com/egerke001/halfop/internal/logger"
	"github.com/egerke001/halfop/internal/notifier"
	"github.com/egerke001/halfop/internal/update"
)

const (
	JobUpdateCheck JobName = "update-check"

	// EnvNoUpdateCheck set to "1" suppresses the startup check.
	EnvNoUpdateCheck = "HALFOP_NO_UPDATE_CHECK"
)

type Checker interface {
	Check(ctx context.Context, initiator notifier.Sink) update.Outcome
	CheckAsync(ctx context.Context, initiator notifier.Sink, done func(update.Outcome))
}

// Triggers wires the automatic entry points to one Checker. The manual
// trigger lives in the CLI and calls the same Checker.
type Triggers struct {
	Config    *config.Config
	Checker   Checker
	Scheduler *Scheduler
	AppName   string
}

// StartupEnabled combines the config switch, the CLI flag and the env var.
func (t *Triggers) StartupEnabled(noUpdateFlag bool) bool {
	if noUpdateFlag || strings.TrimSpace(os.Getenv(EnvNoUpdateCheck)) == "1" {
		return false
	}
	return t.Config.AutoUpdate.Enabled
}

// Startup fires one asynchronous check when enabled and reports whether it
// did. done may be nil.
func (t *Triggers) Startup(ctx context.Context, noUpdateFlag bool, done func(update.Outcome)) bool {
	if !t.StartupEnabled(noUpdateFlag) {
		logger.Info("%s", errs.Msg(errs.AutoCheckDisabled, t.AppName))
		return false
	}

	logger.Info("%s", errs.Msg(errs.AutoCheckEnabled, t.AppName))
	t.Checker.CheckAsync(ctx, nil, done)
	return true
}

// Periodic registers the configured cron schedule, if any.
func (t *Triggers) Periodic() (bool, error) {
	schedule := strings.TrimSpace(t.Config.AutoUpdate.Schedule)
	if schedule == "" || t.Scheduler == nil {
		return false, nil
	}

	err := t.Scheduler.RegisterJob(JobUpdateCheck, schedule, func(ctx context.Context) error {
		out := t.Checker.Check(ctx, nil)
		if !out.Success() {
			return fmt.Errorf("update check ended in %s", out)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("invalid auto_update.schedule %q: %w", schedule, err)
	}
	return true, nil
}
