package middleware

import (
	"fmt"

	"github.com/egerke001/halfop/internal/errs"
	"github.com/egerke001/halfop/internal/host"
	"github.com/egerke001/halfop/internal/logger"
	"github.com/spf13/cobra"
)

// CurrentUser is swapped in tests.
var (
	defaultCurrentUser = host.CurrentUser
	CurrentUser        = defaultCurrentUser
)

// RequirePermission gates a command on the allowed_users list. It must run
// after LoadConfig.
func RequirePermission(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	cfg, err := ConfigFrom(cmd)
	if err != nil {
		return err
	}

	name, err := CurrentUser()
	if err != nil {
		logger.Debug("permission check: %v", err)
		name = ""
	}

	if !host.Allowlist(cfg.AllowedUsers).Allowed(name) {
		logger.Debug("permission denied for user %q", name)
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), errs.Msg(errs.PermissionDenied))
		return ErrLogged
	}

	return next(cmd, args)
}
