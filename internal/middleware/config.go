package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/egerke001/halfop/internal/config"
	"github.com/egerke001/halfop/internal/logger"
	"github.com/spf13/cobra"
)

// ErrLogged tells main the failure was already reported to the user.
var ErrLogged = errors.New("already logged")

// LoadConfig reads the file named by --config (or the default location) and
// stores it in the command context.
func LoadConfig(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		logger.LogError("%v", err)
		return ErrLogged
	}
	logger.Debug("config loaded (feed=%s, auto_update=%t)", cfg.FeedURL, cfg.AutoUpdate.Enabled)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, CtxKeyConfig, cfg))

	return next(cmd, args)
}

// ConfigFrom returns the config stored by LoadConfig.
func ConfigFrom(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := Get[*config.Config](cmd, CtxKeyConfig)
	if err != nil {
		return nil, fmt.Errorf("config not loaded: %w", err)
	}
	return cfg, nil
}
