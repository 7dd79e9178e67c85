package internal

import (
	"errors"
	"fmt"
	"os"

	"github.com/egerke001/halfop/internal/config"
	"github.com/egerke001/halfop/internal/logger"
	"github.com/egerke001/halfop/internal/middleware"
	"github.com/egerke001/halfop/internal/utils/pathutils"

	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default halfop configuration file",
		Long: `Write the default configuration to the --config path, or to
~/.config/halfop/config.yml. An existing file is kept unless --force is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			force, _ := cmd.Flags().GetBool("force")

			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			path, err := pathutils.Expand(path)
			if err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil && !force {
				logger.Warn("%s already exists; use --force to overwrite it", pathutils.Abbrev(path))
				return middleware.ErrLogged
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check %s: %w", path, err)
			}

			cfg := config.Default()
			if err := cfg.Save(path); err != nil {
				return err
			}

			logger.Success("Wrote default configuration to %s", pathutils.Abbrev(path))
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing configuration file")

	return cmd
}
