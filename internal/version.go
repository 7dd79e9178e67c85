package internal

import (
	"github.com/egerke001/halfop/internal/checker"
	"github.com/egerke001/halfop/internal/logger"
	"github.com/spf13/cobra"
)

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			logger.SetOutput(cmd.OutOrStdout())
			checker.PrintVersion()
		},
	}
}
