package internal

import (
	"github.com/egerke001/halfop/internal/middleware"
	"github.com/spf13/cobra"
)

var defaultCommands = []middleware.CommandFactory{
	NewVersionCmd,
	NewInitCmd,
	middleware.UseMiddlewareChain(middleware.LoadConfig, middleware.RequirePermission)(NewUpdateCmd),
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewRunCmd),
}

func RegisterSubCommands(cmd *cobra.Command) {
	for _, factory := range defaultCommands {
		cmd.AddCommand(factory())
	}
}
