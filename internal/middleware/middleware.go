package middleware

import (
	"fmt"

	"github.com/spf13/cobra"
)

type contextKey string

const CtxKeyConfig contextKey = "config"

type CommandFactory func() *cobra.Command

type RunFunc func(cmd *cobra.Command, args []string) error

// MiddlewareFunc does its work and calls next to continue, or returns without
// calling next to stop the command.
type MiddlewareFunc func(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error

type MiddlewareChain func(factory CommandFactory) CommandFactory

// UseMiddlewareChain wraps a CommandFactory so the middlewares run, in order,
// before the command's own PreRunE.
func UseMiddlewareChain(middlewares ...MiddlewareFunc) MiddlewareChain {
	mws := append([]MiddlewareFunc(nil), middlewares...)

	return func(factory CommandFactory) CommandFactory {
		return func() *cobra.Command {
			cmd := factory()

			var final RunFunc = func(*cobra.Command, []string) error { return nil }
			if cmd.PreRunE != nil {
				final = cmd.PreRunE
			}

			// Build from the inside out so mws[0] runs first.
			chain := final
			for i := len(mws) - 1; i >= 0; i-- {
				mw, next := mws[i], chain
				chain = func(c *cobra.Command, a []string) error {
					return mw(c, a, next)
				}
			}

			cmd.PreRunE = chain
			return cmd
		}
	}
}

func Get[T any](cmd *cobra.Command, key contextKey) (T, error) {
	var zero T

	ctx := cmd.Context()
	if ctx == nil {
		return zero, fmt.Errorf("command context is nil")
	}

	casted, ok := ctx.Value(key).(T)
	if !ok {
		return zero, fmt.Errorf("context value %q missing or of type %T", key, ctx.Value(key))
	}
	return casted, nil
}
