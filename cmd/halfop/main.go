package main

import (
	"errors"
	"os"

	cmd "github.com/egerke001/halfop/internal"
	"github.com/egerke001/halfop/internal/logger"
	"github.com/egerke001/halfop/internal/middleware"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, middleware.ErrLogged) {
			logger.LogError("%v", err)
		}
		os.Exit(1)
	}
}
