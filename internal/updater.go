package internal

import (
	"github.com/egerke001/halfop/internal/checker"
	"github.com/egerke001/halfop/internal/config"
	"github.com/egerke001/halfop/internal/download"
	"github.com/egerke001/halfop/internal/notifier"
	"github.com/egerke001/halfop/internal/service"
	"github.com/egerke001/halfop/internal/update"
)

// clientOverride replaces both HTTP clients in tests.
var clientOverride service.HTTPClient

func newUpdater(cfg *config.Config, exec update.Executor, sink notifier.Sink) *update.Updater {
	return update.New(update.Options{
		Config:   cfg,
		Feed:     checker.NewFeedClient(cfg, clientOverride),
		Fetcher:  download.NewFetcher(cfg, clientOverride),
		Executor: exec,
		Sink:     sink,
	})
}
