package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/egerke001/halfop/internal/checker"
	"github.com/egerke001/halfop/internal/config"
	"github.com/egerke001/halfop/internal/download"
	"github.com/egerke001/halfop/internal/errs"
	"github.com/egerke001/halfop/internal/host"
	"github.com/egerke001/halfop/internal/logger"
	"github.com/egerke001/halfop/internal/notifier"
	"github.com/egerke001/halfop/internal/release"
	"github.com/egerke001/halfop/internal/utils"

	"golang.org/x/sync/singleflight"
)

const DefaultAppName = "HalfOp"

type FeedClient interface {
	FetchLatestRelease(ctx context.Context) (string, error)
}

type ArtifactFetcher interface {
	FetchArtifact(ctx context.Context, url string) (io.ReadCloser, error)
}

// StageFunc writes a fetched artifact to its staging target.
type StageFunc func(r io.Reader, t download.Target) (string, error)

type Options struct {
	Config   *config.Config
	AppName  string
	Feed     FeedClient
	Fetcher  ArtifactFetcher
	Stage    StageFunc
	Host     host.Host
	Executor Executor
	// Sink receives every message of every check, typically the console.
	Sink notifier.Sink
}

// Updater runs the check-and-stage pass. At most one pass of each kind is in
// flight; overlapping callers wait for it and share its Outcome.
type Updater struct {
	conf     *config.Config
	appName  string
	feed     FeedClient
	fetcher  ArtifactFetcher
	stage    StageFunc
	host     host.Host
	executor Executor
	sink     notifier.Sink

	flight   singleflight.Group
	stageRun atomic.Int32
	probeRun atomic.Int32
}

func New(opts Options) *Updater {
	conf := opts.Config
	if conf == nil {
		def := config.Default()
		conf = &def
	}

	u := &Updater{
		conf:     conf,
		appName:  opts.AppName,
		feed:     opts.Feed,
		fetcher:  opts.Fetcher,
		stage:    opts.Stage,
		host:     opts.Host,
		executor: opts.Executor,
		sink:     opts.Sink,
	}

	if u.appName == "" {
		u.appName = DefaultAppName
	}
	if u.feed == nil {
		u.feed = checker.NewFeedClient(conf, nil)
	}
	if u.fetcher == nil {
		u.fetcher = download.NewFetcher(conf, nil)
	}
	if u.stage == nil {
		u.stage = download.Stage
	}
	if u.host == nil {
		u.host = host.NewFileHost(conf)
	}
	if u.executor == nil {
		u.executor = GoExecutor{}
	}
	if u.sink == nil {
		u.sink = notifier.Console{}
	}

	return u
}

const (
	keyStage = "stage"
	keyProbe = "probe"
)

// Check runs the full pass: feed, compare, fetch, stage. It blocks until the
// pass reaches a terminal state and never panics or returns an error.
func (u *Updater) Check(ctx context.Context, initiator notifier.Sink) Outcome {
	return u.do(ctx, keyStage, true, initiator)
}

// Probe stops after the version comparison; nothing is downloaded.
func (u *Updater) Probe(ctx context.Context, initiator notifier.Sink) Outcome {
	return u.do(ctx, keyProbe, false, initiator)
}

// CheckAsync hands Check to the executor. done, when non-nil, receives the
// Outcome on the executor's goroutine.
func (u *Updater) CheckAsync(ctx context.Context, initiator notifier.Sink, done func(Outcome)) {
	u.executor.Go(func() {
		out := u.Check(ctx, initiator)
		if done != nil {
			done(out)
		}
	})
}

// InFlight reports whether a pass of either kind is currently running.
func (u *Updater) InFlight() bool {
	return u.stageRun.Load() > 0 || u.probeRun.Load() > 0
}

func (u *Updater) running(key string) *atomic.Int32 {
	if key == keyProbe {
		return &u.probeRun
	}
	return &u.stageRun
}

func (u *Updater) do(ctx context.Context, key string, stage bool, initiator notifier.Sink) Outcome {
	// Only a pass of the same kind is joined; the other kind runs on its own.
	running := u.running(key)
	if running.Load() > 0 && initiator != nil {
		initiator.Notify(notifier.Info("%s", errs.Msg(errs.CheckInProgress)))
	}

	leader := false
	v, _, shared := u.flight.Do(key, func() (interface{}, error) {
		leader = true
		running.Add(1)
		defer running.Add(-1)
		return u.pass(ctx, stage, initiator), nil
	})

	out, ok := v.(Outcome)
	if !ok {
		out = Outcome{State: StateError, Err: fmt.Errorf("check returned %T", v)}
	}

	// A caller that joined someone else's pass saw none of its messages.
	if shared && !leader && initiator != nil {
		initiator.Notify(u.summary(out))
	}
	return out
}

// pass is the state machine. Every exit path sets a terminal State.
func (u *Updater) pass(ctx context.Context, stage bool, initiator notifier.Sink) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = u.unexpected(out, fmt.Errorf("panic during update check: %v", r), initiator)
		}
	}()

	notify := notifier.Multi(u.sink, initiator)

	out.CurrentVersion = u.host.CurrentVersion()
	logger.Debug("update check started (current=%s, stage=%t)", out.CurrentVersion, stage)

	// Start -> FeedFetched
	raw, err := u.feed.FetchLatestRelease(ctx)
	if err != nil {
		out.State = StateFailedFeed
		out.Err = err
		var fe *checker.FeedError
		if errors.As(err, &fe) {
			out.StatusCode = fe.StatusCode
		}
		notify.Notify(notifier.Warn("%s", errs.Msg(errs.FeedUnreachable, u.appName, err.Error())))
		return out
	}

	// FeedFetched -> VersionCompared
	rel := release.Parse(raw, u.conf.AssetKey, u.conf.ArtifactSuffix)
	latest, err := rel.Version()
	if err != nil {
		out.State = StateFailedNoVersion
		out.Err = err
		notify.Notify(notifier.Warn("%s", errs.Msg(errs.VersionMissing, u.appName)))
		return out
	}
	out.NewVersion = latest

	if release.SameVersion(latest, out.CurrentVersion) {
		out.State = StateUpToDate
		notify.Notify(notifier.Success("%s", errs.Msg(errs.UpToDate, u.appName, out.CurrentVersion)))
		return out
	}

	// VersionCompared -> AssetResolved
	asset, err := rel.FirstAsset()
	if err != nil {
		out.State = StateFailedNoAsset
		out.Err = err
		notify.Notify(notifier.Warn("%s", errs.Msg(errs.NoArtifactAsset, u.appName, u.conf.ArtifactSuffix)))
		return out
	}
	out.AssetURL = asset.DownloadURL

	notify.Notify(notifier.Info("%s", errs.Msg(errs.UpdateAvailable, u.appName, latest, out.CurrentVersion)))
	if !stage {
		out.State = StateUpdateAvailable
		return out
	}

	target, err := u.target()
	if err != nil {
		out.State = StateFailedStaging
		out.Err = err
		notify.Notify(notifier.Warn("%s", errs.Msg(errs.StagingFailed, u.appName, err.Error())))
		return out
	}

	// AssetResolved -> Downloading
	notify.Notify(notifier.Info("%s", errs.Msg(errs.Downloading, u.appName)))
	body, err := u.fetcher.FetchArtifact(ctx, asset.DownloadURL)
	if err != nil {
		return u.downloadFailed(out, err, notify)
	}
	defer utils.Try(body.Close)

	// Downloading -> Staged
	path, err := u.stage(body, target)
	if err != nil {
		var fe *download.FetchError
		if errors.As(err, &fe) {
			return u.downloadFailed(out, err, notify)
		}
		out.State = StateFailedStaging
		out.Err = err
		notify.Notify(notifier.Warn("%s", errs.Msg(errs.StagingFailed, u.appName, err.Error())))
		return out
	}

	out.State = StateStaged
	out.StagedPath = path
	if sum, err := utils.FileSHA256(path); err == nil {
		out.Checksum = sum
	} else {
		logger.Debug("checksum of staged artifact: %v", err)
	}
	notify.Notify(notifier.Success("%s", errs.Msg(errs.Staged, u.appName, latest)))
	return out
}

func (u *Updater) target() (download.Target, error) {
	art, err := u.host.CurrentArtifact()
	if err != nil {
		return download.Target{}, fmt.Errorf("failed to resolve current artifact: %w", err)
	}
	dir, err := u.host.StagingDir()
	if err != nil {
		return download.Target{}, fmt.Errorf("failed to resolve staging directory: %w", err)
	}
	return download.Target{Dir: dir, Name: art.Name, Mode: art.Mode}, nil
}

func (u *Updater) downloadFailed(out Outcome, err error, notify notifier.Sink) Outcome {
	out.State = StateFailedDownload
	out.Err = err
	var fe *download.FetchError
	if errors.As(err, &fe) {
		out.StatusCode = fe.StatusCode
	}
	notify.Notify(notifier.Warn("%s", errs.Msg(errs.ArtifactFailed, u.appName, err.Error())))
	return out
}

// unexpected logs the full cause and gives the initiator only a generic line.
func (u *Updater) unexpected(out Outcome, err error, initiator notifier.Sink) Outcome {
	out.State = StateError
	out.Err = err
	logger.ErrorWithCause(err, "Error while checking for %s updates", u.appName)
	if initiator != nil {
		initiator.Notify(notifier.Error("%s", errs.Msg(errs.Unexpected, u.appName)))
	}
	return out
}

// summary is the one-line result sent to callers that joined a running pass.
func (u *Updater) summary(out Outcome) notifier.Message {
	switch out.State {
	case StateUpToDate:
		return notifier.Success("%s", errs.Msg(errs.UpToDate, u.appName, out.CurrentVersion))
	case StateUpdateAvailable:
		return notifier.Info("%s", errs.Msg(errs.UpdateAvailable, u.appName, out.NewVersion, out.CurrentVersion))
	case StateStaged:
		return notifier.Success("%s", errs.Msg(errs.Staged, u.appName, out.NewVersion))
	case StateFailedFeed:
		return notifier.Warn("%s", errs.Msg(errs.FeedUnreachable, u.appName, errString(out.Err)))
	case StateFailedNoVersion:
		return notifier.Warn("%s", errs.Msg(errs.VersionMissing, u.appName))
	case StateFailedNoAsset:
		return notifier.Warn("%s", errs.Msg(errs.NoArtifactAsset, u.appName, u.conf.ArtifactSuffix))
	case StateFailedDownload:
		return notifier.Warn("%s", errs.Msg(errs.ArtifactFailed, u.appName, errString(out.Err)))
	case StateFailedStaging:
		return notifier.Warn("%s", errs.Msg(errs.StagingFailed, u.appName, errString(out.Err)))
	default:
		return notifier.Error("%s", errs.Msg(errs.Unexpected, u.appName))
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
