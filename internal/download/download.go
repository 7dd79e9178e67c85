package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/egerke001/halfop/internal/config"
	"github.com/egerke001/halfop/internal/logger"
	"github.com/egerke001/halfop/internal/service"
	"github.com/egerke001/halfop/internal/utils"
)

const defaultMode os.FileMode = 0o644

// FetchError reports a failed artifact request: a non-200 status or a
// transport failure.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("artifact download returned HTTP status %d", e.StatusCode)
	}
	return fmt.Sprintf("artifact unreachable: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StagingError reports that the artifact could not be written to the
// staging directory.
type StagingError struct {
	Path string
	Err  error
}

func (e *StagingError) Error() string {
	return fmt.Sprintf("failed to stage %s: %v", e.Path, e.Err)
}

func (e *StagingError) Unwrap() error { return e.Err }

type Fetcher struct {
	HTTPClient service.HTTPClient
	UserAgent  string
}

func NewFetcher(conf *config.Config, client service.HTTPClient) *Fetcher {
	if conf == nil {
		def := config.Default()
		conf = &def
	}

	if client == nil {
		client = service.NewHTTPClient(conf.ConnectTimeout, conf.DownloadTimeout)
	}

	return &Fetcher{HTTPClient: client, UserAgent: conf.UserAgent}
}

// FetchArtifact opens the artifact body. The caller must close it. Nothing is
// written anywhere until the stream is handed to Stage.
func (f *Fetcher) FetchArtifact(ctx context.Context, url string) (io.ReadCloser, error) {
	logger.Debug("fetching artifact %s", url)

	resp, err := service.Get(ctx, f.HTTPClient, service.Request{
		URL:       url,
		UserAgent: f.UserAgent,
	})
	if err != nil {
		var se *service.StatusError
		if errors.As(err, &se) {
			return nil, &FetchError{StatusCode: se.StatusCode, Err: err}
		}
		return nil, &FetchError{Err: err}
	}
	return &body{ReadCloser: resp.Body}, nil
}

// body marks read failures as fetch failures so a stalled transfer is not
// mistaken for a local write problem.
type body struct {
	io.ReadCloser
}

func (b *body) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		err = &FetchError{Err: err}
	}
	return n, err
}

// Target says where a staged artifact goes and which mode it should carry.
type Target struct {
	Dir  string
	Name string
	Mode os.FileMode
}

func (t Target) Path() string {
	return filepath.Join(t.Dir, t.Name)
}

// Stage streams r into t.Dir/t.Name, creating the directory on demand. The
// final path only ever holds a complete artifact: the data goes to a temp
// file first and is renamed over any previous staged copy. Mode is copied on
// a best effort basis.
func Stage(r io.Reader, t Target) (string, error) {
	dst := t.Path()

	if t.Name == "" || t.Name != filepath.Base(t.Name) {
		return "", &StagingError{Path: dst, Err: fmt.Errorf("invalid artifact name %q", t.Name)}
	}

	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return "", &StagingError{Path: dst, Err: fmt.Errorf("could not create staging directory: %w", err)}
	}

	mode := t.Mode.Perm()
	if mode == 0 {
		mode = defaultMode
	}

	n, err := utils.WriteFileAtomic(dst, r, mode)
	if err != nil {
		return "", &StagingError{Path: dst, Err: err}
	}

	logger.Debug("staged %d bytes at %s", n, dst)
	return dst, nil
}
