package checker

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/egerke001/halfop/internal/config"
	"github.com/egerke001/halfop/internal/logger"
	"github.com/egerke001/halfop/internal/service"
	"github.com/egerke001/halfop/internal/utils"
)

// maxFeedBytes caps the release description. A larger body is a feed failure.
const maxFeedBytes = 4 << 20

// FeedError reports a failed "latest release" query. StatusCode is set when
// the server answered with something other than 200; otherwise Err holds the
// transport failure.
type FeedError struct {
	StatusCode int
	Err        error
}

func (e *FeedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("feed returned HTTP status %d", e.StatusCode)
	}
	return fmt.Sprintf("feed unreachable: %v", e.Err)
}

func (e *FeedError) Unwrap() error { return e.Err }

type FeedClient struct {
	HTTPClient service.HTTPClient
	URL        string
	Accept     string
	UserAgent  string
}

func NewFeedClient(conf *config.Config, client service.HTTPClient) *FeedClient {
	if conf == nil {
		def := config.Default()
		conf = &def
	}

	if client == nil {
		client = service.NewHTTPClient(conf.ConnectTimeout, conf.FeedTimeout)
	}

	return &FeedClient{
		HTTPClient: client,
		URL:        conf.FeedURL,
		Accept:     conf.Accept,
		UserAgent:  conf.UserAgent,
	}
}

// FetchLatestRelease returns the raw release description. It makes exactly
// one request and never retries.
func (c *FeedClient) FetchLatestRelease(ctx context.Context) (string, error) {
	logger.Debug("fetching release feed %s", c.URL)

	resp, err := service.Get(ctx, c.HTTPClient, service.Request{
		URL:       c.URL,
		Accept:    c.Accept,
		UserAgent: c.UserAgent,
	})
	if err != nil {
		var se *service.StatusError
		if errors.As(err, &se) {
			return "", &FeedError{StatusCode: se.StatusCode, Err: err}
		}
		return "", &FeedError{Err: err}
	}
	defer utils.Try(resp.Body.Close)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes+1))
	if err != nil {
		return "", &FeedError{Err: fmt.Errorf("failed to read feed body: %w", err)}
	}
	if len(body) > maxFeedBytes {
		return "", &FeedError{Err: fmt.Errorf("feed body exceeds %d bytes", maxFeedBytes)}
	}

	logger.Debug("release feed: %d bytes", len(body))
	return string(body), nil
}
