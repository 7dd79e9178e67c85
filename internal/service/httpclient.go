package service

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/egerke001/halfop/internal/utils"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type DefaultHTTPClient struct{ *http.Client }

// NewHTTPClient returns a client whose dial is bounded by connect and whose
// whole exchange, body included, is bounded by total.
func NewHTTPClient(connect, total time.Duration) *DefaultHTTPClient {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   connect,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = connect

	return &DefaultHTTPClient{Client: &http.Client{
		Timeout:       total,
		Transport:     transport,
		CheckRedirect: SecureRedirects,
	}}
}

const maxRedirects = 10

// SecureRedirects follows redirects only while they stay on https.
func SecureRedirects(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if req.URL.Scheme != "https" {
		return fmt.Errorf("refusing redirect to insecure URL %s", req.URL.Redacted())
	}
	return nil
}

// Request describes a GET with the headers the feed and artifact hosts expect.
type Request struct {
	URL       string
	Accept    string
	UserAgent string
}

// Get issues the request and returns the response only when it is 200 OK.
// Any other status is reported as a *StatusError with the body closed.
func Get(ctx context.Context, c HTTPClient, r Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, err := utils.ParseSecureURL(r.URL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if r.Accept != "" {
		req.Header.Set("Accept", r.Accept)
	}
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		utils.Try(resp.Body.Close)
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: parsed.Redacted()}
	}

	return resp, nil
}

type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}
