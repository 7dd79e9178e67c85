package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/egerke001/halfop/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func TestGet_SendsHeaders(t *testing.T) {
	var gotAccept, gotUA string
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	resp, err := Get(context.Background(), srv.Client(), Request{
		URL:       srv.URL,
		Accept:    "application/vnd.github+json",
		UserAgent: "HalfOp-Updater",
	})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/vnd.github+json", gotAccept)
	assert.Equal(t, "HalfOp-Updater", gotUA)
}

func TestGet_NonOKStatus(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Get(context.Background(), srv.Client(), Request{URL: srv.URL})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestGet_RejectsInsecureURL(t *testing.T) {
	_, err := Get(context.Background(), http.DefaultClient, Request{URL: "http://example.test/feed"})
	assert.Error(t, err)
}

func TestGet_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Get(ctx, http.DefaultClient, Request{URL: "https://example.test/feed"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHTTPClient_TotalTimeout(t *testing.T) {
	c := NewHTTPClient(10*time.Second, 15*time.Second)
	assert.Equal(t, 15*time.Second, c.Timeout)

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 10*time.Second, tr.TLSHandshakeTimeout)
}

func TestNewHTTPClient_RefusesRedirectToHTTP(t *testing.T) {
	var plainHits atomic.Int32
	plain := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		plainHits.Add(1)
		_, _ = w.Write([]byte("JAR"))
	}))
	defer plain.Close()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, plain.URL+"/HalfOp.jar", http.StatusFound)
	}))
	defer srv.Close()

	c := NewHTTPClient(time.Second, 5*time.Second)
	c.Transport = srv.Client().Transport

	_, err := Get(context.Background(), c, Request{URL: srv.URL + "/dl/HalfOp.jar"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insecure")
	assert.Zero(t, plainHits.Load())
}

func TestNewHTTPClient_FollowsHTTPSRedirect(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dl/HalfOp.jar" {
			http.Redirect(w, r, "/assets/1", http.StatusFound)
			return
		}
		_, _ = w.Write([]byte("JAR"))
	}))
	defer srv.Close()

	c := NewHTTPClient(time.Second, 5*time.Second)
	c.Transport = srv.Client().Transport

	resp, err := Get(context.Background(), c, Request{URL: srv.URL + "/dl/HalfOp.jar"})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "/assets/1", resp.Request.URL.Path)
}
