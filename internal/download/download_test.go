package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/egerke001/halfop/internal/config"
	"github.com/egerke001/halfop/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func newFetcher(srv *httptest.Server) *Fetcher {
	conf := config.Default()
	return NewFetcher(&conf, srv.Client())
}

func fetchAndStage(t *testing.T, f *Fetcher, url string, target Target) (string, error) {
	t.Helper()
	rc, err := f.FetchArtifact(context.Background(), url)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return Stage(rc, target)
}

func TestDownload_StagesUnderCurrentName(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, config.DefaultUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("NEW_JAR"))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "update")
	path, err := fetchAndStage(t, newFetcher(srv), srv.URL+"/dl/HalfOp-1.1.0.jar",
		Target{Dir: dir, Name: "HalfOp.jar", Mode: 0o640})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "HalfOp.jar"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "NEW_JAR", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
	}
}

func TestDownload_NonOKWritesNothing(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("denied"))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "update")
	_, err := fetchAndStage(t, newFetcher(srv), srv.URL+"/x.jar", Target{Dir: dir, Name: "HalfOp.jar"})

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusForbidden, fe.StatusCode)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "staging dir must not be created on failure")
}

func TestDownload_Overwrite(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("v2"))
	}))
	defer srv.Close()

	target := Target{Dir: t.TempDir(), Name: "HalfOp.jar"}
	f := newFetcher(srv)

	for i := 0; i < 2; i++ {
		path, err := fetchAndStage(t, f, srv.URL+"/x.jar", target)
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "v2", string(data))
	}
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }
func (brokenReader) Close() error             { return nil }

func TestStage_ReadFailureIsFetchError(t *testing.T) {
	dir := t.TempDir()
	_, err := Stage(&body{ReadCloser: brokenReader{}}, Target{Dir: dir, Name: "HalfOp.jar"})

	var fe *FetchError
	assert.True(t, errors.As(err, &fe))
	var se *StagingError
	assert.True(t, errors.As(err, &se))

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestStage_RejectsPathInName(t *testing.T) {
	_, err := Stage(nil, Target{Dir: t.TempDir(), Name: "../escape.jar"})
	var se *StagingError
	assert.True(t, errors.As(err, &se))
}

func TestStage_UncreatableDir(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Stage(nil, Target{Dir: filepath.Join(blocker, "update"), Name: "HalfOp.jar"})
	var se *StagingError
	assert.True(t, errors.As(err, &se))
}

func TestFetchArtifact_Insecure(t *testing.T) {
	f := NewFetcher(nil, http.DefaultClient)
	_, err := f.FetchArtifact(context.Background(), "http://example.test/x.jar")
	var fe *FetchError
	assert.True(t, errors.As(err, &fe))
	assert.Zero(t, fe.StatusCode)
}
