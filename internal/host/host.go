// Package host holds what the updater needs from the program it updates:
// the running version, the installed artifact and where to stage the next
// one, plus the permission check that gates manual checks.
package host

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"slices"

	"github.com/egerke001/halfop/internal/checker"
	"github.com/egerke001/halfop/internal/config"
)

type Artifact struct {
	Name string
	Path string
	Mode os.FileMode
}

type Host interface {
	CurrentVersion() string
	StagingDir() (string, error)
	CurrentArtifact() (Artifact, error)
}

// FileHost resolves everything from the config, falling back to the running
// executable and the build version.
type FileHost struct {
	Config     *config.Config
	executable func() (string, error)
}

func NewFileHost(conf *config.Config) *FileHost {
	if conf == nil {
		def := config.Default()
		conf = &def
	}
	return &FileHost{Config: conf, executable: os.Executable}
}

func (h *FileHost) CurrentVersion() string {
	return checker.CurrentVersion(h.Config.CurrentVersion)
}

func (h *FileHost) artifactPath() (string, error) {
	if h.Config.ArtifactPath != "" {
		return h.Config.ArtifactPath, nil
	}
	exe, err := h.executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate running executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}

// CurrentArtifact describes the installed artifact. A missing file is not an
// error: the mode is simply unknown and left zero.
func (h *FileHost) CurrentArtifact() (Artifact, error) {
	path, err := h.artifactPath()
	if err != nil {
		return Artifact{}, err
	}

	a := Artifact{Name: filepath.Base(path), Path: path}
	if info, err := os.Stat(path); err == nil {
		a.Mode = info.Mode().Perm()
	}
	return a, nil
}

func (h *FileHost) StagingDir() (string, error) {
	path, err := h.artifactPath()
	if err != nil {
		return "", err
	}
	return h.Config.StagingDirFor(path), nil
}

type Authorizer interface {
	Allowed(name string) bool
}

// Allowlist permits the named users. An empty list permits everyone.
type Allowlist []string

func (a Allowlist) Allowed(name string) bool {
	return len(a) == 0 || slices.Contains(a, name)
}

// CurrentUser returns the login name of the process owner.
func CurrentUser() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to look up current user: %w", err)
	}
	return u.Username, nil
}
