package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/egerke001/halfop/internal/utils/pathutils"

	"gopkg.in/yaml.v3"
)

const (
	configDir  = ".config/halfop"
	configFile = "config.yml"

	DefaultFeedURL         = "https://api.github.com/repos/egerke001/HalfOp/releases/latest"
	DefaultUserAgent       = "HalfOp-Updater"
	DefaultAccept          = "application/vnd.github+json"
	DefaultArtifactSuffix  = ".jar"
	DefaultAssetKey        = "browser_download_url"
	DefaultConnectTimeout  = 10 * time.Second
	DefaultFeedTimeout     = 15 * time.Second
	DefaultDownloadTimeout = 60 * time.Second
	stagingSubdir          = "update"
)

type AutoUpdate struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule,omitempty"`
}

type Config struct {
	FeedURL         string        `yaml:"feed_url"`
	UserAgent       string        `yaml:"user_agent"`
	Accept          string        `yaml:"accept"`
	ArtifactSuffix  string        `yaml:"artifact_suffix"`
	AssetKey        string        `yaml:"asset_key"`
	ArtifactPath    string        `yaml:"artifact_path,omitempty"`
	StagingDir      string        `yaml:"staging_dir,omitempty"`
	CurrentVersion  string        `yaml:"current_version,omitempty"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
	FeedTimeout     time.Duration `yaml:"feed_timeout"`
	DownloadTimeout time.Duration `yaml:"download_timeout"`
	AutoUpdate      AutoUpdate    `yaml:"auto_update"`
	AllowedUsers    []string      `yaml:"allowed_users,omitempty"`
}

func Default() Config {
	return Config{
		FeedURL:         DefaultFeedURL,
		UserAgent:       DefaultUserAgent,
		Accept:          DefaultAccept,
		ArtifactSuffix:  DefaultArtifactSuffix,
		AssetKey:        DefaultAssetKey,
		ConnectTimeout:  DefaultConnectTimeout,
		FeedTimeout:     DefaultFeedTimeout,
		DownloadTimeout: DefaultDownloadTimeout,
		AutoUpdate:      AutoUpdate{Enabled: true},
	}
}

func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir, configFile), nil
}

// Load reads the YAML file at path on top of Default(). A missing file is not
// an error: the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return &cfg, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file %s: %w", path, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	var err error
	if c.ArtifactPath != "" {
		if c.ArtifactPath, err = pathutils.Expand(c.ArtifactPath); err != nil {
			return fmt.Errorf("failed to resolve artifact_path: %w", err)
		}
	}
	if c.StagingDir != "" {
		if c.StagingDir, err = pathutils.Expand(c.StagingDir); err != nil {
			return fmt.Errorf("failed to resolve staging_dir: %w", err)
		}
	}

	// Zero values from a partial file fall back to the defaults.
	def := Default()
	if c.FeedURL == "" {
		c.FeedURL = def.FeedURL
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.Accept == "" {
		c.Accept = def.Accept
	}
	if c.ArtifactSuffix == "" {
		c.ArtifactSuffix = def.ArtifactSuffix
	}
	if c.AssetKey == "" {
		c.AssetKey = def.AssetKey
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = def.ConnectTimeout
	}
	if c.FeedTimeout <= 0 {
		c.FeedTimeout = def.FeedTimeout
	}
	if c.DownloadTimeout <= 0 {
		c.DownloadTimeout = def.DownloadTimeout
	}
	return nil
}

// StagingDirFor returns the configured staging directory, or the "update"
// folder next to the installed artifact.
func (c *Config) StagingDirFor(artifactPath string) string {
	if c.StagingDir != "" {
		return c.StagingDir
	}
	return filepath.Join(filepath.Dir(artifactPath), stagingSubdir)
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
