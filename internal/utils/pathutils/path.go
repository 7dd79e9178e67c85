package pathutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Abbrev replaces the home directory prefix with "~" for display. Paths
// outside home, and any lookup failure, return path unchanged.
func Abbrev(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if rel, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return filepath.Join("~", rel)
	}
	return path
}

// Expand resolves a leading "~" or "~/" against the home directory and cleans
// the result. Other paths only get cleaned; "" stays "".
func Expand(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return filepath.Clean(path), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
