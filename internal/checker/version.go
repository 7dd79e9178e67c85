package checker

import (
	"runtime"
	"strings"

	"github.com/egerke001/halfop/internal/utils"
)

// Set at build time with -ldflags "-X github.com/egerke001/halfop/internal/checker.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

func PrintVersion() {
	utils.RenderTable("HalfOp updater", []string{"Field", "Value"}, [][]string{
		{"Version", Version},
		{"Go Version", GoVersion},
		{"Git Commit", Commit},
		{"Built", Date},
		{"OS/Arch", runtime.GOOS + "/" + runtime.GOARCH},
	})
}

// CurrentVersion returns override when set, otherwise the build version.
func CurrentVersion(override string) string {
	if v := strings.TrimSpace(override); v != "" {
		return v
	}
	return Version
}
