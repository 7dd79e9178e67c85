package update

import (
	"fmt"
	"strconv"

	"github.com/egerke001/halfop/internal/utils/pathutils"
)

// State is where a check stopped. Every Outcome carries a terminal State.
type State int

const (
	StateUnknown State = iota
	StateUpToDate
	StateUpdateAvailable
	StateStaged
	StateFailedFeed
	StateFailedNoVersion
	StateFailedNoAsset
	StateFailedDownload
	StateFailedStaging
	StateError
)

var stateNames = map[State]string{
	StateUnknown:         "unknown",
	StateUpToDate:        "up-to-date",
	StateUpdateAvailable: "update-available",
	StateStaged:          "staged",
	StateFailedFeed:      "feed-unreachable",
	StateFailedNoVersion: "version-missing",
	StateFailedNoAsset:   "no-asset",
	StateFailedDownload:  "artifact-unreachable",
	StateFailedStaging:   "staging-failed",
	StateError:           "error",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// Outcome is the single result of one check.
type Outcome struct {
	State          State
	CurrentVersion string
	NewVersion     string
	AssetURL       string
	StagedPath     string
	// Checksum is the SHA-256 of the staged file.
	Checksum string
	// StatusCode is the HTTP status behind a feed or download failure, 0 for
	// transport failures.
	StatusCode int
	Err        error
}

func (o Outcome) Terminal() bool {
	return o.State != StateUnknown
}

// Success reports whether the check ended without a failure, whether or not
// anything was staged.
func (o Outcome) Success() bool {
	switch o.State {
	case StateUpToDate, StateUpdateAvailable, StateStaged:
		return true
	default:
		return false
	}
}

func (o Outcome) String() string {
	switch {
	case o.Err != nil:
		return fmt.Sprintf("%s: %v", o.State, o.Err)
	case o.StagedPath != "":
		return fmt.Sprintf("%s: %s at %s", o.State, o.NewVersion, o.StagedPath)
	default:
		return o.State.String()
	}
}

// Rows renders the outcome as key/value pairs for a report table.
func (o Outcome) Rows() [][]string {
	rows := [][]string{
		{"Result", o.State.String()},
		{"Current version", orDash(o.CurrentVersion)},
		{"Latest version", orDash(o.NewVersion)},
	}
	if o.AssetURL != "" {
		rows = append(rows, []string{"Asset", o.AssetURL})
	}
	if o.StagedPath != "" {
		rows = append(rows, []string{"Staged at", pathutils.Abbrev(o.StagedPath)})
	}
	if o.Checksum != "" {
		rows = append(rows, []string{"SHA-256", o.Checksum})
	}
	if o.StatusCode != 0 {
		rows = append(rows, []string{"HTTP status", strconv.Itoa(o.StatusCode)})
	}
	if o.Err != nil {
		rows = append(rows, []string{"Error", o.Err.Error()})
	}
	return rows
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
