package errs

import "fmt"

type Code string

const (
	Checking          Code = "CHECKING"
	UpToDate          Code = "UP_TO_DATE"
	UpdateAvailable   Code = "UPDATE_AVAILABLE"
	Downloading       Code = "DOWNLOADING"
	Staged            Code = "STAGED"
	FeedUnreachable   Code = "FEED_UNREACHABLE"
	VersionMissing    Code = "VERSION_FIELD_MISSING"
	NoArtifactAsset   Code = "NO_ARTIFACT_ASSET"
	ArtifactFailed    Code = "ARTIFACT_UNREACHABLE"
	StagingFailed     Code = "STAGING_FAILURE"
	Unexpected        Code = "UNEXPECTED"
	PermissionDenied  Code = "PERMISSION_DENIED"
	CheckInProgress   Code = "CHECK_IN_PROGRESS"
	AutoCheckEnabled  Code = "AUTO_CHECK_ENABLED"
	AutoCheckDisabled Code = "AUTO_CHECK_DISABLED"
)

var messages = map[Code]string{
	Checking:          "Checking for %[1]s updates...",
	UpToDate:          "%[1]s is up to date (%[2]s).",
	UpdateAvailable:   "New %[1]s version available: %[2]s (current: %[3]s).",
	Downloading:       "Downloading %[1]s update...",
	Staged:            "%[1]s %[2]s downloaded. It will be applied on the next restart.",
	FeedUnreachable:   "Failed to check for %[1]s updates. %[2]s",
	VersionMissing:    "Could not determine the latest %[1]s version from the release feed.",
	NoArtifactAsset:   "No %[2]s asset found in the latest %[1]s release.",
	ArtifactFailed:    "Failed to download the %[1]s update. %[2]s",
	StagingFailed:     "Could not stage the %[1]s update: %[2]s",
	Unexpected:        "An error occurred while checking for %[1]s updates. Check the logs for details.",
	PermissionDenied:  "You do not have permission to run this command.",
	CheckInProgress:   "An update check is already running; waiting for its result.",
	AutoCheckEnabled:  "%[1]s starting up (update check on startup is enabled)...",
	AutoCheckDisabled: "%[1]s starting up (update check on startup is disabled in config)...",
}

func Msg(code Code, a ...any) string {
	msg := messages[code]
	if msg == "" {
		msg = string(code)
	}
	return fmt.Sprintf(msg, a...)
}
