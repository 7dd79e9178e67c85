package errs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMsg(t *testing.T) {
	assert.Equal(t, "HalfOp is up to date (2.0.0).", Msg(UpToDate, "HalfOp", "2.0.0"))
	assert.Equal(t, "New HalfOp version available: 1.1.0 (current: 1.0.0).", Msg(UpdateAvailable, "HalfOp", "1.1.0", "1.0.0"))
	assert.Equal(t, "No .jar asset found in the latest HalfOp release.", Msg(NoArtifactAsset, "HalfOp", ".jar"))
	assert.Contains(t, Msg(Staged, "HalfOp", "1.1.0"), "1.1.0")
}

func TestMsg_UnknownCode(t *testing.T) {
	assert.Equal(t, "SOMETHING_ELSE", Msg(Code("SOMETHING_ELSE")))
}

func TestMsg_EveryCodeHasText(t *testing.T) {
	for code, text := range messages {
		assert.NotEmpty(t, text, "code %s", code)
	}
}
