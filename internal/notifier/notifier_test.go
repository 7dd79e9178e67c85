package notifier

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/egerke001/halfop/internal/logger"
	"github.com/egerke001/halfop/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func TestWriter_PlainLines(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriter(&buf, false)

	s.Notify(Info("Checking for HalfOp updates..."))
	s.Notify(Warn("feed returned %d", 500))

	assert.Equal(t, "Checking for HalfOp updates...\nfeed returned 500\n", buf.String())
}

func TestMulti_SkipsNil(t *testing.T) {
	var got []string
	rec := SinkFunc(func(m Message) { got = append(got, m.Text) })

	Multi(nil, rec, nil, rec).Notify(Success("done"))
	assert.Equal(t, []string{"done", "done"}, got)

	assert.NotPanics(t, func() { Multi().Notify(Info("nobody listens")) })
}

func TestConsole_DoesNotPanicWhenSilenced(t *testing.T) {
	for _, lvl := range []Level{LevelInfo, LevelSuccess, LevelWarn, LevelError} {
		assert.NotPanics(t, func() { Console{}.Notify(Message{Level: lvl, Text: "x"}) })
	}
}

func TestDisplayStagedUpdate(t *testing.T) {
	var buf bytes.Buffer
	DisplayStagedUpdate(&buf, "1.0.0", "1.1.0")

	out := utils.StripANSI(buf.String())
	assert.Contains(t, out, "Update staged!")
	assert.Contains(t, out, "1.0.0 -> 1.1.0")
	assert.Contains(t, out, "next restart")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), "box must be rectangular: %q", l)
	}
}
