package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verboseOn bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseOn)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Debug("scanned %d files", 3)

	assert.Equal(t, "[DEBUG] scanned 3 files\n", buf.String())
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("scanned")
	Info("planned")

	assert.Empty(t, buf.String())
}

func TestInfo_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Info("%d pages", 4)

	assert.Equal(t, "[INFO] 4 pages\n", buf.String())
}

func TestWarn_IgnoresVerbose(t *testing.T) {
	buf := capture(t, false)

	Warn("skipping %s", "a.jpg")

	assert.Equal(t, "[WARN] skipping a.jpg\n", buf.String())
}

func TestSection(t *testing.T) {
	buf := capture(t, true)

	Section("Layout")

	assert.Equal(t, "\n=== Layout ===\n", buf.String())
}

func TestTimed(t *testing.T) {
	buf := capture(t, true)

	done := Timed("render")
	done()

	assert.Contains(t, buf.String(), "[DEBUG] render took ")
}
