package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerboseToggle(t *testing.T) {
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_SilentWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	Debug("should not appear")
	Info("should not appear")
	Warn("should not appear")
	Section("hidden")

	assert.Empty(t, buf.String())
}

func TestDebug_WritesWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})

	Debug("chunk %d of %d", 1, 3)
	Info("model %s", "llama3.1")
	Warn("chunk failed")
	Section("generation")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] chunk 1 of 3")
	assert.Contains(t, out, "[INFO] model llama3.1")
	assert.Contains(t, out, "[WARN] chunk failed")
	assert.Contains(t, out, "=== generation ===")
}
