package logger

import (
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndLogPanic(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		Close()
		log.SetOutput(os.Stderr)
	})

	require.NoError(t, Init())
	assert.NotEmpty(t, GetLogPath())

	LogInfo("hello %s", "world")
	LogPanic("boom")
	Close()

	raw, err := os.ReadFile(GetLogPath())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[INFO] hello world")
	// panic 记录带调用栈
	assert.Contains(t, string(raw), "[PANIC] boom")
	assert.Contains(t, string(raw), "goroutine")
}
