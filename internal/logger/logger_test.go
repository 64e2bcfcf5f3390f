package logger

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture routes log output to a buffer for the duration of a test.
func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
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

func TestLevels_WhenVerbose(t *testing.T) {
	tests := []struct {
		name string
		log  func(string, ...any)
		want string
	}{
		{"debug", Debug, "[DEBUG] message arg 42"},
		{"info", Info, "[INFO] message arg 42"},
		{"warn", Warn, "[WARN] message arg 42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)

			tt.log("message %s %d", "arg", 42)

			assert.Equal(t, tt.want, strings.TrimSpace(buf.String()))
		})
	}
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("Hidden")

	assert.Zero(t, buf.Len())
}

func TestSection(t *testing.T) {
	buf := capture(t, true)

	Section("Search Execution")

	assert.Equal(t, "\n=== Search Execution ===\n", buf.String())
}

func TestSetOutput_AfterVerbose(t *testing.T) {
	capture(t, true)

	var other bytes.Buffer
	SetOutput(&other)
	Debug("redirected")

	assert.Contains(t, other.String(), "redirected")
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			SetVerbose(n%2 == 0)
			Debug("concurrent %d", n)
			Section("concurrent")
			_ = IsVerbose()
		}(i)
	}
	wg.Wait()
}
