package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// resetState restores package state after a test mutates the globals.
func resetState() func() {
	return func() {
		SetEnabled(false)
		SetOutput(nil)
	}
}

func TestSetEnabled(t *testing.T) {
	defer resetState()()

	SetEnabled(true)
	assert.True(t, Enabled())

	SetEnabled(false)
	assert.False(t, Enabled())
}

func TestPrintf_SilentWhenDisabled(t *testing.T) {
	defer resetState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetEnabled(false)

	Printf("walker", "discovered %d files", 3)

	assert.Empty(t, buf.String())
}

func TestPrintf_WritesWhenEnabled(t *testing.T) {
	defer resetState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetEnabled(true)

	Printf("walker", "discovered %d files", 3)

	out := buf.String()
	assert.Contains(t, out, "[walker]")
	assert.Contains(t, out, "discovered 3 files")
}

func TestPrintln_TagsOutput(t *testing.T) {
	defer resetState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetEnabled(true)

	Println("pipeline", "worker pool drained")

	out := buf.String()
	assert.Contains(t, out, "[pipeline]")
	assert.Contains(t, out, "worker pool drained")
}

func TestNoOutputWithNilWriter(t *testing.T) {
	defer resetState()()

	SetOutput(nil)
	SetEnabled(true)

	// Must not panic when no writer is configured.
	Printf("test", "message %s", "here")
	Println("test", "message")
}

func TestConcurrentLogging(t *testing.T) {
	defer resetState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetEnabled(true)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			Printf("concurrent", "message from goroutine %d", id)
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	assert.True(t, true)
}
