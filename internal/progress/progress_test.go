package progress

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "Working...")

	if spinner.IsActive() {
		t.Error("spinner should not be active initially")
	}

	spinner.Start()
	if !spinner.IsActive() {
		t.Error("spinner should be active after Start()")
	}

	// allow a few frames to render
	time.Sleep(250 * time.Millisecond)

	spinner.Stop()
	if spinner.IsActive() {
		t.Error("spinner should not be active after Stop()")
	}

	if buf.Len() == 0 {
		t.Error("expected output to be written to buffer")
	}
}

func TestSpinnerDoubleStart(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "msg")

	spinner.Start()
	spinner.Start() // second start is a no-op
	spinner.Stop()
	spinner.Stop() // second stop is a no-op
}

func TestSpinnerContextCancellation(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	spinner := New(ctx, &buf, "msg")

	spinner.Start()
	cancel()

	// Stop still cleans up after external cancellation
	spinner.Stop()
	if spinner.IsActive() {
		t.Error("spinner should not be active after Stop()")
	}
}

func TestUpdateMessage(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "first")

	spinner.UpdateMessage("second")
	spinner.mu.RLock()
	got := spinner.message
	spinner.mu.RUnlock()
	if got != "second" {
		t.Errorf("message = %q, want %q", got, "second")
	}
}
