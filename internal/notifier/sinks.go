package notifier

import (
	"io"
	"time"
)

// Player emits the audible alert for a scan that produced due reminders.
// Playback failure is non-fatal; the service arms a one-shot retry on the
// next user gesture.
type Player interface {
	Play() error
	io.Closer
}

// Toast is a single user-facing notification with a bounded display time.
type Toast struct {
	Message  string
	Duration time.Duration
}

// ToastSink renders toasts. The service dequeues at most one per scan so
// a burst of simultaneously-due reminders is spread out.
type ToastSink interface {
	Show(toast Toast)
}
