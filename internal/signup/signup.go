// Package signup is a call site for analytics. It receives its Tracker through NewFlow
// so tests can pass a spy; only production wiring falls back to analytics.Shared().
package signup

import "github.com/kjstillabower/unittesting-sample/internal/analytics"

const (
	EventCompleted = "signup"
	EventCancelled = "signup_cancelled"
)

type Flow struct {
	tracker analytics.Tracker
}

// NewFlow returns a Flow reporting to tracker, or to the canonical analytics instance when tracker is nil.
func NewFlow(tracker analytics.Tracker) *Flow {
	if tracker == nil {
		tracker = analytics.Shared()
	}
	return &Flow{tracker: tracker}
}

func (f *Flow) Complete() {
	f.tracker.Track(EventCompleted)
}

func (f *Flow) Cancel() {
	f.tracker.Track(EventCancelled)
}
