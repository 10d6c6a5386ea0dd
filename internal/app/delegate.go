// Package app is the host application shell: a launch hook called once at startup
// and the testing delegate that replaces the production one under the test harness.
package app

import (
	"go.uber.org/zap"

	"github.com/kjstillabower/unittesting-sample/internal/analytics"
)

// EventLaunch is tracked by DefaultDelegate on every successful launch.
const EventLaunch = "app_launch"

// LaunchOptions is passed to the launch hook. Neither shipped delegate reads it.
type LaunchOptions map[string]any

// Delegate is the startup contract. Returning true continues normal startup.
type Delegate interface {
	DidFinishLaunching(options LaunchOptions) bool
}

// TestingDelegate is installed when running under the test harness.
// It performs no startup work and always succeeds.
type TestingDelegate struct {
	Logger *zap.Logger
}

func (d *TestingDelegate) Name() string { return "testing" }

func (d *TestingDelegate) DidFinishLaunching(options LaunchOptions) bool {
	if d.Logger != nil {
		d.Logger.Info("launching with testing app delegate")
	}
	return true
}

// DefaultDelegate is the production startup path.
type DefaultDelegate struct {
	logger  *zap.Logger
	tracker analytics.Tracker
}

// NewDefaultDelegate returns the production delegate. A nil tracker means analytics.Shared().
func NewDefaultDelegate(logger *zap.Logger, tracker analytics.Tracker) *DefaultDelegate {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tracker == nil {
		tracker = analytics.Shared()
	}
	return &DefaultDelegate{logger: logger, tracker: tracker}
}

func (d *DefaultDelegate) Name() string { return "default" }

func (d *DefaultDelegate) DidFinishLaunching(options LaunchOptions) bool {
	d.logger.Info("launching", zap.Int("options", len(options)))
	d.tracker.Track(EventLaunch)
	return true
}

// SelectDelegate returns the testing delegate when testingMode is set, otherwise the production one.
func SelectDelegate(testingMode bool, logger *zap.Logger, tracker analytics.Tracker) Delegate {
	if testingMode {
		return &TestingDelegate{Logger: logger}
	}
	return NewDefaultDelegate(logger, tracker)
}
