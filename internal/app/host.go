package app

import (
	"strconv"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kjstillabower/unittesting-sample/internal/observability"
)

// Host owns a Delegate and calls its launch hook at most once.
type Host struct {
	delegate Delegate
	logger   *zap.Logger

	launchOnce   sync.Once
	launched     atomic.Bool
	shuttingDown atomic.Bool
}

func NewHost(delegate Delegate, logger *zap.Logger) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Host{delegate: delegate, logger: logger}
}

// Launch invokes the delegate's launch hook on the first call and returns its result.
// Later calls return the first result without calling the delegate again. While the
// host is shutting down Launch returns false and the delegate stays uncalled, so a
// later Launch after SetShuttingDown(false) still runs it.
func (h *Host) Launch(options LaunchOptions) bool {
	if h.shuttingDown.Load() {
		h.logger.Warn("launch skipped: host shutting down")
		return false
	}
	h.launchOnce.Do(func() {
		ok := h.delegate.DidFinishLaunching(options)
		name := delegateName(h.delegate)
		observability.AppLaunchesTotal.WithLabelValues(name, strconv.FormatBool(ok)).Inc()
		h.logger.Info("launch finished", zap.String("delegate", name), zap.Bool("continue", ok))
		h.launched.Store(ok)
	})
	return h.launched.Load()
}

// Launched reports whether the launch hook ran and returned true.
func (h *Host) Launched() bool {
	return h.launched.Load()
}

// SetShuttingDown marks the host as draining. Launch is refused while set.
func (h *Host) SetShuttingDown(v bool) {
	h.shuttingDown.Store(v)
}

func (h *Host) IsShuttingDown() bool {
	return h.shuttingDown.Load()
}

func delegateName(d Delegate) string {
	if n, ok := d.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "custom"
}
