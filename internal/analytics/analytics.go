// Package analytics provides the process-wide analytics tracker and the Tracker
// interface that call sites should depend on instead of the global accessor.
package analytics

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kjstillabower/unittesting-sample/internal/observability"
)

// Tracker records named events.
type Tracker interface {
	Track(event string)
}

var (
	shared     *Analytics
	sharedOnce sync.Once
)

// Shared returns the canonical Analytics instance, creating it on first use.
// The canonical instance logs through zap.L() so it follows zap.ReplaceGlobals.
func Shared() *Analytics {
	sharedOnce.Do(func() {
		shared = &Analytics{id: uuid.New()}
	})
	return shared
}

// Analytics logs tracked events. Instances other than Shared() are substitutes and say so.
type Analytics struct {
	id     uuid.UUID
	logger *zap.Logger
}

// New returns a non-canonical Analytics. A nil logger falls back to zap.L() at call time.
func New(logger *zap.Logger) *Analytics {
	return &Analytics{id: uuid.New(), logger: logger}
}

// ID identifies this instance in log output.
func (a *Analytics) ID() string {
	return a.id.String()
}

// IsShared reports whether a is the canonical instance. Identity, not field equality.
func (a *Analytics) IsShared() bool {
	return a == Shared()
}

func (a *Analytics) Track(event string) {
	logger := a.logger
	if logger == nil {
		logger = zap.L()
	}
	logger.Info("track", zap.String("event", event), zap.String("tracker_id", a.ID()))
	if !a.IsShared() {
		observability.AnalyticsEventsTotal.WithLabelValues("substitute").Inc()
		logger.Info("not the analytics singleton", zap.String("tracker_id", a.ID()))
		return
	}
	observability.AnalyticsEventsTotal.WithLabelValues("canonical").Inc()
}
