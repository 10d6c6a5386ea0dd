// Package lifecycle provides LifeCycle, an object whose construction and destruction
// are observable through its logger, and Registry, which hands out construction ordinals.
package lifecycle

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kjstillabower/unittesting-sample/internal/observability"
)

var defaultRegistry = NewRegistry(nil)

// New constructs a LifeCycle from the process-wide default registry.
func New() *LifeCycle {
	return defaultRegistry.New()
}

// SetLogger replaces the logger used by the default registry for instances created afterwards.
func SetLogger(logger *zap.Logger) {
	defaultRegistry.SetLogger(logger)
}

// Count returns the default registry's counter value.
func Count() int64 {
	return defaultRegistry.Count()
}

// Scope runs fn with an instance from the default registry and closes it afterwards.
func Scope(fn func(lc *LifeCycle)) {
	defaultRegistry.Scope(fn)
}

// Reset zeroes the default registry's counter. For tests only; nothing resets it implicitly.
func Reset() {
	defaultRegistry.counter.Store(0)
}

// Registry owns the ordinal counter for the LifeCycle objects it constructs.
// The zero value is ready to use and discards records.
type Registry struct {
	counter atomic.Int64
	logger  atomic.Pointer[zap.Logger]
}

// NewRegistry returns a registry whose counter starts at zero. A nil logger discards records.
func NewRegistry(logger *zap.Logger) *Registry {
	r := &Registry{}
	r.SetLogger(logger)
	return r
}

// SetLogger sets the logger handed to instances constructed after the call.
func (r *Registry) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r.logger.Store(logger)
}

// Count returns the ordinal of the most recently constructed instance, or 0 if none.
func (r *Registry) Count() int64 {
	return r.counter.Load()
}

// New increments the counter and returns an instance carrying the new value as its ordinal.
func (r *Registry) New() *LifeCycle {
	logger := r.logger.Load()
	if logger == nil {
		logger = zap.NewNop()
	}
	lc := &LifeCycle{
		instance: r.counter.Add(1),
		logger:   logger,
	}
	observability.LifeCycleCreatedTotal.Inc()
	observability.LifeCycleLive.Inc()
	lc.logger.Info("lifecycle init", zap.Int64("instance", lc.instance))
	return lc
}

// Scope constructs an instance, passes it to fn, and closes it when fn returns or panics.
func (r *Registry) Scope(fn func(lc *LifeCycle)) {
	lc := r.New()
	defer lc.Close()
	fn(lc)
}

// LifeCycle is an object that logs its own construction and destruction.
// Close ends its life; the deinit record is emitted once.
type LifeCycle struct {
	instance  int64
	logger    *zap.Logger
	closeOnce sync.Once
}

// Instance returns the ordinal assigned at construction.
func (lc *LifeCycle) Instance() int64 {
	return lc.instance
}

func (lc *LifeCycle) MethodOne() {
	lc.logger.Info("method one")
}

func (lc *LifeCycle) MethodTwo() {
	lc.logger.Info("method two")
}

// Close logs the deinit record with the construction ordinal. Safe to call more than once.
func (lc *LifeCycle) Close() error {
	lc.closeOnce.Do(func() {
		observability.LifeCycleLive.Dec()
		lc.logger.Info("lifecycle deinit", zap.Int64("instance", lc.instance))
	})
	return nil
}
