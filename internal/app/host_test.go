package app

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kjstillabower/unittesting-sample/internal/observability"
)

type countingDelegate struct {
	mu     sync.Mutex
	calls  int
	result bool
	got    LaunchOptions
}

func (d *countingDelegate) DidFinishLaunching(options LaunchOptions) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	d.got = options
	return d.result
}

func TestHost_Launch_CallsDelegateOnce(t *testing.T) {
	d := &countingDelegate{result: true}
	h := NewHost(d, nil)

	opts := LaunchOptions{"k": "v"}
	if !h.Launch(opts) {
		t.Fatal("Launch() = false, want true")
	}
	if !h.Launch(nil) {
		t.Error("second Launch() = false, want cached true")
	}
	if d.calls != 1 {
		t.Errorf("delegate calls = %d, want 1", d.calls)
	}
	if d.got["k"] != "v" {
		t.Errorf("delegate options = %v, want first call's options", d.got)
	}
	if !h.Launched() {
		t.Error("Launched() = false, want true")
	}
}

func TestHost_Launch_ConcurrentCallsDelegateOnce(t *testing.T) {
	d := &countingDelegate{result: true}
	h := NewHost(d, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Launch(nil)
		}()
	}
	wg.Wait()

	if d.calls != 1 {
		t.Errorf("delegate calls = %d, want 1", d.calls)
	}
}

func TestHost_Launch_DelegateReturnsFalse(t *testing.T) {
	d := &countingDelegate{result: false}
	h := NewHost(d, nil)

	if h.Launch(nil) {
		t.Error("Launch() = true, want delegate's false")
	}
	if h.Launched() {
		t.Error("Launched() = true, want false")
	}
}

func TestHost_Launch_SkippedWhenShuttingDown(t *testing.T) {
	d := &countingDelegate{result: true}
	core, logs := observer.New(zapcore.WarnLevel)
	h := NewHost(d, zap.New(core))
	h.SetShuttingDown(true)

	if h.Launch(nil) {
		t.Error("Launch() = true while shutting down, want false")
	}
	if d.calls != 0 {
		t.Errorf("delegate calls = %d, want 0", d.calls)
	}
	if logs.Len() != 1 {
		t.Errorf("warn records = %d, want 1", logs.Len())
	}
}

func TestHost_Launch_RunsAfterShutdownCleared(t *testing.T) {
	d := &countingDelegate{result: true}
	h := NewHost(d, nil)

	h.SetShuttingDown(true)
	if h.Launch(nil) {
		t.Fatal("Launch() = true while shutting down, want false")
	}
	h.SetShuttingDown(false)

	if !h.Launch(LaunchOptions{"retry": true}) {
		t.Error("Launch() after clearing shutdown = false, want true")
	}
	if d.calls != 1 {
		t.Errorf("delegate calls = %d, want 1", d.calls)
	}
	if d.got["retry"] != true {
		t.Errorf("delegate options = %v, want options from the launch that ran", d.got)
	}
	if !h.Launched() {
		t.Error("Launched() = false, want true")
	}
}

func TestHost_ShuttingDownFlag(t *testing.T) {
	h := NewHost(&countingDelegate{}, nil)
	if h.IsShuttingDown() {
		t.Error("IsShuttingDown() = true, want false by default")
	}
	h.SetShuttingDown(true)
	if !h.IsShuttingDown() {
		t.Error("IsShuttingDown() = false after SetShuttingDown(true), want true")
	}
	h.SetShuttingDown(false)
	if h.IsShuttingDown() {
		t.Error("IsShuttingDown() = true after SetShuttingDown(false), want false")
	}
}

func TestHost_Launch_RecordsMetric(t *testing.T) {
	series := observability.AppLaunchesTotal.WithLabelValues("testing", "true")
	before := testutil.ToFloat64(series)

	NewHost(&TestingDelegate{}, nil).Launch(nil)

	if got := testutil.ToFloat64(series); got != before+1 {
		t.Errorf("appLaunchesTotal{testing,true} = %v, want %v", got, before+1)
	}
}

func TestDelegateName(t *testing.T) {
	tests := []struct {
		d    Delegate
		want string
	}{
		{&TestingDelegate{}, "testing"},
		{NewDefaultDelegate(nil, &spyTracker{}), "default"},
		{&countingDelegate{}, "custom"},
	}
	for _, tt := range tests {
		if got := delegateName(tt.d); got != tt.want {
			t.Errorf("delegateName(%T) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
