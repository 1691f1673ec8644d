package appdelegate_test

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/takimoto3/appdelegate"
	"github.com/takimoto3/appdelegate/apptest"
	"github.com/takimoto3/appdelegate/notification"
)

type harness struct {
	app      *apptest.App
	platform *apptest.Platform
	delegate *appdelegate.Delegate
	logs     *observer.ObservedLogs
}

func newHarness(t *testing.T, caps appdelegate.Capability, opts ...appdelegate.Option) *harness {
	t.Helper()
	return newHarnessWith(t, apptest.NewApp(caps), apptest.NewPlatform(), opts...)
}

func newHarnessWith(t *testing.T, app *apptest.App, platform *apptest.Platform, opts ...appdelegate.Option) *harness {
	t.Helper()
	logger, logs := observedLogger()
	opts = append([]appdelegate.Option{appdelegate.WithLogger(logger)}, opts...)
	return &harness{
		app:      app,
		platform: platform,
		delegate: appdelegate.New(app, platform, opts...),
		logs:     logs,
	}
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// launch runs both launch phases with opts and returns their results.
func (h *harness) launch(opts appdelegate.LaunchOptions) (will, did bool) {
	will = h.delegate.WillFinishLaunching(opts)
	did = h.delegate.DidFinishLaunching(opts)
	return will, did
}

func (h *harness) faultLogs() []observer.LoggedEntry {
	return h.logs.FilterLevelExact(zapcore.DPanicLevel).All()
}

func (h *harness) assertFaults(t *testing.T, want int) {
	t.Helper()
	if got := h.delegate.Faults(); got != want {
		t.Errorf("Faults() = %d, want %d", got, want)
	}
	if got := len(h.faultLogs()); got != want {
		t.Errorf("logged %d faults, want %d", got, want)
	}
}

func (h *harness) loadedItem(t *testing.T) appdelegate.LaunchItem {
	t.Helper()
	if len(h.app.LaunchItems) != 1 {
		t.Fatalf("LoadInterface called %d times, want 1", len(h.app.LaunchItems))
	}
	return h.app.LaunchItems[0]
}

// fetchRecorder records the results passed to a fetch completion.
type fetchRecorder struct {
	results []notification.FetchResult
}

func (r *fetchRecorder) done(res notification.FetchResult) {
	r.results = append(r.results, res)
}
