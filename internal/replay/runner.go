package replay

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/takimoto3/appdelegate"
	"github.com/takimoto3/appdelegate/apptest"
	"github.com/takimoto3/appdelegate/notification"
	"github.com/takimoto3/appdelegate/notification/permission"
)

// Result is what a scenario run produced.
type Result struct {
	Scenario string `json:"scenario"`
	LaunchID string `json:"launch_id"`

	Launched   bool   `json:"launched"`
	WillFinish bool   `json:"will_finish"`
	DidFinish  bool   `json:"did_finish"`
	LaunchItem string `json:"launch_item,omitempty"`

	// Calls are the application calls in order. Notification deliveries
	// carry their origin, e.g. "DidReceiveRemoteNotification(user-tapped)".
	Calls []string `json:"calls"`

	// Completions are the step results in order, e.g.
	// "remote-notification: no-data" or "open-url: true".
	Completions []string `json:"completions"`

	Faults int `json:"faults"`

	// Failures lists the unmet expectations.
	Failures []string `json:"failures,omitempty"`
}

// Passed reports whether every expectation was met.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

type runner struct {
	s        *Scenario
	logger   *zap.Logger
	app      *apptest.App
	platform *apptest.Platform
	delegate *appdelegate.Delegate
	result   *Result
}

// Run replays s against a recording application on an in-memory platform.
// The returned error reports a scenario that could not be run; unmet
// expectations are listed in Result.Failures.
func Run(s *Scenario, logger *zap.Logger, opts ...appdelegate.Option) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r, err := newRunner(s, logger, opts)
	if err != nil {
		return nil, err
	}
	if err := r.launch(); err != nil {
		return nil, err
	}
	for i, st := range s.Steps {
		if err := r.step(st); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	r.finish()
	return r.result, nil
}

func newRunner(s *Scenario, logger *zap.Logger, opts []appdelegate.Option) (*runner, error) {
	caps, err := s.capabilities()
	if err != nil {
		return nil, err
	}

	app := apptest.NewApp(caps)
	if len(s.App.PreferredPermissions) > 0 {
		app.Preferred, _ = permission.ParseSet(s.App.PreferredPermissions...)
	}
	app.AcceptShortcuts = !s.App.RejectShortcuts
	app.AcceptLaunchURLs = !s.App.RejectLaunchURLs
	app.ResumeActivities = !s.App.RejectActivities

	prefs := apptest.NewPreferences()
	if s.App.PreviouslyRequested {
		// An earlier run of the same application asked for permissions.
		earlierApp := apptest.NewApp(appdelegate.CapUserNotifications)
		earlierApp.Preferred = app.Preferred
		appdelegate.New(earlierApp, apptest.NewPlatformWithPreferences(prefs)).RequestUserNotificationPermissions()
	}

	platform := apptest.NewPlatformWithPreferences(prefs)
	state, _ := parseState(s.App.State)
	platform.SetState(state)
	if s.App.CurrentSettings != nil {
		current, _ := permission.ParseSet(s.App.CurrentSettings...)
		platform.SetCurrentUserNotificationSettings(current)
	}

	logger = logger.With(zap.String("scenario", s.Name))
	opts = append([]appdelegate.Option{appdelegate.WithLogger(logger)}, opts...)
	d := appdelegate.New(app, platform, opts...)

	return &runner{
		s:        s,
		logger:   logger,
		app:      app,
		platform: platform,
		delegate: d,
		result:   &Result{Scenario: s.Name},
	}, nil
}

func (r *runner) launch() error {
	if r.s.Launch == nil {
		return nil
	}
	opts, err := r.s.Launch.options()
	if err != nil {
		return err
	}

	r.result.Launched = true
	r.result.WillFinish = true
	if !r.s.Launch.SkipWillFinish {
		r.result.WillFinish = r.delegate.WillFinishLaunching(opts)
	}
	r.result.DidFinish = r.delegate.DidFinishLaunching(opts)
	if len(r.app.LaunchItems) > 0 {
		r.result.LaunchItem = r.app.LaunchItems[0].Kind().String()
	}
	r.logger.Debug("launched",
		zap.Bool("will_finish", r.result.WillFinish),
		zap.Bool("did_finish", r.result.DidFinish),
		zap.String("launch_item", r.result.LaunchItem),
	)
	return nil
}

func (r *runner) complete(format string, args ...any) {
	r.result.Completions = append(r.result.Completions, fmt.Sprintf(format, args...))
}

func (r *runner) step(st Step) error {
	d := r.delegate
	switch {
	case st.Post != "":
		ev, err := appdelegate.ParseEvent(st.Post)
		if err != nil {
			return err
		}
		r.logger.Debug("posting event", zap.Stringer("event", ev))
		r.platform.Post(ev)

	case st.Advance != 0:
		r.logger.Debug("advancing clock", zap.Duration("by", st.Advance))
		r.platform.Advance(st.Advance)

	case st.RemoteNotification != nil:
		d.DidReceiveRemoteNotification(st.RemoteNotification, func(res notification.FetchResult) {
			r.complete("remote-notification: %s", res)
		})

	case st.LocalNotification != nil:
		d.DidReceiveLocalNotification(st.LocalNotification.local())

	case st.OpenURL != "":
		u, err := url.Parse(st.OpenURL)
		if err != nil {
			return fmt.Errorf("%w: open_url: %v", ErrInvalidScenario, err)
		}
		r.complete("open-url: %t", d.OpenURL(u, nil))

	case st.Shortcut != nil:
		d.PerformShortcut(st.Shortcut.shortcut(), func(ok bool) {
			r.complete("shortcut: %t", ok)
		})

	case st.UserActivity != nil:
		act, err := st.UserActivity.activity()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
		r.complete("user-activity: %t", d.ContinueUserActivity(act, nil))

	case st.WatchKit != nil:
		d.HandleWatchKitExtensionRequest(st.WatchKit, func(map[string]any) {
			r.complete("watchkit: replied")
		})

	case st.RequestPermissions:
		d.RequestUserNotificationPermissions()

	case st.RegisteredSettings != nil:
		settings, err := permission.ParseSet(st.RegisteredSettings...)
		if err != nil {
			return err
		}
		d.DidRegisterUserNotificationSettings(settings)

	case st.Reset:
		d.ResetAll()
	}
	return nil
}

func (r *runner) finish() {
	r.result.LaunchID = r.delegate.LaunchID().String()
	r.result.Faults = r.delegate.Faults()
	r.result.Calls = make([]string, 0, len(r.app.Calls))
	for _, c := range r.app.Calls {
		r.result.Calls = append(r.result.Calls, describeCall(c))
	}
	if r.result.Completions == nil {
		r.result.Completions = []string{}
	}
	r.result.Failures = check(r.s.Expect, r.result, r.app)
}

// describeCall names c, adding the origin of notification deliveries and
// the kind of granted permissions.
func describeCall(c apptest.Call) string {
	var details []string
	for _, arg := range c.Args {
		switch v := arg.(type) {
		case notification.Origin:
			details = append(details, v.String())
		case permission.Grant:
			details = append(details, v.String())
		}
	}
	if len(details) == 0 {
		return c.Method
	}
	return c.Method + "(" + strings.Join(details, ", ") + ")"
}

func check(want Expectation, got *Result, app *apptest.App) []string {
	var failures []string
	fail := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}

	if want.WillFinish != nil && *want.WillFinish != got.WillFinish {
		fail("will_finish = %t, want %t", got.WillFinish, *want.WillFinish)
	}
	if want.DidFinish != nil && *want.DidFinish != got.DidFinish {
		fail("did_finish = %t, want %t", got.DidFinish, *want.DidFinish)
	}
	if want.LaunchItem != "" && want.LaunchItem != got.LaunchItem {
		fail("launch_item = %q, want %q", got.LaunchItem, want.LaunchItem)
	}
	if want.Calls != nil && !slices.Equal(want.Calls, got.Calls) {
		fail("calls = %s, want %s", quoteList(got.Calls), quoteList(want.Calls))
	}
	methods := make([]string, 0, len(want.Counts))
	for m := range want.Counts {
		methods = append(methods, m)
	}
	slices.Sort(methods)
	for _, m := range methods {
		if n := app.Count(m); n != want.Counts[m] {
			fail("%s called %d times, want %d", m, n, want.Counts[m])
		}
	}
	if want.Completions != nil && !slices.Equal(want.Completions, got.Completions) {
		fail("completions = %s, want %s", quoteList(got.Completions), quoteList(want.Completions))
	}
	if want.Faults != nil && *want.Faults != got.Faults {
		fail("faults = %d, want %d", got.Faults, *want.Faults)
	}
	return failures
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(quoted, " ") + "]"
}
