// Package replay drives a Delegate through a launch and a sequence of OS
// callbacks described in a YAML scenario, and checks what the application
// received.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/takimoto3/appdelegate"
	"github.com/takimoto3/appdelegate/notification"
	"github.com/takimoto3/appdelegate/notification/permission"
)

// Scenario is one replayed launch.
type Scenario struct {
	// Name identifies the scenario in reports.
	Name string `yaml:"name"`

	// Description explains what the scenario checks.
	Description string `yaml:"description,omitempty"`

	// Capabilities lists the capabilities the application declares, by the
	// names Capability.Names returns.
	Capabilities []string `yaml:"capabilities"`

	App AppSettings `yaml:"app,omitempty"`

	// Launch describes the launch options. Without it the application is
	// not launched before the steps run.
	Launch *Launch `yaml:"launch,omitempty"`

	// Steps run in order after the launch.
	Steps []Step `yaml:"steps,omitempty"`

	Expect Expectation `yaml:"expect"`
}

// AppSettings configures the recording application and the OS state.
type AppSettings struct {
	// PreferredPermissions defaults to every permission.
	PreferredPermissions []string `yaml:"preferred_permissions,omitempty"`

	RejectShortcuts  bool `yaml:"reject_shortcuts,omitempty"`
	RejectLaunchURLs bool `yaml:"reject_launch_urls,omitempty"`
	RejectActivities bool `yaml:"reject_activities,omitempty"`

	// CurrentSettings are the notification settings the OS has on record.
	CurrentSettings []string `yaml:"current_settings,omitempty"`

	// PreviouslyRequested marks the preferred permissions as requested by
	// an earlier run of the application.
	PreviouslyRequested bool `yaml:"previously_requested,omitempty"`

	// State is the application state while launching; inactive by default.
	State string `yaml:"state,omitempty"`
}

// Launch is the launch options bag in scenario form.
type Launch struct {
	RemoteNotification   map[string]any     `yaml:"remote_notification,omitempty"`
	LocalNotification    *LocalNotification `yaml:"local_notification,omitempty"`
	URL                  string             `yaml:"url,omitempty"`
	SourceApplication    string             `yaml:"source_application,omitempty"`
	OpenInPlace          *bool              `yaml:"open_in_place,omitempty"`
	Shortcut             *Shortcut          `yaml:"shortcut,omitempty"`
	UserActivity         *UserActivity      `yaml:"user_activity,omitempty"`
	BluetoothPeripherals []string           `yaml:"bluetooth_peripherals,omitempty"`
	BluetoothCentrals    []string           `yaml:"bluetooth_centrals,omitempty"`
	Location             bool               `yaml:"location,omitempty"`

	// SkipWillFinish delivers only did-finish-launching, as older OS
	// versions do.
	SkipWillFinish bool `yaml:"skip_will_finish,omitempty"`
}

type LocalNotification struct {
	ID        string         `yaml:"id"`
	AlertBody string         `yaml:"alert_body,omitempty"`
	Category  string         `yaml:"category,omitempty"`
	UserInfo  map[string]any `yaml:"user_info,omitempty"`
}

func (n *LocalNotification) local() *notification.Local {
	return &notification.Local{
		ID:        n.ID,
		AlertBody: n.AlertBody,
		Category:  n.Category,
		UserInfo:  n.UserInfo,
	}
}

type Shortcut struct {
	Type     string         `yaml:"type"`
	Title    string         `yaml:"title,omitempty"`
	Subtitle string         `yaml:"subtitle,omitempty"`
	UserInfo map[string]any `yaml:"user_info,omitempty"`
}

func (s *Shortcut) shortcut() *appdelegate.Shortcut {
	return &appdelegate.Shortcut{
		Type:              s.Type,
		LocalizedTitle:    s.Title,
		LocalizedSubtitle: s.Subtitle,
		UserInfo:          s.UserInfo,
	}
}

type UserActivity struct {
	Type       string         `yaml:"type"`
	Title      string         `yaml:"title,omitempty"`
	WebpageURL string         `yaml:"webpage_url,omitempty"`
	UserInfo   map[string]any `yaml:"user_info,omitempty"`
}

func (a *UserActivity) activity() (*appdelegate.UserActivity, error) {
	act := &appdelegate.UserActivity{
		ActivityType: a.Type,
		Title:        a.Title,
		UserInfo:     a.UserInfo,
	}
	if a.WebpageURL != "" {
		u, err := url.Parse(a.WebpageURL)
		if err != nil {
			return nil, fmt.Errorf("user activity %q: %w", a.Type, err)
		}
		act.WebpageURL = u
	}
	return act, nil
}

// Step is one OS callback or platform action. Exactly one field is set.
type Step struct {
	// Post posts a lifecycle event by its Event.String name.
	Post string `yaml:"post,omitempty"`
	// Advance moves the platform clock.
	Advance time.Duration `yaml:"advance,omitempty"`

	RemoteNotification map[string]any     `yaml:"remote_notification,omitempty"`
	LocalNotification  *LocalNotification `yaml:"local_notification,omitempty"`
	OpenURL            string             `yaml:"open_url,omitempty"`
	Shortcut           *Shortcut          `yaml:"shortcut,omitempty"`
	UserActivity       *UserActivity      `yaml:"user_activity,omitempty"`
	WatchKit           map[string]any     `yaml:"watchkit,omitempty"`

	RequestPermissions bool `yaml:"request_permissions,omitempty"`
	// RegisteredSettings delivers the settings the OS registered.
	RegisteredSettings []string `yaml:"registered_settings,omitempty"`

	// Reset calls ResetAll.
	Reset bool `yaml:"reset,omitempty"`
}

func (s *Step) actions() int {
	n := 0
	for _, set := range []bool{
		s.Post != "",
		s.Advance != 0,
		s.RemoteNotification != nil,
		s.LocalNotification != nil,
		s.OpenURL != "",
		s.Shortcut != nil,
		s.UserActivity != nil,
		s.WatchKit != nil,
		s.RequestPermissions,
		s.RegisteredSettings != nil,
		s.Reset,
	} {
		if set {
			n++
		}
	}
	return n
}

// Expectation lists what the run must produce. Unset fields are not checked.
type Expectation struct {
	WillFinish *bool `yaml:"will_finish,omitempty"`
	DidFinish  *bool `yaml:"did_finish,omitempty"`

	// LaunchItem is the ItemKind.String name of the item the interface was
	// loaded with.
	LaunchItem string `yaml:"launch_item,omitempty"`

	// Calls is the exact sequence of application calls, as Result.Calls
	// reports them.
	Calls []string `yaml:"calls,omitempty"`

	// Counts maps application method names to their expected call counts.
	Counts map[string]int `yaml:"counts,omitempty"`

	// Completions is the exact sequence of step results.
	Completions []string `yaml:"completions,omitempty"`

	Faults *int `yaml:"faults,omitempty"`
}

// ErrInvalidScenario is returned for scenarios that cannot be run.
var ErrInvalidScenario = errors.New("invalid scenario")

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses a scenario from YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that the scenario can be run.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidScenario)
	}
	caps, err := s.capabilities()
	if err != nil {
		return err
	}
	if s.App.PreviouslyRequested && caps&appdelegate.CapUserNotifications == 0 {
		return fmt.Errorf("%w: previously_requested needs the user-notifications capability", ErrInvalidScenario)
	}
	if _, err := permission.ParseSet(s.App.PreferredPermissions...); err != nil {
		return fmt.Errorf("%w: preferred_permissions: %v", ErrInvalidScenario, err)
	}
	if _, err := permission.ParseSet(s.App.CurrentSettings...); err != nil {
		return fmt.Errorf("%w: current_settings: %v", ErrInvalidScenario, err)
	}
	if _, err := parseState(s.App.State); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	for i := range s.Steps {
		st := &s.Steps[i]
		if n := st.actions(); n != 1 {
			return fmt.Errorf("%w: step %d has %d actions, want exactly one", ErrInvalidScenario, i+1, n)
		}
		if st.Post != "" {
			if _, err := appdelegate.ParseEvent(st.Post); err != nil {
				return fmt.Errorf("%w: step %d: %v", ErrInvalidScenario, i+1, err)
			}
		}
		if st.Advance < 0 {
			return fmt.Errorf("%w: step %d: negative advance %v", ErrInvalidScenario, i+1, st.Advance)
		}
		if _, err := permission.ParseSet(st.RegisteredSettings...); err != nil {
			return fmt.Errorf("%w: step %d: %v", ErrInvalidScenario, i+1, err)
		}
	}
	return nil
}

func (s *Scenario) capabilities() (appdelegate.Capability, error) {
	var caps appdelegate.Capability
	for _, name := range s.Capabilities {
		c, err := appdelegate.ParseCapability(name)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
		caps |= c
	}
	return caps, nil
}

func parseState(name string) (appdelegate.State, error) {
	if name == "" {
		return appdelegate.StateInactive, nil
	}
	for _, st := range []appdelegate.State{appdelegate.StateActive, appdelegate.StateInactive, appdelegate.StateBackground} {
		if st.String() == name {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown application state %q", name)
}

// options converts the launch to a launch options bag.
func (l *Launch) options() (appdelegate.LaunchOptions, error) {
	opts := appdelegate.LaunchOptions{}
	if l.RemoteNotification != nil {
		opts[appdelegate.RemoteNotificationKey] = l.RemoteNotification
	}
	if l.LocalNotification != nil {
		opts[appdelegate.LocalNotificationKey] = l.LocalNotification.local()
	}
	if l.URL != "" {
		u, err := url.Parse(l.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: launch url: %v", ErrInvalidScenario, err)
		}
		opts[appdelegate.URLKey] = u
	}
	if l.SourceApplication != "" {
		opts[appdelegate.SourceApplicationKey] = l.SourceApplication
	}
	if l.OpenInPlace != nil {
		opts[appdelegate.OpenInPlaceKey] = *l.OpenInPlace
	}
	if l.Shortcut != nil {
		opts[appdelegate.ShortcutItemKey] = l.Shortcut.shortcut()
	}
	if l.UserActivity != nil {
		act, err := l.UserActivity.activity()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
		opts[appdelegate.UserActivityDictionaryKey] = map[string]any{
			appdelegate.UserActivityTypeKey: act.ActivityType,
			appdelegate.UserActivityKey:     act,
		}
	}
	if l.BluetoothPeripherals != nil {
		opts[appdelegate.BluetoothPeripheralsKey] = l.BluetoothPeripherals
	}
	if l.BluetoothCentrals != nil {
		opts[appdelegate.BluetoothCentralsKey] = l.BluetoothCentrals
	}
	if l.Location {
		opts[appdelegate.LocationKey] = true
	}
	return opts, nil
}
