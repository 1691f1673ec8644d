// Package apptest provides in-memory doubles of the OS and of an
// application for driving an appdelegate.Delegate in tests and replays.
package apptest

import (
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/takimoto3/appdelegate"
	"github.com/takimoto3/appdelegate/notification/permission"
)

type subscription struct {
	id uuid.UUID
	fn func()
}

type timer struct {
	id  uuid.UUID
	due time.Duration
	fn  func()
}

// Platform is an appdelegate.Platform whose clock only moves when Advance is
// called and whose events are only posted by Post. Callbacks run
// synchronously on the calling goroutine.
type Platform struct {
	state appdelegate.State
	now   time.Duration

	observers map[appdelegate.Event][]subscription
	timers    []timer
	prefs     *Preferences

	current    permission.Set
	hasCurrent bool

	remoteRegistrations   int
	settingsRegistrations []permission.Set
}

var _ appdelegate.Platform = (*Platform)(nil)

// NewPlatform returns a Platform in the inactive state, as the OS reports
// while launching.
func NewPlatform() *Platform {
	return NewPlatformWithPreferences(NewPreferences())
}

// NewPlatformWithPreferences returns a Platform sharing prefs, which lets a
// test relaunch an application against the same persisted preferences.
func NewPlatformWithPreferences(prefs *Preferences) *Platform {
	return &Platform{
		state:     appdelegate.StateInactive,
		observers: make(map[appdelegate.Event][]subscription),
		prefs:     prefs,
	}
}

func (p *Platform) ApplicationState() appdelegate.State { return p.state }

// SetState changes the reported application state without posting events.
func (p *Platform) SetState(s appdelegate.State) { p.state = s }

func (p *Platform) RegisterForRemoteNotifications() { p.remoteRegistrations++ }

// RemoteRegistrations returns how many times registration for remote
// notifications was requested.
func (p *Platform) RemoteRegistrations() int { return p.remoteRegistrations }

func (p *Platform) RegisterUserNotificationSettings(types permission.Set) {
	p.settingsRegistrations = append(p.settingsRegistrations, types)
}

// SettingsRegistrations returns every registered settings set, in order.
func (p *Platform) SettingsRegistrations() []permission.Set {
	return slices.Clone(p.settingsRegistrations)
}

// SetCurrentUserNotificationSettings sets the settings the OS has on record.
func (p *Platform) SetCurrentUserNotificationSettings(s permission.Set) {
	p.current = s
	p.hasCurrent = true
}

func (p *Platform) CurrentUserNotificationSettings() (permission.Set, bool) {
	return p.current, p.hasCurrent
}

func (p *Platform) Observe(ev appdelegate.Event, fn func()) func() {
	id := uuid.New()
	p.observers[ev] = append(p.observers[ev], subscription{id: id, fn: fn})
	return func() {
		p.observers[ev] = slices.DeleteFunc(p.observers[ev], func(s subscription) bool {
			return s.id == id
		})
	}
}

// Observers returns how many observers are subscribed to ev.
func (p *Platform) Observers(ev appdelegate.Event) int { return len(p.observers[ev]) }

// Post updates the application state the way the OS does for ev and calls
// every observer of ev in subscription order.
func (p *Platform) Post(ev appdelegate.Event) {
	switch ev {
	case appdelegate.DidBecomeActive:
		p.state = appdelegate.StateActive
	case appdelegate.DidEnterBackground:
		p.state = appdelegate.StateBackground
	case appdelegate.WillEnterForeground:
		p.state = appdelegate.StateInactive
	}
	for _, s := range slices.Clone(p.observers[ev]) {
		s.fn()
	}
}

func (p *Platform) AfterFunc(d time.Duration, fn func()) func() {
	id := uuid.New()
	p.timers = append(p.timers, timer{id: id, due: p.now + d, fn: fn})
	return func() { p.removeTimer(id) }
}

func (p *Platform) removeTimer(id uuid.UUID) {
	p.timers = slices.DeleteFunc(p.timers, func(t timer) bool { return t.id == id })
}

// PendingTimers returns how many timers have not fired or been cancelled.
func (p *Platform) PendingTimers() int { return len(p.timers) }

// Now returns how far the clock was advanced.
func (p *Platform) Now() time.Duration { return p.now }

// Advance moves the clock forward by d and fires every timer that becomes
// due, earliest first.
func (p *Platform) Advance(d time.Duration) {
	target := p.now + d
	for {
		due := slices.Clone(p.timers)
		due = slices.DeleteFunc(due, func(t timer) bool { return t.due > target })
		if len(due) == 0 {
			break
		}
		sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
		next := due[0]
		p.removeTimer(next.id)
		p.now = next.due
		next.fn()
	}
	p.now = target
}

func (p *Platform) Preferences() appdelegate.Preferences { return p.prefs }

// Preferences is an in-memory appdelegate.Preferences.
type Preferences struct {
	values map[string]bool
}

func NewPreferences() *Preferences {
	return &Preferences{values: make(map[string]bool)}
}

func (p *Preferences) Bool(key string) bool { return p.values[key] }

func (p *Preferences) SetBool(key string, v bool) { p.values[key] = v }

// Keys returns the keys set to true, sorted.
func (p *Preferences) Keys() []string {
	var keys []string
	for k, v := range p.values {
		if v {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Coder is an in-memory appdelegate.Coder.
type Coder map[string]any

func (c Coder) Encode(key string, v any) { c[key] = v }

func (c Coder) Decode(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}
