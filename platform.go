package appdelegate

import (
	"fmt"
	"time"

	"github.com/takimoto3/appdelegate/notification/permission"
)

// State is the application state reported by the OS.
type State int

const (
	StateActive State = iota
	StateInactive
	StateBackground
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	case StateBackground:
		return "background"
	default:
		return "unknown"
	}
}

// Event is an application lifecycle notification posted by the OS.
type Event int

const (
	DidBecomeActive Event = iota
	DidEnterBackground
	WillEnterForeground
)

func (e Event) String() string {
	switch e {
	case DidBecomeActive:
		return "did-become-active"
	case DidEnterBackground:
		return "did-enter-background"
	case WillEnterForeground:
		return "will-enter-foreground"
	default:
		return "unknown"
	}
}

// ParseEvent returns the event named as by Event.String.
func ParseEvent(name string) (Event, error) {
	for _, e := range []Event{DidBecomeActive, DidEnterBackground, WillEnterForeground} {
		if e.String() == name {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown event %q", name)
}

// Preferences is a persistent key-value store.
type Preferences interface {
	Bool(key string) bool
	SetBool(key string, v bool)
}

// Coder is the archive used for state preservation and restoration.
type Coder interface {
	Encode(key string, v any)
	Decode(key string) (any, bool)
}

// Platform is the part of the OS the Delegate talks to. Every method and
// every callback it schedules runs on the OS main sequencing context.
type Platform interface {
	ApplicationState() State
	RegisterForRemoteNotifications()
	RegisterUserNotificationSettings(types permission.Set)
	// CurrentUserNotificationSettings returns the settings the OS has on
	// record, if any.
	CurrentUserNotificationSettings() (permission.Set, bool)
	// Observe calls fn every time ev is posted until cancel is called.
	Observe(ev Event, fn func()) (cancel func())
	// AfterFunc calls fn once after d unless cancel is called first.
	AfterFunc(d time.Duration, fn func()) (cancel func())
	Preferences() Preferences
}
