package appdelegate

import (
	"fmt"
	"reflect"

	"github.com/takimoto3/appdelegate/notification"
	"github.com/takimoto3/appdelegate/payload"
)

// ItemKind identifies the variant of a LaunchItem.
type ItemKind int

const (
	KindNone ItemKind = iota
	KindRemoteNotification
	KindLocalNotification
	KindOpenURL
	KindShortcut
	KindUserActivity
	KindSourceApplication
	KindUnknown
)

func (k ItemKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindRemoteNotification:
		return "remote-notification"
	case KindLocalNotification:
		return "local-notification"
	case KindOpenURL:
		return "open-url"
	case KindShortcut:
		return "shortcut"
	case KindUserActivity:
		return "user-activity"
	case KindSourceApplication:
		return "source-application"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
}

// LaunchItem is the single reason the application was launched.
// Exactly one of the *Item types below implements it.
type LaunchItem interface {
	Kind() ItemKind
	// LaunchOptions returns launch options that reproduce the item, for
	// passing to third party APIs.
	LaunchOptions() LaunchOptions
	// Equal reports whether other is the same variant carrying an equal value.
	Equal(other LaunchItem) bool
	String() string

	launchItem()
}

// RemoteNotificationItem is a launch caused by the user tapping a push notification.
type RemoteNotificationItem struct {
	Notification *RemoteNotification
}

// LocalNotificationItem is a launch caused by a local notification.
type LocalNotificationItem struct {
	Notification *notification.Local
}

// OpenURLItem is a launch caused by another application opening a URL.
type OpenURLItem struct {
	URL URLToOpen
}

// ShortcutItem is a launch from a home screen quick action.
type ShortcutItem struct {
	Shortcut *Shortcut
}

// UserActivityItem is a launch to continue a user activity.
type UserActivityItem struct {
	Activity *UserActivity
}

// SourceApplicationItem is a launch where the OS supplied only the bundle ID
// of the launching application.
type SourceApplicationItem struct {
	BundleID string
}

// UnknownItem is a launch with options that match no other variant.
// Options holds them verbatim.
type UnknownItem struct {
	Options LaunchOptions
}

// NoItem is a launch without an actionable payload.
type NoItem struct{}

func (RemoteNotificationItem) Kind() ItemKind { return KindRemoteNotification }
func (LocalNotificationItem) Kind() ItemKind  { return KindLocalNotification }
func (OpenURLItem) Kind() ItemKind            { return KindOpenURL }
func (ShortcutItem) Kind() ItemKind           { return KindShortcut }
func (UserActivityItem) Kind() ItemKind       { return KindUserActivity }
func (SourceApplicationItem) Kind() ItemKind  { return KindSourceApplication }
func (UnknownItem) Kind() ItemKind            { return KindUnknown }
func (NoItem) Kind() ItemKind                 { return KindNone }

func (RemoteNotificationItem) launchItem() {}
func (LocalNotificationItem) launchItem()  {}
func (OpenURLItem) launchItem()            {}
func (ShortcutItem) launchItem()           {}
func (UserActivityItem) launchItem()       {}
func (SourceApplicationItem) launchItem()  {}
func (UnknownItem) launchItem()            {}
func (NoItem) launchItem()                 {}

func (i RemoteNotificationItem) LaunchOptions() LaunchOptions {
	return LaunchOptions{RemoteNotificationKey: i.Notification.Dictionary()}
}

func (i LocalNotificationItem) LaunchOptions() LaunchOptions {
	return LaunchOptions{LocalNotificationKey: i.Notification}
}

func (i OpenURLItem) LaunchOptions() LaunchOptions {
	opts := LaunchOptions{
		URLKey:         i.URL.URL,
		OpenInPlaceKey: !i.URL.CopyBeforeUse,
	}
	if i.URL.SourceApplicationBundleID != "" {
		opts[SourceApplicationKey] = i.URL.SourceApplicationBundleID
	}
	if i.URL.Annotation != nil {
		opts[AnnotationKey] = i.URL.Annotation
	}
	return opts
}

func (i ShortcutItem) LaunchOptions() LaunchOptions {
	return LaunchOptions{ShortcutItemKey: i.Shortcut}
}

func (i UserActivityItem) LaunchOptions() LaunchOptions {
	return LaunchOptions{
		UserActivityDictionaryKey: map[string]any{
			UserActivityTypeKey: i.Activity.ActivityType,
			UserActivityKey:     i.Activity,
		},
	}
}

func (i SourceApplicationItem) LaunchOptions() LaunchOptions {
	return LaunchOptions{SourceApplicationKey: i.BundleID}
}

func (i UnknownItem) LaunchOptions() LaunchOptions { return i.Options }

func (NoItem) LaunchOptions() LaunchOptions { return LaunchOptions{} }

func (i RemoteNotificationItem) Equal(other LaunchItem) bool {
	o, ok := other.(RemoteNotificationItem)
	return ok && i.Notification.Equal(o.Notification)
}

func (i LocalNotificationItem) Equal(other LaunchItem) bool {
	o, ok := other.(LocalNotificationItem)
	return ok && i.Notification.Equal(o.Notification)
}

func (i OpenURLItem) Equal(other LaunchItem) bool {
	o, ok := other.(OpenURLItem)
	return ok && i.URL.Equal(o.URL)
}

func (i ShortcutItem) Equal(other LaunchItem) bool {
	o, ok := other.(ShortcutItem)
	return ok && i.Shortcut.Equal(o.Shortcut)
}

func (i UserActivityItem) Equal(other LaunchItem) bool {
	o, ok := other.(UserActivityItem)
	return ok && i.Activity.Equal(o.Activity)
}

func (i SourceApplicationItem) Equal(other LaunchItem) bool {
	o, ok := other.(SourceApplicationItem)
	return ok && i.BundleID == o.BundleID
}

func (i UnknownItem) Equal(other LaunchItem) bool {
	o, ok := other.(UnknownItem)
	return ok && equalLaunchOptions(i.Options, o.Options)
}

func (NoItem) Equal(other LaunchItem) bool {
	_, ok := other.(NoItem)
	return ok
}

func (i RemoteNotificationItem) String() string {
	return "LaunchItem.RemoteNotification: " + i.Notification.String()
}

func (i LocalNotificationItem) String() string {
	return "LaunchItem.LocalNotification: " + i.Notification.String()
}

func (i OpenURLItem) String() string { return "LaunchItem.OpenURL: " + i.URL.String() }

func (i ShortcutItem) String() string { return "LaunchItem.Shortcut: " + i.Shortcut.String() }

func (i UserActivityItem) String() string {
	return "LaunchItem.UserActivity: " + i.Activity.String()
}

func (i SourceApplicationItem) String() string {
	return "LaunchItem.SourceApplication: " + i.BundleID
}

func (i UnknownItem) String() string {
	return fmt.Sprintf("LaunchItem.Unknown: %d keys", len(i.Options))
}

func (NoItem) String() string { return "LaunchItem.None" }

// Classify turns the launch options into exactly one LaunchItem.
//
// Candidates are tested in priority order: remote notification, local
// notification, URL, shortcut, user activity, source application only,
// unknown, none. The OS may supply more than one key; the first candidate
// that extracts cleanly wins. A candidate with the wrong shape falls through
// to the next one. Shortcuts are only considered when features.Shortcuts is
// set, and the open-in-place flag only when features.OpenInPlace is set.
func Classify(opts LaunchOptions, features Features) LaunchItem {
	if len(opts) == 0 {
		return NoItem{}
	}

	if v, ok := opts[RemoteNotificationKey]; ok {
		if n, ok := ParseRemoteNotification(v); ok {
			return RemoteNotificationItem{Notification: n}
		}
	}

	if n, ok := opts[LocalNotificationKey].(*notification.Local); ok && n != nil {
		return LocalNotificationItem{Notification: n}
	}

	if u, ok := parseURL(opts[URLKey]); ok {
		source, _ := opts[SourceApplicationKey].(string)
		toOpen := URLToOpen{
			URL:                       u,
			SourceApplicationBundleID: source,
			Annotation:                opts[AnnotationKey],
		}
		if features.OpenInPlace {
			if inPlace, ok := opts[OpenInPlaceKey].(bool); ok {
				toOpen.CopyBeforeUse = !inPlace
			}
		}
		return OpenURLItem{URL: toOpen}
	}

	if features.Shortcuts {
		if s, ok := opts[ShortcutItemKey].(*Shortcut); ok && s != nil {
			return ShortcutItem{Shortcut: s}
		}
	}

	if dict, ok := payload.AsMap(opts[UserActivityDictionaryKey]); ok {
		if a, ok := dict[UserActivityKey].(*UserActivity); ok && a != nil {
			return UserActivityItem{Activity: a}
		}
	}

	if bundleID, ok := opts[SourceApplicationKey].(string); ok && bundleID != "" {
		return SourceApplicationItem{BundleID: bundleID}
	}

	return UnknownItem{Options: opts}
}

func equalLaunchOptions(a, b LaunchOptions) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
