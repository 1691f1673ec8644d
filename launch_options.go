// Package appdelegate dispatches mobile OS lifecycle callbacks to the
// capabilities an application declares, and suppresses the duplicate
// deliveries the OS makes of the event that launched the application.
package appdelegate

// LaunchOptionsKey names an entry of the launch options the OS passes to
// the two launch phases.
type LaunchOptionsKey string

const (
	// RemoteNotificationKey holds the remote notification dictionary.
	RemoteNotificationKey LaunchOptionsKey = "UIApplicationLaunchOptionsRemoteNotificationKey"
	// LocalNotificationKey holds a *notification.Local.
	LocalNotificationKey LaunchOptionsKey = "UIApplicationLaunchOptionsLocalNotificationKey"
	// URLKey holds the *url.URL to open.
	URLKey LaunchOptionsKey = "UIApplicationLaunchOptionsURLKey"
	// SourceApplicationKey holds the bundle ID of the application that launched this one.
	SourceApplicationKey LaunchOptionsKey = "UIApplicationLaunchOptionsSourceApplicationKey"
	// AnnotationKey holds a property list supplied by the source application.
	AnnotationKey LaunchOptionsKey = "UIApplicationLaunchOptionsAnnotationKey"
	// OpenInPlaceKey holds a bool that is false when the opened file must be copied before use.
	OpenInPlaceKey LaunchOptionsKey = "UIApplicationOpenURLOptionsOpenInPlaceKey"
	// ShortcutItemKey holds a *Shortcut.
	ShortcutItemKey LaunchOptionsKey = "UIApplicationLaunchOptionsShortcutItemKey"
	// UserActivityDictionaryKey holds a dictionary with the activity type and the activity itself.
	UserActivityDictionaryKey LaunchOptionsKey = "UIApplicationLaunchOptionsUserActivityDictionaryKey"
	// BluetoothPeripheralsKey holds the restore identifiers of peripheral managers.
	BluetoothPeripheralsKey LaunchOptionsKey = "UIApplicationLaunchOptionsBluetoothPeripheralsKey"
	// BluetoothCentralsKey holds the restore identifiers of central managers.
	BluetoothCentralsKey LaunchOptionsKey = "UIApplicationLaunchOptionsBluetoothCentralsKey"
	// LocationKey holds true when the app was launched for a location event.
	LocationKey LaunchOptionsKey = "UIApplicationLaunchOptionsLocationKey"
)

// Keys inside the user activity dictionary. The activity key has no public
// OS constant but is always present.
const (
	UserActivityTypeKey = "UIApplicationLaunchOptionsUserActivityTypeKey"
	UserActivityKey     = "UIApplicationLaunchOptionsUserActivityKey"
)

// LaunchOptions is the loosely typed bag the OS supplies at launch.
// Values are only expected to have the shapes documented on each key.
type LaunchOptions map[LaunchOptionsKey]any

// OpenURLOptionsKey names an entry of the options passed with a URL to open.
type OpenURLOptionsKey string

const (
	OpenURLSourceApplicationKey OpenURLOptionsKey = "UIApplicationOpenURLOptionsSourceApplicationKey"
	OpenURLAnnotationKey        OpenURLOptionsKey = "UIApplicationOpenURLOptionsAnnotationKey"
	OpenURLOpenInPlaceKey       OpenURLOptionsKey = "UIApplicationOpenURLOptionsOpenInPlaceKey"
)

// Features lists the OS features available to the classifier. Candidates
// that depend on a missing feature are skipped.
type Features struct {
	// Shortcuts is true when the OS can launch the app from a home screen quick action.
	Shortcuts bool
	// OpenInPlace is true when the OS reports whether URLs may be opened in place.
	OpenInPlace bool
}

// AllFeatures enables every OS feature.
func AllFeatures() Features {
	return Features{Shortcuts: true, OpenInPlace: true}
}

func (o LaunchOptions) strings(key LaunchOptionsKey) ([]string, bool) {
	switch v := o[key].(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func (o LaunchOptions) flag(key LaunchOptionsKey) bool {
	b, _ := o[key].(bool)
	return b
}
