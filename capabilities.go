package appdelegate

import (
	"fmt"
	"strings"

	"github.com/takimoto3/appdelegate/notification"
	"github.com/takimoto3/appdelegate/notification/permission"
)

// Application is the capability every application must implement.
type Application interface {
	// SetupApplication is the first method called on launch. It is called once.
	SetupApplication()
	// LoadInterface is called with the launch item once per launch.
	LoadInterface(item LaunchItem)
}

// RemoteNotificationCapable applications receive push notifications.
// Declaring it makes the delegate register for remote notifications on launch.
type RemoteNotificationCapable interface {
	Application
	// DidRegisterForRemoteNotifications may be called many times per launch.
	DidRegisterForRemoteNotifications(deviceToken []byte)
	DidFailToRegisterForRemoteNotifications(err error)
	// DidReceiveRemoteNotification is not called for the notification
	// already delivered through LoadInterface. done must be called once.
	DidReceiveRemoteNotification(n *RemoteNotification, origin notification.Origin, done func(notification.FetchResult))
}

// RemoteNotificationActionCapable applications handle actions tapped on a
// remote notification.
type RemoteNotificationActionCapable interface {
	RemoteNotificationCapable
	UserNotificationCapable
	HandleRemoteNotificationAction(actionID string, n *RemoteNotification, responseInfo map[string]any, done func())
}

// UserNotificationCapable applications ask for user notification permissions.
type UserNotificationCapable interface {
	Application
	RequestedUserNotificationSettings() permission.Set
	// DidReceiveUserNotificationPermissions is called every time settings are
	// registered, which happens on each return to the foreground once
	// permissions have been requested.
	DidReceiveUserNotificationPermissions(grant permission.Grant)
}

// LocalNotificationCapable applications receive local notifications.
type LocalNotificationCapable interface {
	UserNotificationCapable
	// DidReceiveLocalNotification is not called for the notification already
	// delivered through LoadInterface.
	DidReceiveLocalNotification(n *notification.Local, origin notification.Origin)
}

// LocalNotificationActionCapable applications handle actions tapped on a
// local notification.
type LocalNotificationActionCapable interface {
	LocalNotificationCapable
	HandleLocalNotificationAction(actionID string, n *notification.Local, responseInfo map[string]any, done func())
}

// OpenURLCapable applications open URLs.
type OpenURLCapable interface {
	Application
	// CanOpenLaunchURL reports whether the URL can be handled from a cold start.
	CanOpenLaunchURL(u URLToOpen) bool
	// HandleURLToOpen is not called for the URL delivered through LoadInterface.
	HandleURLToOpen(u URLToOpen) bool
}

// ShortcutCapable applications handle home screen quick actions.
type ShortcutCapable interface {
	Application
	CanHandleShortcut(s *Shortcut) bool
	// HandleShortcut is never called with a shortcut CanHandleShortcut rejected.
	HandleShortcut(s *Shortcut, done func())
}

// UserActivityCapable applications continue user activities.
type UserActivityCapable interface {
	Application
	CanResumeUserActivity(a *UserActivity) bool
	ContinueUserActivity(a *UserActivity, restore func(objects []any)) bool
}

// HandoffCapable applications take part in Handoff.
type HandoffCapable interface {
	UserActivityCapable
	// WillContinueUserActivity returns true when the application notifies the
	// user itself that a continuation is in progress.
	WillContinueUserActivity(activityType string) bool
	DidUpdateUserActivity(a *UserActivity)
	DidFailToContinueUserActivity(activityType string, err error)
}

// StateRestorationCapable applications use OS state restoration. Declaring
// it makes the delegate load the interface during will-finish-launching.
type StateRestorationCapable interface {
	Application
	ShouldSaveApplicationState(c Coder) bool
	ShouldRestoreApplicationState(c Coder) bool
	WillEncodeRestorableState(c Coder)
	DidDecodeRestorableState(c Coder)
}

// WatchKitCapable applications answer requests from their WatchKit extension.
type WatchKitCapable interface {
	Application
	HandleWatchKitExtensionRequest(userInfo map[string]any, reply func(map[string]any))
}

// BackgroundBluetoothPeripheralCapable applications restore peripheral
// managers when relaunched for bluetooth activity.
type BackgroundBluetoothPeripheralCapable interface {
	Application
	RestoreBluetoothPeripheralManagers(identifiers []string)
}

// BackgroundBluetoothCentralCapable applications restore central managers
// when relaunched for bluetooth activity.
type BackgroundBluetoothCentralCapable interface {
	Application
	RestoreBluetoothCentralManagers(identifiers []string)
}

// LocationEventCapable applications can be launched for location events.
type LocationEventCapable interface {
	Application
	ApplicationLaunchedDueToLocationEvent()
}

// Capability is a set of optional capabilities.
type Capability uint

const (
	CapRemoteNotifications Capability = 1 << iota
	CapRemoteNotificationActions
	CapUserNotifications
	CapLocalNotifications
	CapLocalNotificationActions
	CapOpenURL
	CapShortcuts
	CapUserActivities
	CapHandoff
	CapStateRestoration
	CapWatchKit
	CapBluetoothPeripherals
	CapBluetoothCentrals
	CapLocationEvents

	AllCapabilities = CapLocationEvents<<1 - 1
)

var capabilityNames = []struct {
	c    Capability
	name string
}{
	{CapRemoteNotifications, "remote-notifications"},
	{CapRemoteNotificationActions, "remote-notification-actions"},
	{CapUserNotifications, "user-notifications"},
	{CapLocalNotifications, "local-notifications"},
	{CapLocalNotificationActions, "local-notification-actions"},
	{CapOpenURL, "open-url"},
	{CapShortcuts, "shortcuts"},
	{CapUserActivities, "user-activities"},
	{CapHandoff, "handoff"},
	{CapStateRestoration, "state-restoration"},
	{CapWatchKit, "watchkit"},
	{CapBluetoothPeripherals, "bluetooth-peripherals"},
	{CapBluetoothCentrals, "bluetooth-centrals"},
	{CapLocationEvents, "location-events"},
}

// Names lists the capabilities in c.
func (c Capability) Names() []string {
	var out []string
	for _, n := range capabilityNames {
		if c&n.c != 0 {
			out = append(out, n.name)
		}
	}
	return out
}

func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	return strings.Join(c.Names(), "|")
}

// ParseCapability returns the capability with the given name, as listed by
// Capability.Names.
func ParseCapability(name string) (Capability, error) {
	for _, n := range capabilityNames {
		if n.name == name {
			return n.c, nil
		}
	}
	return 0, fmt.Errorf("unknown capability %q", name)
}

// CapabilityDeclarer is implemented by applications whose method set covers
// more capabilities than they want to receive. Only the capabilities
// returned by DeclaredCapabilities are used.
type CapabilityDeclarer interface {
	DeclaredCapabilities() Capability
}

// capabilities holds the optional interfaces app declared, resolved once
// when the Delegate is created. A nil field means the capability is absent.
type capabilities struct {
	remoteNotifications       RemoteNotificationCapable
	remoteNotificationActions RemoteNotificationActionCapable
	userNotifications         UserNotificationCapable
	localNotifications        LocalNotificationCapable
	localNotificationActions  LocalNotificationActionCapable
	openURL                   OpenURLCapable
	shortcuts                 ShortcutCapable
	userActivities            UserActivityCapable
	handoff                   HandoffCapable
	stateRestoration          StateRestorationCapable
	watchKit                  WatchKitCapable
	bluetoothPeripherals      BackgroundBluetoothPeripheralCapable
	bluetoothCentrals         BackgroundBluetoothCentralCapable
	locationEvents            LocationEventCapable
}

func resolveCapabilities(app Application) capabilities {
	declared := AllCapabilities
	if d, ok := app.(CapabilityDeclarer); ok {
		declared = d.DeclaredCapabilities()
	}

	var c capabilities
	if declared&CapRemoteNotifications != 0 {
		c.remoteNotifications, _ = app.(RemoteNotificationCapable)
	}
	if declared&CapRemoteNotificationActions != 0 {
		c.remoteNotificationActions, _ = app.(RemoteNotificationActionCapable)
	}
	if declared&CapUserNotifications != 0 {
		c.userNotifications, _ = app.(UserNotificationCapable)
	}
	if declared&CapLocalNotifications != 0 {
		c.localNotifications, _ = app.(LocalNotificationCapable)
	}
	if declared&CapLocalNotificationActions != 0 {
		c.localNotificationActions, _ = app.(LocalNotificationActionCapable)
	}
	if declared&CapOpenURL != 0 {
		c.openURL, _ = app.(OpenURLCapable)
	}
	if declared&CapShortcuts != 0 {
		c.shortcuts, _ = app.(ShortcutCapable)
	}
	if declared&CapUserActivities != 0 {
		c.userActivities, _ = app.(UserActivityCapable)
	}
	if declared&CapHandoff != 0 {
		c.handoff, _ = app.(HandoffCapable)
	}
	if declared&CapStateRestoration != 0 {
		c.stateRestoration, _ = app.(StateRestorationCapable)
	}
	if declared&CapWatchKit != 0 {
		c.watchKit, _ = app.(WatchKitCapable)
	}
	if declared&CapBluetoothPeripherals != 0 {
		c.bluetoothPeripherals, _ = app.(BackgroundBluetoothPeripheralCapable)
	}
	if declared&CapBluetoothCentrals != 0 {
		c.bluetoothCentrals, _ = app.(BackgroundBluetoothCentralCapable)
	}
	if declared&CapLocationEvents != 0 {
		c.locationEvents, _ = app.(LocationEventCapable)
	}
	return c
}

// set returns the capabilities that resolved.
func (c capabilities) set() Capability {
	var out Capability
	add := func(ok bool, bit Capability) {
		if ok {
			out |= bit
		}
	}
	add(c.remoteNotifications != nil, CapRemoteNotifications)
	add(c.remoteNotificationActions != nil, CapRemoteNotificationActions)
	add(c.userNotifications != nil, CapUserNotifications)
	add(c.localNotifications != nil, CapLocalNotifications)
	add(c.localNotificationActions != nil, CapLocalNotificationActions)
	add(c.openURL != nil, CapOpenURL)
	add(c.shortcuts != nil, CapShortcuts)
	add(c.userActivities != nil, CapUserActivities)
	add(c.handoff != nil, CapHandoff)
	add(c.stateRestoration != nil, CapStateRestoration)
	add(c.watchKit != nil, CapWatchKit)
	add(c.bluetoothPeripherals != nil, CapBluetoothPeripherals)
	add(c.bluetoothCentrals != nil, CapBluetoothCentrals)
	add(c.locationEvents != nil, CapLocationEvents)
	return out
}
