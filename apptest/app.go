package apptest

import (
	"github.com/takimoto3/appdelegate"
	"github.com/takimoto3/appdelegate/notification"
	"github.com/takimoto3/appdelegate/notification/permission"
)

// Call is one method call the App received.
type Call struct {
	Method string
	Args   []any
}

// App implements every capability and records each call. Declared limits
// the capabilities the Delegate sees, so one App can stand in for any
// combination of capabilities.
type App struct {
	Declared appdelegate.Capability

	// Preferred is returned by RequestedUserNotificationSettings.
	Preferred permission.Set

	AcceptShortcuts  bool
	AcceptLaunchURLs bool
	ResumeActivities bool

	HandleURLResult        bool
	ContinueActivityResult bool
	WillContinueResult     bool
	SaveStateResult        bool
	RestoreStateResult     bool

	// FetchResult is passed to the completion of every remote notification.
	FetchResult notification.FetchResult
	// WatchKitReply is passed to the WatchKit reply handler.
	WatchKitReply map[string]any

	Calls       []Call
	LaunchItems []appdelegate.LaunchItem
	Grants      []permission.Grant
}

var (
	_ appdelegate.CapabilityDeclarer                   = (*App)(nil)
	_ appdelegate.RemoteNotificationActionCapable      = (*App)(nil)
	_ appdelegate.LocalNotificationActionCapable       = (*App)(nil)
	_ appdelegate.OpenURLCapable                       = (*App)(nil)
	_ appdelegate.ShortcutCapable                      = (*App)(nil)
	_ appdelegate.HandoffCapable                       = (*App)(nil)
	_ appdelegate.StateRestorationCapable              = (*App)(nil)
	_ appdelegate.WatchKitCapable                      = (*App)(nil)
	_ appdelegate.BackgroundBluetoothPeripheralCapable = (*App)(nil)
	_ appdelegate.BackgroundBluetoothCentralCapable    = (*App)(nil)
	_ appdelegate.LocationEventCapable                 = (*App)(nil)
)

// NewApp returns an App declaring caps that accepts every launch item and
// prefers every notification permission.
func NewApp(caps appdelegate.Capability) *App {
	return &App{
		Declared:               caps,
		Preferred:              permission.All,
		AcceptShortcuts:        true,
		AcceptLaunchURLs:       true,
		ResumeActivities:       true,
		HandleURLResult:        true,
		ContinueActivityResult: true,
		FetchResult:            notification.NewData,
	}
}

func (a *App) record(method string, args ...any) {
	a.Calls = append(a.Calls, Call{Method: method, Args: args})
}

// CallsTo returns the recorded calls of method.
func (a *App) CallsTo(method string) []Call {
	var out []Call
	for _, c := range a.Calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times method was called.
func (a *App) Count(method string) int { return len(a.CallsTo(method)) }

// Methods returns the names of the recorded calls, in order.
func (a *App) Methods() []string {
	out := make([]string, len(a.Calls))
	for i, c := range a.Calls {
		out[i] = c.Method
	}
	return out
}

func (a *App) DeclaredCapabilities() appdelegate.Capability { return a.Declared }

func (a *App) SetupApplication() { a.record("SetupApplication") }

func (a *App) LoadInterface(item appdelegate.LaunchItem) {
	a.record("LoadInterface", item)
	a.LaunchItems = append(a.LaunchItems, item)
}

func (a *App) DidRegisterForRemoteNotifications(deviceToken []byte) {
	a.record("DidRegisterForRemoteNotifications", deviceToken)
}

func (a *App) DidFailToRegisterForRemoteNotifications(err error) {
	a.record("DidFailToRegisterForRemoteNotifications", err)
}

func (a *App) DidReceiveRemoteNotification(n *appdelegate.RemoteNotification, origin notification.Origin, done func(notification.FetchResult)) {
	a.record("DidReceiveRemoteNotification", n, origin)
	done(a.FetchResult)
}

func (a *App) HandleRemoteNotificationAction(actionID string, n *appdelegate.RemoteNotification, responseInfo map[string]any, done func()) {
	a.record("HandleRemoteNotificationAction", actionID, n, responseInfo)
	done()
}

func (a *App) RequestedUserNotificationSettings() permission.Set { return a.Preferred }

func (a *App) DidReceiveUserNotificationPermissions(grant permission.Grant) {
	a.record("DidReceiveUserNotificationPermissions", grant)
	a.Grants = append(a.Grants, grant)
}

func (a *App) DidReceiveLocalNotification(n *notification.Local, origin notification.Origin) {
	a.record("DidReceiveLocalNotification", n, origin)
}

func (a *App) HandleLocalNotificationAction(actionID string, n *notification.Local, responseInfo map[string]any, done func()) {
	a.record("HandleLocalNotificationAction", actionID, n, responseInfo)
	done()
}

func (a *App) CanOpenLaunchURL(u appdelegate.URLToOpen) bool {
	a.record("CanOpenLaunchURL", u)
	return a.AcceptLaunchURLs
}

func (a *App) HandleURLToOpen(u appdelegate.URLToOpen) bool {
	a.record("HandleURLToOpen", u)
	return a.HandleURLResult
}

func (a *App) CanHandleShortcut(s *appdelegate.Shortcut) bool {
	a.record("CanHandleShortcut", s)
	return a.AcceptShortcuts
}

func (a *App) HandleShortcut(s *appdelegate.Shortcut, done func()) {
	a.record("HandleShortcut", s)
	done()
}

func (a *App) CanResumeUserActivity(act *appdelegate.UserActivity) bool {
	a.record("CanResumeUserActivity", act)
	return a.ResumeActivities
}

func (a *App) ContinueUserActivity(act *appdelegate.UserActivity, restore func([]any)) bool {
	a.record("ContinueUserActivity", act)
	return a.ContinueActivityResult
}

func (a *App) WillContinueUserActivity(activityType string) bool {
	a.record("WillContinueUserActivity", activityType)
	return a.WillContinueResult
}

func (a *App) DidUpdateUserActivity(act *appdelegate.UserActivity) {
	a.record("DidUpdateUserActivity", act)
}

func (a *App) DidFailToContinueUserActivity(activityType string, err error) {
	a.record("DidFailToContinueUserActivity", activityType, err)
}

func (a *App) ShouldSaveApplicationState(c appdelegate.Coder) bool {
	a.record("ShouldSaveApplicationState", c)
	return a.SaveStateResult
}

func (a *App) ShouldRestoreApplicationState(c appdelegate.Coder) bool {
	a.record("ShouldRestoreApplicationState", c)
	return a.RestoreStateResult
}

func (a *App) WillEncodeRestorableState(c appdelegate.Coder) {
	a.record("WillEncodeRestorableState", c)
}

func (a *App) DidDecodeRestorableState(c appdelegate.Coder) {
	a.record("DidDecodeRestorableState", c)
}

func (a *App) HandleWatchKitExtensionRequest(userInfo map[string]any, reply func(map[string]any)) {
	a.record("HandleWatchKitExtensionRequest", userInfo)
	reply(a.WatchKitReply)
}

func (a *App) RestoreBluetoothPeripheralManagers(identifiers []string) {
	a.record("RestoreBluetoothPeripheralManagers", identifiers)
}

func (a *App) RestoreBluetoothCentralManagers(identifiers []string) {
	a.record("RestoreBluetoothCentralManagers", identifiers)
}

func (a *App) ApplicationLaunchedDueToLocationEvent() {
	a.record("ApplicationLaunchedDueToLocationEvent")
}
