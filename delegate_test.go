package appdelegate_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/takimoto3/appdelegate"
	"github.com/takimoto3/appdelegate/apptest"
	"github.com/takimoto3/appdelegate/notification"
	"github.com/takimoto3/appdelegate/notification/permission"
)

func launchPush() map[string]any {
	return map[string]any{
		"aps":      map[string]any{"alert": map[string]any{"title": "Order", "body": "Shipped"}, "badge": 1},
		"order_id": "A-1001",
	}
}

func TestLaunchWithRemoteNotificationSuppressesRedelivery(t *testing.T) {
	h := newHarness(t, appdelegate.CapRemoteNotifications)

	will, did := h.launch(appdelegate.LaunchOptions{appdelegate.RemoteNotificationKey: launchPush()})
	if !will || !did {
		t.Fatalf("launch = (%v, %v), want (true, true)", will, did)
	}
	want := appdelegate.RemoteNotificationItem{Notification: mustNotification(t, launchPush())}
	if item := h.loadedItem(t); !item.Equal(want) {
		t.Fatalf("LoadInterface(%v), want %v", item, want)
	}

	for i := 0; i < 2; i++ {
		rec := &fetchRecorder{}
		h.delegate.DidReceiveRemoteNotification(launchPush(), rec.done)
		if diff := cmp.Diff([]notification.FetchResult{notification.NoData}, rec.results); diff != "" {
			t.Errorf("delivery %d: fetch results mismatch (-want +got):\n%s", i, diff)
		}
	}
	if n := h.app.Count("DidReceiveRemoteNotification"); n != 0 {
		t.Errorf("DidReceiveRemoteNotification called %d times, want 0", n)
	}
	if h.platform.RemoteRegistrations() != 1 {
		t.Errorf("RemoteRegistrations() = %d, want 1", h.platform.RemoteRegistrations())
	}
	h.assertFaults(t, 0)
}

func TestForegroundClearsLaunchMemory(t *testing.T) {
	h := newHarness(t, appdelegate.CapRemoteNotifications)
	h.launch(appdelegate.LaunchOptions{appdelegate.RemoteNotificationKey: launchPush()})

	h.platform.Post(appdelegate.WillEnterForeground)

	rec := &fetchRecorder{}
	h.delegate.DidReceiveRemoteNotification(launchPush(), rec.done)

	calls := h.app.CallsTo("DidReceiveRemoteNotification")
	if len(calls) != 1 {
		t.Fatalf("DidReceiveRemoteNotification called %d times, want 1", len(calls))
	}
	if got := calls[0].Args[1]; got != notification.UserTappedToBringAppToForeground {
		t.Errorf("origin = %v, want %v", got, notification.UserTappedToBringAppToForeground)
	}
	if diff := cmp.Diff([]notification.FetchResult{notification.NewData}, rec.results); diff != "" {
		t.Errorf("fetch results mismatch (-want +got):\n%s", diff)
	}
}

func TestLaunchMemoryClearedAfterDelay(t *testing.T) {
	tests := map[string]struct {
		delay   time.Duration
		advance time.Duration
		want    int
	}{
		"before default delay":  {advance: 4 * time.Second, want: 0},
		"at default delay":      {advance: appdelegate.DefaultClearDelay, want: 1},
		"before custom delay":   {delay: time.Second, advance: 999 * time.Millisecond, want: 0},
		"after custom delay":    {delay: time.Second, advance: 2 * time.Second, want: 1},
		"long after the launch": {advance: time.Hour, want: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var opts []appdelegate.Option
			if tt.delay > 0 {
				opts = append(opts, appdelegate.WithClearDelay(tt.delay))
			}
			h := newHarness(t, appdelegate.CapRemoteNotifications, opts...)
			h.launch(appdelegate.LaunchOptions{appdelegate.RemoteNotificationKey: launchPush()})

			h.platform.Advance(tt.advance)
			h.delegate.DidReceiveRemoteNotification(launchPush(), nil)

			if got := h.app.Count("DidReceiveRemoteNotification"); got != tt.want {
				t.Errorf("DidReceiveRemoteNotification called %d times, want %d", got, tt.want)
			}
		})
	}
}

func TestDifferentNotificationIsDelivered(t *testing.T) {
	h := newHarness(t, appdelegate.CapRemoteNotifications)
	h.launch(appdelegate.LaunchOptions{appdelegate.RemoteNotificationKey: launchPush()})

	other := launchPush()
	other["order_id"] = "A-1002"
	h.delegate.DidReceiveRemoteNotification(other, nil)

	if got := h.app.Count("DidReceiveRemoteNotification"); got != 1 {
		t.Errorf("DidReceiveRemoteNotification called %d times, want 1", got)
	}
}

func TestShortcutLaunch(t *testing.T) {
	shortcut := &appdelegate.Shortcut{Type: "com.example.compose"}

	tests := map[string]struct {
		accept   bool
		wantWill bool
		wantItem appdelegate.LaunchItem
	}{
		"rejected shortcut is downgraded": {
			accept:   false,
			wantWill: true,
			wantItem: appdelegate.NoItem{},
		},
		"accepted shortcut reports false": {
			accept:   true,
			wantWill: false,
			wantItem: appdelegate.ShortcutItem{Shortcut: shortcut},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, appdelegate.CapShortcuts)
			h.app.AcceptShortcuts = tt.accept

			will, did := h.launch(appdelegate.LaunchOptions{appdelegate.ShortcutItemKey: shortcut})
			if will != tt.wantWill {
				t.Errorf("WillFinishLaunching() = %v, want %v", will, tt.wantWill)
			}
			if !did {
				t.Error("DidFinishLaunching() = false, want true")
			}
			if item := h.loadedItem(t); !item.Equal(tt.wantItem) {
				t.Errorf("LoadInterface(%v), want %v", item, tt.wantItem)
			}
			if n := h.app.Count("HandleShortcut"); n != 0 {
				t.Errorf("HandleShortcut called %d times during launch", n)
			}
			h.assertFaults(t, 0)
		})
	}
}

func TestShortcutLaunchWithoutCapability(t *testing.T) {
	h := newHarness(t, 0)
	will, did := h.launch(appdelegate.LaunchOptions{
		appdelegate.ShortcutItemKey: &appdelegate.Shortcut{Type: "compose"},
	})
	if !will || !did {
		t.Errorf("launch = (%v, %v), want (true, true)", will, did)
	}
	if item := h.loadedItem(t); item.Kind() != appdelegate.KindNone {
		t.Errorf("LoadInterface(%v), want NoItem", item)
	}
	h.assertFaults(t, 1)
}

func TestURLLaunch(t *testing.T) {
	link := mustURL(t, "myapp://items/42")

	tests := map[string]struct {
		caps       appdelegate.Capability
		accept     bool
		wantResult bool
		wantKind   appdelegate.ItemKind
		wantFaults int
	}{
		"accepted": {
			caps:       appdelegate.CapOpenURL,
			accept:     true,
			wantResult: true,
			wantKind:   appdelegate.KindOpenURL,
		},
		"rejected": {
			caps:     appdelegate.CapOpenURL,
			wantKind: appdelegate.KindNone,
		},
		"capability missing": {
			wantKind:   appdelegate.KindNone,
			wantFaults: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, tt.caps)
			h.app.AcceptLaunchURLs = tt.accept

			will, did := h.launch(appdelegate.LaunchOptions{appdelegate.URLKey: link})
			if will != tt.wantResult || did != tt.wantResult {
				t.Errorf("launch = (%v, %v), want (%v, %v)", will, did, tt.wantResult, tt.wantResult)
			}
			if item := h.loadedItem(t); item.Kind() != tt.wantKind {
				t.Errorf("LoadInterface(%v), want kind %v", item, tt.wantKind)
			}
			h.assertFaults(t, tt.wantFaults)
		})
	}
}

func TestURLLaunchSuppressesRedelivery(t *testing.T) {
	link := mustURL(t, "myapp://items/42")
	h := newHarness(t, appdelegate.CapOpenURL)
	h.launch(appdelegate.LaunchOptions{appdelegate.URLKey: link})

	opts := map[appdelegate.OpenURLOptionsKey]any{appdelegate.OpenURLSourceApplicationKey: "com.example.other"}
	if !h.delegate.OpenURL(mustURL(t, "myapp://items/42"), opts) {
		t.Error("OpenURL() of the launch URL = false, want true")
	}
	if !h.delegate.OpenURLFromSource(link, "", nil) {
		t.Error("OpenURLFromSource() of the launch URL = false, want true")
	}
	if n := h.app.Count("HandleURLToOpen"); n != 0 {
		t.Fatalf("HandleURLToOpen called %d times, want 0", n)
	}

	h.delegate.OpenURL(mustURL(t, "myapp://items/43"), nil)
	calls := h.app.CallsTo("HandleURLToOpen")
	if len(calls) != 1 {
		t.Fatalf("HandleURLToOpen called %d times, want 1", len(calls))
	}
	if got := calls[0].Args[0].(appdelegate.URLToOpen).URL.String(); got != "myapp://items/43" {
		t.Errorf("HandleURLToOpen(%s)", got)
	}
}

func TestUserActivityLaunch(t *testing.T) {
	activity := &appdelegate.UserActivity{ActivityType: "com.example.browse", WebpageURL: mustURL(t, "https://example.com/a")}
	opts := appdelegate.LaunchOptions{
		appdelegate.UserActivityDictionaryKey: map[string]any{
			appdelegate.UserActivityTypeKey: activity.ActivityType,
			appdelegate.UserActivityKey:     activity,
		},
	}

	t.Run("resumed", func(t *testing.T) {
		h := newHarness(t, appdelegate.CapUserActivities)
		will, did := h.launch(opts)
		if !will || !did {
			t.Fatalf("launch = (%v, %v), want (true, true)", will, did)
		}
		if item := h.loadedItem(t); !item.Equal(appdelegate.UserActivityItem{Activity: activity}) {
			t.Errorf("LoadInterface(%v)", item)
		}
		if !h.delegate.ContinueUserActivity(activity, nil) {
			t.Error("ContinueUserActivity() of the launch activity = false, want true")
		}
		if n := h.app.Count("ContinueUserActivity"); n != 0 {
			t.Errorf("ContinueUserActivity forwarded %d times, want 0", n)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		h := newHarness(t, appdelegate.CapUserActivities)
		h.app.ResumeActivities = false
		will, did := h.launch(opts)
		if will || did {
			t.Fatalf("launch = (%v, %v), want (false, false)", will, did)
		}
		if item := h.loadedItem(t); item.Kind() != appdelegate.KindNone {
			t.Errorf("LoadInterface(%v), want NoItem", item)
		}
	})
}

func TestPerformShortcutWithoutCapability(t *testing.T) {
	h := newHarness(t, 0)

	var results []bool
	h.delegate.PerformShortcut(&appdelegate.Shortcut{Type: "compose"}, func(ok bool) {
		results = append(results, ok)
	})

	if diff := cmp.Diff([]bool{false}, results); diff != "" {
		t.Errorf("completion results mismatch (-want +got):\n%s", diff)
	}
	if n := h.app.Count("HandleShortcut"); n != 0 {
		t.Errorf("HandleShortcut called %d times, want 0", n)
	}
	h.assertFaults(t, 1)
}

func TestPermissionsNotRerequestedAfterPreferenceChange(t *testing.T) {
	prefs := apptest.NewPreferences()

	first := apptest.NewApp(appdelegate.CapUserNotifications)
	first.Preferred = permission.Alert | permission.Badge
	h1 := newHarnessWith(t, first, apptest.NewPlatformWithPreferences(prefs))
	h1.launch(nil)
	h1.delegate.RequestUserNotificationPermissions()
	if !h1.delegate.PreviouslyRequestedUserNotificationPermissions() {
		t.Fatal("PreviouslyRequestedUserNotificationPermissions() = false after requesting")
	}

	second := apptest.NewApp(appdelegate.CapUserNotifications)
	second.Preferred = permission.All
	h2 := newHarnessWith(t, second, apptest.NewPlatformWithPreferences(prefs))
	h2.launch(nil)
	h2.platform.Post(appdelegate.WillEnterForeground)

	if got := h2.platform.SettingsRegistrations(); len(got) != 0 {
		t.Errorf("SettingsRegistrations() = %v, want none", got)
	}
	if h2.delegate.PreviouslyRequestedUserNotificationPermissions() {
		t.Error("PreviouslyRequestedUserNotificationPermissions() = true for a new preferred set")
	}
}

func TestPermissionsRerequestedForSamePreference(t *testing.T) {
	prefs := apptest.NewPreferences()

	first := apptest.NewApp(appdelegate.CapUserNotifications)
	h1 := newHarnessWith(t, first, apptest.NewPlatformWithPreferences(prefs))
	h1.delegate.RequestUserNotificationPermissions()

	h2 := newHarnessWith(t, apptest.NewApp(appdelegate.CapUserNotifications), apptest.NewPlatformWithPreferences(prefs))
	h2.launch(nil)
	h2.platform.Post(appdelegate.WillEnterForeground)
	h2.platform.Post(appdelegate.WillEnterForeground)

	want := []permission.Set{permission.All, permission.All, permission.All}
	if diff := cmp.Diff(want, h2.platform.SettingsRegistrations()); diff != "" {
		t.Errorf("SettingsRegistrations() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"PreviouslyRequestedUserNotificationPermissions.7"}, prefs.Keys()); diff != "" {
		t.Errorf("preference keys mismatch (-want +got):\n%s", diff)
	}
}

func TestLaunchPhases(t *testing.T) {
	h := newHarness(t, appdelegate.CapRemoteNotifications)
	if got := h.delegate.Phase(); got != appdelegate.NotLaunched {
		t.Fatalf("Phase() = %v, want %v", got, appdelegate.NotLaunched)
	}

	if !h.delegate.WillFinishLaunching(nil) {
		t.Fatal("WillFinishLaunching() = false")
	}
	if got := h.delegate.Phase(); got != appdelegate.WillFinishLaunchingPhase {
		t.Errorf("Phase() = %v, want %v", got, appdelegate.WillFinishLaunchingPhase)
	}
	if h.delegate.WillFinishLaunching(nil) {
		t.Error("second WillFinishLaunching() = true, want false")
	}

	if !h.delegate.DidFinishLaunching(nil) {
		t.Fatal("DidFinishLaunching() = false")
	}
	if got := h.delegate.Phase(); got != appdelegate.DidFinishLaunchingPhase {
		t.Errorf("Phase() = %v, want %v", got, appdelegate.DidFinishLaunchingPhase)
	}
	if h.delegate.DidFinishLaunching(nil) {
		t.Error("second DidFinishLaunching() = true, want false")
	}

	want := []string{"SetupApplication", "LoadInterface"}
	if diff := cmp.Diff(want, h.app.Methods()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	h.assertFaults(t, 2)
}

func TestDidFinishLaunchingWithoutWillFinish(t *testing.T) {
	h := newHarness(t, 0)
	if !h.delegate.DidFinishLaunching(appdelegate.LaunchOptions{appdelegate.SourceApplicationKey: "com.example.safari"}) {
		t.Fatal("DidFinishLaunching() = false")
	}
	want := []string{"SetupApplication", "LoadInterface"}
	if diff := cmp.Diff(want, h.app.Methods()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if item := h.loadedItem(t); !item.Equal(appdelegate.SourceApplicationItem{BundleID: "com.example.safari"}) {
		t.Errorf("LoadInterface(%v)", item)
	}
}

func TestStateRestorationLoadsInterfaceEarly(t *testing.T) {
	h := newHarness(t, appdelegate.CapStateRestoration)

	h.delegate.WillFinishLaunching(nil)
	if got := len(h.app.LaunchItems); got != 1 {
		t.Fatalf("LoadInterface called %d times after will-finish, want 1", got)
	}
	h.delegate.DidFinishLaunching(nil)
	if got := len(h.app.LaunchItems); got != 1 {
		t.Errorf("LoadInterface called %d times after did-finish, want 1", got)
	}
}

func TestForegroundTracking(t *testing.T) {
	h := newHarness(t, appdelegate.CapRemoteNotifications|appdelegate.CapLocalNotifications)
	h.launch(nil)

	silentPush := map[string]any{"aps": map[string]any{"content-available": 1}}

	h.platform.Post(appdelegate.DidBecomeActive)
	if !h.delegate.InForeground() {
		t.Fatal("InForeground() = false after did-become-active")
	}
	h.delegate.DidReceiveRemoteNotification(silentPush, nil)
	h.delegate.DidReceiveLocalNotification(&notification.Local{ID: "l1"})

	h.platform.Post(appdelegate.DidEnterBackground)
	if h.delegate.InForeground() {
		t.Fatal("InForeground() = true after did-enter-background")
	}
	h.delegate.DidReceiveRemoteNotification(silentPush, nil)
	h.delegate.DidReceiveRemoteNotification(launchPush(), nil)
	h.delegate.DidReceiveLocalNotification(&notification.Local{ID: "l2"})

	var got []notification.Origin
	for _, c := range h.app.Calls {
		switch c.Method {
		case "DidReceiveRemoteNotification", "DidReceiveLocalNotification":
			got = append(got, c.Args[1].(notification.Origin))
		}
	}
	want := []notification.Origin{
		notification.DeliveredWhileInForeground,
		notification.DeliveredWhileInForeground,
		notification.DeliveredWhileInBackground,
		notification.UserTappedToBringAppToForeground,
		notification.UserTappedToBringAppToForeground,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("origins mismatch (-want +got):\n%s", diff)
	}
}

func TestBackgroundLaunchRequirements(t *testing.T) {
	tests := map[string]struct {
		caps       appdelegate.Capability
		opts       appdelegate.LaunchOptions
		want       bool
		wantCall   string
		wantFaults int
	}{
		"peripherals restored": {
			caps:     appdelegate.CapBluetoothPeripherals,
			opts:     appdelegate.LaunchOptions{appdelegate.BluetoothPeripheralsKey: []string{"p1"}},
			want:     true,
			wantCall: "RestoreBluetoothPeripheralManagers",
		},
		"peripherals without capability": {
			opts:       appdelegate.LaunchOptions{appdelegate.BluetoothPeripheralsKey: []any{"p1"}},
			wantFaults: 1,
		},
		"centrals restored": {
			caps:     appdelegate.CapBluetoothCentrals,
			opts:     appdelegate.LaunchOptions{appdelegate.BluetoothCentralsKey: []any{"c1", "c2"}},
			want:     true,
			wantCall: "RestoreBluetoothCentralManagers",
		},
		"centrals without capability": {
			caps:       appdelegate.CapBluetoothPeripherals,
			opts:       appdelegate.LaunchOptions{appdelegate.BluetoothCentralsKey: []string{"c1"}},
			wantFaults: 1,
		},
		"location launch": {
			caps:     appdelegate.CapLocationEvents,
			opts:     appdelegate.LaunchOptions{appdelegate.LocationKey: true},
			want:     true,
			wantCall: "ApplicationLaunchedDueToLocationEvent",
		},
		"location launch without capability": {
			opts:       appdelegate.LaunchOptions{appdelegate.LocationKey: true},
			wantFaults: 1,
		},
		"location flag false": {
			opts: appdelegate.LaunchOptions{appdelegate.LocationKey: false},
			want: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, tt.caps)
			h.delegate.WillFinishLaunching(tt.opts)
			if got := h.delegate.DidFinishLaunching(tt.opts); got != tt.want {
				t.Errorf("DidFinishLaunching() = %v, want %v", got, tt.want)
			}
			if tt.wantCall != "" && h.app.Count(tt.wantCall) != 1 {
				t.Errorf("%s called %d times, want 1", tt.wantCall, h.app.Count(tt.wantCall))
			}
			h.assertFaults(t, tt.wantFaults)
		})
	}
}

func TestResetAll(t *testing.T) {
	h := newHarness(t, appdelegate.CapRemoteNotifications|appdelegate.CapUserNotifications)
	h.delegate.RequestUserNotificationPermissions()
	h.launch(appdelegate.LaunchOptions{appdelegate.RemoteNotificationKey: launchPush()})
	firstLaunch := h.delegate.LaunchID()

	h.delegate.ResetAll()

	for _, ev := range []appdelegate.Event{appdelegate.DidBecomeActive, appdelegate.DidEnterBackground, appdelegate.WillEnterForeground} {
		if n := h.platform.Observers(ev); n != 0 {
			t.Errorf("%v has %d observers after ResetAll", ev, n)
		}
	}
	if n := h.platform.PendingTimers(); n != 0 {
		t.Errorf("PendingTimers() = %d after ResetAll", n)
	}
	if h.delegate.PreviouslyRequestedUserNotificationPermissions() {
		t.Error("PreviouslyRequestedUserNotificationPermissions() = true after ResetAll")
	}
	if h.delegate.Phase() != appdelegate.NotLaunched {
		t.Errorf("Phase() = %v after ResetAll", h.delegate.Phase())
	}
	if h.delegate.LaunchID() == firstLaunch {
		t.Error("LaunchID() unchanged after ResetAll")
	}

	h.delegate.DidReceiveRemoteNotification(launchPush(), nil)
	if n := h.app.Count("DidReceiveRemoteNotification"); n != 1 {
		t.Errorf("DidReceiveRemoteNotification called %d times after ResetAll, want 1", n)
	}

	h.launch(nil)
	if n := h.app.Count("SetupApplication"); n != 2 {
		t.Errorf("SetupApplication called %d times across two launches, want 2", n)
	}
	h.assertFaults(t, 0)
}
