package appdelegate

import (
	"go.uber.org/zap"
)

// WillFinishLaunching handles the first launch phase.
//
// It sets the application up, classifies the launch options and asks the
// matching capability whether the item can be handled. A shortcut, URL or
// user activity that cannot be handled is downgraded to NoItem. Applications
// using state restoration get their interface loaded here.
//
// The result is false when the URL or the user activity was rejected, and
// also when a shortcut was accepted: the OS must not deliver that shortcut
// again through PerformShortcut.
func (d *Delegate) WillFinishLaunching(opts LaunchOptions) bool {
	if d.phase != NotLaunched {
		d.fault("will-finish-launching delivered more than once", zap.Stringer("phase", d.phase))
		return false
	}
	d.prepareLaunch()
	d.phase = WillFinishLaunchingPhase

	item := Classify(opts, d.features)
	switch it := item.(type) {
	case ShortcutItem:
		if d.caps.shortcuts == nil {
			d.fault("received shortcut item but the application is not ShortcutCapable; not handling shortcut",
				zap.Stringer("shortcut", it.Shortcut))
			item = NoItem{}
			break
		}
		d.handledShortcutInWillFinish = d.caps.shortcuts.CanHandleShortcut(it.Shortcut)
		if !d.handledShortcutInWillFinish {
			item = NoItem{}
		}

	case UserActivityItem:
		if d.caps.userActivities == nil {
			d.fault("received user activity item but the application is not UserActivityCapable; not handling user activity",
				zap.Stringer("activity", it.Activity))
			d.couldResumeActivityInWillFinish = false
			item = NoItem{}
			break
		}
		d.couldResumeActivityInWillFinish = d.caps.userActivities.CanResumeUserActivity(it.Activity)
		if !d.couldResumeActivityInWillFinish {
			item = NoItem{}
		}

	case OpenURLItem:
		if d.caps.openURL == nil {
			d.fault("received URL to open but the application is not OpenURLCapable; not handling URL",
				zap.Stringer("url", it.URL))
			d.couldHandleURLInWillFinish = false
			item = NoItem{}
			break
		}
		d.couldHandleURLInWillFinish = d.caps.openURL.CanOpenLaunchURL(it.URL)
		if !d.couldHandleURLInWillFinish {
			item = NoItem{}
		}
	}

	if d.caps.stateRestoration != nil {
		d.loadInterfaceOnce(item)
	}

	d.logger.Info("will finish launching",
		zap.Stringer("kind", item.Kind()),
		zap.Bool("url_handled", d.couldHandleURLInWillFinish),
		zap.Bool("activity_resumed", d.couldResumeActivityInWillFinish),
		zap.Bool("shortcut_handled", d.handledShortcutInWillFinish),
	)

	return d.couldHandleURLInWillFinish &&
		d.couldResumeActivityInWillFinish &&
		!d.handledShortcutInWillFinish
}

// DidFinishLaunching handles the second launch phase.
//
// It registers for remote notifications, forwards background restore and
// location launches, loads the interface with the final launch item and
// remembers that item's event so its second delivery is suppressed. The
// memory is cleared after the configured delay or on the next return to the
// foreground, whichever comes first.
//
// Bluetooth restore identifiers or a location launch without the matching
// capability fail the launch.
func (d *Delegate) DidFinishLaunching(opts LaunchOptions) bool {
	if d.phase == DidFinishLaunchingPhase {
		d.fault("did-finish-launching delivered more than once")
		return false
	}
	if d.phase == NotLaunched {
		d.prepareLaunch()
	}
	d.phase = DidFinishLaunchingPhase

	if d.caps.remoteNotifications != nil {
		d.platform.RegisterForRemoteNotifications()
	}

	if ids, ok := opts.strings(BluetoothPeripheralsKey); ok {
		if d.caps.bluetoothPeripherals == nil {
			d.fault("received bluetooth peripheral restore identifiers but the application is not BackgroundBluetoothPeripheralCapable; failing launch")
			return false
		}
		d.caps.bluetoothPeripherals.RestoreBluetoothPeripheralManagers(ids)
	}

	if ids, ok := opts.strings(BluetoothCentralsKey); ok {
		if d.caps.bluetoothCentrals == nil {
			d.fault("received bluetooth central restore identifiers but the application is not BackgroundBluetoothCentralCapable; failing launch")
			return false
		}
		d.caps.bluetoothCentrals.RestoreBluetoothCentralManagers(ids)
	}

	if opts.flag(LocationKey) {
		if d.caps.locationEvents == nil {
			d.fault("launched due to location event but the application is not LocationEventCapable; failing launch")
			return false
		}
		d.caps.locationEvents.ApplicationLaunchedDueToLocationEvent()
	}

	item := Classify(opts, d.features)
	switch item.(type) {
	case ShortcutItem:
		if !d.handledShortcutInWillFinish {
			item = NoItem{}
		}
	case UserActivityItem:
		if !d.couldResumeActivityInWillFinish {
			item = NoItem{}
		}
	case OpenURLItem:
		if !d.couldHandleURLInWillFinish {
			item = NoItem{}
		}
	}
	d.memory.remember(item)

	d.cancelClear = d.platform.AfterFunc(d.clearDelay, func() {
		d.cancelClear = nil
		d.clearLaunchMemory()
	})

	d.loadInterfaceOnce(item)

	d.observe(WillEnterForeground, func() {
		// Anything delivered after returning to the foreground is a new
		// occurrence, even if it equals the launch item.
		d.clearLaunchMemory()
		d.requestUserNotificationPermissionsIfPreviouslyRequested()
	})

	d.logger.Info("did finish launching", zap.Stringer("kind", item.Kind()))

	return d.couldHandleURLInWillFinish && d.couldResumeActivityInWillFinish
}

// prepareLaunch runs the work shared by whichever launch phase comes first.
func (d *Delegate) prepareLaunch() {
	d.setupApplicationOnce()
	d.requestUserNotificationPermissionsIfPreviouslyRequested()

	d.observe(DidBecomeActive, func() { d.inForeground = true })
	d.observe(DidEnterBackground, func() { d.inForeground = false })
}
