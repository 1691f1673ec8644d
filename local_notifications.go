package appdelegate

import (
	"go.uber.org/zap"

	"github.com/takimoto3/appdelegate/notification"
)

// DidReceiveLocalNotification forwards a delivered local notification. The
// notification that launched the application is not forwarded again while
// the launch memory holds it.
func (d *Delegate) DidReceiveLocalNotification(n *notification.Local) {
	ln := d.caps.localNotifications
	if ln == nil {
		d.fault("received local notification but the application is not LocalNotificationCapable; ignoring")
		return
	}
	if n == nil {
		d.fault("received nil local notification; ignoring")
		return
	}
	if d.memory.seenLocalNotification(n) {
		d.logger.Debug("suppressing local notification delivered at launch", zap.Stringer("notification", n))
		return
	}

	origin := notification.UserTappedToBringAppToForeground
	if d.inForeground {
		origin = notification.DeliveredWhileInForeground
	}
	ln.DidReceiveLocalNotification(n, origin)
}

// HandleLocalNotificationAction forwards an action the user tapped on a
// local notification. done is called exactly once on every path.
func (d *Delegate) HandleLocalNotificationAction(actionID string, n *notification.Local, responseInfo map[string]any, done func()) {
	complete := onceFunc(d, "local notification action completion", done)

	la := d.caps.localNotificationActions
	if la == nil {
		d.fault("received local notification action but the application is not LocalNotificationActionCapable; ignoring",
			zap.String("action", actionID))
		complete()
		return
	}
	la.HandleLocalNotificationAction(actionID, n, responseInfo, complete)
}
