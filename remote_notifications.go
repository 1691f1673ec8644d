package appdelegate

import (
	"go.uber.org/zap"

	"github.com/takimoto3/appdelegate/notification"
)

// DidRegisterForRemoteNotifications forwards the device token.
func (d *Delegate) DidRegisterForRemoteNotifications(deviceToken []byte) {
	if d.caps.remoteNotifications == nil {
		d.fault("registered for remote notifications but the application is not RemoteNotificationCapable")
		return
	}
	d.caps.remoteNotifications.DidRegisterForRemoteNotifications(deviceToken)
}

// DidFailToRegisterForRemoteNotifications forwards the registration error.
func (d *Delegate) DidFailToRegisterForRemoteNotifications(err error) {
	if d.caps.remoteNotifications == nil {
		d.fault("failed to register for remote notifications but the application is not RemoteNotificationCapable", zap.Error(err))
		return
	}
	d.caps.remoteNotifications.DidFailToRegisterForRemoteNotifications(err)
}

// DidReceiveRemoteNotification forwards a delivered push notification with
// its origin. The notification that launched the application is not
// forwarded again while the launch memory holds it.
//
// done is called exactly once on every path; it receives NoData whenever the
// notification is not forwarded. A nil done is allowed for the OS callback
// without a fetch completion.
func (d *Delegate) DidReceiveRemoteNotification(userInfo map[string]any, done func(notification.FetchResult)) {
	complete := once(d, "remote notification fetch completion", done)

	rn := d.caps.remoteNotifications
	if rn == nil {
		d.fault("received remote notification but the application is not RemoteNotificationCapable; ignoring")
		complete(notification.NoData)
		return
	}

	n, ok := ParseRemoteNotification(userInfo)
	if !ok {
		d.fault("could not parse remote notification; ignoring")
		complete(notification.NoData)
		return
	}

	if d.memory.seenRemoteNotification(n) {
		d.logger.Debug("suppressing remote notification delivered at launch")
		complete(notification.NoData)
		return
	}

	origin := d.remoteNotificationOrigin(n)
	d.logger.Debug("forwarding remote notification",
		zap.Stringer("origin", origin),
		zap.Bool("silent", n.APS.IsSilent()))
	rn.DidReceiveRemoteNotification(n, origin, complete)
}

func (d *Delegate) remoteNotificationOrigin(n *RemoteNotification) notification.Origin {
	switch {
	case d.inForeground:
		return notification.DeliveredWhileInForeground
	case d.platform.ApplicationState() == StateBackground && n.ContentAvailable():
		return notification.DeliveredWhileInBackground
	default:
		return notification.UserTappedToBringAppToForeground
	}
}

// HandleRemoteNotificationAction forwards an action the user tapped on a
// remote notification. done is called exactly once on every path.
func (d *Delegate) HandleRemoteNotificationAction(actionID string, userInfo map[string]any, responseInfo map[string]any, done func()) {
	complete := onceFunc(d, "remote notification action completion", done)

	ra := d.caps.remoteNotificationActions
	if ra == nil {
		d.fault("received remote notification action but the application is not RemoteNotificationActionCapable; ignoring",
			zap.String("action", actionID))
		complete()
		return
	}

	n, ok := ParseRemoteNotification(userInfo)
	if !ok {
		d.fault("could not parse remote notification; ignoring", zap.String("action", actionID))
		complete()
		return
	}

	ra.HandleRemoteNotificationAction(actionID, n, responseInfo, complete)
}
