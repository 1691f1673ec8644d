package appdelegate

import (
	"go.uber.org/zap"

	"github.com/takimoto3/appdelegate/notification/permission"
)

// previouslyRequestedKeyPrefix prefixes the preference recording that
// permissions were requested for a given preferred set.
const previouslyRequestedKeyPrefix = "PreviouslyRequestedUserNotificationPermissions"

func previouslyRequestedKey(preferred permission.Set) string {
	return previouslyRequestedKeyPrefix + "." + preferred.Key()
}

// RequestUserNotificationPermissions registers the settings the application
// prefers. The user is prompted only the first time per installation and
// preferred set; later calls just report the current grant through
// DidReceiveUserNotificationPermissions.
//
// Once called, permissions are requested again on every launch and every
// return to the foreground, as long as the preferred set does not change.
func (d *Delegate) RequestUserNotificationPermissions() {
	un := d.caps.userNotifications
	if un == nil {
		d.fault("requesting user notification permissions but the application is not UserNotificationCapable")
		return
	}
	preferred := un.RequestedUserNotificationSettings()
	d.platform.Preferences().SetBool(previouslyRequestedKey(preferred), true)
	d.logger.Debug("registering user notification settings", zap.Stringer("preferred", preferred))
	d.platform.RegisterUserNotificationSettings(preferred)
}

// PreviouslyRequestedUserNotificationPermissions reports whether permissions
// were requested for the currently preferred set.
func (d *Delegate) PreviouslyRequestedUserNotificationPermissions() bool {
	un := d.caps.userNotifications
	if un == nil {
		d.fault("querying previously requested user notification permissions but the application is not UserNotificationCapable")
		return false
	}
	return d.platform.Preferences().Bool(previouslyRequestedKey(un.RequestedUserNotificationSettings()))
}

func (d *Delegate) setPreviouslyRequested(v bool) {
	key := previouslyRequestedKey(d.caps.userNotifications.RequestedUserNotificationSettings())
	d.platform.Preferences().SetBool(key, v)
}

func (d *Delegate) requestUserNotificationPermissionsIfPreviouslyRequested() {
	if d.caps.userNotifications != nil && d.PreviouslyRequestedUserNotificationPermissions() {
		d.RequestUserNotificationPermissions()
	}
}

// DidRegisterUserNotificationSettings reports the settings the OS registered.
// They are merged with the current settings on record, since some OS
// versions deliver an incomplete set.
func (d *Delegate) DidRegisterUserNotificationSettings(settings permission.Set) {
	un := d.caps.userNotifications
	if un == nil {
		d.fault("received registered user notification settings but the application is not UserNotificationCapable")
		return
	}
	granted := settings
	if current, ok := d.platform.CurrentUserNotificationSettings(); ok {
		granted = current.Union(settings)
	}
	grant := permission.Classify(granted, un.RequestedUserNotificationSettings())
	d.logger.Debug("user notification permissions", zap.Stringer("grant", grant))
	un.DidReceiveUserNotificationPermissions(grant)
}
