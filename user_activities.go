package appdelegate

import (
	"go.uber.org/zap"
)

// ContinueUserActivity asks the application to continue a. The activity that
// launched the application reports success without being forwarded again
// while the launch memory holds it.
func (d *Delegate) ContinueUserActivity(a *UserActivity, restore func(objects []any)) bool {
	ua := d.caps.userActivities
	if ua == nil {
		d.fault("received user activity but the application is not UserActivityCapable; not handling user activity")
		return false
	}
	if a == nil {
		d.fault("received nil user activity; ignoring")
		return false
	}
	if d.memory.seenUserActivity(a) {
		d.logger.Debug("suppressing user activity delivered at launch", zap.Stringer("activity", a))
		return true
	}
	if !ua.CanResumeUserActivity(a) {
		return false
	}
	return ua.ContinueUserActivity(a, once(d, "user activity restoration handler", restore))
}

// WillContinueUserActivity reports whether the application notifies the user
// itself about a continuation in progress.
func (d *Delegate) WillContinueUserActivity(activityType string) bool {
	if d.caps.handoff == nil {
		d.fault("received will-continue user activity but the application is not HandoffCapable",
			zap.String("activity_type", activityType))
		return false
	}
	return d.caps.handoff.WillContinueUserActivity(activityType)
}

// DidUpdateUserActivity forwards an update to an activity the OS manages.
func (d *Delegate) DidUpdateUserActivity(a *UserActivity) {
	if d.caps.handoff == nil {
		d.fault("received user activity update but the application is not HandoffCapable")
		return
	}
	d.caps.handoff.DidUpdateUserActivity(a)
}

// DidFailToContinueUserActivity forwards a failed continuation.
func (d *Delegate) DidFailToContinueUserActivity(activityType string, err error) {
	if d.caps.handoff == nil {
		d.fault("received failed user activity continuation but the application is not HandoffCapable",
			zap.String("activity_type", activityType), zap.Error(err))
		return
	}
	d.caps.handoff.DidFailToContinueUserActivity(activityType, err)
}
