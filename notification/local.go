package notification

import "reflect"

// Local is a scheduled local notification as delivered by the OS.
type Local struct {
	// ID is the identifier the application scheduled the notification with.
	ID string
	// AlertBody is the message displayed in the alert.
	AlertBody string
	// AlertAction is the title of the action button.
	AlertAction string
	// SoundName is the sound played on delivery.
	SoundName string
	// Category is the identifier of the notification category.
	Category string
	// FireDate is when the notification was scheduled to fire.
	FireDate *EpochTime
	// Badge is the icon badge number to apply, or 0 to leave it unchanged.
	Badge int
	// UserInfo carries application data attached at scheduling time.
	UserInfo map[string]any
}

// Equal reports whether l and other describe the same delivered occurrence:
// the same object, or the same content and fire date.
func (l *Local) Equal(other *Local) bool {
	if l == other {
		return true
	}
	if l == nil || other == nil {
		return false
	}
	if (l.FireDate == nil) != (other.FireDate == nil) {
		return false
	}
	if l.FireDate != nil && *l.FireDate != *other.FireDate {
		return false
	}
	return l.ID == other.ID &&
		l.AlertBody == other.AlertBody &&
		l.AlertAction == other.AlertAction &&
		l.SoundName == other.SoundName &&
		l.Category == other.Category &&
		l.Badge == other.Badge &&
		equalUserInfo(l.UserInfo, other.UserInfo)
}

func equalUserInfo(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}

// String returns the identifier, or the alert body when there is none.
func (l *Local) String() string {
	if l.ID != "" {
		return l.ID
	}
	return l.AlertBody
}
