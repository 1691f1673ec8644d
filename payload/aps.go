// package payload parses the `aps` dictionary of a delivered remote notification.
package payload

import (
	"errors"
)

// ServiceKey is the reserved top-level key that holds the `aps` dictionary.
const ServiceKey = "aps"

// ErrNotDictionary is returned when a value that must be a string-keyed
// dictionary has any other shape.
var ErrNotDictionary = errors.New("payload is not a string-keyed dictionary")

// APS represents the parsed `aps` dictionary of a delivered remote notification.
// Every field is optional; a silent notification carries no Alert.
//
// For more details, see the Apple Developer Documentation:
// https://developer.apple.com/documentation/usernotifications/sending-notification-requests-to-apns
type APS struct {
	// Alert is the user-facing alert, or nil when the notification has none.
	Alert *Alert

	// Badge is the number to display on the app icon, or nil when absent.
	Badge *int

	// Sound is the sound played on delivery, or nil when absent.
	Sound *Sound

	// ContentAvailable is true iff the `content-available` key is present,
	// whatever its value.
	ContentAvailable bool

	// MutableContent is true iff the `mutable-content` key is present.
	MutableContent bool

	// Category is the identifier of the notification category, or nil.
	Category *string

	// ThreadID groups related notifications.
	ThreadID string
}

// ParseAPS reads an `aps` dictionary. Fields with an unexpected type are
// treated as absent. It returns ErrNotDictionary if v is not a dictionary.
func ParseAPS(v any) (APS, error) {
	m, ok := asMap(v)
	if !ok {
		return APS{}, ErrNotDictionary
	}

	var aps APS
	if alert, ok := m["alert"]; ok {
		aps.Alert = ParseAlert(alert)
	}
	if badge, ok := asInt(m["badge"]); ok {
		aps.Badge = &badge
	}
	if s, ok := m["sound"]; ok {
		aps.Sound = ParseSound(s)
	}
	_, aps.ContentAvailable = m["content-available"]
	_, aps.MutableContent = m["mutable-content"]
	aps.Category = asStringPtr(m["category"])
	aps.ThreadID = asString(m["thread-id"])
	return aps, nil
}

// SoundName returns the name of the sound, if any.
func (aps *APS) SoundName() (string, bool) {
	if aps.Sound == nil {
		return "", false
	}
	return aps.Sound.Name, true
}

// IsSilent reports whether the notification has nothing to present to the user.
func (aps *APS) IsSilent() bool {
	return aps.Alert == nil && aps.Badge == nil && aps.Sound == nil
}

// Equal reports whether two parsed `aps` dictionaries describe the same notification.
func (aps *APS) Equal(other *APS) bool {
	return aps.Alert.Equal(other.Alert) &&
		equalPtr(aps.Badge, other.Badge) &&
		equalPtr(aps.Sound, other.Sound) &&
		aps.ContentAvailable == other.ContentAvailable &&
		aps.MutableContent == other.MutableContent &&
		equalPtr(aps.Category, other.Category) &&
		aps.ThreadID == other.ThreadID
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
