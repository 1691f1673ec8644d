package appdelegate

import (
	"maps"

	"github.com/takimoto3/appdelegate/payload"
)

// RemoteNotification is a parsed push notification dictionary.
// It consists of the `aps` dictionary and any custom data at the top level.
//
// For more details, see the Apple Developer Documentation:
// https://developer.apple.com/documentation/usernotifications/generating-a-remote-notification
type RemoteNotification struct {
	// APS is the parsed `aps` dictionary. It is the zero value when the
	// notification has no `aps` dictionary.
	APS payload.APS

	// UserInfo holds every top-level key except `aps`.
	UserInfo map[string]any

	dictionary map[string]any
}

// ParseRemoteNotification parses a notification dictionary. It fails only
// when v is not a string-keyed dictionary; a missing or malformed `aps`
// entry yields a notification without alert, badge or sound.
func ParseRemoteNotification(v any) (*RemoteNotification, bool) {
	m, ok := payload.AsMap(v)
	if !ok {
		return nil, false
	}

	aps, err := payload.ParseAPS(m[payload.ServiceKey])
	if err != nil {
		aps = payload.APS{}
	}

	userInfo := maps.Clone(m)
	delete(userInfo, payload.ServiceKey)

	return &RemoteNotification{
		APS:        aps,
		UserInfo:   userInfo,
		dictionary: m,
	}, true
}

// Alert returns the user-facing alert, or nil for a silent notification.
func (n *RemoteNotification) Alert() *payload.Alert { return n.APS.Alert }

// Badge returns the badge number, if any.
func (n *RemoteNotification) Badge() (int, bool) {
	if n.APS.Badge == nil {
		return 0, false
	}
	return *n.APS.Badge, true
}

// Sound returns the sound name, if any.
func (n *RemoteNotification) Sound() (string, bool) { return n.APS.SoundName() }

// ContentAvailable reports whether the push asks for a background download.
func (n *RemoteNotification) ContentAvailable() bool { return n.APS.ContentAvailable }

// CategoryIdentifier returns the notification category, if any.
func (n *RemoteNotification) CategoryIdentifier() (string, bool) {
	if n.APS.Category == nil {
		return "", false
	}
	return *n.APS.Category, true
}

// Dictionary returns the dictionary the notification was parsed from.
func (n *RemoteNotification) Dictionary() map[string]any { return n.dictionary }

// Equal reports whether n and other are the same notification: every parsed
// `aps` field and the custom user info must match.
func (n *RemoteNotification) Equal(other *RemoteNotification) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.APS.Equal(&other.APS) && equalUserInfo(n.UserInfo, other.UserInfo)
}

// String renders the notification as JSON for logs.
func (n *RemoteNotification) String() string {
	b, err := n.MarshalJSONFast()
	if err != nil {
		return "<unencodable remote notification>"
	}
	return string(b)
}
