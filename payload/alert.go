// package payload parses the `aps` dictionary of a delivered remote notification.
package payload

import "slices"

// Alert represents the `alert` entry within the `aps` dictionary.
// The OS delivers it either as a plain string (the body) or as a dictionary.
//
// For more details, see the Apple Developer Documentation:
// https://developer.apple.com/documentation/usernotifications/generating_a_remote_notification
type Alert struct {
	// Title is the title shown on the wearable and in the banner.
	Title string `json:"title,omitempty"`

	// Subtitle is the subtitle of the notification.
	Subtitle string `json:"subtitle,omitempty"`

	// Body is the alert message text.
	Body string `json:"body,omitempty"`

	// LaunchImage is the name of an image file in the app bundle, with or
	// without the filename extension.
	LaunchImage string `json:"launch-image,omitempty"`

	// ActionLocKey is the localization key for the alert action button.
	ActionLocKey string `json:"action-loc-key,omitempty"`

	// --- Localization ---

	// LocKey is the localization key for the alert message text.
	LocKey string `json:"loc-key,omitempty"`

	// LocArgs are the localization arguments for LocKey.
	LocArgs []string `json:"loc-args,omitempty"`

	// TitleLocKey is the localization key for the title.
	TitleLocKey string `json:"title-loc-key,omitempty"`

	// TitleLocArgs are the arguments for TitleLocKey.
	TitleLocArgs []string `json:"title-loc-args,omitempty"`

	// SubtitleLocKey is the localization key for the subtitle.
	SubtitleLocKey string `json:"subtitle-loc-key,omitempty"`

	// SubtitleLocArgs are the arguments for SubtitleLocKey.
	SubtitleLocArgs []string `json:"subtitle-loc-args,omitempty"`
}

// ParseAlert builds an Alert from the raw `alert` value.
// A string becomes the body; a dictionary is read field by field, and fields
// of the wrong type are left empty. Any other value yields nil.
func ParseAlert(v any) *Alert {
	if s, ok := v.(string); ok {
		return &Alert{Body: s}
	}
	m, ok := asMap(v)
	if !ok {
		return nil
	}
	return &Alert{
		Title:           asString(m["title"]),
		Subtitle:        asString(m["subtitle"]),
		Body:            asString(m["body"]),
		LaunchImage:     asString(m["launch-image"]),
		ActionLocKey:    asString(m["action-loc-key"]),
		LocKey:          asString(m["loc-key"]),
		LocArgs:         asStrings(m["loc-args"]),
		TitleLocKey:     asString(m["title-loc-key"]),
		TitleLocArgs:    asStrings(m["title-loc-args"]),
		SubtitleLocKey:  asString(m["subtitle-loc-key"]),
		SubtitleLocArgs: asStrings(m["subtitle-loc-args"]),
	}
}

// Equal reports whether a and b carry the same alert content.
// Two nil alerts are equal; a nil and a non-nil alert are not.
func (a *Alert) Equal(b *Alert) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Title == b.Title &&
		a.Subtitle == b.Subtitle &&
		a.Body == b.Body &&
		a.LaunchImage == b.LaunchImage &&
		a.ActionLocKey == b.ActionLocKey &&
		a.LocKey == b.LocKey &&
		slices.Equal(a.LocArgs, b.LocArgs) &&
		a.TitleLocKey == b.TitleLocKey &&
		slices.Equal(a.TitleLocArgs, b.TitleLocArgs) &&
		a.SubtitleLocKey == b.SubtitleLocKey &&
		slices.Equal(a.SubtitleLocArgs, b.SubtitleLocArgs)
}
