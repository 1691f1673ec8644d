package appdelegate

import (
	"net/url"
	"reflect"
)

// UserActivity is an activity continued on this device, from Handoff or a
// universal link.
type UserActivity struct {
	ActivityType string
	Title        string
	WebpageURL   *url.URL
	UserInfo     map[string]any
}

// Equal reports whether a and other are the same activity: the same object,
// or the same type, title, webpage URL and user info.
func (a *UserActivity) Equal(other *UserActivity) bool {
	if a == other {
		return true
	}
	if a == nil || other == nil {
		return false
	}
	if a.ActivityType != other.ActivityType || a.Title != other.Title {
		return false
	}
	if !sameURL(a.WebpageURL, other.WebpageURL) {
		return false
	}
	return equalUserInfo(a.UserInfo, other.UserInfo)
}

func (a *UserActivity) String() string {
	if a == nil {
		return "<nil>"
	}
	if a.WebpageURL != nil {
		return a.ActivityType + " " + a.WebpageURL.String()
	}
	return a.ActivityType
}

// Shortcut is a home screen quick action.
type Shortcut struct {
	Type              string
	LocalizedTitle    string
	LocalizedSubtitle string
	UserInfo          map[string]any
}

// Equal reports whether s and other describe the same quick action.
func (s *Shortcut) Equal(other *Shortcut) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	return s.Type == other.Type &&
		s.LocalizedTitle == other.LocalizedTitle &&
		s.LocalizedSubtitle == other.LocalizedSubtitle &&
		equalUserInfo(s.UserInfo, other.UserInfo)
}

func (s *Shortcut) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.Type
}

func equalUserInfo(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
