package appdelegate

import (
	"net/url"

	"github.com/takimoto3/appdelegate/notification"
)

// slot remembers at most one value.
type slot[T any] struct {
	value T
	set   bool
}

func (s *slot[T]) remember(v T) {
	s.value = v
	s.set = true
}

func (s *slot[T]) forget() {
	var zero T
	s.value = zero
	s.set = false
}

// holds reports whether the slot is set and same returns true for its value.
func (s *slot[T]) holds(same func(T) bool) bool {
	return s.set && same(s.value)
}

// launchMemory remembers the events delivered through the launch item so a
// second delivery of the same occurrence through its own callback can be
// suppressed. Only DidFinishLaunching writes to it.
type launchMemory struct {
	remoteNotification slot[*RemoteNotification]
	localNotification  slot[*notification.Local]
	url                slot[*url.URL]
	userActivity       slot[*UserActivity]
}

func (m *launchMemory) clear() {
	m.remoteNotification.forget()
	m.localNotification.forget()
	m.url.forget()
	m.userActivity.forget()
}

func (m *launchMemory) empty() bool {
	return !m.remoteNotification.set && !m.localNotification.set && !m.url.set && !m.userActivity.set
}

// remember stores the occurrence carried by item, if it is of a kind that the
// OS delivers twice.
func (m *launchMemory) remember(item LaunchItem) {
	switch it := item.(type) {
	case RemoteNotificationItem:
		m.remoteNotification.remember(it.Notification)
	case LocalNotificationItem:
		m.localNotification.remember(it.Notification)
	case OpenURLItem:
		m.url.remember(it.URL.URL)
	case UserActivityItem:
		m.userActivity.remember(it.Activity)
	}
}

func (m *launchMemory) seenRemoteNotification(n *RemoteNotification) bool {
	return m.remoteNotification.holds(n.Equal)
}

func (m *launchMemory) seenLocalNotification(n *notification.Local) bool {
	return m.localNotification.holds(n.Equal)
}

func (m *launchMemory) seenURL(u *url.URL) bool {
	return m.url.holds(func(r *url.URL) bool { return sameURL(r, u) })
}

func (m *launchMemory) seenUserActivity(a *UserActivity) bool {
	return m.userActivity.holds(a.Equal)
}
