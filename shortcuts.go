package appdelegate

import (
	"go.uber.org/zap"
)

// PerformShortcut forwards a quick action chosen while the application was
// already running. done is called exactly once: false when the shortcut is
// not handled, true once the application finished handling it.
func (d *Delegate) PerformShortcut(s *Shortcut, done func(succeeded bool)) {
	complete := once(d, "shortcut completion", done)

	sc := d.caps.shortcuts
	if sc == nil {
		d.fault("received shortcut item but the application is not ShortcutCapable; ignoring", zap.Stringer("shortcut", s))
		complete(false)
		return
	}
	if s == nil || !sc.CanHandleShortcut(s) {
		complete(false)
		return
	}
	sc.HandleShortcut(s, func() {
		// The application declared it can handle s, so handling succeeded.
		complete(true)
	})
}
