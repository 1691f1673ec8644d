package appdelegate

import (
	"net/url"

	"go.uber.org/zap"
)

// OpenURL asks the application to open u. The URL that launched the
// application reports success without being forwarded again while the launch
// memory holds it.
func (d *Delegate) OpenURL(u *url.URL, opts map[OpenURLOptionsKey]any) bool {
	oc := d.caps.openURL
	if oc == nil {
		d.fault("received URL to open but the application is not OpenURLCapable; ignoring")
		return false
	}
	if u == nil {
		d.fault("received nil URL to open; ignoring")
		return false
	}
	if d.memory.seenURL(u) {
		d.logger.Debug("suppressing URL delivered at launch", zap.Stringer("url", u))
		return true
	}
	return oc.HandleURLToOpen(newURLToOpen(u, opts))
}

// OpenURLFromSource is the older form of OpenURL that receives the source
// application and annotation directly.
func (d *Delegate) OpenURLFromSource(u *url.URL, sourceApplication string, annotation any) bool {
	return d.OpenURL(u, map[OpenURLOptionsKey]any{
		OpenURLSourceApplicationKey: sourceApplication,
		OpenURLAnnotationKey:        annotation,
	})
}
