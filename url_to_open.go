package appdelegate

import "net/url"

// URLToOpen is a request to open a URL, either from launch options or from
// one of the open URL callbacks.
type URLToOpen struct {
	// URL is the URL to open.
	URL *url.URL
	// SourceApplicationBundleID is the bundle ID of the originating application, if known.
	SourceApplicationBundleID string
	// Annotation is a property list supplied by the source application.
	Annotation any
	// CopyBeforeUse is true when the file must be copied before use.
	CopyBeforeUse bool
}

// Equal reports whether u and other describe the same request.
// The annotation is opaque and does not take part in the comparison.
func (u URLToOpen) Equal(other URLToOpen) bool {
	return sameURL(u.URL, other.URL) &&
		u.SourceApplicationBundleID == other.SourceApplicationBundleID &&
		u.CopyBeforeUse == other.CopyBeforeUse
}

func (u URLToOpen) String() string {
	if u.URL == nil {
		return ""
	}
	return u.URL.String()
}

func sameURL(a, b *url.URL) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

// parseURL accepts the shapes a URL may take in loosely typed options.
func parseURL(v any) (*url.URL, bool) {
	switch u := v.(type) {
	case *url.URL:
		return u, u != nil
	case url.URL:
		return &u, true
	case string:
		if u == "" {
			return nil, false
		}
		parsed, err := url.Parse(u)
		if err != nil {
			return nil, false
		}
		return parsed, true
	default:
		return nil, false
	}
}

func newURLToOpen(u *url.URL, opts map[OpenURLOptionsKey]any) URLToOpen {
	source, _ := opts[OpenURLSourceApplicationKey].(string)
	toOpen := URLToOpen{
		URL:                       u,
		SourceApplicationBundleID: source,
		Annotation:                opts[OpenURLAnnotationKey],
	}
	if inPlace, ok := opts[OpenURLOpenInPlaceKey].(bool); ok {
		toOpen.CopyBeforeUse = !inPlace
	}
	return toOpen
}
