package notification

// Origin describes how a delivered notification reached the application.
type Origin int

const (
	// UserTappedToBringAppToForeground means the user tapped the notification
	// to bring the app to the foreground.
	UserTappedToBringAppToForeground Origin = iota
	// DeliveredWhileInForeground means the notification arrived while the app
	// was active; the user has not seen it.
	DeliveredWhileInForeground
	// DeliveredWhileInBackground means a content-available notification woke
	// the app in the background; the user may have seen it but did not tap it.
	DeliveredWhileInBackground
)

func (o Origin) String() string {
	switch o {
	case UserTappedToBringAppToForeground:
		return "user-tapped"
	case DeliveredWhileInForeground:
		return "delivered-in-foreground"
	case DeliveredWhileInBackground:
		return "delivered-in-background"
	default:
		return "unknown"
	}
}

// FetchResult is the value passed to a remote notification fetch completion.
type FetchResult int

const (
	// NewData means new content was downloaded.
	NewData FetchResult = iota
	// NoData means there was nothing to download.
	NoData
	// Failed means the download attempt failed.
	Failed
)

func (r FetchResult) String() string {
	switch r {
	case NewData:
		return "new-data"
	case NoData:
		return "no-data"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
