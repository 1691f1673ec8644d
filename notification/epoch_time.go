// package notification provides the OS-side notification types that the
// delegate forwards to an application.
package notification

import (
	"strconv"
	"time"
)

// EpochTime represents a UNIX timestamp in seconds.
type EpochTime int64

// NewEpochTime creates a new EpochTime from a time.Time object.
// The zero time maps to epoch 0.
func NewEpochTime(t time.Time) *EpochTime {
	if t.IsZero() {
		v := EpochTime(0)
		return &v
	}
	v := EpochTime(t.UTC().Unix())
	return &v
}

// Time converts the timestamp back to a UTC time.
func (e EpochTime) Time() time.Time {
	return time.Unix(int64(e), 0).UTC()
}

// String returns the string representation of the UNIX timestamp.
func (e EpochTime) String() string {
	return strconv.FormatInt(int64(e), 10)
}
