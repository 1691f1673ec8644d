// package payload parses the `aps` dictionary of a delivered remote notification.
package payload

import (
	"fmt"

	"github.com/takimoto3/appdelegate/payload/sound"
)

// Sound represents the `sound` entry of the `aps` dictionary. The OS delivers
// either a plain string (the filename of the sound) or a dictionary used for
// critical alerts.
//
// For more details, see the Apple Developer Documentation:
// https://developer.apple.com/documentation/usernotifications/generating-a-remote-notification
type Sound struct {
	// Name is the name of the sound file in the app's bundle.
	Name string `json:"name,omitempty"`

	// Critical indicates whether the sound is for a critical alert.
	Critical sound.AlertFlag `json:"critical,omitempty"`

	// Volume is the volume of a critical alert, between 0.0 and 1.0.
	Volume Ratio `json:"volume,omitempty"`
}

// ParseSound builds a Sound from the raw `sound` value. Critical and volume
// values that fail Validate are dropped, keeping the name.
func ParseSound(v any) *Sound {
	if s, ok := v.(string); ok {
		return &Sound{Name: s}
	}
	m, ok := asMap(v)
	if !ok {
		return nil
	}
	s := &Sound{Name: asString(m["name"])}
	if c, ok := asInt(m["critical"]); ok {
		s.Critical = sound.AlertFlag(c)
	}
	if vol, ok := asFloat(m["volume"]); ok {
		s.Volume = Ratio(vol)
	}
	if err := s.Validate(); err != nil {
		return &Sound{Name: s.Name}
	}
	return s
}

// IsCritical reports whether the sound was delivered as a critical alert.
func (s *Sound) IsCritical() bool {
	return s != nil && s.Critical == sound.Critical
}

// Validate checks if the values of the Sound fields are valid.
// It ensures that the Critical flag is either 0 or 1, and that the Volume is within
// the valid range [0.0, 1.0].
func (s *Sound) Validate() error {
	if s.Critical != sound.None && s.Critical != sound.Critical {
		return fmt.Errorf("invalid critical flag: %d", s.Critical)
	}
	if err := s.Volume.Validate(); err != nil {
		return fmt.Errorf("volume field error: %w", err)
	}
	return nil
}
