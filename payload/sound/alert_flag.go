package sound

// AlertFlag is the `critical` value of a sound dictionary.
type AlertFlag int

const (
	// None marks a regular notification sound.
	None AlertFlag = 0
	// Critical marks a critical alert sound that may bypass the mute switch.
	Critical AlertFlag = 1
)

// String returns a readable name for the flag.
func (f AlertFlag) String() string {
	switch f {
	case None:
		return "none"
	case Critical:
		return "critical"
	default:
		return "invalid"
	}
}
