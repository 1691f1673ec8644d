// Package permission models user notification permission sets and how the
// granted set compares to the preferred one.
package permission

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Set is a bitmask of user notification permissions.
type Set uint

const (
	// None is the empty set.
	None Set = 0
	// Badge allows the app to badge its icon.
	Badge Set = 1 << 0
	// Sound allows the app to play a sound.
	Sound Set = 1 << 1
	// Alert allows the app to display an alert.
	Alert Set = 1 << 2

	// All is every permission an application can ask for.
	All = Badge | Sound | Alert
)

// Union returns every permission in s or other.
func (s Set) Union(other Set) Set { return s | other }

// Contains reports whether every permission in other is in s.
func (s Set) Contains(other Set) bool { return s&other == other }

type setName struct {
	bit  Set
	name string
}

var setNames = []setName{{Badge, "badge"}, {Sound, "sound"}, {Alert, "alert"}}

// ParseSet returns the set holding the named permissions. Names are those
// String produces; "all" and "none" are accepted too.
func ParseSet(names ...string) (Set, error) {
	var s Set
	for _, name := range names {
		switch n := strings.ToLower(strings.TrimSpace(name)); n {
		case "all":
			s |= All
		case "none":
		default:
			i := slices.IndexFunc(setNames, func(p setName) bool { return p.name == n })
			if i < 0 {
				return None, fmt.Errorf("unknown permission %q", name)
			}
			s |= setNames[i].bit
		}
	}
	return s, nil
}

// String lists the permissions, e.g. "badge|alert", or "none".
func (s Set) String() string {
	if s == None {
		return "none"
	}
	var parts []string
	for _, p := range setNames {
		if s&p.bit != 0 {
			parts = append(parts, p.name)
		}
	}
	if rest := s &^ All; rest != 0 {
		parts = append(parts, strconv.FormatUint(uint64(rest), 10))
	}
	return strings.Join(parts, "|")
}

// Key returns the stable form of the set used in persisted preference keys.
func (s Set) Key() string {
	return strconv.FormatUint(uint64(s), 10)
}

// Kind classifies a Grant.
type Kind int

const (
	// NoneGranted means no preferred permission was granted.
	NoneGranted Kind = iota
	// PartiallyGranted means some, but not all, preferred permissions were granted.
	PartiallyGranted
	// Requested means every preferred permission was granted.
	Requested
)

// Grant is the result of comparing granted permissions to preferred ones.
// Granted is only meaningful for PartiallyGranted, where it holds the full
// granted set rather than its intersection with the preferred set.
type Grant struct {
	Kind    Kind
	Granted Set
}

// Classify compares the granted permissions to the preferred ones.
// An empty preferred set is always fully Requested.
func Classify(granted, preferred Set) Grant {
	switch {
	case granted&preferred == preferred:
		return Grant{Kind: Requested}
	case granted&preferred != None:
		return Grant{Kind: PartiallyGranted, Granted: granted}
	default:
		return Grant{Kind: NoneGranted}
	}
}

func (g Grant) String() string {
	switch g.Kind {
	case Requested:
		return "requested"
	case PartiallyGranted:
		return "partial(" + g.Granted.String() + ")"
	default:
		return "none"
	}
}
