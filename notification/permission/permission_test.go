package permission_test

import (
	"math/rand"
	"testing"

	"github.com/takimoto3/appdelegate/notification/permission"
)

func TestSet_String(t *testing.T) {
	testCases := map[string]struct {
		set      permission.Set
		expected string
	}{
		"None":        {set: permission.None, expected: "none"},
		"Badge":       {set: permission.Badge, expected: "badge"},
		"BadgeAlert":  {set: permission.Badge | permission.Alert, expected: "badge|alert"},
		"All":         {set: permission.All, expected: "badge|sound|alert"},
		"UnknownBits": {set: permission.Sound | 16, expected: "sound|16"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := tc.set.String(); got != tc.expected {
				t.Errorf("Set(%d).String() = %q; want %q", uint(tc.set), got, tc.expected)
			}
		})
	}
}

func TestSet_Key(t *testing.T) {
	if got := permission.All.Key(); got != "7" {
		t.Errorf("All.Key() = %q, want %q", got, "7")
	}
	if permission.Badge.Key() == permission.Alert.Key() {
		t.Errorf("distinct sets share a key")
	}
}

func TestClassify(t *testing.T) {
	testCases := map[string]struct {
		granted   permission.Set
		preferred permission.Set
		want      permission.Grant
	}{
		"nothing preferred": {
			granted:   permission.None,
			preferred: permission.None,
			want:      permission.Grant{Kind: permission.Requested},
		},
		"all preferred none granted": {
			granted:   permission.None,
			preferred: permission.All,
			want:      permission.Grant{Kind: permission.NoneGranted},
		},
		"all preferred all granted": {
			granted:   permission.All,
			preferred: permission.All,
			want:      permission.Grant{Kind: permission.Requested},
		},
		"extra permissions still requested": {
			granted:   permission.All,
			preferred: permission.Alert,
			want:      permission.Grant{Kind: permission.Requested},
		},
		"partial carries raw granted set": {
			granted:   permission.Badge | permission.Sound,
			preferred: permission.Badge | permission.Alert,
			want:      permission.Grant{Kind: permission.PartiallyGranted, Granted: permission.Badge | permission.Sound},
		},
		"disjoint": {
			granted:   permission.Sound,
			preferred: permission.Badge | permission.Alert,
			want:      permission.Grant{Kind: permission.NoneGranted},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := permission.Classify(tc.granted, tc.preferred); got != tc.want {
				t.Errorf("Classify(%v, %v) = %v; want %v", tc.granted, tc.preferred, got, tc.want)
			}
		})
	}
}

func TestClassify_RandomMasks(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		granted := permission.Set(r.Intn(16))
		preferred := permission.Set(r.Intn(16))
		got := permission.Classify(granted, preferred)

		switch {
		case granted&preferred == preferred:
			if got.Kind != permission.Requested {
				t.Fatalf("Classify(%d, %d) = %v; want requested", granted, preferred, got)
			}
		case granted&preferred == 0:
			if got.Kind != permission.NoneGranted {
				t.Fatalf("Classify(%d, %d) = %v; want none", granted, preferred, got)
			}
		default:
			if got.Kind != permission.PartiallyGranted || got.Granted != granted {
				t.Fatalf("Classify(%d, %d) = %v; want partial(%d)", granted, preferred, got, granted)
			}
		}
	}
}

func TestParseSet(t *testing.T) {
	testCases := map[string]struct {
		names    []string
		expected permission.Set
		wantErr  bool
	}{
		"Empty":       {expected: permission.None},
		"None":        {names: []string{"none"}, expected: permission.None},
		"Single":      {names: []string{"sound"}, expected: permission.Sound},
		"Several":     {names: []string{"alert", " Badge "}, expected: permission.Alert | permission.Badge},
		"All":         {names: []string{"all"}, expected: permission.All},
		"Repeated":    {names: []string{"alert", "alert"}, expected: permission.Alert},
		"UnknownName": {names: []string{"vibrate"}, wantErr: true},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, err := permission.ParseSet(tc.names...)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseSet(%q) error = %v, wantErr %v", tc.names, err, tc.wantErr)
			}
			if got != tc.expected {
				t.Errorf("ParseSet(%q) = %v; want %v", tc.names, got, tc.expected)
			}
		})
	}
}
