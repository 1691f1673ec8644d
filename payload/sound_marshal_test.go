package payload_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/takimoto3/appdelegate/payload"
)

func TestSoundMarshalJSONFast(t *testing.T) {
	tests := map[string]struct {
		input payload.Sound
		want  string
	}{
		"all fields": {
			input: payload.Sound{
				Critical: 1,
				Name:     "alert",
				Volume:   0.8,
			},
			want: `{"critical":1,"name":"alert","volume":0.8}`,
		},
		"only name": {
			input: payload.Sound{
				Name: "ping",
			},
			want: `"ping"`,
		},
		"critical without volume": {
			input: payload.Sound{
				Name:     "siren",
				Critical: 1,
			},
			want: `{"critical":1,"name":"siren"}`,
		},
		"empty struct": {
			input: payload.Sound{},
			want:  `""`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := tt.input.MarshalJSONFast()
			if err != nil {
				t.Fatalf("MarshalJSONFast error: %v", err)
			}
			if err := newDuplicateKeyChecker(got).check(); err != nil {
				t.Errorf("Duplicate key check failed: %v\nJSON: %s", err, string(got))
				return
			}
			if diff := cmp.Diff([]byte(tt.want), got, JSONComparer); diff != "" {
				t.Errorf("JSON mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
