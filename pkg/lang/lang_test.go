package lang

import (
	"testing"

	"github.com/daipendency/daipendency/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Language
		wantErr bool
	}{
		{"rust", Rust, false},
		{"Rust", Rust, false},
		{"RUST", Rust, false},
		{"  rust ", Rust, false},
		{"python", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, errors.ErrCodeUnsupportedLanguage) {
					t.Errorf("Parse(%q) code = %v, want %v", tt.input, errors.GetCode(err), errors.ErrCodeUnsupportedLanguage)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, l := range All {
		got, err := Parse(l.String())
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", l, err)
		}
		if got != l {
			t.Errorf("Parse(%q) = %v, want %v", l, got, l)
		}
	}
}
