package cli

import (
	"testing"

	"github.com/daipendency/daipendency/pkg/errors"
	"github.com/daipendency/daipendency/pkg/lang"
)

func TestLanguageFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    lang.Language
		wantErr bool
	}{
		{"rust", lang.Rust, false},
		{"Rust", lang.Rust, false},
		{"RUST", lang.Rust, false},
		{"cobol", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var f languageFlag
			err := f.Set(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeUnsupportedLanguage) {
				t.Errorf("Set(%q) code = %s", tt.input, errors.GetCode(err))
			}
			if f.value() != tt.want {
				t.Errorf("value() = %q, want %q", f.value(), tt.want)
			}
		})
	}
}

func TestLanguageFlagDefaultsToAutoDetect(t *testing.T) {
	var f languageFlag
	if f.value() != "" {
		t.Errorf("zero value = %q, want auto-detect", f.value())
	}
	if f.Type() != "language" {
		t.Errorf("Type() = %q", f.Type())
	}
}
