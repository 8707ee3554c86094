package cli

import (
	"github.com/daipendency/daipendency/pkg/lang"
)

// languageFlag is a --language value. It is parsed when the flag is set, so
// an unknown language fails before any file is read.
type languageFlag struct {
	lang lang.Language
}

func (f *languageFlag) String() string { return f.lang.String() }

func (f *languageFlag) Set(s string) error {
	l, err := lang.Parse(s)
	if err != nil {
		return err
	}
	f.lang = l
	return nil
}

func (f *languageFlag) Type() string { return "language" }

// value returns the chosen language, or "" for auto-detection.
func (f *languageFlag) value() lang.Language { return f.lang }
