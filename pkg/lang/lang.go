// Package lang defines the closed set of source languages daipendency can
// document.
//
// A [Language] is identified by its canonical lowercase name. The same name
// is accepted on the command line and used as the fence tag of code blocks in
// rendered documentation.
package lang

import (
	"strings"

	"github.com/daipendency/daipendency/pkg/errors"
)

// Language is a supported source language, identified by its canonical
// lowercase name.
type Language string

// Supported languages.
const (
	Rust Language = "rust"
)

// All lists every supported language in registration order.
var All = []Language{Rust}

// String returns the canonical lowercase name.
func (l Language) String() string { return string(l) }

// Parse converts a user-supplied name into a Language. Matching is
// case-insensitive and ignores surrounding whitespace.
func Parse(s string) (Language, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, l := range All {
		if string(l) == name {
			return l, nil
		}
	}
	return "", errors.New(errors.ErrCodeUnsupportedLanguage, "unknown language '%s'", s)
}
