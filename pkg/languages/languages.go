// Package languages is the registry of supported languages.
//
// It exists to break import cycles: the extractor packages (rust, ...) import
// pkg/extractor, so pkg/library cannot import them back. Consumers build a
// [Registry] here and hand it to the library loader.
//
// Usage:
//
//	reg := languages.Default()
//	for _, cfg := range reg.All() {
//	    fmt.Println(cfg.Language, cfg.Name)
//	}
package languages

import (
	"sync"

	"github.com/daipendency/daipendency/pkg/errors"
	"github.com/daipendency/daipendency/pkg/extractor"
	"github.com/daipendency/daipendency/pkg/extractor/rust"
	"github.com/daipendency/daipendency/pkg/lang"
)

// Config describes one registered language.
type Config struct {
	Language     lang.Language
	Name         string // Display name, e.g. "Rust"
	NewExtractor func() extractor.Extractor
}

// Registry is an ordered, immutable set of language configs. Discovery
// probes languages in registration order.
type Registry struct {
	configs []Config
}

// New builds a registry from cfgs. A later config for the same language is
// ignored.
func New(cfgs ...Config) *Registry {
	r := &Registry{}
	seen := make(map[lang.Language]bool)
	for _, cfg := range cfgs {
		if seen[cfg.Language] {
			continue
		}
		seen[cfg.Language] = true
		r.configs = append(r.configs, cfg)
	}
	return r
}

// Builtin returns the configs of every compiled-in language. rustOpts
// configure the Rust extractor each time one is created.
func Builtin(rustOpts ...rust.Option) []Config {
	return []Config{
		{
			Language: lang.Rust,
			Name:     "Rust",
			NewExtractor: func() extractor.Extractor {
				return rust.New(rustOpts...)
			},
		},
	}
}

// Default returns the process-wide registry of builtin languages with
// offline extractors. It is built on first use.
var Default = sync.OnceValue(func() *Registry {
	return New(Builtin()...)
})

// Get returns the config for l.
func (r *Registry) Get(l lang.Language) (Config, error) {
	for _, cfg := range r.configs {
		if cfg.Language == l {
			return cfg, nil
		}
	}
	return Config{}, errors.New(errors.ErrCodeUnsupportedLanguage, "language '%s' is not registered", l)
}

// All returns the configs in registration order.
func (r *Registry) All() []Config {
	return append([]Config(nil), r.configs...)
}
