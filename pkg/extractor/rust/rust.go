package rust

import (
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/daipendency/daipendency/pkg/extractor"
	"github.com/daipendency/daipendency/pkg/integrations/crates"
)

const manifestFile = "Cargo.toml"

// Extractor documents Rust crates.
type Extractor struct {
	cargoHome   string
	crates      *crates.Client
	downloadDir string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCargoHome sets the cargo home whose registry/src directory is searched
// for dependency sources. Defaults to $CARGO_HOME or ~/.cargo.
func WithCargoHome(dir string) Option {
	return func(e *Extractor) {
		if dir != "" {
			e.cargoHome = dir
		}
	}
}

// WithRegistry enables crates.io lookups for dependencies missing from the
// local cargo registry. Downloaded crates are unpacked below downloadDir.
func WithRegistry(client *crates.Client, downloadDir string) Option {
	return func(e *Extractor) {
		e.crates = client
		e.downloadDir = downloadDir
	}
}

// New creates a Rust extractor. Without [WithRegistry] it never touches the
// network.
func New(opts ...Option) *Extractor {
	e := &Extractor{cargoHome: DefaultCargoHome()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ParserLanguage returns the tree-sitter Rust grammar.
func (e *Extractor) ParserLanguage() *sitter.Language {
	return rust.GetLanguage()
}

// DefaultCargoHome returns $CARGO_HOME, or ~/.cargo when it is unset.
func DefaultCargoHome() string {
	if dir := os.Getenv("CARGO_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cargo"
	}
	return filepath.Join(home, ".cargo")
}

var _ extractor.Extractor = (*Extractor)(nil)
