package extractor

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/daipendency/daipendency/pkg/errors"
)

// Extractor turns a project directory of one language into metadata and a
// public API listing.
type Extractor interface {
	// ParserLanguage returns the tree-sitter grammar used to parse sources.
	ParserLanguage() *sitter.Language
	// LibraryMetadata reads the project manifest under path.
	LibraryMetadata(path string) (*LibraryMetadata, error)
	// ExtractPublicAPI parses the project described by meta and returns its
	// public namespaces in declaration order.
	ExtractPublicAPI(ctx context.Context, meta *LibraryMetadata, parser *sitter.Parser) ([]Namespace, error)
	// ResolveDependencyPath returns the root directory of the dependency
	// called name, as seen from the project at dependantPath.
	ResolveDependencyPath(ctx context.Context, name, dependantPath string) (string, error)
}

// LibraryMetadata describes a project as declared by its manifest.
type LibraryMetadata struct {
	Name          string // Declared library name
	Version       string // Declared version, empty when the manifest has none
	Documentation string // Free-text documentation (e.g. README body)
	Root          string // Project root directory
	EntryPoint    string // Source file the public API is rooted at
	RootNamespace string // Name of the top-level namespace, defaults to Name
}

// Namespace groups public symbols, e.g. a module.
type Namespace struct {
	Name       string   // Fully qualified namespace name
	DocComment string   // Namespace documentation, empty when absent
	Symbols    []Symbol // Public symbols in declaration order
}

// Symbol is one public API element.
type Symbol struct {
	Name       string // Symbol identifier
	SourceCode string // Literal source text, emitted verbatim
}

// NewParser creates a tree-sitter parser bound to grammar.
// The caller owns the parser and should Close it when done.
func NewParser(grammar *sitter.Language) (*sitter.Parser, error) {
	if grammar == nil {
		return nil, errors.New(errors.ErrCodeInternal, "extractor declared no parser grammar")
	}
	p := sitter.NewParser()
	p.SetLanguage(grammar)
	return p, nil
}

// MissingManifest reports that no manifest named file exists under dir.
func MissingManifest(file, dir string) error {
	return errors.New(errors.ErrCodeMissingManifest, "no %s found in %s", file, dir)
}

// MalformedManifest reports that the manifest at path exists but could not
// be read or parsed.
func MalformedManifest(path string, cause error) error {
	return errors.Wrap(errors.ErrCodeMalformedManifest, cause, "failed to parse %s", path)
}

// IsMissingManifest reports whether err means the manifest is absent.
func IsMissingManifest(err error) bool {
	return errors.Is(err, errors.ErrCodeMissingManifest)
}
