package extractor

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/smacker/go-tree-sitter/rust"

	"github.com/daipendency/daipendency/pkg/errors"
)

func TestNewParser(t *testing.T) {
	p, err := NewParser(rust.GetLanguage())
	if err != nil {
		t.Fatalf("NewParser() unexpected error: %v", err)
	}
	defer p.Close()

	tree, err := p.ParseCtx(context.Background(), nil, []byte("pub fn f() {}"))
	if err != nil {
		t.Fatalf("ParseCtx() unexpected error: %v", err)
	}
	if got := tree.RootNode().Type(); got != "source_file" {
		t.Errorf("root node type = %q, want %q", got, "source_file")
	}
}

func TestNewParserNilGrammar(t *testing.T) {
	if _, err := NewParser(nil); err == nil {
		t.Error("NewParser(nil) expected error, got nil")
	}
}

func TestManifestErrors(t *testing.T) {
	missing := MissingManifest("Cargo.toml", "/tmp/x")
	if !IsMissingManifest(missing) {
		t.Errorf("IsMissingManifest(%v) = false, want true", missing)
	}

	cause := stderrors.New("expected '='")
	malformed := MalformedManifest("/tmp/x/Cargo.toml", cause)
	if IsMissingManifest(malformed) {
		t.Errorf("IsMissingManifest(%v) = true, want false", malformed)
	}
	if !errors.Is(malformed, errors.ErrCodeMalformedManifest) {
		t.Errorf("code = %v, want %v", errors.GetCode(malformed), errors.ErrCodeMalformedManifest)
	}
	if !stderrors.Is(malformed, cause) {
		t.Error("MalformedManifest should wrap its cause")
	}
}
