package rust

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/daipendency/daipendency/pkg/errors"
	"github.com/daipendency/daipendency/pkg/extractor"
)

// Fallback README names, tried in order when [package] readme is unset.
var readmeCandidates = []string{"README.md", "README", "readme.md"}

type cargoManifest struct {
	Package           *cargoPackage  `toml:"package"`
	Lib               *cargoTarget   `toml:"lib"`
	Workspace         map[string]any `toml:"workspace"`
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

type cargoPackage struct {
	Name    string `toml:"name"`
	Version any    `toml:"version"` // string, or {workspace = true}
	Readme  any    `toml:"readme"`  // string path or bool
}

type cargoTarget struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// dependencySpec is the normalised form of a Cargo dependency entry, which
// may be a bare version string or an inline table.
type dependencySpec struct {
	Path    string
	Package string
	Version string
}

// manifestDir accepts either a crate directory or its Cargo.toml.
func manifestDir(path string) string {
	if filepath.Base(path) == manifestFile {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return filepath.Dir(path)
		}
	}
	return path
}

// readManifest parses dir/Cargo.toml. A dir that is not a directory, or a
// Cargo.toml that is not a regular file, counts as a missing manifest.
func readManifest(dir string) (*cargoManifest, error) {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return nil, extractor.MissingManifest(manifestFile, dir)
	}
	path := filepath.Join(dir, manifestFile)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil, extractor.MissingManifest(manifestFile, dir)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, extractor.MissingManifest(manifestFile, dir)
		}
		return nil, extractor.MalformedManifest(path, err)
	}

	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, extractor.MalformedManifest(path, err)
	}
	return &m, nil
}

// dependency looks up name across all dependency tables, by key first and
// then by `package = "..."` rename.
func (m *cargoManifest) dependency(name string) (dependencySpec, bool) {
	tables := []map[string]any{m.Dependencies, m.DevDependencies, m.BuildDependencies}
	for _, table := range tables {
		if raw, ok := table[name]; ok {
			return parseDependency(name, raw), true
		}
	}
	for _, table := range tables {
		for key, raw := range table {
			if spec := parseDependency(key, raw); spec.Package == name {
				return spec, true
			}
		}
	}
	return dependencySpec{}, false
}

func parseDependency(key string, raw any) dependencySpec {
	spec := dependencySpec{Package: key}
	switch v := raw.(type) {
	case string:
		spec.Version = v
	case map[string]any:
		if s, ok := v["path"].(string); ok {
			spec.Path = s
		}
		if s, ok := v["package"].(string); ok && s != "" {
			spec.Package = s
		}
		if s, ok := v["version"].(string); ok {
			spec.Version = s
		}
	}
	return spec
}

// LibraryMetadata reads Cargo.toml and the crate README.
func (e *Extractor) LibraryMetadata(path string) (*extractor.LibraryMetadata, error) {
	dir := manifestDir(path)
	m, err := readManifest(dir)
	if err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(dir, manifestFile)
	if m.Package == nil {
		if m.Workspace != nil {
			return nil, extractor.MalformedManifest(manifestPath,
				errors.New(errors.ErrCodeInvalidInput, "virtual workspace manifests have no [package]"))
		}
		return nil, extractor.MalformedManifest(manifestPath,
			errors.New(errors.ErrCodeInvalidInput, "missing [package] table"))
	}
	if m.Package.Name == "" {
		return nil, extractor.MalformedManifest(manifestPath,
			errors.New(errors.ErrCodeInvalidInput, "missing package.name"))
	}

	meta := &extractor.LibraryMetadata{
		Name:          m.Package.Name,
		Root:          dir,
		EntryPoint:    filepath.Join(dir, "src", "lib.rs"),
		RootNamespace: crateIdent(m.Package.Name),
	}
	if v, ok := m.Package.Version.(string); ok {
		meta.Version = v
	}
	if m.Lib != nil {
		if m.Lib.Path != "" {
			meta.EntryPoint = filepath.Join(dir, filepath.FromSlash(m.Lib.Path))
		}
		if m.Lib.Name != "" {
			meta.RootNamespace = m.Lib.Name
		}
	}

	doc, err := readReadme(dir, m.Package.Readme)
	if err != nil {
		return nil, err
	}
	meta.Documentation = doc
	return meta, nil
}

// crateIdent converts a package name to the identifier used in Rust paths.
func crateIdent(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func readReadme(dir string, setting any) (string, error) {
	var candidates []string
	switch v := setting.(type) {
	case string:
		candidates = []string{filepath.FromSlash(v)}
	case bool:
		if !v {
			return "", nil
		}
		candidates = []string{"README.md"}
	default:
		candidates = readmeCandidates
	}

	for _, name := range candidates {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return string(data), nil
		}
		if !stderrors.Is(err, fs.ErrNotExist) {
			return "", errors.Wrap(errors.ErrCodeInternal, err, "failed to read %s", name)
		}
	}
	return "", nil
}
