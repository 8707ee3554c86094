package rust

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/daipendency/daipendency/pkg/errors"
	"github.com/daipendency/daipendency/pkg/extractor"
)

// module is one namespace of the crate, either a file or an inline mod block.
type module struct {
	path    string
	doc     string
	src     []byte
	body    *sitter.Node // source_file or declaration_list
	fileDir string
}

// crateWalker loads the module tree of a crate. Loading and rendering are
// separate passes so impl blocks can be filtered against type visibility
// declared anywhere in the public module tree.
type crateWalker struct {
	ctx          context.Context
	parser       *sitter.Parser
	trees        []*sitter.Tree
	visited      map[string]bool
	modules      []*module
	publicTypes  map[string]bool
	privateTypes map[string]bool
}

// ExtractPublicAPI walks the crate from its entry point and returns one
// namespace per public module, in declaration order.
func (e *Extractor) ExtractPublicAPI(ctx context.Context, meta *extractor.LibraryMetadata, parser *sitter.Parser) ([]extractor.Namespace, error) {
	w := &crateWalker{
		ctx:          ctx,
		parser:       parser,
		visited:      make(map[string]bool),
		publicTypes:  make(map[string]bool),
		privateTypes: make(map[string]bool),
	}
	defer w.close()

	rootName := meta.RootNamespace
	if rootName == "" {
		rootName = crateIdent(meta.Name)
	}
	if _, err := os.Stat(meta.EntryPoint); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "library entry point %s not found", meta.EntryPoint)
	}
	if err := w.loadFile(meta.EntryPoint, rootName, "", filepath.Dir(meta.EntryPoint)); err != nil {
		return nil, err
	}

	namespaces := make([]extractor.Namespace, len(w.modules))
	for i, m := range w.modules {
		namespaces[i] = extractor.Namespace{Name: m.path, DocComment: m.doc}
	}
	for i, m := range w.modules {
		w.render(m, &namespaces[i], &namespaces[0])
	}
	return namespaces, nil
}

func (w *crateWalker) close() {
	for _, t := range w.trees {
		t.Close()
	}
}

// loadFile parses a module file and appends it, followed by its public
// submodules, to the module list.
func (w *crateWalker) loadFile(file, path, outerDoc, childDir string) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		abs = file
	}
	if w.visited[abs] {
		return nil
	}
	w.visited[abs] = true

	src, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to read %s", file)
	}
	tree, err := w.parser.ParseCtx(w.ctx, nil, src)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to parse %s", file)
	}
	w.trees = append(w.trees, tree)

	root := tree.RootNode()
	m := &module{
		path:    path,
		doc:     joinDocs(outerDoc, innerDocs(root, src)),
		src:     src,
		body:    root,
		fileDir: filepath.Dir(file),
	}
	w.modules = append(w.modules, m)
	return w.scan(m, childDir)
}

// scan records type visibility and descends into public submodules.
func (w *crateWalker) scan(m *module, childDir string) error {
	for i := 0; i < int(m.body.NamedChildCount()); i++ {
		n := m.body.NamedChild(i)
		switch n.Type() {
		case "struct_item", "enum_item", "union_item", "type_item", "trait_item":
			name := fieldText(n, "name", m.src)
			if isPub(n, m.src) {
				w.publicTypes[name] = true
			} else {
				w.privateTypes[name] = true
			}
		case "mod_item":
			if !isPub(n, m.src) || isHidden(n, m.src) {
				continue
			}
			name := fieldText(n, "name", m.src)
			path := m.path + "::" + name
			outer := moduleDocFromOuter(n, m.src)

			if body := n.ChildByFieldName("body"); body != nil {
				child := &module{
					path:    path,
					doc:     joinDocs(outer, innerDocs(body, m.src)),
					src:     m.src,
					body:    body,
					fileDir: m.fileDir,
				}
				w.modules = append(w.modules, child)
				if err := w.scan(child, filepath.Join(childDir, name)); err != nil {
					return err
				}
				continue
			}

			file, dir := moduleFile(n, m, childDir, name)
			if file == "" {
				continue
			}
			if err := w.loadFile(file, path, outer, dir); err != nil {
				return err
			}
		}
	}
	return nil
}

// moduleFile locates the source of `mod name;` and the directory its own
// submodules live in. Returns "" when no candidate exists.
func moduleFile(n *sitter.Node, m *module, childDir, name string) (string, string) {
	if p := pathAttribute(n, m.src); p != "" {
		file := filepath.Join(m.fileDir, filepath.FromSlash(p))
		if !exists(file) {
			return "", ""
		}
		if filepath.Base(file) == "mod.rs" {
			return file, filepath.Dir(file)
		}
		return file, strings.TrimSuffix(file, filepath.Ext(file))
	}
	for _, file := range []string{
		filepath.Join(childDir, name+".rs"),
		filepath.Join(childDir, name, "mod.rs"),
	} {
		if exists(file) {
			return file, filepath.Join(childDir, name)
		}
	}
	return "", ""
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// render fills ns with the public items of m. Exported macros land in the
// crate root namespace, matching #[macro_export] semantics.
func (w *crateWalker) render(m *module, ns, root *extractor.Namespace) {
	src := m.src
	for i := 0; i < int(m.body.NamedChildCount()); i++ {
		n := m.body.NamedChild(i)
		if isHidden(n, src) {
			continue
		}
		switch n.Type() {
		case "function_item":
			if isPub(n, src) {
				ns.Symbols = append(ns.Symbols, symbol(fieldText(n, "name", src), functionSignature(n, src)))
			}
		case "trait_item":
			if isPub(n, src) {
				ns.Symbols = append(ns.Symbols, symbol(fieldText(n, "name", src), renderBlock(n, src, isMember)))
			}
		case "struct_item", "enum_item", "union_item", "type_item", "const_item", "static_item":
			if isPub(n, src) {
				ns.Symbols = append(ns.Symbols, symbol(fieldText(n, "name", src), withLeading(n, src, n.EndByte())))
			}
		case "use_declaration":
			if isPub(n, src) {
				ns.Symbols = append(ns.Symbols, symbol(useName(fieldText(n, "argument", src)), withLeading(n, src, n.EndByte())))
			}
		case "macro_definition":
			if hasAttribute(n, src, "macro_export") {
				root.Symbols = append(root.Symbols, symbol(fieldText(n, "name", src), withLeading(n, src, n.EndByte())))
			}
		case "impl_item":
			if s, ok := w.renderImpl(n, src); ok {
				ns.Symbols = append(ns.Symbols, s)
			}
		}
	}
}

func (w *crateWalker) renderImpl(n *sitter.Node, src []byte) (extractor.Symbol, bool) {
	typeText := fieldText(n, "type", src)
	base := baseTypeName(typeText)
	if w.privateTypes[base] && !w.publicTypes[base] {
		return extractor.Symbol{}, false
	}

	name := "impl " + typeText
	keep := isPubMember
	if trait := fieldText(n, "trait", src); trait != "" {
		name = "impl " + trait + " for " + typeText
		keep = isMember
	} else if countMembers(n, src, keep) == 0 {
		return extractor.Symbol{}, false
	}
	return symbol(name, renderBlock(n, src, keep)), true
}

func symbol(name, source string) extractor.Symbol {
	return extractor.Symbol{Name: name, SourceCode: source}
}

// useName names a re-export by its last path segment. Grouped and glob
// imports keep the full argument.
func useName(arg string) string {
	if strings.ContainsAny(arg, "{*") {
		return arg
	}
	if _, alias, ok := strings.Cut(arg, " as "); ok {
		return strings.TrimSpace(alias)
	}
	if i := strings.LastIndex(arg, "::"); i >= 0 {
		return arg[i+2:]
	}
	return arg
}

// baseTypeName reduces `a::Foo<T>` to `Foo`.
func baseTypeName(t string) string {
	if i := strings.IndexByte(t, '<'); i >= 0 {
		t = t[:i]
	}
	if i := strings.LastIndex(t, "::"); i >= 0 {
		t = t[i+2:]
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(t, "&"), "mut "))
}
