// Package render turns loaded libraries into documents.
//
// The [markdown] subpackage produces the daipendency document: a YAML
// frontmatter block with the library name and version, the library's own
// documentation, and an "# API" section with one fenced code block per
// namespace.
//
//	lib, err := loader.Load(ctx, path, "")
//	doc := markdown.Format(lib)
package render
