// Package markdown renders a [library.Library] as a markdown document.
package markdown

import (
	"context"
	"fmt"
	"strings"

	"github.com/daipendency/daipendency/pkg/extractor"
	"github.com/daipendency/daipendency/pkg/lang"
	"github.com/daipendency/daipendency/pkg/library"
)

// Format renders lib. The output is stable: the same library always yields
// the same bytes.
//
//	---
//	library_name: <name>
//	library_version: <version or null>
//	---
//
//	<documentation>
//
//	# API
//
//	<one block per namespace with symbols>
func Format(lib *library.Library) string {
	version := lib.Version
	if version == "" {
		version = "null"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "---\nlibrary_name: %s\nlibrary_version: %s\n---\n\n", lib.Name, version)
	b.WriteString(strings.TrimSpace(lib.Documentation))
	b.WriteString("\n\n# API\n\n")
	b.WriteString(formatNamespaces(lib.Namespaces, lib.Language))
	return b.String()
}

// Generate loads the library at path and renders it. An empty language
// means auto-detect.
func Generate(ctx context.Context, loader *library.Loader, path string, language lang.Language) (string, error) {
	lib, err := loader.Load(ctx, path, language)
	if err != nil {
		return "", err
	}
	return Format(lib), nil
}

func formatNamespaces(namespaces []extractor.Namespace, language lang.Language) string {
	var blocks []string
	for _, ns := range namespaces {
		if len(ns.Symbols) == 0 {
			continue
		}
		blocks = append(blocks, formatNamespace(ns, language))
	}
	return strings.Join(blocks, "\n")
}

func formatNamespace(ns extractor.Namespace, language lang.Language) string {
	sources := make([]string, len(ns.Symbols))
	for i, s := range ns.Symbols {
		sources[i] = s.SourceCode
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n```%s\n", ns.Name, language)
	if ns.DocComment != "" {
		b.WriteString(ns.DocComment)
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(sources, "\n\n"))
	b.WriteString("\n```\n")
	return b.String()
}
