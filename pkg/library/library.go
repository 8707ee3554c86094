package library

import (
	"github.com/daipendency/daipendency/pkg/extractor"
	"github.com/daipendency/daipendency/pkg/lang"
)

// Library is the extracted documentation surface of one library.
type Library struct {
	Name          string
	Version       string // Empty when the manifest declares none
	Documentation string
	Namespaces    []extractor.Namespace
	Language      lang.Language
}

// Discovery records which language matched a path.
type Discovery struct {
	Language  lang.Language
	Extractor extractor.Extractor
	Metadata  *extractor.LibraryMetadata
}
