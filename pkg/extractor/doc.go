// Package extractor defines the contract between daipendency and its
// per-language extractors.
//
// An [Extractor] understands one language's project layout. It reads the
// project manifest to produce [LibraryMetadata], walks the source tree with a
// tree-sitter parser to produce the public API as ordered [Namespace] values,
// and maps dependency names to directories on disk.
//
// # Manifest Errors
//
// [Extractor.LibraryMetadata] must report an absent manifest with
// [MissingManifest] and an unreadable or unparsable one with
// [MalformedManifest]. Discovery relies on the difference: a missing manifest
// means "not this language", a malformed one means "this language, but
// broken".
//
// # Parsers
//
// [NewParser] builds a tree-sitter parser bound to the grammar an extractor
// declares through [Extractor.ParserLanguage].
package extractor
