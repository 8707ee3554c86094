// Package rust implements the daipendency extractor for Rust crates.
//
// # Metadata
//
// The manifest is Cargo.toml. The crate name and version come from its
// [package] table and the documentation from the crate README.
//
// # Public API
//
// Starting at the library entry point (src/lib.rs or [lib] path), every
// reachable `pub mod` becomes a namespace named by its Rust path
// (my_crate, my_crate::sub, ...). Public items keep their doc comments and
// attributes; function bodies are dropped and impl blocks are reduced to
// their public method signatures.
//
// # Dependencies
//
// [Extractor.ResolveDependencyPath] maps a dependency name to its source
// directory: path dependencies point into the workspace, registry
// dependencies are looked up by their Cargo.lock version in the local cargo
// registry and, when a crates.io client is configured, downloaded.
package rust
