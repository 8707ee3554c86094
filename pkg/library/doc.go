// Package library loads the documented surface of a library from disk.
//
// A [Loader] ties together the language registry and the extractors:
//
//   - [Loader.Discover] probes every registered language in order and picks
//     the first whose manifest is present. A malformed manifest stops the
//     search, since it names the intended language.
//   - [Loader.Load] extracts the public API of a library, either with an
//     explicit language or through discovery.
//   - [Loader.LoadDependency] asks the dependant's extractor where a
//     dependency lives and loads it with the same language.
//
// Loading is sequential and never retries; every failure is returned to the
// caller.
package library
