// Package integrations provides HTTP clients for package registry APIs.
//
// The shared [Client] handles default headers, status classification
// ([ErrNotFound], [ErrNetwork]), retries of transient failures via
// [httputil.RetryWithBackoff], and JSON response caching through a
// [cache.Cache]. Registry-specific clients embed it:
//
//   - [crates]: Rust crates.io (latest versions, crate archive downloads)
//
// [crates]: github.com/daipendency/daipendency/pkg/integrations/crates
// [httputil.RetryWithBackoff]: github.com/daipendency/daipendency/pkg/httputil.RetryWithBackoff
// [cache.Cache]: github.com/daipendency/daipendency/pkg/cache.Cache
package integrations
