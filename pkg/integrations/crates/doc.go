// Package crates provides an HTTP client for the crates.io API.
//
// # Usage
//
//	client := crates.NewClient(cache.NewNullCache(), 24*time.Hour)
//
//	crate, err := client.FetchCrate(ctx, "serde", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	dir, err := client.DownloadCrate(ctx, crate.Name, crate.Version, "/tmp/crates")
//	// dir is /tmp/crates/serde-<version>, the unpacked crate sources
//
// # Caching
//
// Metadata responses are cached to reduce load on crates.io. The cache TTL
// is set when creating the client. Pass refresh=true to bypass the cache.
// Downloaded crates are unpacked once and reused on later calls.
//
// # User-Agent
//
// The client includes a User-Agent header as requested by crates.io policy.
package crates
