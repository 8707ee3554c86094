package rust

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/daipendency/daipendency/pkg/errors"
)

// ResolveDependencyPath locates the source directory of a dependency of the
// crate at dependantPath.
//
// Resolution order:
//  1. path dependencies declared in Cargo.toml
//  2. <cargo home>/registry/src/*/<name>-<version>, version from Cargo.lock
//     or, with a registry client, the latest crates.io release
//  3. a crates.io download, when a registry client is configured
func (e *Extractor) ResolveDependencyPath(ctx context.Context, name, dependantPath string) (string, error) {
	if err := errors.ValidatePackageName(name); err != nil {
		return "", errors.Wrap(errors.ErrCodeDependency, err, "invalid dependency name %q", name)
	}

	dir := manifestDir(dependantPath)
	manifest, err := readManifest(dir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeDependency, err, "cannot resolve %q", name)
	}

	spec, declared := manifest.dependency(name)
	if declared && spec.Path != "" {
		p := filepath.FromSlash(spec.Path)
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		return filepath.Clean(p), nil
	}

	pkg := name
	if declared {
		pkg = spec.Package
	}

	version, err := lockedVersion(dir, pkg)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeDependency, err, "cannot resolve %q", name)
	}
	if version == "" {
		if !declared {
			return "", errors.New(errors.ErrCodeDependency, "%q is not a dependency of %s", name, dir)
		}
		if e.crates == nil {
			return "", errors.New(errors.ErrCodeDependency, "%q has no locked version in %s", name, lockFile)
		}
		info, err := e.crates.FetchCrate(ctx, pkg, false)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeDependency, err, "cannot resolve a version for %q", name)
		}
		version = info.Version
	}

	if src := e.registrySource(pkg, version); src != "" {
		return src, nil
	}
	if e.crates == nil {
		return "", errors.New(errors.ErrCodeDependency, "%s %s is not in the cargo registry at %s", pkg, version, e.cargoHome)
	}

	src, err := e.crates.DownloadCrate(ctx, pkg, version, e.downloadDir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeDependency, err, "failed to fetch %s %s", pkg, version)
	}
	return src, nil
}

// registrySource finds an unpacked crate in any registry index under cargo
// home.
func (e *Extractor) registrySource(pkg, version string) string {
	pattern := filepath.Join(e.cargoHome, "registry", "src", "*", pkg+"-"+version)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return ""
	}
	sort.Strings(matches)
	for _, m := range matches {
		if exists(filepath.Join(m, manifestFile)) {
			return m
		}
	}
	return ""
}
