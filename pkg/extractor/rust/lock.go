package rust

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/daipendency/daipendency/pkg/errors"
)

const lockFile = "Cargo.lock"

type cargoLock struct {
	Packages []lockedPackage `toml:"package"`
}

type lockedPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Source  string `toml:"source"`
}

func (p lockedPackage) fromRegistry() bool {
	return strings.HasPrefix(p.Source, "registry+") || strings.HasPrefix(p.Source, "sparse+")
}

// findLockFile returns the nearest Cargo.lock at or above dir; workspace
// members share the lock file of the workspace root.
func findLockFile(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, lockFile)
		if exists(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// lockedVersion returns the version Cargo.lock pins for a registry package.
// The first registry entry wins when several versions are locked. Returns ""
// when there is no lock file or no registry entry for name.
func lockedVersion(dir, name string) (string, error) {
	path := findLockFile(dir)
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", errors.Wrap(errors.ErrCodeInternal, err, "failed to read %s", path)
	}

	var lock cargoLock
	if err := toml.Unmarshal(data, &lock); err != nil {
		return "", errors.Wrap(errors.ErrCodeMalformedManifest, err, "failed to parse %s", path)
	}
	for _, p := range lock.Packages {
		if p.Name == name && p.fromRegistry() {
			return p.Version, nil
		}
	}
	return "", nil
}
