package crates

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/daipendency/daipendency/pkg/errors"
	"github.com/daipendency/daipendency/pkg/integrations"
)

// maxCrateFileSize caps any single file unpacked from a crate archive. An
// entry above the cap fails the whole download.
var maxCrateFileSize int64 = 64 << 20

// DownloadCrate fetches the .crate archive of name@version and unpacks it
// below destDir. It returns the crate root, destDir/<name>-<version>.
//
// A crate root that already holds a Cargo.toml is reused without touching
// the network.
func (c *Client) DownloadCrate(ctx context.Context, name, version, destDir string) (string, error) {
	if err := errors.ValidateCratesPackageName(name); err != nil {
		return "", err
	}
	if err := errors.ValidatePackageName(version); err != nil {
		return "", err
	}

	dirName := name + "-" + version
	root := filepath.Join(destDir, dirName)
	if _, err := os.Stat(filepath.Join(root, "Cargo.toml")); err == nil {
		return root, nil
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}
	staging, err := os.MkdirTemp(destDir, ".download-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(staging)

	url := fmt.Sprintf("%s/crates/%s/%s/download", c.baseURL, integrations.URLEncode(name), integrations.URLEncode(version))
	body, err := c.Open(ctx, url)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", dirName, err)
	}
	defer body.Close()

	if err := unpack(body, staging); err != nil {
		return "", fmt.Errorf("unpack %s: %w", dirName, err)
	}

	unpacked := filepath.Join(staging, dirName)
	if _, err := os.Stat(unpacked); err != nil {
		return "", fmt.Errorf("unpack %s: archive has no %s/ directory", dirName, dirName)
	}
	if err := os.Rename(unpacked, root); err != nil {
		// Another process may have unpacked the same crate meanwhile.
		if _, statErr := os.Stat(filepath.Join(root, "Cargo.toml")); statErr == nil {
			return root, nil
		}
		return "", err
	}
	return root, nil
}

// unpack extracts a gzip-compressed tarball below dir. Only directories and
// regular files are written; links and devices are skipped.
func unpack(r io.Reader, dir string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if err := errors.ValidateArchivePath(hdr.Name); err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(strings.TrimSuffix(hdr.Name, "/")))

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr); err != nil {
				return err
			}
		}
	}
}

func writeFile(path string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	n, err := io.Copy(f, io.LimitReader(r, maxCrateFileSize+1))
	if err != nil {
		f.Close()
		return err
	}
	if n > maxCrateFileSize {
		f.Close()
		return fmt.Errorf("%s exceeds %d bytes", filepath.Base(path), maxCrateFileSize)
	}
	return f.Close()
}
