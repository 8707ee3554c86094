package rust

import (
	"archive/tar"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/daipendency/daipendency/pkg/cache"
	"github.com/daipendency/daipendency/pkg/errors"
	"github.com/daipendency/daipendency/pkg/integrations/crates"
)

const lockWithSerde = `version = 3

[[package]]
name = "app"
version = "0.1.0"

[[package]]
name = "serde"
version = "1.0.200"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "abc"

[[package]]
name = "serde_json"
version = "1.0.100"
source = "registry+https://github.com/rust-lang/crates.io-index"
`

func TestDefaultCargoHome(t *testing.T) {
	t.Setenv("CARGO_HOME", "/opt/cargo")
	if got := DefaultCargoHome(); got != "/opt/cargo" {
		t.Errorf("DefaultCargoHome() = %q, want /opt/cargo", got)
	}
	if got := New().cargoHome; got != "/opt/cargo" {
		t.Errorf("New().cargoHome = %q, want /opt/cargo", got)
	}
	if got := New(WithCargoHome("/elsewhere")).cargoHome; got != "/elsewhere" {
		t.Errorf("WithCargoHome did not override the default: %q", got)
	}

	t.Setenv("CARGO_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got, want := DefaultCargoHome(), filepath.Join(home, ".cargo"); got != want {
		t.Errorf("DefaultCargoHome() = %q, want %q", got, want)
	}
}

func TestResolveDependencyPathLocal(t *testing.T) {
	dir := t.TempDir()
	app := filepath.Join(dir, "app")
	writeFiles(t, app, map[string]string{
		"Cargo.toml": "[package]\nname = \"app\"\n\n[dependencies]\nlocal = { path = \"../local\" }\n",
	})

	got, err := New(WithCargoHome(t.TempDir())).ResolveDependencyPath(context.Background(), "local", app)
	if err != nil {
		t.Fatalf("ResolveDependencyPath() error = %v", err)
	}
	if want := filepath.Join(dir, "local"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestResolveDependencyPathRegistry(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		dep      string
		wantDir  string
	}{
		{
			name:     "version string",
			manifest: "[package]\nname = \"app\"\n\n[dependencies]\nserde = \"1\"\n",
			dep:      "serde",
			wantDir:  "serde-1.0.200",
		},
		{
			name:     "renamed package",
			manifest: "[package]\nname = \"app\"\n\n[dependencies]\njson = { package = \"serde_json\", version = \"1\" }\n",
			dep:      "json",
			wantDir:  "serde_json-1.0.100",
		},
		{
			name:     "dev dependency",
			manifest: "[package]\nname = \"app\"\n\n[dev-dependencies]\nserde = \"1\"\n",
			dep:      "serde",
			wantDir:  "serde-1.0.200",
		},
		{
			name:     "transitive dependency in lock only",
			manifest: "[package]\nname = \"app\"\n",
			dep:      "serde_json",
			wantDir:  "serde_json-1.0.100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cargoHome := t.TempDir()
			index := filepath.Join(cargoHome, "registry", "src", "index.crates.io-6f17d22bba15001f")
			writeFiles(t, index, map[string]string{
				"serde-1.0.200/Cargo.toml":      "[package]\nname = \"serde\"\n",
				"serde_json-1.0.100/Cargo.toml": "[package]\nname = \"serde_json\"\n",
			})

			app := t.TempDir()
			writeFiles(t, app, map[string]string{
				"Cargo.toml": tt.manifest,
				"Cargo.lock": lockWithSerde,
			})

			got, err := New(WithCargoHome(cargoHome)).ResolveDependencyPath(context.Background(), tt.dep, app)
			if err != nil {
				t.Fatalf("ResolveDependencyPath() error = %v", err)
			}
			if want := filepath.Join(index, tt.wantDir); got != want {
				t.Errorf("path = %q, want %q", got, want)
			}
		})
	}
}

func TestResolveDependencyPathWorkspaceLock(t *testing.T) {
	cargoHome := t.TempDir()
	index := filepath.Join(cargoHome, "registry", "src", "github.com-1ecc6299db9ec823")
	writeFiles(t, index, map[string]string{
		"serde-1.0.200/Cargo.toml": "[package]\nname = \"serde\"\n",
	})

	workspace := t.TempDir()
	writeFiles(t, workspace, map[string]string{
		"Cargo.toml":        "[workspace]\nmembers = [\"member\"]\n",
		"Cargo.lock":        lockWithSerde,
		"member/Cargo.toml": "[package]\nname = \"member\"\n\n[dependencies]\nserde = \"1\"\n",
	})

	got, err := New(WithCargoHome(cargoHome)).ResolveDependencyPath(context.Background(), "serde", filepath.Join(workspace, "member"))
	if err != nil {
		t.Fatalf("ResolveDependencyPath() error = %v", err)
	}
	if want := filepath.Join(index, "serde-1.0.200"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestResolveDependencyPathErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		dep   string
	}{
		{
			name:  "no manifest",
			files: map[string]string{},
			dep:   "serde",
		},
		{
			name:  "not a dependency",
			files: map[string]string{"Cargo.toml": "[package]\nname = \"app\"\n"},
			dep:   "tokio",
		},
		{
			name: "declared but not locked while offline",
			files: map[string]string{
				"Cargo.toml": "[package]\nname = \"app\"\n\n[dependencies]\ntokio = \"1\"\n",
			},
			dep: "tokio",
		},
		{
			name: "locked but not in registry while offline",
			files: map[string]string{
				"Cargo.toml": "[package]\nname = \"app\"\n\n[dependencies]\nserde = \"1\"\n",
				"Cargo.lock": lockWithSerde,
			},
			dep: "serde",
		},
		{
			name:  "invalid name",
			files: map[string]string{"Cargo.toml": "[package]\nname = \"app\"\n"},
			dep:   "../escape",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := t.TempDir()
			writeFiles(t, app, tt.files)

			_, err := New(WithCargoHome(t.TempDir())).ResolveDependencyPath(context.Background(), tt.dep, app)
			if !errors.Is(err, errors.ErrCodeDependency) {
				t.Errorf("ResolveDependencyPath() error = %v, want %s", err, errors.ErrCodeDependency)
			}
		})
	}
}

func TestResolveDependencyPathDownload(t *testing.T) {
	archive := crateArchive(t, map[string]string{
		"serde-1.0.200/Cargo.toml": "[package]\nname = \"serde\"\n",
		"serde-1.0.200/src/lib.rs": "pub trait Serialize {}\n",
	})

	var downloads atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/crates/serde/1.0.200/download" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		downloads.Add(1)
		w.Write(archive)
	}))
	defer server.Close()

	app := t.TempDir()
	writeFiles(t, app, map[string]string{
		"Cargo.toml": "[package]\nname = \"app\"\n\n[dependencies]\nserde = \"1\"\n",
		"Cargo.lock": lockWithSerde,
	})

	downloadDir := t.TempDir()
	client := crates.NewClientWithBaseURL(cache.NewNullCache(), time.Hour, server.URL)
	e := New(WithCargoHome(t.TempDir()), WithRegistry(client, downloadDir))

	for i := 0; i < 2; i++ {
		got, err := e.ResolveDependencyPath(context.Background(), "serde", app)
		if err != nil {
			t.Fatalf("ResolveDependencyPath() error = %v", err)
		}
		if want := filepath.Join(downloadDir, "serde-1.0.200"); got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	}
	if n := downloads.Load(); n != 1 {
		t.Errorf("downloads = %d, want 1", n)
	}
	if _, err := os.Stat(filepath.Join(downloadDir, "serde-1.0.200", "src", "lib.rs")); err != nil {
		t.Errorf("unpacked source missing: %v", err)
	}
}

func crateArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		hdr := &tar.Header{Name: name, Mode: 0o644, Size: int64(len(content)), Typeflag: tar.TypeReg}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
