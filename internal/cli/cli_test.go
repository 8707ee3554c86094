package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/daipendency/daipendency/pkg/buildinfo"
	"github.com/daipendency/daipendency/pkg/errors"
)

const demoDoc = "---\nlibrary_name: demo\nlibrary_version: 0.3.0\n---\n\nDemo crate.\n\n# API\n\n" +
	"## demo\n\n```rust\n/// Greets.\npub fn greet() -> &'static str;\n```\n"

// testEnv isolates config, cache and cargo home, and captures status output.
type testEnv struct {
	cacheHome string
	status    bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{cacheHome: t.TempDir()}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", env.cacheHome)
	t.Setenv("CARGO_HOME", t.TempDir())
	t.Setenv("DAIPENDENCY_OFFLINE", "true")

	old := statusOut
	statusOut = &env.status
	t.Cleanup(func() { statusOut = old })
	return env
}

// run executes the CLI with args and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func demoCrate(t *testing.T, dir string) {
	t.Helper()
	writeFiles(t, dir, map[string]string{
		"Cargo.toml": "[package]\nname = \"demo\"\nversion = \"0.3.0\"\n",
		"README.md":  "Demo crate.\n",
		"src/lib.rs": "/// Greets.\npub fn greet() -> &'static str {\n    \"hi\"\n}\n",
	})
}

func TestExtract(t *testing.T) {
	newTestEnv(t)
	dir := t.TempDir()
	demoCrate(t, dir)

	for _, args := range [][]string{
		{"extract", dir},
		{"extract", dir, "--language", "Rust"},
		{"extract", "-l", "rust", dir},
	} {
		t.Run(strings.Join(args[2:], " "), func(t *testing.T) {
			out, err := run(t, args...)
			if err != nil {
				t.Fatalf("extract error = %v", err)
			}
			if out != demoDoc {
				t.Errorf("stdout =\n%q\nwant\n%q", out, demoDoc)
			}
		})
	}
}

func TestExtractErrors(t *testing.T) {
	newTestEnv(t)
	empty := t.TempDir()

	tests := []struct {
		name     string
		args     []string
		wantCode errors.Code
		wantMsg  string
	}{
		{
			name:    "unknown language",
			args:    []string{"extract", "--language", "cobol", "/does/not/exist"},
			wantMsg: "unknown language 'cobol'",
		},
		{
			name:    "missing path",
			args:    []string{"extract"},
			wantMsg: "accepts 1 arg(s)",
		},
		{
			name:     "no manifest",
			args:     []string{"extract", empty},
			wantCode: errors.ErrCodeDiscoveryNotFound,
		},
		{
			name:     "explicit language without manifest",
			args:     []string{"extract", "--language", "rust", empty},
			wantCode: errors.ErrCodeMissingManifest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if out != "" {
				t.Errorf("partial output on failure: %q", out)
			}
			if tt.wantCode != "" && !errors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want message containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestExtractOutputFile(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()
	demoCrate(t, dir)
	outPath := filepath.Join(t.TempDir(), "api.md")

	out, err := run(t, "extract", dir, "-o", outPath)
	if err != nil {
		t.Fatalf("extract error = %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != demoDoc {
		t.Errorf("file =\n%q\nwant\n%q", data, demoDoc)
	}
	if !strings.Contains(env.status.String(), outPath) {
		t.Errorf("status output %q does not mention %s", env.status.String(), outPath)
	}
}

func TestExtractDep(t *testing.T) {
	newTestEnv(t)
	root := t.TempDir()
	app := filepath.Join(root, "app")
	writeFiles(t, app, map[string]string{
		"Cargo.toml": "[package]\nname = \"app\"\n\n[dependencies]\ndemo = { path = \"../demo\" }\n",
		"src/lib.rs": "",
	})
	demoCrate(t, filepath.Join(root, "demo"))

	out, err := run(t, "extract-dep", "demo", "--dependant", app)
	if err != nil {
		t.Fatalf("extract-dep error = %v", err)
	}
	if out != demoDoc {
		t.Errorf("stdout =\n%q\nwant\n%q", out, demoDoc)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(app); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	out, err = run(t, "extract-dep", "demo")
	if err != nil {
		t.Fatalf("extract-dep from working directory error = %v", err)
	}
	if out != demoDoc {
		t.Errorf("stdout =\n%q\nwant\n%q", out, demoDoc)
	}
}

func TestExtractDepNotResolved(t *testing.T) {
	newTestEnv(t)
	app := t.TempDir()
	writeFiles(t, app, map[string]string{
		"Cargo.toml": "[package]\nname = \"app\"\n",
	})

	out, err := run(t, "extract-dep", "serde", "-d", app)
	if !errors.Is(err, errors.ErrCodeDependency) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeDependency)
	}
	if out != "" {
		t.Errorf("partial output on failure: %q", out)
	}
}

func TestLanguagesCommand(t *testing.T) {
	out, err := run(t, "languages")
	if err != nil {
		t.Fatalf("languages error = %v", err)
	}
	for _, want := range []string{"LANGUAGE", "rust", "Rust"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			out, err := run(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s error = %v", shell, err)
			}
			if !strings.Contains(out, "daipendency") {
				t.Errorf("completion script does not mention daipendency")
			}
		})
	}

	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := run(t, "--version")
	if err != nil {
		t.Fatalf("--version error = %v", err)
	}
	if !strings.Contains(out, "daipendency version "+buildinfo.Version) {
		t.Errorf("version output = %q", out)
	}
}

func TestOfflineFlag(t *testing.T) {
	newTestEnv(t)
	t.Setenv("DAIPENDENCY_OFFLINE", "false")

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	if err := root.PersistentFlags().Set("offline", "true"); err != nil {
		t.Fatal(err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Offline {
		t.Error("--offline did not override the config")
	}
}
