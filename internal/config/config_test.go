package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daipendency/daipendency/pkg/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	t.Setenv("CARGO_HOME", "/opt/cargo")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/tmp/xdg-cache", "daipendency"), cfg.Cache.Dir)
	assert.Equal(t, DefaultCacheTTL, cfg.Cache.TTL)
	assert.Equal(t, "/opt/cargo", cfg.Cargo.Home)
	assert.False(t, cfg.Offline)
	assert.Equal(t, filepath.Join("/tmp/xdg-cache", "daipendency", "crates"), cfg.CratesDir())
	assert.Equal(t, filepath.Join("/tmp/xdg-cache", "daipendency", "http"), cfg.HTTPCacheDir())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := "cache:\n  dir: /srv/cache\n  ttl: 2h\ncargo:\n  home: /srv/cargo\noffline: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/cache", cfg.Cache.Dir)
	assert.Equal(t, 2*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "/srv/cargo", cfg.Cargo.Home)
	assert.True(t, cfg.Offline)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DAIPENDENCY_CACHE_TTL", "90m")
	t.Setenv("DAIPENDENCY_OFFLINE", "true")
	t.Setenv("DAIPENDENCY_CARGO_HOME", "/env/cargo")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.Offline)
	assert.Equal(t, "/env/cargo", cfg.Cargo.Home)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("cache: [unclosed\n"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Cache: CacheConfig{Dir: "/c", TTL: time.Hour}}, false},
		{"zero ttl disables expiry", Config{Cache: CacheConfig{Dir: "/c"}}, false},
		{"empty cache dir", Config{Cache: CacheConfig{TTL: time.Hour}}, true},
		{"negative ttl", Config{Cache: CacheConfig{Dir: "/c", TTL: -time.Second}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "daipendency"), Dir())
}
