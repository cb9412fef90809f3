package suite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{"BASE_URL", "HEADLESS", "SLOW_MO", "SCREENSHOTS", "VIDEOS", "STORAGE_STATE_PATH", "ARTIFACT_DIR"} {
		t.Setenv(name, "")
	}

	cfg := Load()
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.Headless)
	assert.Equal(t, time.Duration(0), cfg.SlowMo)
	assert.True(t, cfg.Screenshots)
	assert.False(t, cfg.Videos)
	assert.Equal(t, ".auth/storage-state.json", cfg.StorageStatePath)
	assert.Equal(t, "test-results", cfg.ArtifactDir)
}

func TestLoadFindsConfigInAncestorDir(t *testing.T) {
	for _, name := range []string{"BASE_URL", "HEADLESS", "SLOW_MO", "SCREENSHOTS", "VIDEOS", "STORAGE_STATE_PATH", "ARTIFACT_DIR"} {
		t.Setenv(name, "")
	}

	root := t.TempDir()
	pkgDir := filepath.Join(root, "tests", "e2e")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "e2e.yaml"),
		[]byte("timeout: 45s\nvideos: true\n"), 0o644))
	t.Chdir(pkgDir)

	cfg := Load()
	assert.Equal(t, 45*time.Second, cfg.Timeout, "repo-root e2e.yaml should be picked up from a nested package dir")
	assert.True(t, cfg.Videos)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("BASE_URL", "https://staging.web.vuoriclothing.com")
	t.Setenv("HEADLESS", "true")
	t.Setenv("SLOW_MO", "250ms")
	t.Setenv("VIDEOS", "true")
	t.Setenv("STORAGE_STATE_PATH", ".auth/alt.json")

	cfg := Load()
	assert.Equal(t, "https://staging.web.vuoriclothing.com", cfg.BaseURL)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 250*time.Millisecond, cfg.SlowMo)
	assert.True(t, cfg.Videos)
	assert.Equal(t, ".auth/alt.json", cfg.StorageStatePath)
}
