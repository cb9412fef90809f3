// Package suite loads run-wide test settings from e2e.yaml plus the
// environment. These are harness knobs (timeouts, artifacts, headless);
// storefront targeting lives in the resolver.
package suite

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/vuori/storefront-e2e/internal/bootstrap"
)

// Config holds the suite-level knobs every browser helper reads.
type Config struct {
	BaseURL          string
	Timeout          time.Duration
	Headless         bool
	SlowMo           time.Duration
	Screenshots      bool
	Videos           bool
	StorageStatePath string
	ArtifactDir      string
}

var dotEnvOnce sync.Once

// Load reads e2e.yaml (optional) and the environment. Environment wins
// over file values; BASE_URL is whatever global setup resolved.
func Load() *Config {
	dotEnvOnce.Do(loadDotEnv)

	v := viper.New()
	v.SetConfigName("e2e")
	v.SetConfigType("yaml")
	// go test runs each package in its own directory; walk up so the
	// repo-root e2e.yaml is found from nested test packages too.
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.AddConfigPath(filepath.Join("..", ".."))
	v.AddConfigPath(filepath.Join("..", "..", ".."))

	v.SetDefault("timeout", "30s")
	v.SetDefault("headless", false)
	v.SetDefault("slow_mo", "0s")
	v.SetDefault("screenshots", true)
	v.SetDefault("videos", false)
	v.SetDefault("storage_state_path", bootstrap.DefaultStorageStatePath)
	v.SetDefault("artifact_dir", "test-results")

	v.BindEnv("base_url", "BASE_URL")
	v.BindEnv("headless", "HEADLESS")
	v.BindEnv("slow_mo", "SLOW_MO")
	v.BindEnv("screenshots", "SCREENSHOTS")
	v.BindEnv("videos", "VIDEOS")
	v.BindEnv("storage_state_path", "STORAGE_STATE_PATH")
	v.BindEnv("artifact_dir", "ARTIFACT_DIR")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("[suite] ignoring unreadable e2e.yaml: %v", err)
		}
	}

	return &Config{
		BaseURL:          v.GetString("base_url"),
		Timeout:          v.GetDuration("timeout"),
		Headless:         v.GetBool("headless"),
		SlowMo:           v.GetDuration("slow_mo"),
		Screenshots:      v.GetBool("screenshots"),
		Videos:           v.GetBool("videos"),
		StorageStatePath: v.GetString("storage_state_path"),
		ArtifactDir:      v.GetString("artifact_dir"),
	}
}

// loadDotEnv loads simple KEY=VALUE lines from .env if present.
// Existing environment variables take precedence and are not overwritten.
func loadDotEnv() {
	f, err := os.Open(".env")
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		i := strings.Index(line, "=")
		if i <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:i])
		val := strings.TrimSpace(line[i+1:])
		if key == "" || val == "" {
			continue
		}
		if (strings.HasPrefix(val, "\"") && strings.HasSuffix(val, "\"")) ||
			(strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'")) {
			val = val[1 : len(val)-1]
		}
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, val)
		}
	}
}
