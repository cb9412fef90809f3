package e2e

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuori/storefront-e2e/internal/bootstrap"
	"github.com/vuori/storefront-e2e/internal/env"
)

// storageState mirrors the persisted snapshot format: cookie records plus
// per-origin local storage.
type storageState struct {
	Cookies []struct {
		Name     string  `json:"name"`
		Value    string  `json:"value"`
		Domain   string  `json:"domain"`
		Path     string  `json:"path"`
		Expires  float64 `json:"expires"`
		HttpOnly bool    `json:"httpOnly"`
		Secure   bool    `json:"secure"`
		SameSite string  `json:"sameSite"`
	} `json:"cookies"`
	Origins []struct {
		Origin       string `json:"origin"`
		LocalStorage []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"localStorage"`
	} `json:"origins"`
}

func readStorageState(t *testing.T, path string) storageState {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "storage state file should exist after global setup")
	var state storageState
	require.NoError(t, json.Unmarshal(data, &state))
	return state
}

func TestStorageStateContainsAuthCookies(t *testing.T) {
	if setupResult == nil {
		t.Skip("set E2E=1 to run against a live storefront")
	}

	state := readStorageState(t, setupResult.StorageStatePath)

	byName := map[string]string{}
	for _, c := range state.Cookies {
		byName[c.Name] = c.Value
		assert.Equal(t, setupResult.CookieDomain, c.Domain, c.Name)
		assert.Equal(t, "/", c.Path, c.Name)
		assert.False(t, c.HttpOnly, c.Name)
		assert.False(t, c.Secure, c.Name)
		assert.Equal(t, "Lax", c.SameSite, c.Name)
		assert.True(t, strings.HasPrefix(c.Domain, "."), "cookie domain should be cross-subdomain scoped")
	}

	require.Len(t, state.Cookies, 2, "setup writes exactly the two gate cookies")
	assert.Equal(t, "allowed", byName["vuori_access"])
	assert.Equal(t, "true", byName["automation"])
}

func TestGlobalSetupIsIdempotent(t *testing.T) {
	if setupResult == nil {
		t.Skip("set E2E=1 to run against a live storefront")
	}

	first := readStorageState(t, setupResult.StorageStatePath)

	again, err := bootstrap.Run(bootstrap.Options{
		Headless:         env.Bool("HEADLESS", false),
		StorageStatePath: setupResult.StorageStatePath,
	})
	require.NoError(t, err)
	require.Equal(t, setupResult.BaseURL, again.BaseURL)

	second := readStorageState(t, again.StorageStatePath)

	names := func(s storageState) map[string]string {
		out := map[string]string{}
		for _, c := range s.Cookies {
			out[c.Name] = c.Value
		}
		return out
	}
	assert.Equal(t, names(first), names(second), "same inputs must produce the same cookie set")
}
