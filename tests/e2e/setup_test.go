package e2e

import (
	"testing"

	"github.com/vuori/storefront-e2e/internal/env"
	"github.com/vuori/storefront-e2e/internal/resolver"
)

// TestSetup verifies the suite environment resolves before any browser work
func TestSetup(t *testing.T) {
	t.Log("Storefront E2E Environment Check")
	t.Log("================================")

	country := env.Get("COUNTRY", "US")
	branch := env.Get("BRANCH", "production")
	t.Logf("COUNTRY: %s", country)
	t.Logf("BRANCH: %s", branch)

	cfg, err := resolver.Resolve(country, branch)
	if err != nil {
		t.Fatalf("environment does not resolve: %v", err)
	}
	t.Logf("Domain: %s", cfg.Domain)
	t.Logf("Cookie domain: %s", cfg.CookieDomain)

	if preview := env.Get("DEPLOY_PREVIEW_URL", ""); preview != "" {
		t.Logf("DEPLOY_PREVIEW_URL: %s", preview)
	}

	if setupResult != nil {
		t.Logf("Base URL: %s", setupResult.BaseURL)
		t.Logf("Storage state: %s", setupResult.StorageStatePath)
	} else {
		t.Log("Live run disabled (E2E unset); browser specs will skip")
	}
}
