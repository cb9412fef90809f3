// Package resolver combines country code and branch into the final
// storefront configuration used by global setup: target domain plus a
// cookie domain normalized for cross-subdomain scope.
package resolver

import (
	"fmt"
	"os"
	"strings"

	"github.com/vuori/storefront-e2e/internal/countries"
	"github.com/vuori/storefront-e2e/internal/env"
)

// NotFoundError reports a country code with no entry in the table.
type NotFoundError struct {
	CountryCode string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no storefront configuration found for country %q", e.CountryCode)
}

// webMarker splits preview/staging hostnames: everything after the first
// occurrence is the registrable part cookies should scope to.
const webMarker = "web."

// Resolve returns the storefront configuration for countryCode on branch.
// Empty arguments default from the environment (COUNTRY=US,
// BRANCH=production). The branch is written into the process environment
// before the table is generated; the generator reads it from there, so the
// write must happen first or it computes against a stale branch.
func Resolve(countryCode, branch string) (countries.Config, error) {
	if countryCode == "" {
		countryCode = env.Get("COUNTRY", "US")
	}
	if branch == "" {
		branch = env.Get("BRANCH", countries.ProductionBranch)
	}
	if err := os.Setenv("BRANCH", branch); err != nil {
		return countries.Config{}, fmt.Errorf("could not set BRANCH: %w", err)
	}

	for _, c := range countries.Generate() {
		if c.CountryCode != countryCode {
			continue
		}
		c.CookieDomain = NormalizeCookieDomain(c.Domain, c.CookieDomain)
		return c, nil
	}
	return countries.Config{}, &NotFoundError{CountryCode: countryCode}
}

// NormalizeCookieDomain derives the leading-dot cookie scope for a resolved
// domain. Preview/staging hosts carry a "web." segment; the part after it
// is the domain all subdomains share. The substring match is deliberately
// unanchored to keep parity with how the storefronts name their previews.
func NormalizeCookieDomain(domain, rawCookieDomain string) string {
	if i := strings.Index(domain, webMarker); i >= 0 {
		return "." + domain[i+len(webMarker):]
	}
	return "." + rawCookieDomain
}

// ParseDeployPreviewURL marks the run as targeting a deploy preview.
// An empty URL returns false with no side effects. A non-empty URL sets
// DEPLOY_PRIME_URL and CONTEXT=deploy-preview so downstream resolution
// knows to use the literal preview URL, and returns true. No URL syntax
// validation is performed.
func ParseDeployPreviewURL(raw string) bool {
	if raw == "" {
		return false
	}
	os.Setenv("DEPLOY_PRIME_URL", raw)
	os.Setenv("CONTEXT", "deploy-preview")
	return true
}
