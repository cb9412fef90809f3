// Package bootstrap performs the one-time global setup that runs before
// any test worker: resolve the target storefront, then persist an
// authenticated browser storage state that every test session reuses.
package bootstrap

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/vuori/storefront-e2e/internal/env"
	"github.com/vuori/storefront-e2e/internal/resolver"
)

// DefaultStorageStatePath is where the serialized storage state lands,
// relative to the repo root. Test contexts load it read-only; each run
// overwrites it wholesale.
const DefaultStorageStatePath = ".auth/storage-state.json"

// Options control a bootstrap run. Zero values default from the
// environment the same way the resolver does.
type Options struct {
	Country          string
	Branch           string
	Headless         bool
	StorageStatePath string
}

// Result is the resolved state global setup hands to the test harness.
// BASE_URL is also written into the process environment for code that
// reads it ambiently, but callers should prefer threading this struct.
type Result struct {
	Country          string
	Branch           string
	BaseURL          string
	CookieDomain     string
	StorageStatePath string
}

// AuthCookies returns the fixed two-cookie set that lets automation through
// the storefront's gate, scoped to cookieDomain. Attributes are pinned:
// the gate middleware matches them exactly.
func AuthCookies(cookieDomain string) []playwright.OptionalCookie {
	attrs := func(name, value string) playwright.OptionalCookie {
		return playwright.OptionalCookie{
			Name:     name,
			Value:    value,
			Domain:   playwright.String(cookieDomain),
			Path:     playwright.String("/"),
			Expires:  playwright.Float(-1),
			HttpOnly: playwright.Bool(false),
			Secure:   playwright.Bool(false),
			SameSite: playwright.SameSiteAttributeLax,
		}
	}
	return []playwright.OptionalCookie{
		attrs("vuori_access", "allowed"),
		attrs("automation", "true"),
	}
}

// PreviewCookieDomain derives the cookie scope for a deploy preview URL,
// applying the same normalization rule the resolver uses for table domains.
func PreviewCookieDomain(rawURL string) string {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	host = strings.TrimPrefix(host, "www.")
	return resolver.NormalizeCookieDomain(host, host)
}

// Run executes global setup once: resolve the environment, then launch a
// disposable browser, inject the auth cookies, and write the storage state
// file. Fail-fast with no retries; any error aborts the whole run so tests
// never start against an unresolved or unauthenticated environment.
func Run(opts Options) (*Result, error) {
	country := opts.Country
	if country == "" {
		country = env.Get("COUNTRY", "US")
	}
	branch := opts.Branch
	if branch == "" {
		branch = env.Get("BRANCH", "production")
	}
	log.Printf("[bootstrap] starting global setup country=%s branch=%s", country, branch)

	res, err := resolveTarget(country, branch)
	if err != nil {
		log.Printf("[bootstrap] resolution failed: %v", err)
		return nil, err
	}

	res.StorageStatePath = opts.StorageStatePath
	if res.StorageStatePath == "" {
		res.StorageStatePath = DefaultStorageStatePath
	}

	// BASE_URL is write-once for the run: global setup owns it, everything
	// after only reads it.
	if err := os.Setenv("BASE_URL", res.BaseURL); err != nil {
		return nil, fmt.Errorf("could not set BASE_URL: %w", err)
	}
	log.Printf("[bootstrap] resolved base URL %s (cookie domain %s)", res.BaseURL, res.CookieDomain)

	if err := writeStorageState(res, opts.Headless); err != nil {
		log.Printf("[bootstrap] auth state bootstrap failed: %v", err)
		return nil, err
	}
	log.Printf("[bootstrap] storage state written to %s", res.StorageStatePath)
	return res, nil
}

// resolveTarget picks the base URL and cookie domain, short-circuiting
// country/branch resolution when a deploy preview URL is configured.
func resolveTarget(country, branch string) (*Result, error) {
	if preview := env.Get("DEPLOY_PREVIEW_URL", ""); preview != "" {
		if resolver.ParseDeployPreviewURL(preview) {
			return &Result{
				Country:      country,
				Branch:       branch,
				BaseURL:      preview,
				CookieDomain: PreviewCookieDomain(preview),
			}, nil
		}
		// Parse failure is non-fatal: fall back to normal resolution.
		log.Printf("[bootstrap] warning: could not apply deploy preview URL %q, using country/branch resolution", preview)
	}

	cfg, err := resolver.Resolve(country, branch)
	if err != nil {
		return nil, err
	}
	return &Result{
		Country:      cfg.CountryCode,
		Branch:       branch,
		BaseURL:      "https://" + cfg.Domain,
		CookieDomain: cfg.CookieDomain,
	}, nil
}

// writeStorageState launches a throwaway browser, injects the auth cookie
// set, and serializes the context's storage state to disk. The browser is
// closed on every exit path.
func writeStorageState(res *Result, headless bool) error {
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err := playwright.Install(); err != nil {
			return fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}
	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("could not start playwright: %w", err)
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		return fmt.Errorf("could not launch browser: %w", err)
	}
	defer browser.Close()

	context, err := browser.NewContext()
	if err != nil {
		return fmt.Errorf("could not create context: %w", err)
	}
	defer context.Close()

	if err := context.AddCookies(AuthCookies(res.CookieDomain)); err != nil {
		return fmt.Errorf("could not inject auth cookies: %w", err)
	}

	if dir := filepath.Dir(res.StorageStatePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create storage state dir: %w", err)
		}
	}
	if _, err := context.StorageState(res.StorageStatePath); err != nil {
		return fmt.Errorf("could not write storage state: %w", err)
	}
	return nil
}
