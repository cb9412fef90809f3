// Package countries holds the per-country storefront configuration table
// and the branch-aware generator that computes environment-specific domains.
package countries

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vuori/storefront-e2e/internal/env"
)

// Config describes one supported storefront locale. Domain is rewritten per
// branch by Generate; CookieDomain here is the raw record value, the
// leading-dot normalization happens in the resolver.
type Config struct {
	CountryCode    string `yaml:"countryCode"`
	Domain         string `yaml:"domain"`
	CookieDomain   string `yaml:"cookieDomain"`
	Locale         string `yaml:"locale"`
	Currency       string `yaml:"currency"`
	Language       string `yaml:"language"`
	CheckoutDomain string `yaml:"checkoutDomain"`
}

// ProductionBranch is the branch whose domains are used verbatim. Every
// other branch gets the <branch>.web.<domain> preview/staging pattern.
const ProductionBranch = "production"

// baseTable lists the production record per storefront country.
var baseTable = []Config{
	{
		CountryCode:    "US",
		Domain:         "vuoriclothing.com",
		CookieDomain:   "vuoriclothing.com",
		Locale:         "en-US",
		Currency:       "USD",
		Language:       "en",
		CheckoutDomain: "secure.vuoriclothing.com",
	},
	{
		CountryCode:    "CA",
		Domain:         "ca.vuoriclothing.com",
		CookieDomain:   "ca.vuoriclothing.com",
		Locale:         "en-CA",
		Currency:       "CAD",
		Language:       "en",
		CheckoutDomain: "secure.ca.vuoriclothing.com",
	},
	{
		CountryCode:    "GB",
		Domain:         "uk.vuoriclothing.com",
		CookieDomain:   "uk.vuoriclothing.com",
		Locale:         "en-GB",
		Currency:       "GBP",
		Language:       "en",
		CheckoutDomain: "secure.uk.vuoriclothing.com",
	},
	{
		CountryCode:    "DE",
		Domain:         "eu.vuoriclothing.com",
		CookieDomain:   "eu.vuoriclothing.com",
		Locale:         "de-DE",
		Currency:       "EUR",
		Language:       "de",
		CheckoutDomain: "secure.eu.vuoriclothing.com",
	},
	{
		CountryCode:    "FR",
		Domain:         "eu.vuoriclothing.com",
		CookieDomain:   "eu.vuoriclothing.com",
		Locale:         "fr-FR",
		Currency:       "EUR",
		Language:       "fr",
		CheckoutDomain: "secure.eu.vuoriclothing.com",
	},
	{
		CountryCode:    "AU",
		Domain:         "au.vuoriclothing.com",
		CookieDomain:   "au.vuoriclothing.com",
		Locale:         "en-AU",
		Currency:       "AUD",
		Language:       "en",
		CheckoutDomain: "secure.au.vuoriclothing.com",
	},
}

// table is the active country table. Replaced wholesale by LoadTable.
var table = baseTable

// Generate returns the country table with domains computed for the branch
// currently set in the environment. It reads BRANCH on every call: branch
// is mutable process state, so callers must re-invoke rather than cache.
func Generate() []Config {
	branch := env.Get("BRANCH", ProductionBranch)
	out := make([]Config, len(table))
	for i, c := range table {
		if branch != ProductionBranch {
			c.Domain = fmt.Sprintf("%s.web.%s", branch, c.Domain)
		}
		out[i] = c
	}
	return out
}

// LoadTable replaces the built-in country table with records from a YAML
// file. Intended for one-off market experiments; the built-in table covers
// every live storefront.
func LoadTable(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read country table %s: %w", path, err)
	}
	var loaded []Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("could not parse country table %s: %w", path, err)
	}
	if len(loaded) == 0 {
		return fmt.Errorf("country table %s contains no records", path)
	}
	for i, c := range loaded {
		if c.CountryCode == "" || c.Domain == "" {
			return fmt.Errorf("country table %s: every record needs countryCode and domain", path)
		}
		// A record without an explicit cookie domain scopes cookies to its
		// own domain; resolution must never degrade to a bare ".".
		if c.CookieDomain == "" {
			loaded[i].CookieDomain = c.Domain
		}
	}
	table = loaded
	return nil
}

// ResetTable restores the built-in table.
func ResetTable() {
	table = baseTable
}
