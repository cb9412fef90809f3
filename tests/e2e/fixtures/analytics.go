// Package fixtures provides read-only accessors over a live page for
// asserting on analytics and consent tags: cookies, local storage, the
// dataLayer, and script tags in the rendered source.
package fixtures

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
)

// Analytics wraps a page with tag-inspection helpers. All methods are
// read-only; fixtures never mutate storefront state.
type Analytics struct {
	page playwright.Page
}

// NewAnalytics binds the fixture to an open page.
func NewAnalytics(page playwright.Page) *Analytics {
	return &Analytics{page: page}
}

// Cookie returns the value of the named cookie in the page's context.
func (a *Analytics) Cookie(name string) (string, bool, error) {
	cookies, err := a.page.Context().Cookies()
	if err != nil {
		return "", false, fmt.Errorf("could not read cookies: %w", err)
	}
	for _, c := range cookies {
		if c.Name == name {
			return c.Value, true, nil
		}
	}
	return "", false, nil
}

// LocalStorage returns the value stored under key for the current origin,
// or "" when absent.
func (a *Analytics) LocalStorage(key string) (string, error) {
	result, err := a.page.Evaluate(`key => window.localStorage.getItem(key) || ""`, key)
	if err != nil {
		return "", fmt.Errorf("could not read localStorage[%s]: %w", key, err)
	}
	value, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected localStorage value type %T", result)
	}
	return value, nil
}

// DataLayerEvents returns the pushed dataLayer entries, oldest first.
func (a *Analytics) DataLayerEvents() ([]map[string]any, error) {
	result, err := a.page.Evaluate(`() => JSON.stringify(window.dataLayer || [])`)
	if err != nil {
		return nil, fmt.Errorf("could not read dataLayer: %w", err)
	}
	raw, ok := result.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected dataLayer payload type %T", result)
	}
	var events []map[string]any
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		return nil, fmt.Errorf("could not decode dataLayer: %w", err)
	}
	return events, nil
}

// HasDataLayerEvent reports whether any pushed entry carries the given
// event name.
func (a *Analytics) HasDataLayerEvent(name string) (bool, error) {
	events, err := a.DataLayerEvents()
	if err != nil {
		return false, err
	}
	for _, e := range events {
		if e["event"] == name {
			return true, nil
		}
	}
	return false, nil
}

// ScriptSources returns the src of every external script tag in the
// rendered page source.
func (a *Analytics) ScriptSources() ([]string, error) {
	doc, err := a.document()
	if err != nil {
		return nil, err
	}
	var sources []string
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			sources = append(sources, src)
		}
	})
	return sources, nil
}

// HasScriptTag reports whether any script tag, external or inline,
// mentions the given marker (a host, a tag-manager ID, a vendor snippet).
func (a *Analytics) HasScriptTag(marker string) (bool, error) {
	doc, err := a.document()
	if err != nil {
		return false, err
	}
	found := false
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if src, ok := s.Attr("src"); ok && strings.Contains(src, marker) {
			found = true
			return false
		}
		if strings.Contains(s.Text(), marker) {
			found = true
			return false
		}
		return true
	})
	return found, nil
}

func (a *Analytics) document() (*goquery.Document, error) {
	content, err := a.page.Content()
	if err != nil {
		return nil, fmt.Errorf("could not read page source: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("could not parse page source: %w", err)
	}
	return doc, nil
}
