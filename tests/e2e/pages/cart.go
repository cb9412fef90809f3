package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// CartDrawer is the slide-out cart component shared across storefront pages.
type CartDrawer struct {
	page playwright.Page
}

// NewCartDrawer binds the drawer component to an open page.
func NewCartDrawer(page playwright.Page) *CartDrawer {
	return &CartDrawer{page: page}
}

// WaitForOpen blocks until the drawer finishes its slide-in animation.
func (c *CartDrawer) WaitForOpen() error {
	if err := c.page.Locator("[data-testid='cart-drawer'][data-state='open']").WaitFor(); err != nil {
		return fmt.Errorf("cart drawer did not open: %w", err)
	}
	return nil
}

// IsOpen reports whether the drawer is currently visible.
func (c *CartDrawer) IsOpen() (bool, error) {
	return c.page.Locator("[data-testid='cart-drawer'][data-state='open']").IsVisible()
}

// Open clicks the header cart icon.
func (c *CartDrawer) Open() error {
	if err := c.page.Locator("[data-testid='cart-toggle']").Click(); err != nil {
		return fmt.Errorf("could not open cart drawer: %w", err)
	}
	return c.WaitForOpen()
}

// ItemCount returns the badge count on the cart icon. A missing badge
// means an empty cart.
func (c *CartDrawer) ItemCount() (int, error) {
	badge := c.page.Locator("[data-testid='cart-count']")
	visible, err := badge.IsVisible()
	if err != nil {
		return 0, fmt.Errorf("could not check cart badge: %w", err)
	}
	if !visible {
		return 0, nil
	}
	text, err := badge.TextContent()
	if err != nil {
		return 0, fmt.Errorf("could not read cart badge: %w", err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("cart badge %q is not a number: %w", text, err)
	}
	return count, nil
}

// LineItemTitles returns the product titles currently in the drawer.
func (c *CartDrawer) LineItemTitles() ([]string, error) {
	titles, err := c.page.Locator("[data-testid='cart-line-item'] [data-testid='line-item-title']").AllTextContents()
	if err != nil {
		return nil, fmt.Errorf("could not read cart line items: %w", err)
	}
	out := make([]string, 0, len(titles))
	for _, title := range titles {
		out = append(out, strings.TrimSpace(title))
	}
	return out, nil
}

// Subtotal returns the displayed cart subtotal.
func (c *CartDrawer) Subtotal() (string, error) {
	text, err := c.page.Locator("[data-testid='cart-subtotal']").TextContent()
	if err != nil {
		return "", fmt.Errorf("could not read cart subtotal: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// ProceedToCheckout clicks through to checkout and waits for navigation.
func (c *CartDrawer) ProceedToCheckout() error {
	if err := c.page.Locator("[data-testid='checkout-button']").Click(); err != nil {
		return fmt.Errorf("could not click checkout: %w", err)
	}
	if err := c.page.WaitForURL("**/checkout**", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(15000),
	}); err != nil {
		return fmt.Errorf("checkout navigation failed: %w", err)
	}
	return nil
}
