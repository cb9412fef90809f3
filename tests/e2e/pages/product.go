// Package pages holds the page objects test specs drive. Pages own their
// locators; components (cart drawer, size selector) hang off the page that
// opens them.
package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// ProductPage is the product detail page for a single product handle.
type ProductPage struct {
	page playwright.Page
	Cart *CartDrawer
}

// NewProductPage creates a product page object bound to an open page.
func NewProductPage(page playwright.Page) *ProductPage {
	return &ProductPage{
		page: page,
		Cart: NewCartDrawer(page),
	}
}

// Open navigates to the product detail page for handle and waits for the
// buy box to render.
func (p *ProductPage) Open(handle string) error {
	if _, err := p.page.Goto("/products/" + handle); err != nil {
		return fmt.Errorf("could not open product %s: %w", handle, err)
	}
	if err := p.page.Locator("[data-testid='product-title']").WaitFor(); err != nil {
		return fmt.Errorf("product %s did not render: %w", handle, err)
	}
	return nil
}

// Title returns the rendered product title.
func (p *ProductPage) Title() (string, error) {
	text, err := p.page.Locator("[data-testid='product-title']").TextContent()
	if err != nil {
		return "", fmt.Errorf("could not read product title: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Price returns the displayed price string, currency symbol included.
func (p *ProductPage) Price() (string, error) {
	text, err := p.page.Locator("[data-testid='product-price']").First().TextContent()
	if err != nil {
		return "", fmt.Errorf("could not read product price: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// SelectSize clicks the swatch for the given size label.
func (p *ProductPage) SelectSize(size string) error {
	swatch := p.page.Locator(fmt.Sprintf("[data-testid='size-swatch'][data-value='%s']", size))
	if err := swatch.Click(); err != nil {
		return fmt.Errorf("could not select size %s: %w", size, err)
	}
	return nil
}

// SelectColor clicks the swatch for the given color name.
func (p *ProductPage) SelectColor(color string) error {
	swatch := p.page.Locator(fmt.Sprintf("[data-testid='color-swatch'][data-value='%s']", color))
	if err := swatch.Click(); err != nil {
		return fmt.Errorf("could not select color %s: %w", color, err)
	}
	return nil
}

// AddToCart clicks the add-to-cart button and waits for the cart drawer.
func (p *ProductPage) AddToCart() error {
	if err := p.page.Locator("[data-testid='add-to-cart']").Click(); err != nil {
		return fmt.Errorf("could not click add to cart: %w", err)
	}
	return p.Cart.WaitForOpen()
}

// IsAddToCartEnabled reports whether the buy button accepts clicks, which
// requires a complete variant selection.
func (p *ProductPage) IsAddToCartEnabled() (bool, error) {
	return p.page.Locator("[data-testid='add-to-cart']").IsEnabled()
}

// BreadcrumbTrail returns the breadcrumb segments above the buy box.
func (p *ProductPage) BreadcrumbTrail() ([]string, error) {
	items, err := p.page.Locator("[data-testid='breadcrumb'] li").AllTextContents()
	if err != nil {
		return nil, fmt.Errorf("could not read breadcrumbs: %w", err)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, strings.TrimSpace(item))
	}
	return out, nil
}
