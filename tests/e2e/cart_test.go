package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuori/storefront-e2e/tests/e2e/pages"
)

func TestAddToCartOpensDrawer(t *testing.T) {
	b := liveBrowser(t)

	pdp := pages.NewProductPage(b.Page)
	require.NoError(t, pdp.Open(pdpHandle))
	require.NoError(t, pdp.SelectSize("M"))
	require.NoError(t, pdp.AddToCart())

	open, err := pdp.Cart.IsOpen()
	require.NoError(t, err)
	assert.True(t, open, "cart drawer should open after add to cart")

	count, err := pdp.Cart.ItemCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	titles, err := pdp.Cart.LineItemTitles()
	require.NoError(t, err)
	require.Len(t, titles, 1)

	pdpTitle, err := pdp.Title()
	require.NoError(t, err)
	assert.Equal(t, pdpTitle, titles[0], "drawer line item should match the PDP product")
}

func TestCartSubtotalUpdates(t *testing.T) {
	b := liveBrowser(t)

	pdp := pages.NewProductPage(b.Page)
	require.NoError(t, pdp.Open(pdpHandle))
	require.NoError(t, pdp.SelectSize("M"))
	require.NoError(t, pdp.AddToCart())

	subtotal, err := pdp.Cart.Subtotal()
	require.NoError(t, err)
	assert.NotEmpty(t, subtotal)

	price, err := pdp.Price()
	require.NoError(t, err)
	assert.Equal(t, price, subtotal, "single-item subtotal should equal the PDP price")
}

func TestCheckoutNavigation(t *testing.T) {
	b := liveBrowser(t)

	pdp := pages.NewProductPage(b.Page)
	require.NoError(t, pdp.Open(pdpHandle))
	require.NoError(t, pdp.SelectSize("M"))
	require.NoError(t, pdp.AddToCart())

	require.NoError(t, pdp.Cart.ProceedToCheckout())
	assert.Contains(t, b.Page.URL(), "checkout")
}
