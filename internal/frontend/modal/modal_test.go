package modal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const menuHTML = `<div class="account-menu">menu</div>`

func newTestModal(t *testing.T) *Controller {
	t.Helper()
	c, err := New(func() string { return menuHTML })
	require.NoError(t, err)
	return c
}

func TestNew_RequiresDefaultContent(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestShow_ResetsToDefault(t *testing.T) {
	c := newTestModal(t)

	c.Show()

	assert.True(t, c.Visible())
	assert.Equal(t, menuHTML, c.Content())
	assert.Equal(t, SizeSmall, c.CurrentSize())
}

func TestShow_IsIdempotent(t *testing.T) {
	c := newTestModal(t)

	c.OpenWith("<p>login</p>", SizeLarge)
	c.Show()

	assert.True(t, c.Visible())
	assert.Equal(t, menuHTML, c.Content())
	assert.Equal(t, SizeSmall, c.CurrentSize())
}

func TestOpenWith_PairsContentAndSize(t *testing.T) {
	c := newTestModal(t)

	c.OpenWith("<p>register</p>", SizeLarge)

	assert.True(t, c.Visible())
	assert.Equal(t, "<p>register</p>", c.Content())
	assert.Equal(t, SizeLarge, c.CurrentSize())
}

func TestHide_AfterOpenWith_ResetsContent(t *testing.T) {
	c := newTestModal(t)

	c.OpenWith("<p>stale fragment</p>", SizeLarge)
	c.Hide()

	assert.False(t, c.Visible())
	assert.Equal(t, menuHTML, c.Content())
	assert.Equal(t, SizeSmall, c.CurrentSize())

	// Reopening never shows the stale fragment.
	c.Show()
	assert.Equal(t, menuHTML, c.Content())
}

func TestClose_ResetsForNextOpen(t *testing.T) {
	c := newTestModal(t)

	c.OpenWith("<p>dialog</p>", SizeLarge)
	c.Close()

	assert.False(t, c.Visible())
	assert.Equal(t, menuHTML, c.Content())
	assert.Equal(t, SizeSmall, c.CurrentSize())
}

func TestHandleBackdropClick_OnlyOverlayDismisses(t *testing.T) {
	c := newTestModal(t)
	c.OpenWith("<p>login</p>", SizeSmall)

	assert.False(t, c.HandleBackdropClick(false))
	assert.True(t, c.Visible())

	assert.True(t, c.HandleBackdropClick(true))
	assert.False(t, c.Visible())
	assert.Equal(t, menuHTML, c.Content())
}

func TestHandleBackdropClick_HiddenModalIgnored(t *testing.T) {
	c := newTestModal(t)

	assert.False(t, c.HandleBackdropClick(true))
}
