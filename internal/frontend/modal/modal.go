// Package modal implements the storefront's single modal overlay: one
// content area, two sizes, and a reset-on-hide contract so a reopened modal
// never shows a stale fragment.
package modal

import "fmt"

// Size selects the modal's width class. Small and large are mutually
// exclusive.
type Size string

const (
	SizeSmall Size = "small"
	SizeLarge Size = "large"
)

// Controller drives the modal. Instances are single-goroutine by contract,
// like every component in this layer.
type Controller struct {
	defaultContent func() string

	visible bool
	content string
	size    Size
}

// New creates a modal controller. defaultContent supplies the markup shown
// whenever the modal resets (the account menu on the storefront).
func New(defaultContent func() string) (*Controller, error) {
	if defaultContent == nil {
		return nil, fmt.Errorf("modal controller requires a default content provider")
	}
	c := &Controller{defaultContent: defaultContent}
	c.reset()
	return c, nil
}

func (c *Controller) reset() {
	c.content = c.defaultContent()
	c.size = SizeSmall
}

// Show resets the modal to its default content at small size and makes it
// visible. Calling Show on a visible modal resets it the same way.
func (c *Controller) Show() {
	c.reset()
	c.visible = true
}

// Hide conceals the modal, then resets its content so the next open starts
// from the default view.
func (c *Controller) Hide() {
	c.visible = false
	c.reset()
}

// OpenWith swaps in content and size as a pair and makes the modal visible.
func (c *Controller) OpenWith(content string, size Size) {
	c.content = content
	c.size = size
	c.visible = true
}

// Close conceals the modal and resets it for the next open.
func (c *Controller) Close() {
	c.visible = false
	c.reset()
}

// HandleBackdropClick dismisses the modal only when the click landed on the
// overlay itself, not on content inside it. It reports whether the modal
// was dismissed.
func (c *Controller) HandleBackdropClick(targetIsOverlay bool) bool {
	if !targetIsOverlay || !c.visible {
		return false
	}
	c.Hide()
	return true
}

// Visible reports whether the modal is currently shown.
func (c *Controller) Visible() bool { return c.visible }

// Content returns the current modal content.
func (c *Controller) Content() string { return c.content }

// CurrentSize returns the active size class.
func (c *Controller) CurrentSize() Size { return c.size }
