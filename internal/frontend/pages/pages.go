// Package pages holds the storefront's page controllers. Each controller
// owns one page, renders into an injected Panel and reports outcomes
// through an injected Notifier. Controllers are constructed with an
// explicit customer identity; nothing in this package assumes a particular
// customer. Instances are single-goroutine by contract.
//
// Failure handling follows one rule throughout: a failed primary load
// replaces the panel content with an error panel, while a failed secondary
// action only notifies and leaves rendered content intact.
package pages

import (
	"fmt"
	"html"
)

// Panel receives rendered page content.
type Panel interface {
	SetContent(html string)
}

// Notifier surfaces transient user-facing messages.
type Notifier interface {
	Notify(message string)
}

func errorPanelHTML(message string) string {
	return fmt.Sprintf(`<div class="page-error"><p>%s</p></div>`, html.EscapeString(message))
}

func notFoundPanelHTML(resource string) string {
	return fmt.Sprintf(`<div class="page-not-found"><p>%s no encontrado</p></div>`, html.EscapeString(resource))
}

func formatPrecio(precio float64) string {
	return fmt.Sprintf("%.2f", precio)
}
