// Package account drives the storefront's account modal flow: a menu that
// branches into register and login fragments and always collapses back to
// the menu on dismissal.
package account

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/TiendoLabs/tiendo-go/internal/frontend/fragment"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/modal"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

// State is the account flow's current view.
type State string

const (
	StateMenu     State = "MENU"
	StateRegister State = "REGISTER"
	StateLogin    State = "LOGIN"
)

const (
	loginFragmentPath    = "/login-template"
	registerFragmentPath = "/register-template"
)

// errorPanel is rendered in place of a fragment that failed to load. The
// close button keeps the modal's dismissal affordance working.
const errorPanel = `<div class="fragment-error"><p>No se pudo cargar el contenido. Inténtalo de nuevo.</p><button type="button" data-action="close-modal">Cerrar</button></div>`

// Flow is the account menu state machine. Single-goroutine by contract;
// only the request counter is shared with in-flight loads.
type Flow struct {
	loader *fragment.Loader
	engine *fragment.Engine
	modal  *modal.Controller
	logger *logging.ChanneledLogger

	state    State
	requests atomic.Uint64
}

// New validates collaborators and returns a flow starting at MENU.
func New(loader *fragment.Loader, engine *fragment.Engine, m *modal.Controller, logger *logging.ChanneledLogger) (*Flow, error) {
	if loader == nil {
		return nil, fmt.Errorf("account flow requires a fragment loader")
	}
	if engine == nil {
		return nil, fmt.Errorf("account flow requires a fragment engine")
	}
	if m == nil {
		return nil, fmt.Errorf("account flow requires a modal controller")
	}
	return &Flow{loader: loader, engine: engine, modal: m, logger: logger, state: StateMenu}, nil
}

// State returns the current view.
func (f *Flow) State() State { return f.state }

// Open shows the modal at the default menu view.
func (f *Flow) Open() {
	f.modal.Show()
	f.state = StateMenu
}

// ShowRegister loads the register fragment into a large modal. Triggered by
// the menu's register button and by the login fragment's switch control;
// both share the same trigger identity.
func (f *Flow) ShowRegister(ctx context.Context) {
	f.transition(ctx, StateRegister, registerFragmentPath, modal.SizeLarge)
}

// ShowLogin loads the login fragment into a small modal.
func (f *Flow) ShowLogin(ctx context.Context) {
	f.transition(ctx, StateLogin, loginFragmentPath, modal.SizeSmall)
}

// Dismiss collapses any view back to the menu and hides the modal. A
// backdrop click and the close control both land here.
func (f *Flow) Dismiss() {
	f.modal.Hide()
	f.state = StateMenu
}

// HandleBackdropClick dismisses only when the click target was the overlay.
func (f *Flow) HandleBackdropClick(targetIsOverlay bool) {
	if f.modal.HandleBackdropClick(targetIsOverlay) {
		f.state = StateMenu
	}
}

// transition loads a fragment, swaps it into the modal with the view's size
// and activates its scripts. Concurrent retriggers are resolved
// last-response-wins: each call takes a ticket and a response whose ticket
// is no longer current is discarded.
func (f *Flow) transition(ctx context.Context, target State, path string, size modal.Size) {
	ticket := f.requests.Add(1)

	markup, err := f.loader.Load(ctx, path, fragment.PurposeModalView)
	if ticket != f.requests.Load() {
		if f.logger != nil {
			f.logger.Fragment().Debug("Stale fragment response discarded", "path", path)
		}
		return
	}
	if err != nil {
		f.modal.OpenWith(errorPanel, size)
		return
	}

	frag, err := fragment.Parse(markup)
	if err != nil {
		if f.logger != nil {
			f.logger.Fragment().Warn("Fragment parse failed", "path", path, "error", err)
		}
		f.modal.OpenWith(errorPanel, size)
		return
	}

	f.modal.OpenWith(frag.Markup, size)
	f.state = target
	f.engine.Activate(ctx, frag)
}
