// Package adminshell drives the admin console's client shell: a session
// check that gates everything, a module menu with optimistic highlighting,
// and a content panel fed by HTML fragments.
package adminshell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/TiendoLabs/tiendo-go/internal/frontend/fragment"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/httpx"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/modal"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

// State is the shell's lifecycle phase. REDIRECTING is terminal.
type State string

const (
	StateChecking    State = "CHECKING"
	StateAuthorized  State = "AUTHORIZED"
	StateRedirecting State = "REDIRECTING"
)

const loginPath = "/admin/login"

// Navigator performs a full-page navigation. Injected so tests can observe
// redirects without a browser.
type Navigator interface {
	NavigateTo(url string)
}

// Panel receives fragment markup for the shell's content area.
type Panel interface {
	SetContent(html string)
}

const errorPanel = `<div class="fragment-error"><p>No se pudo cargar el módulo. Inténtalo de nuevo.</p></div>`

// Shell is the admin console state machine. Single-goroutine by contract;
// the request counter is the only state shared with in-flight loads.
type Shell struct {
	client    *http.Client
	baseURL   string
	loader    *fragment.Loader
	engine    *fragment.Engine
	navigator Navigator
	panel     Panel
	dialogs   *modal.Controller
	logger    *logging.ChanneledLogger

	state      State
	username   string
	highlights map[string]bool
	requests   atomic.Uint64
}

// New validates collaborators and returns a shell in CHECKING state.
// The dialog modal serves ad-hoc confirmation prompts and follows the same
// contract as the storefront's modal.
func New(client *http.Client, baseURL string, loader *fragment.Loader, engine *fragment.Engine, navigator Navigator, panel Panel, dialogs *modal.Controller, logger *logging.ChanneledLogger) (*Shell, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("admin shell requires a base URL")
	}
	if loader == nil {
		return nil, fmt.Errorf("admin shell requires a fragment loader")
	}
	if engine == nil {
		return nil, fmt.Errorf("admin shell requires a fragment engine")
	}
	if navigator == nil {
		return nil, fmt.Errorf("admin shell requires a navigator")
	}
	if panel == nil {
		return nil, fmt.Errorf("admin shell requires a content panel")
	}
	if dialogs == nil {
		return nil, fmt.Errorf("admin shell requires a dialog modal")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Shell{
		client:     client,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		loader:     loader,
		engine:     engine,
		navigator:  navigator,
		panel:      panel,
		dialogs:    dialogs,
		logger:     logger,
		state:      StateChecking,
		highlights: make(map[string]bool),
	}, nil
}

// State returns the current lifecycle phase.
func (s *Shell) State() State { return s.state }

// Username returns the session's username once authorized.
func (s *Shell) Username() string { return s.username }

// Highlighted reports whether a menu item carries the active highlight.
func (s *Shell) Highlighted(module string) bool { return s.highlights[module] }

// Dialogs returns the shell's modal for ad-hoc dialogs.
func (s *Shell) Dialogs() *modal.Controller { return s.dialogs }

// CheckSession resolves CHECKING into AUTHORIZED or REDIRECTING. Any 401 or
// failure redirects to the login page without rendering an error.
func (s *Shell) CheckSession(ctx context.Context) {
	if s.state == StateRedirecting {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/v1/admin/check-session", nil)
	if err != nil {
		s.redirect()
		return
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.redirect()
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.redirect()
		return
	}

	var payload struct {
		Status   string `json:"status"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Status != "ok" {
		s.redirect()
		return
	}

	s.state = StateAuthorized
	s.username = payload.Username
}

// SelectModule handles a menu selection while AUTHORIZED. The selected item
// is highlighted before the fetch resolves; the previous highlight is
// cleared. A 401 on the module fetch redirects; any other failure renders
// an inline error panel and leaves the shell AUTHORIZED. Rapid selections
// resolve last-response-wins.
func (s *Shell) SelectModule(ctx context.Context, module string) {
	if s.state != StateAuthorized {
		return
	}

	for item := range s.highlights {
		delete(s.highlights, item)
	}
	s.highlights[module] = true

	ticket := s.requests.Add(1)

	markup, err := s.loader.Load(ctx, "/admin/modules/"+module, fragment.PurposeMenuItem)
	if ticket != s.requests.Load() {
		return
	}
	if err != nil {
		var httpErr *httpx.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized {
			s.redirect()
			return
		}
		s.panel.SetContent(errorPanel)
		return
	}

	frag, err := fragment.Parse(markup)
	if err != nil {
		if s.logger != nil {
			s.logger.Fragment().Warn("Module fragment parse failed", "module", module, "error", err)
		}
		s.panel.SetContent(errorPanel)
		return
	}

	s.panel.SetContent(frag.Markup)
	s.engine.Activate(ctx, frag)
}

// Logout posts the logout endpoint and redirects to the login page whether
// or not the request succeeded.
func (s *Shell) Logout(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/admin/logout", nil)
	if err == nil {
		if resp, err := s.client.Do(req); err == nil {
			resp.Body.Close()
		}
	}
	s.redirect()
}

func (s *Shell) redirect() {
	if s.state == StateRedirecting {
		return
	}
	s.state = StateRedirecting
	s.username = ""
	s.navigator.NavigateTo(loginPath)
}
