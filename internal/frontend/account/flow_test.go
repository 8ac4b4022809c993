package account

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiendoLabs/tiendo-go/internal/frontend/fragment"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/modal"
)

const testMenu = `<div class="account-menu">menu</div>`

func newTestFlow(t *testing.T, serverURL string) (*Flow, *modal.Controller, *[]fragment.Script) {
	t.Helper()

	loader, err := fragment.NewLoader(nil, serverURL, nil)
	require.NoError(t, err)

	var activated []fragment.Script
	engine, err := fragment.NewEngine(func(ctx context.Context, script fragment.Script) error {
		activated = append(activated, script)
		return nil
	}, nil)
	require.NoError(t, err)

	m, err := modal.New(func() string { return testMenu })
	require.NoError(t, err)

	flow, err := New(loader, engine, m, nil)
	require.NoError(t, err)
	return flow, m, &activated
}

func fragmentServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login-template":
			w.Write([]byte(`<div class="auth-form-small"><form></form><script>initLogin();</script></div>`))
		case "/register-template":
			w.Write([]byte(`<div class="auth-form-large"><form></form><script src="/static/js/password-match.js"></script></div>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestNew_ValidatesCollaborators(t *testing.T) {
	m, err := modal.New(func() string { return testMenu })
	require.NoError(t, err)
	engine, err := fragment.NewEngine(func(context.Context, fragment.Script) error { return nil }, nil)
	require.NoError(t, err)
	loader, err := fragment.NewLoader(nil, "http://localhost", nil)
	require.NoError(t, err)

	_, err = New(nil, engine, m, nil)
	assert.Error(t, err)
	_, err = New(loader, nil, m, nil)
	assert.Error(t, err)
	_, err = New(loader, engine, nil, nil)
	assert.Error(t, err)
}

func TestOpen_ShowsMenu(t *testing.T) {
	flow, m, _ := newTestFlow(t, "http://localhost")

	flow.Open()

	assert.Equal(t, StateMenu, flow.State())
	assert.True(t, m.Visible())
	assert.Equal(t, testMenu, m.Content())
	assert.Equal(t, modal.SizeSmall, m.CurrentSize())
}

func TestShowLogin_LoadsFragmentSmall(t *testing.T) {
	server := fragmentServer(t)
	defer server.Close()
	flow, m, activated := newTestFlow(t, server.URL)

	flow.Open()
	flow.ShowLogin(context.Background())

	assert.Equal(t, StateLogin, flow.State())
	assert.Equal(t, modal.SizeSmall, m.CurrentSize())
	assert.Contains(t, m.Content(), "auth-form-small")
	assert.NotContains(t, m.Content(), "<script")
	require.Len(t, *activated, 1)
	assert.Equal(t, "initLogin();", (*activated)[0].Inline)
}

func TestShowRegister_LoadsFragmentLarge(t *testing.T) {
	server := fragmentServer(t)
	defer server.Close()
	flow, m, activated := newTestFlow(t, server.URL)

	flow.Open()
	flow.ShowRegister(context.Background())

	assert.Equal(t, StateRegister, flow.State())
	assert.Equal(t, modal.SizeLarge, m.CurrentSize())
	assert.Contains(t, m.Content(), "auth-form-large")
	require.Len(t, *activated, 1)
	assert.Equal(t, "/static/js/password-match.js", (*activated)[0].Src)
}

func TestLoginToRegisterSwitch(t *testing.T) {
	server := fragmentServer(t)
	defer server.Close()
	flow, m, _ := newTestFlow(t, server.URL)

	flow.Open()
	flow.ShowLogin(context.Background())
	flow.ShowRegister(context.Background())

	assert.Equal(t, StateRegister, flow.State())
	assert.Equal(t, modal.SizeLarge, m.CurrentSize())
}

func TestDismiss_AnyStateReturnsToMenu(t *testing.T) {
	server := fragmentServer(t)
	defer server.Close()
	flow, m, _ := newTestFlow(t, server.URL)

	flow.Open()
	flow.ShowRegister(context.Background())
	flow.Dismiss()

	assert.Equal(t, StateMenu, flow.State())
	assert.False(t, m.Visible())
	assert.Equal(t, testMenu, m.Content())
}

func TestBackdropClick_OnlyOverlayDismisses(t *testing.T) {
	server := fragmentServer(t)
	defer server.Close()
	flow, m, _ := newTestFlow(t, server.URL)

	flow.Open()
	flow.ShowLogin(context.Background())

	flow.HandleBackdropClick(false)
	assert.Equal(t, StateLogin, flow.State())
	assert.True(t, m.Visible())

	flow.HandleBackdropClick(true)
	assert.Equal(t, StateMenu, flow.State())
	assert.False(t, m.Visible())
}

func TestFetchFailure_RendersErrorAndKeepsState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	flow, m, activated := newTestFlow(t, server.URL)

	flow.Open()
	flow.ShowLogin(context.Background())

	assert.Equal(t, StateMenu, flow.State())
	assert.Contains(t, m.Content(), "fragment-error")
	assert.Contains(t, m.Content(), "close-modal")
	assert.Empty(t, *activated)
}

func TestFetchFailure_RetriggerRetries(t *testing.T) {
	failures := 1
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failures > 0 {
			failures--
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`<div class="auth-form-small">login</div>`))
	}))
	defer server.Close()
	flow, m, _ := newTestFlow(t, server.URL)

	flow.Open()
	flow.ShowLogin(context.Background())
	assert.Contains(t, m.Content(), "fragment-error")

	flow.ShowLogin(context.Background())
	assert.Equal(t, StateLogin, flow.State())
	assert.Contains(t, m.Content(), "auth-form-small")
}

func TestOverlappingTransitions_LaterViewWins(t *testing.T) {
	registerStarted := make(chan struct{})
	registerRelease := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/register-template":
			close(registerStarted)
			<-registerRelease
			w.Write([]byte(`<div class="auth-form-large"><form></form><script src="/static/js/password-match.js"></script></div>`))
		case "/login-template":
			w.Write([]byte(`<div class="auth-form-small"><form></form></div>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()
	flow, m, activated := newTestFlow(t, server.URL)
	flow.Open()

	registerDone := make(chan struct{})
	go func() {
		defer close(registerDone)
		flow.ShowRegister(context.Background())
	}()

	// The register fetch is held open while the user switches to login.
	<-registerStarted
	flow.ShowLogin(context.Background())
	require.Equal(t, StateLogin, flow.State())

	close(registerRelease)
	<-registerDone

	// The stale register response arrived after login and was discarded.
	assert.Equal(t, StateLogin, flow.State())
	assert.Contains(t, m.Content(), "auth-form-small")
	assert.NotContains(t, m.Content(), "auth-form-large")
	for _, script := range *activated {
		assert.NotContains(t, script.Src, "password-match")
	}
}
