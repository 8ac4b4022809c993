package templates_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiendoLabs/tiendo-go/internal/frontend/fragment"
	"github.com/TiendoLabs/tiendo-go/internal/presentation/templates"
)

func TestAccountFragmentsParse(t *testing.T) {
	for name, markup := range map[string]string{
		"menu":     templates.AccountMenuFragment(),
		"login":    templates.LoginFragment(),
		"register": templates.RegisterFragment(),
	} {
		frag, err := fragment.Parse(markup)
		require.NoError(t, err, name)
		assert.NotEmpty(t, frag.Markup, name)
	}
}

func TestLoginFragmentCarriesActivationScript(t *testing.T) {
	frag, err := fragment.Parse(templates.LoginFragment())
	require.NoError(t, err)
	require.NotEmpty(t, frag.Scripts)
	assert.NotContains(t, frag.Markup, "<script")
}

func TestAdminModuleFragments(t *testing.T) {
	names := templates.AdminModuleNames()
	require.NotEmpty(t, names)

	for _, name := range names {
		markup, ok := templates.AdminModuleFragment(name)
		require.True(t, ok, name)

		frag, err := fragment.Parse(markup)
		require.NoError(t, err, name)
		assert.NotEmpty(t, frag.Markup, name)
	}

	_, ok := templates.AdminModuleFragment("inexistente")
	assert.False(t, ok)
}

func TestErrorPanelEscapesMessage(t *testing.T) {
	panel := templates.ErrorPanel(`<script>alert("x")</script>`)
	assert.NotContains(t, panel, "<script>")
	assert.Contains(t, panel, "&lt;script&gt;")
}

func TestAdminSectionPage(t *testing.T) {
	page, ok := templates.AdminSectionPage(templates.AdminModuleNames()[0])
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))

	_, ok = templates.AdminSectionPage("inexistente")
	assert.False(t, ok)
}

func TestAdminLoginPageShowsError(t *testing.T) {
	page := templates.AdminLoginPage("Usuario o contraseña incorrectos")
	assert.Contains(t, page, "Usuario o contraseña incorrectos")

	clean := templates.AdminLoginPage("")
	assert.NotContains(t, clean, "login-error")
}
