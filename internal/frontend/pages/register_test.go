package pages

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiendoLabs/tiendo-go/internal/frontend/api"
	"github.com/TiendoLabs/tiendo-go/internal/frontend/httpx"
)

func newRegisterController(t *testing.T, serverURL string) (*RegisterController, *testNotifier) {
	t.Helper()
	client, err := api.New(nil, serverURL)
	require.NoError(t, err)
	notifier := &testNotifier{}
	ctrl, err := NewRegisterController(client, notifier)
	require.NoError(t, err)
	return ctrl, notifier
}

func validForm() RegisterForm {
	return RegisterForm{
		Nombre:          "Ana",
		Apellido:        "García",
		Correo:          "ana@example.com",
		Contrasena:      "secreto123",
		ConfirmPassword: "secreto123",
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	ctrl, _ := newRegisterController(t, "http://localhost")

	for _, tc := range []struct {
		field  string
		mutate func(*RegisterForm)
	}{
		{"nombre", func(f *RegisterForm) { f.Nombre = "" }},
		{"apellido", func(f *RegisterForm) { f.Apellido = " " }},
		{"correo", func(f *RegisterForm) { f.Correo = "" }},
		{"contrasena", func(f *RegisterForm) { f.Contrasena = "" }},
	} {
		form := validForm()
		tc.mutate(&form)
		err := ctrl.Validate(form)
		var validation *httpx.ValidationError
		require.ErrorAs(t, err, &validation, tc.field)
		assert.Equal(t, tc.field, validation.Field)
	}
}

func TestValidate_EmailShape(t *testing.T) {
	ctrl, _ := newRegisterController(t, "http://localhost")

	for _, correo := range []string{"no-arroba", "dos@@signos.com", "sin@punto", "con espacios@mail.com"} {
		form := validForm()
		form.Correo = correo
		err := ctrl.Validate(form)
		var validation *httpx.ValidationError
		require.ErrorAs(t, err, &validation, correo)
		assert.Equal(t, "correo", validation.Field)
	}

	form := validForm()
	assert.NoError(t, ctrl.Validate(form))
}

func TestValidate_PasswordConfirmation(t *testing.T) {
	ctrl, _ := newRegisterController(t, "http://localhost")

	form := validForm()
	form.ConfirmPassword = "distinta"
	err := ctrl.Validate(form)
	var validation *httpx.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "contrasena", validation.Field)
}

func TestMatchIndicator_RecreatedNotDuplicated(t *testing.T) {
	ctrl, _ := newRegisterController(t, "http://localhost")

	// Simulated keystrokes: each update replaces the previous indicator.
	ctrl.UpdateMatchIndicator("s", "")
	first := ctrl.Indicator()
	require.NotNil(t, first)
	assert.False(t, first.Matches)

	ctrl.UpdateMatchIndicator("se", "s")
	second := ctrl.Indicator()
	require.NotNil(t, second)
	assert.NotSame(t, first, second)

	ctrl.UpdateMatchIndicator("secreto", "secreto")
	third := ctrl.Indicator()
	require.NotNil(t, third)
	assert.True(t, third.Matches)
	assert.NotSame(t, second, third)
}

func TestMatchIndicator_EmptyFieldsShowNothing(t *testing.T) {
	ctrl, _ := newRegisterController(t, "http://localhost")

	ctrl.UpdateMatchIndicator("algo", "algo")
	require.NotNil(t, ctrl.Indicator())

	ctrl.UpdateMatchIndicator("", "")
	assert.Nil(t, ctrl.Indicator())
}

func TestSubmit_ValidationFailureSkipsNetwork(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()
	ctrl, notifier := newRegisterController(t, server.URL)

	form := validForm()
	form.Correo = "invalido"
	_, err := ctrl.Submit(context.Background(), form)

	require.Error(t, err)
	assert.Zero(t, requests)
	assert.NotEmpty(t, notifier.messages)
}

func TestSubmit_PostsCustomer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/clientes", r.URL.Path)
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "ana@example.com", payload["correo"])
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id_cliente": 12, "nombre": "Ana", "apellido": "García", "correo": "ana@example.com"})
	}))
	defer server.Close()
	ctrl, notifier := newRegisterController(t, server.URL)

	cliente, err := ctrl.Submit(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, 12, cliente.IDCliente)
	assert.Contains(t, notifier.last(), "Ana")
}

func TestSubmit_DuplicateEmailNotifiesServerDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "El correo ya está registrado"})
	}))
	defer server.Close()
	ctrl, notifier := newRegisterController(t, server.URL)

	_, err := ctrl.Submit(context.Background(), validForm())
	require.Error(t, err)
	assert.Equal(t, "El correo ya está registrado", notifier.last())
}
