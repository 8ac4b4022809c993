package templates

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingData struct{}

func (failingData) Body() (string, error) {
	return "", errors.New("render exploded")
}

func TestExecute_FailureLogsAndReturnsEmpty(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	tmpl := template.Must(template.New("failing").Parse(`{{.Body}}`))

	assert.Empty(t, execute(tmpl, failingData{}))
	assert.Contains(t, buf.String(), "Template execution failed")
	assert.Contains(t, buf.String(), "failing")
	assert.Contains(t, buf.String(), "render exploded")
}

func TestExecute_SuccessBypassesLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	tmpl := template.Must(template.New("greeting").Parse(`<p>{{.Name}}</p>`))

	assert.Equal(t, "<p>Ana</p>", execute(tmpl, struct{ Name string }{Name: "Ana"}))
	assert.Empty(t, buf.String())
}
