// Package pages renders the HTML served to end users.
package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.ParseFS(files, "templates/*.html"))

// Renderer renders the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer returns a renderer over the embedded templates.
func NewRenderer() *Renderer {
	return &Renderer{tmpl: templates}
}

// Error renders the generic error page.
func (r *Renderer) Error(message string, code int) ([]byte, error) {
	return r.render("error.html", struct {
		Message string
		Code    int
	}{message, code})
}

// Login renders the sign-in form for a pending request. scope is the
// space-delimited scope string of the request.
func (r *Renderer) Login(clientName, requestID, scope string) ([]byte, error) {
	return r.render("login.html", struct {
		ClientName string
		RequestID  string
		Scopes     []string
	}{clientName, requestID, strings.Fields(scope)})
}

// LoginError renders the page shown when a login cannot be tied to a request.
func (r *Renderer) LoginError() ([]byte, error) {
	return r.render("login-error.html", nil)
}

func (r *Renderer) render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
