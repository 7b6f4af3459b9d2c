package handler

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/devgear/devgear-go/internal/model"
	"github.com/devgear/devgear-go/internal/repository"
	"github.com/devgear/devgear-go/internal/service"
	"github.com/devgear/devgear-go/web"
)

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates once at startup.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"price": func(p float64) string { return fmt.Sprintf("$%.2f", p) },
	}).ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the named template with the given status. A template failure
// after the header is written can only be logged.
func (rn *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := rn.tmpl.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("template render failed", "template", name, "error", err)
	}
}

// errorStatus is the single mapping from the service error taxonomy to an
// HTTP status and visitor-facing message. Every route goes through it, so
// identical error kinds always produce identical responses.
func errorStatus(err error) (int, string) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Kind {
		case service.KindValidation, service.KindConflict:
			return http.StatusBadRequest, svcErr.Message
		case service.KindAuthentication:
			return http.StatusUnauthorized, svcErr.Message
		default:
			return http.StatusInternalServerError, svcErr.Message
		}
	}
	if errors.Is(err, repository.ErrProductNotFound) || errors.Is(err, repository.ErrCategoryNotFound) {
		return http.StatusNotFound, "Page not found"
	}
	return http.StatusInternalServerError, "Something went wrong, please try again"
}

type errorView struct {
	User    *model.User
	Message string
}

// renderFailure resolves err through errorStatus, logs server faults and
// renders the standalone error page.
func (rn *Renderer) renderFailure(w http.ResponseWriter, user *model.User, err error) {
	status, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	rn.Render(w, status, "error.html", errorView{User: user, Message: message})
}
