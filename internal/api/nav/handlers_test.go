package nav

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/codr1/turnero/internal/api/authz"
)

func textComponent(text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	})
}

func TestPageData(t *testing.T) {
	InitHandlers("Panel Padel")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	page := PageData(req, "Turnos", false)
	if page.SignedIn || page.IsAdmin || page.Title != "Turnos" {
		t.Fatalf("anonymous page = %+v", page)
	}

	ctx := authz.ContextWithUser(req.Context(), &authz.AuthUser{ID: 1, Email: "admin@example.com", IsAdmin: true})
	page = PageData(req.WithContext(ctx), "Reservas", true)
	if !page.SignedIn || !page.IsAdmin || page.UserEmail != "admin@example.com" {
		t.Fatalf("admin page = %+v", page)
	}
	if page.Title != "Panel Padel" {
		t.Fatalf("admin title = %q", page.Title)
	}
}

func TestRenderPage(t *testing.T) {
	InitHandlers("Panel Padel")

	rec := httptest.NewRecorder()
	RenderPage(rec, httptest.NewRequest(http.MethodGet, "/", nil), "Turnos", false, textComponent("<p>hola</p>"))
	body := rec.Body.String()
	if !strings.Contains(body, "<!DOCTYPE html>") || !strings.Contains(body, "<p>hola</p>") {
		t.Fatalf("full page missing shell or content:\n%s", body)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	RenderPage(rec, req, "Turnos", false, textComponent("<p>hola</p>"))
	if got := rec.Body.String(); got != "<p>hola</p>" {
		t.Fatalf("htmx body = %q", got)
	}
}

func TestRenderPageStatus(t *testing.T) {
	InitHandlers("Panel Padel")

	rec := httptest.NewRecorder()
	RenderPageStatus(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil), http.StatusConflict, "Confirmar", false, textComponent("<p>ocupado</p>"))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<p>ocupado</p>") {
		t.Fatalf("body = %s", rec.Body.String())
	}
	if rec.Header().Get("Content-Type") != "text/html; charset=utf-8" {
		t.Fatalf("content type = %q", rec.Header().Get("Content-Type"))
	}
}
