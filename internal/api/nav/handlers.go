// internal/api/nav/handlers.go
package nav

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/turnero/internal/api/apiutil"
	"github.com/codr1/turnero/internal/api/authz"
	"github.com/codr1/turnero/internal/api/htmx"
	"github.com/codr1/turnero/internal/templates/layouts"
)

var siteHeader string

func InitHandlers(header string) {
	siteHeader = header
}

// PageData describes the shell for the signed-in user on r.
func PageData(r *http.Request, title string, adminPage bool) layouts.PageData {
	page := layouts.PageData{
		Title:      title,
		SiteHeader: siteHeader,
		AdminPage:  adminPage,
	}
	if user := authz.UserFromContext(r.Context()); user != nil {
		page.SignedIn = true
		page.UserEmail = user.Email
		page.IsAdmin = user.IsAdmin
	}
	if adminPage && siteHeader != "" {
		page.Title = siteHeader
	}
	return page
}

// RenderPage renders content alone for htmx swaps and inside the site shell
// otherwise.
func RenderPage(w http.ResponseWriter, r *http.Request, title string, adminPage bool, content templ.Component) {
	RenderPageStatus(w, r, http.StatusOK, title, adminPage, content)
}

func RenderPageStatus(w http.ResponseWriter, r *http.Request, status int, title string, adminPage bool, content templ.Component) {
	component := content
	if !htmx.IsRequest(r) {
		component = layouts.Base(PageData(r, title, adminPage), content)
	}
	if status == http.StatusOK {
		apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render page", "Failed to render page")
		return
	}

	var buf bytes.Buffer
	if err := component.Render(r.Context(), &buf); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to render page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write HTML response")
	}
}
