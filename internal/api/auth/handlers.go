package auth

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/codr1/turnero/internal/api/htmx"
	"github.com/codr1/turnero/internal/config"
	dbgen "github.com/codr1/turnero/internal/db/generated"
)

var (
	queries   *dbgen.Queries
	appConfig *config.Config
	limiter   *rate.Limiter
)

func InitHandlers(q *dbgen.Queries, cfg *config.Config) {
	queries = q
	appConfig = cfg
	limiter = rate.NewLimiter(rate.Limit(100), 10) // More restrictive for auth
}

// HandleLogout clears the local auth cookie. The identity provider session is
// left alone.
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ClearAuthCookie(w)
	log.Ctx(r.Context()).Info().Msg("User logged out")

	htmx.Redirect(w, r, "/")
}
