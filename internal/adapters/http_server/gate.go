package httpserver

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"snowbird_docs/internal/domain"
)

// AccessGate intercepts every request before routing. Paths under a
// protected prefix require an acceptable session cookie; without one the
// gate bounces to the login page carrying the original path in redirectTo.
// An already-authenticated request for the login page itself is bounced to
// the admin landing page. Everything else passes through untouched.
//
// The default verifier only checks cookie presence, so the gate is advisory:
// it keeps honest users out of the admin area, nothing more.
type AccessGate struct {
	CookieName string
	LoginPath  string
	AdminPath  string
	Protected  []string // path prefixes
	Verifier   domain.SessionVerifier
}

func (g *AccessGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		protected := g.isProtected(path)
		if !protected && path != g.LoginPath {
			next.ServeHTTP(w, r)
			return
		}

		authed := false
		if ck, err := r.Cookie(g.CookieName); err == nil && ck.Value != "" {
			ok, verr := g.Verifier.Verify(r.Context(), ck.Value)
			if verr != nil {
				log.Warn().Err(verr).Str("path", path).Msg("session verify failed")
			}
			authed = ok
		}

		if protected && !authed {
			u := g.LoginPath + "?redirectTo=" + url.QueryEscape(path)
			http.Redirect(w, r, u, http.StatusFound)
			return
		}
		if path == g.LoginPath && authed {
			http.Redirect(w, r, g.AdminPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *AccessGate) isProtected(path string) bool {
	for _, p := range g.Protected {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
