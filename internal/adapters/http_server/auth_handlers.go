package httpserver

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type loginPageData struct {
	Title  string
	Action string
	Error  string
}

func (h *Handlers) loginForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "login", loginPageData{
		Title:  "Sign in",
		Action: "/auth/login",
		Error:  r.URL.Query().Get("error"),
	})
}

func (h *Handlers) signupForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "login", loginPageData{
		Title:  "Create account",
		Action: "/auth/signup",
		Error:  r.URL.Query().Get("error"),
	})
}

// sendMagicLink asks the identity provider to email a one-time link. Provider
// failure is surfaced inline on the form; there is no retry.
func (h *Handlers) sendMagicLink(w http.ResponseWriter, r *http.Request) {
	fail := func(msg string) {
		renderPage(w, http.StatusOK, "login", loginPageData{
			Title:  "Sign in",
			Action: r.URL.Path,
			Error:  msg,
		})
	}

	if err := r.ParseForm(); err != nil {
		fail("Invalid form submission.")
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	if email == "" {
		fail("Email address is required.")
		return
	}
	if h.Identity == nil {
		fail("Sign-in is not available right now.")
		return
	}

	redirectTo := strings.TrimRight(h.SiteBase, "/") + "/auth/callback"
	if err := h.Identity.SendMagicLink(r.Context(), email, redirectTo); err != nil {
		log.Warn().Err(err).Msg("magic link send failed")
		fail("Failed to send magic link. Please try again.")
		return
	}
	renderPage(w, http.StatusOK, "sent", email)
}

// authCallback receives the provider redirect. The token exchange is a
// one-shot step with an explicit outcome: success sets the session cookie
// and lands on /admin, any failure redirects back to login with no cookie
// written, leaving the request exactly as unauthenticated as it arrived.
func (h *Handlers) authCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if e := q.Get("error"); e != "" {
		http.Redirect(w, r, "/auth/login?error="+url.QueryEscape(e), http.StatusFound)
		return
	}

	next := q.Get("next")
	if next == "" || !strings.HasPrefix(next, "/") {
		next = "/admin"
	}

	tokenHash := q.Get("token_hash")
	if tokenHash != "" && q.Get("type") == "magiclink" {
		token := tokenHash
		if h.Identity != nil {
			t, err := h.Identity.VerifyOTP(r.Context(), tokenHash, "magiclink")
			if err != nil {
				log.Warn().Err(err).Msg("magic link verification failed")
				http.Redirect(w, r, "/auth/login?error="+url.QueryEscape("Sign-in link is invalid or expired."), http.StatusFound)
				return
			}
			token = t
		}
		h.setSessionCookie(w, token)
		http.Redirect(w, r, next, http.StatusFound)
		return
	}

	http.Redirect(w, r, next, http.StatusFound)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	// Clearing works by expiring the cookie in the past.
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		SameSite: http.SameSiteStrictMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Cookie.TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
