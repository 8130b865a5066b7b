// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"snowbird_docs/internal/app"
	"snowbird_docs/internal/domain"
)

type Handlers struct {
	Q        *app.QueryService
	Identity domain.IdentityClient // nil when the provider is not configured
	SiteBase string
	Cookie   SessionCookie
}

type SessionCookie struct {
	Name string
	TTL  time.Duration
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/", h.home)
	s.mux.Get("/properties", h.listProperties)
	s.mux.Get("/properties/{slug}", h.propertyPage)
	s.mux.Get("/admin", h.adminPage)

	s.mux.Get("/v1/properties", h.apiListProperties)
	s.mux.Get("/v1/properties/{slug}", h.apiGetProperty)

	s.mux.Get("/auth/login", h.loginForm)
	s.mux.Post("/auth/login", h.sendMagicLink)
	s.mux.Get("/auth/signup", h.signupForm)
	s.mux.Post("/auth/signup", h.sendMagicLink)
	s.mux.Get("/auth/callback", h.authCallback)
	s.mux.Get("/auth/logout", h.logout)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// ---- HTML pages ----

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "home", nil)
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.Q.ListProperties(r.Context(), false)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "listing failed")
		return
	}
	renderPage(w, http.StatusOK, "properties", props)
}

func (h *Handlers) adminPage(w http.ResponseWriter, r *http.Request) {
	props, err := h.Q.ListProperties(r.Context(), true)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "listing failed")
		return
	}
	renderPage(w, http.StatusOK, "admin", props)
}

type docSection struct {
	Title string
	HTML  template.HTML
	Empty bool
}

type propertyPageData struct {
	Title        string
	Location     string
	Capacity     int
	WifiNetwork  string
	WifiPassword string
	Sections     []docSection
}

func (h *Handlers) propertyPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	pv, err := h.Q.GetProperty(r.Context(), slug)
	if err != nil {
		renderPage(w, http.StatusNotFound, "notfound", slug)
		return
	}

	data := propertyPageData{
		Title:    pv.Property.Title,
		Location: pv.Property.Location,
		Capacity: pv.Property.Capacity,
	}
	if pv.Wifi.Network != nil {
		data.WifiNetwork = *pv.Wifi.Network
	}
	if pv.Wifi.Password != nil {
		data.WifiPassword = *pv.Wifi.Password
	}

	// Absent documents still get a tab, rendered as a placeholder.
	if d := pv.HouseRules; d != nil {
		data.Sections = append(data.Sections, docSection{Title: d.Title, HTML: renderMarkdown(d.Body)})
	} else {
		data.Sections = append(data.Sections, docSection{Title: "Welcome & House Rules", Empty: true})
	}
	if d := pv.Instructions; d != nil {
		data.Sections = append(data.Sections, docSection{Title: d.Title, HTML: renderMarkdown(d.Body)})
	} else {
		data.Sections = append(data.Sections, docSection{Title: "User Instructions", Empty: true})
	}
	if d := pv.CriticalInfo; d != nil {
		data.Sections = append(data.Sections, docSection{Title: d.Title, HTML: renderMarkdown(d.Body)})
	} else {
		data.Sections = append(data.Sections, docSection{Title: "Critical Info", Empty: true})
	}
	if g := pv.LocalGuide; g != nil {
		data.Sections = append(data.Sections, docSection{Title: g.Title, HTML: renderMarkdown(g.Body)})
	} else {
		data.Sections = append(data.Sections, docSection{Title: "Local Guide", Empty: true})
	}
	renderPage(w, http.StatusOK, "property", data)
}

// ---- JSON API ----

func (h *Handlers) apiGetProperty(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	pv, err := h.Q.GetProperty(r.Context(), slug)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
		return
	}

	etag, body := calcETagAndBody(pv)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write property body")
	}
}

func (h *Handlers) apiListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.Q.ListProperties(r.Context(), false)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "listing failed")
		return
	}

	etag, body := calcETagAndBody(props)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write properties body")
	}
}
