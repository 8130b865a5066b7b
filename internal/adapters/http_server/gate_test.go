package httpserver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	httpserver "snowbird_docs/internal/adapters/http_server"
	"snowbird_docs/internal/adapters/identity"
)

func newGate() *httpserver.AccessGate {
	return &httpserver.AccessGate{
		CookieName: "sb-auth-token",
		LoginPath:  "/auth/login",
		AdminPath:  "/admin",
		Protected:  []string{"/admin", "/debug"},
		Verifier:   identity.PresenceVerifier{},
	}
}

func runGate(t *testing.T, path string, cookie bool) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	passed := false
	h := newGate().Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		passed = true
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest("GET", path, nil)
	if cookie {
		req.AddCookie(&http.Cookie{Name: "sb-auth-token", Value: "anything"})
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr, passed
}

func TestGate_ProtectedWithoutCookieRedirects(t *testing.T) {
	rr, passed := runGate(t, "/admin", false)
	if passed {
		t.Fatalf("request should not reach the handler")
	}
	if rr.Code != http.StatusFound {
		t.Fatalf("status: %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/auth/login?redirectTo=%2Fadmin" {
		t.Fatalf("location: %q", loc)
	}
}

func TestGate_ProtectedWithCookiePasses(t *testing.T) {
	rr, passed := runGate(t, "/admin", true)
	if !passed || rr.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got status %d passed=%v", rr.Code, passed)
	}
}

func TestGate_LoginBounceWhenAuthenticated(t *testing.T) {
	rr, passed := runGate(t, "/auth/login", true)
	if passed {
		t.Fatalf("login page should not render for an authenticated request")
	}
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/admin" {
		t.Fatalf("expected bounce to /admin, got %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestGate_LoginWithoutCookiePasses(t *testing.T) {
	rr, passed := runGate(t, "/auth/login", false)
	if !passed || rr.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got status %d passed=%v", rr.Code, passed)
	}
}

func TestGate_UnprotectedPathIgnoresCookie(t *testing.T) {
	for _, withCookie := range []bool{false, true} {
		rr, passed := runGate(t, "/properties/alpine-lodge", withCookie)
		if !passed || rr.Code != http.StatusOK {
			t.Fatalf("cookie=%v: expected pass-through, got status %d passed=%v", withCookie, rr.Code, passed)
		}
	}
}

func TestGate_RedirectToCarriesOriginalPath(t *testing.T) {
	rr, _ := runGate(t, "/admin/settings", false)
	if loc := rr.Header().Get("Location"); loc != "/auth/login?redirectTo=%2Fadmin%2Fsettings" {
		t.Fatalf("location: %q", loc)
	}
}
