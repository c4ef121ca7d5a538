package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/louisbranch/festival/internal/services/web/platform/requestmeta"
)

func TestRead(t *testing.T) {
	t.Parallel()

	if _, ok := Read(nil); ok {
		t.Fatalf("expected nil request to have no session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "http://festival.test/admin", nil)
	if _, ok := Read(req); ok {
		t.Fatalf("expected missing cookie")
	}

	req.AddCookie(&http.Cookie{Name: Name, Value: "  tok-1  "})
	value, ok := Read(req)
	if !ok || value != "tok-1" {
		t.Fatalf("Read() = %q, %v; want tok-1, true", value, ok)
	}
}

func TestWriteAndClear(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "http://festival.test/admin/login", nil)
	expires := time.Date(2026, 7, 19, 0, 0, 0, 0, time.UTC)

	rr := httptest.NewRecorder()
	Write(rr, req, "tok-1", expires, requestmeta.Policy{ForceHTTPS: true})
	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("parse cookie: %v", err)
	}
	if cookie.Value != "tok-1" || cookie.Path != Path || !cookie.Secure || !cookie.HttpOnly {
		t.Fatalf("cookie = %+v", cookie)
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Fatalf("SameSite = %v, want strict", cookie.SameSite)
	}

	rr = httptest.NewRecorder()
	Clear(rr, req, requestmeta.Policy{})
	cleared, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("parse cookie: %v", err)
	}
	if cleared.MaxAge >= 0 || cleared.Secure {
		t.Fatalf("cleared cookie = %+v", cleared)
	}
}

func TestWriteIgnoresBlankToken(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Write(rr, httptest.NewRequest(http.MethodPost, "/admin/login", nil), "  ", time.Now().Add(time.Hour), requestmeta.Policy{})
	if got := rr.Header().Get("Set-Cookie"); got != "" {
		t.Fatalf("Set-Cookie = %q, want empty", got)
	}
}
