package adminauth

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/louisbranch/festival/internal/services/web/platform/httpx"
	"github.com/louisbranch/festival/internal/services/web/platform/sessioncookie"
)

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/admin/login"

// Require rejects requests without a valid session cookie for a stored
// admin. Authenticated requests continue with the session in their context.
func Require(manager *Manager, users UserLookup) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := FromRequest(manager, users, r)
			if err != nil && !errors.Is(err, ErrInvalidSession) {
				httpx.WriteError(w, err)
				return
			}
			if err != nil {
				target := LoginPath
				if r.Method == http.MethodGet && r.URL.Path != LoginPath {
					target += "?next=" + url.QueryEscape(r.URL.RequestURI())
				}
				httpx.WriteRedirect(w, r, target)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// FromRequest verifies the session cookie on r and the admin it names.
func FromRequest(manager *Manager, users UserLookup, r *http.Request) (Session, error) {
	if manager == nil {
		return Session{}, ErrInvalidSession
	}
	token, ok := sessioncookie.Read(r)
	if !ok {
		return Session{}, ErrInvalidSession
	}
	session, err := manager.Verify(token)
	if err != nil {
		return Session{}, err
	}
	if err := CheckAccount(r.Context(), users, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// SafeNext returns next when it is a local admin path, else the dashboard.
func SafeNext(next string) string {
	parsed, err := url.Parse(next)
	if err != nil || parsed.IsAbs() || parsed.Host != "" {
		return "/admin"
	}
	if parsed.Path != "/admin" && !strings.HasPrefix(parsed.Path, "/admin/") {
		return "/admin"
	}
	if parsed.Path == LoginPath {
		return "/admin"
	}
	return parsed.RequestURI()
}
