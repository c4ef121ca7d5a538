// Package sessioncookie stores the signed admin token in a cookie scoped to
// the admin portal.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/festival/internal/services/web/platform/requestmeta"
)

const (
	// Name is the admin session cookie name.
	Name = "festival_admin"
	// Path keeps the token off public page requests.
	Path = "/admin"
)

func build(r *http.Request, policy requestmeta.Policy, value string) *http.Cookie {
	return &http.Cookie{
		Name:     Name,
		Value:    value,
		Path:     Path,
		HttpOnly: true,
		Secure:   policy.IsHTTPS(r),
		SameSite: http.SameSiteStrictMode,
	}
}

// Read returns the token carried by r, if any.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(cookie.Value)
	return token, token != ""
}

// Write stores token until expires. Blank tokens are ignored.
func Write(w http.ResponseWriter, r *http.Request, token string, expires time.Time, policy requestmeta.Policy) {
	token = strings.TrimSpace(token)
	if w == nil || token == "" {
		return
	}
	cookie := build(r, policy, token)
	cookie.Expires = expires
	http.SetCookie(w, cookie)
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter, r *http.Request, policy requestmeta.Policy) {
	if w == nil {
		return
	}
	cookie := build(r, policy, "")
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
}
