// Package flash carries one notice across a post/redirect/get round trip.
package flash

import (
	"net/http"
	"strings"

	"github.com/louisbranch/festival/internal/services/web/platform/requestmeta"
)

// CookieName holds the pending notice as "kind~key".
const CookieName = "festival_flash"

// maxAge bounds how long an unread notice survives.
const maxAge = 60

const separator = "~"

// Kind selects how the notice element is styled.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice names a catalog message and its presentation.
type Notice struct {
	Kind Kind
	Key  string
}

// Success creates a success notice for key.
func Success(key string) Notice {
	return Notice{Kind: KindSuccess, Key: key}
}

// Failure creates an error notice for key.
func Failure(key string) Notice {
	return Notice{Kind: KindError, Key: key}
}

func (n Notice) encode() (string, bool) {
	n, ok := n.normalize()
	if !ok {
		return "", false
	}
	return string(n.Kind) + separator + n.Key, true
}

func (n Notice) normalize() (Notice, bool) {
	n.Kind = Kind(strings.ToLower(strings.TrimSpace(string(n.Kind))))
	n.Key = strings.TrimSpace(n.Key)
	switch n.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
	default:
		return Notice{}, false
	}
	if !validKey(n.Key) {
		return Notice{}, false
	}
	return n, true
}

// validKey accepts dotted lowercase message keys only.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if (r < 'a' || r > 'z') && r != '.' && r != '_' {
			return false
		}
	}
	return true
}

func decode(raw string) (Notice, bool) {
	kind, key, found := strings.Cut(strings.TrimSpace(raw), separator)
	if !found {
		return Notice{}, false
	}
	return Notice{Kind: Kind(kind), Key: key}.normalize()
}

func cookie(r *http.Request, policy requestmeta.Policy, value string, age int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   age,
		HttpOnly: true,
		Secure:   policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	}
}

// Write queues notice for the next page render. Invalid notices are dropped.
func Write(w http.ResponseWriter, r *http.Request, notice Notice, policy requestmeta.Policy) {
	if w == nil {
		return
	}
	value, ok := notice.encode()
	if !ok {
		return
	}
	http.SetCookie(w, cookie(r, policy, value, maxAge))
}

// ReadAndClear returns the queued notice, if any, and expires the cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request, policy requestmeta.Policy) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	stored, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	if w != nil {
		http.SetCookie(w, cookie(r, policy, "", -1))
	}
	return decode(stored.Value)
}
