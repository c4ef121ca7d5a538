package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/louisbranch/festival/internal/services/web/adminauth"
	"github.com/louisbranch/festival/internal/services/web/platform/flash"
	"github.com/louisbranch/festival/internal/services/web/platform/httpx"
	"github.com/louisbranch/festival/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/festival/internal/services/web/routepath"
	"github.com/louisbranch/festival/internal/services/web/storage"
)

func (h *handler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	next := adminauth.SafeNext(r.PostForm.Get(routepath.NextQueryKey))
	username := strings.TrimSpace(r.PostForm.Get("username"))
	user, err := h.auth.Authenticate(r.Context(), username, r.PostForm.Get("password"))
	if err != nil {
		if !errors.Is(err, adminauth.ErrInvalidCredentials) {
			h.fail(w, r, "authenticate admin", err)
			return
		}
		h.audit(r, username, "admin.login_failed", username, "")
		h.finish(w, r, flash.Failure(flash.KeyInvalidCredentials), routepath.AdminLogin+"?"+routepath.NextQueryKey+"="+url.QueryEscape(next))
		return
	}
	token, session, err := h.sessions.Issue(user)
	if err != nil {
		h.fail(w, r, "issue admin session", err)
		return
	}
	sessioncookie.Write(w, r, token, session.ExpiresAt, h.policy)
	h.audit(r.WithContext(adminauth.WithSession(r.Context(), session)), user.Username, "admin.login", user.Username, "")
	httpx.WriteRedirect(w, r, next)
}

func (h *handler) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	session, _ := adminauth.SessionFromContext(r.Context())
	h.sessions.Revoke(session)
	sessioncookie.Clear(w, r, h.policy)
	h.audit(r, session.Username, "admin.logout", session.Username, "")
	h.finish(w, r, flash.Success(flash.KeySignedOut), routepath.AdminLogin)
}

func (h *handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	session, _ := adminauth.SessionFromContext(r.Context())
	code := strings.ToUpper(strings.TrimSpace(r.PostForm.Get("code")))
	if code == "" {
		h.finish(w, r, flash.Failure(flash.KeyInvalidForm), routepath.AdminCheckIn)
		return
	}
	ticket, err := h.store.CheckInTicket(r.Context(), code, h.now().UTC())
	switch {
	case errors.Is(err, storage.ErrNotFound):
		h.finish(w, r, flash.Failure(flash.KeyTicketNotFound), routepath.AdminCheckIn)
	case errors.Is(err, storage.ErrAlreadyCheckedIn):
		h.audit(r, session.Username, "ticket.checkin_repeated", ticket.Code, "")
		h.finish(w, r, flash.Failure(flash.KeyAlreadyCheckedIn), routepath.AdminCheckIn)
	case err != nil:
		h.fail(w, r, "check in ticket", err)
	default:
		h.audit(r, session.Username, "ticket.checked_in", ticket.Code, "tier="+ticket.Tier)
		h.finish(w, r, flash.Success(flash.KeyCheckedIn), routepath.AdminCheckIn)
	}
}
