package web

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/louisbranch/festival/internal/platform/ctxlog"
	"github.com/louisbranch/festival/internal/services/web/adminauth"
	"github.com/louisbranch/festival/internal/services/web/document"
	"github.com/louisbranch/festival/internal/services/web/mount"
	"github.com/louisbranch/festival/internal/services/web/pages"
	"github.com/louisbranch/festival/internal/services/web/platform/flash"
	"github.com/louisbranch/festival/internal/services/web/platform/httpx"
	"github.com/louisbranch/festival/internal/services/web/providers"
	"github.com/louisbranch/festival/internal/services/web/routepath"
	"github.com/louisbranch/festival/internal/services/web/theme"
	"github.com/louisbranch/festival/internal/services/web/units"
)

// themePreferenceSource tags attribute writes that come from the visitor's
// theme cookie.
const themePreferenceSource = "cookie"

func (h *handler) handlePage(w http.ResponseWriter, r *http.Request) {
	page, ok := h.catalog.Lookup(r.URL.Path)
	if !ok {
		h.writeNotFound(w, r)
		return
	}
	if page.Path == routepath.AdminLogin {
		if _, err := adminauth.FromRequest(h.sessions, h.store, r); err == nil {
			httpx.WriteRedirect(w, r, routepath.Admin)
			return
		}
	}
	if page.Protected {
		adminauth.Require(h.sessions, h.store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, _ := adminauth.SessionFromContext(r.Context())
			h.renderPage(w, r, page, session)
		})).ServeHTTP(w, r)
		return
	}
	h.renderPage(w, r, page, adminauth.Session{})
}

// renderPage mounts the shell's unit and writes the page. Dispatch failures
// never fail the response: the shell is served with its slot as authored.
func (h *handler) renderPage(w http.ResponseWriter, r *http.Request, page pages.Page, session adminauth.Session) {
	ctx := r.Context()
	logger := ctxlog.FromContext(ctx, h.logger)

	shell, err := h.catalog.Shell(page)
	if err != nil {
		logger.Error("read page shell", slog.String("path", page.Path), slog.Any("error", err))
		httpx.WriteError(w, err)
		return
	}
	doc, err := document.Parse(bytes.NewReader(shell))
	if err != nil {
		logger.Error("parse page shell", slog.String("path", page.Path), slog.Any("error", err))
		httpx.WriteError(w, err)
		return
	}

	attrs := theme.NewAttributes(map[string]string{theme.Attribute: theme.Light})
	if page.Admin {
		lock := theme.NewLock(attrs, theme.Attribute, theme.Light)
		defer lock.Release()
	}
	if preference, ok := themePreference(r); ok {
		attrs.Set(theme.Attribute, preference, themePreferenceSource)
	}
	doc.SetRootAttributes(attrs.Snapshot())
	activeTheme, _ := attrs.Get(theme.Attribute)

	if notice, ok := flash.ReadAndClear(w, r, h.policy); ok {
		doc.SetNotice(string(notice.Kind), flash.Message(notice))
	}

	if slot, ok := doc.Slot(); ok && slot.Deferred() {
		h.deferSlot(r, page, slot)
	} else {
		pending := h.dispatcher.Dispatch(units.WithQuery(ctx, r.URL.Query()), doc, decorator(session, activeTheme))
		if _, err := pending.Wait(ctx); err != nil {
			return
		}
	}

	var out bytes.Buffer
	if err := doc.Render(&out); err != nil {
		logger.Error("render page", slog.String("path", page.Path), slog.Any("error", err))
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteHTML(w, http.StatusOK, out.Bytes())
}

// deferSlot points a deferred slot at the fragment route. An empty slot name
// is left alone, matching what dispatch would do.
func (h *handler) deferSlot(r *http.Request, page pages.Page, slot *document.Slot) {
	name := slot.UnitName()
	if name == "" {
		return
	}
	endpoint := routepath.Unit(name)
	if page.Admin {
		endpoint = routepath.AdminUnit(name)
	}
	if r.URL.RawQuery != "" {
		endpoint += "?" + r.URL.RawQuery
	}
	if err := slot.Defer(endpoint); err != nil {
		ctxlog.FromContext(r.Context(), h.logger).Warn("defer host slot", slog.String("unit", name), slog.Any("error", err))
	}
}

func (h *handler) handlePublicUnit(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if units.RequiresSession(name) {
		http.NotFound(w, r)
		return
	}
	h.renderUnit(w, r, name, adminauth.Session{}, false)
}

func (h *handler) handleAdminUnit(w http.ResponseWriter, r *http.Request) {
	session, _ := adminauth.SessionFromContext(r.Context())
	h.renderUnit(w, r, r.PathValue("name"), session, true)
}

// renderUnit dispatches name into a fragment document and writes only the
// unit markup. A unit that does not mount answers 204 so htmx leaves the
// authored placeholder in the slot; the failure is already in the diagnostics.
func (h *handler) renderUnit(w http.ResponseWriter, r *http.Request, name string, session adminauth.Session, admin bool) {
	ctx := r.Context()
	activeTheme := theme.Light
	if !admin {
		if preference, ok := themePreference(r); ok {
			activeTheme = preference
		}
	}
	doc := document.NewFragment(name)
	pending := h.dispatcher.Dispatch(units.WithQuery(ctx, r.URL.Query()), doc, decorator(session, activeTheme))
	outcome, err := pending.Wait(ctx)
	if err != nil {
		return
	}
	if outcome.Status != mount.StatusMounted {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	var out bytes.Buffer
	if err := doc.Render(&out); err != nil {
		ctxlog.FromContext(ctx, h.logger).Error("render unit fragment", slog.String("unit", name), slog.Any("error", err))
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteHTML(w, http.StatusOK, out.Bytes())
}

func (h *handler) writeNotFound(w http.ResponseWriter, r *http.Request) {
	shell, err := h.catalog.NotFound()
	if err != nil {
		http.NotFound(w, r)
		return
	}
	_ = httpx.WriteHTML(w, http.StatusNotFound, shell)
}

func decorator(session adminauth.Session, activeTheme string) mount.Decorator {
	return providers.Compose(
		providers.Auth{Session: session},
		providers.Theme{Value: activeTheme},
	)
}

func themePreference(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(theme.CookieName)
	if err != nil {
		return "", false
	}
	return theme.Normalize(cookie.Value)
}
