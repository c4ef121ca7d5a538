package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/louisbranch/festival/internal/platform/ctxlog"
	"github.com/louisbranch/festival/internal/platform/id"
	"github.com/louisbranch/festival/internal/services/web/adminauth"
	apperrors "github.com/louisbranch/festival/internal/services/web/platform/errors"
	"github.com/louisbranch/festival/internal/services/web/platform/flash"
	"github.com/louisbranch/festival/internal/services/web/platform/httpx"
	"github.com/louisbranch/festival/internal/services/web/routepath"
	"github.com/louisbranch/festival/internal/services/web/storage"
)

const (
	maxFormBytes     = 64 << 10
	maxAttendees     = 10
	maxDonationCents = 100_000_00
	maxTextLength    = 500
	publicActor      = "public"
	ticketCodeTries  = 3
)

var errInvalidForm = apperrors.E(apperrors.KindInvalidInput, "invalid form")

// parseForm rejects cross-site posts and oversized bodies.
func (h *handler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if !h.policy.SameOrigin(r) {
		httpx.WriteError(w, apperrors.E(apperrors.KindForbidden, "cross-site form submission rejected"))
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, apperrors.Wrap(apperrors.KindInvalidInput, "invalid form", err))
		return false
	}
	return true
}

// finish sets notice and redirects back to location.
func (h *handler) finish(w http.ResponseWriter, r *http.Request, notice flash.Notice, location string) {
	flash.Write(w, r, notice, h.policy)
	httpx.WriteRedirect(w, r, location)
}

// fail logs a storage failure and answers with a typed 503.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctxlog.FromContext(r.Context(), h.logger).Error(op, slog.Any("error", err))
	httpx.WriteError(w, apperrors.Wrap(apperrors.KindUnavailable, "The festival site is busy. Please try again.", err))
}

// audit records entry. A failed audit write is logged, not surfaced.
func (h *handler) audit(r *http.Request, actor, action, subject, detail string) {
	entry := storage.AuditEntry{
		Actor:     actor,
		Action:    action,
		Subject:   subject,
		Detail:    detail,
		CreatedAt: h.now().UTC(),
	}
	if err := h.store.AppendAudit(r.Context(), entry); err != nil {
		attrs := []any{slog.String("action", action), slog.Any("error", err)}
		if session, ok := adminauth.SessionFromContext(r.Context()); ok {
			attrs = append(attrs, slog.String("admin_id", session.AdminID))
		}
		ctxlog.FromContext(r.Context(), h.logger).Warn("append audit entry", attrs...)
	}
}

func (h *handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	registration, err := registrationFromForm(r)
	if err != nil {
		h.finish(w, r, flash.Failure(flash.KeyInvalidForm), routepath.Register)
		return
	}
	registration.ID, err = id.NewID()
	if err != nil {
		h.fail(w, r, "generate registration id", err)
		return
	}
	registration.CreatedAt = h.now().UTC()
	if err := h.store.PutRegistration(r.Context(), registration); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			h.finish(w, r, flash.Failure(flash.KeyAlreadyRegistered), routepath.Register)
			return
		}
		h.fail(w, r, "put registration", err)
		return
	}
	h.audit(r, publicActor, "registration.created", registration.Email, fmt.Sprintf("attendees=%d", registration.Attendees))
	h.finish(w, r, flash.Success(flash.KeyRegistered), routepath.Register)
}

func (h *handler) handleTicketPurchase(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	tier, ok := storage.LookupTicketTier(r.PostForm.Get("tier"))
	name := formText(r, "name")
	email, emailErr := formEmail(r, "email")
	if !ok || name == "" || emailErr != nil {
		h.finish(w, r, flash.Failure(flash.KeyInvalidForm), routepath.Tickets)
		return
	}
	ticketID, err := id.NewID()
	if err != nil {
		h.fail(w, r, "generate ticket id", err)
		return
	}
	ticket := storage.Ticket{
		ID:          ticketID,
		HolderName:  name,
		HolderEmail: email,
		Tier:        tier.Key,
		PriceCents:  tier.PriceCents,
		CreatedAt:   h.now().UTC(),
	}
	// Codes are short enough to collide; draw again on a unique violation.
	for attempt := 1; ; attempt++ {
		ticket.Code, err = id.NewTicketCode()
		if err == nil {
			err = h.store.PutTicket(r.Context(), ticket)
		}
		if err == nil || !errors.Is(err, storage.ErrAlreadyExists) || attempt == ticketCodeTries {
			break
		}
	}
	if err != nil {
		h.fail(w, r, "put ticket", err)
		return
	}
	h.audit(r, publicActor, "ticket.purchased", ticket.Code, "tier="+tier.Key)
	h.finish(w, r, flash.Success(flash.KeyTicketPurchased), routepath.TicketsWithCode(ticket.Code))
}

func (h *handler) handleDonate(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	donation, err := donationFromForm(r)
	if err != nil {
		h.finish(w, r, flash.Failure(flash.KeyInvalidForm), routepath.Donate)
		return
	}
	donation.ID, err = id.NewID()
	if err != nil {
		h.fail(w, r, "generate donation id", err)
		return
	}
	donation.CreatedAt = h.now().UTC()
	if err := h.store.PutDonation(r.Context(), donation); err != nil {
		h.fail(w, r, "put donation", err)
		return
	}
	h.audit(r, publicActor, "donation.received", donation.ID, "amount_cents="+strconv.FormatInt(donation.AmountCents, 10))
	h.finish(w, r, flash.Success(flash.KeyDonationThanks), routepath.Donate)
}

func registrationFromForm(r *http.Request) (storage.Registration, error) {
	name := formText(r, "name")
	email, err := formEmail(r, "email")
	if name == "" || err != nil {
		return storage.Registration{}, errInvalidForm
	}
	attendees, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("attendees")))
	if err != nil || attendees < 1 || attendees > maxAttendees {
		return storage.Registration{}, errInvalidForm
	}
	return storage.Registration{
		Name:      name,
		Email:     email,
		Attendees: attendees,
		Notes:     formText(r, "notes"),
	}, nil
}

func donationFromForm(r *http.Request) (storage.Donation, error) {
	email, err := formEmail(r, "email")
	if err != nil {
		return storage.Donation{}, errInvalidForm
	}
	raw := strings.TrimSpace(r.PostForm.Get("custom_amount"))
	if raw == "" {
		raw = strings.TrimSpace(r.PostForm.Get("amount"))
	}
	dollars, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || dollars < 1 || dollars > maxDonationCents/100 {
		return storage.Donation{}, errInvalidForm
	}
	return storage.Donation{
		DonorName:   formText(r, "name"),
		DonorEmail:  email,
		AmountCents: dollars * 100,
		Message:     formText(r, "message"),
		Anonymous:   r.PostForm.Get("anonymous") != "",
	}, nil
}

// formText returns a trimmed field capped at maxTextLength runes.
func formText(r *http.Request, key string) string {
	value := strings.TrimSpace(r.PostForm.Get(key))
	if runes := []rune(value); len(runes) > maxTextLength {
		value = string(runes[:maxTextLength])
	}
	return value
}

func formEmail(r *http.Request, key string) (string, error) {
	raw := strings.TrimSpace(r.PostForm.Get(key))
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", errInvalidForm
	}
	return strings.ToLower(addr.Address), nil
}
