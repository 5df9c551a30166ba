package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"charity/internal/domain"
	"charity/internal/events"
	"charity/internal/i18n"
	"charity/internal/middleware"
)

const maxBodyBytes = 1 << 20

// Pinger reports database reachability for the health probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App carries the dependencies shared by every handler.
type App struct {
	Activities     domain.ActivityRepository
	Donations      domain.DonationRepository
	Expenses       domain.ExpenseRepository
	PaymentMethods domain.PaymentMethodRepository
	Users          domain.UserRepository
	Team           domain.TeamRepository
	Content        domain.ContentRepository
	Settings       domain.SettingsRepository
	Events         events.Publisher
	DB             Pinger
	Logger         zerolog.Logger
	Location       *time.Location
	// Now is the evaluation clock for derived donation status.
	Now func() time.Time
	// RecentLimit caps the recent donation and expense lists on the
	// transparency page.
	RecentLimit int
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) loc() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.UTC
}

func (a *App) logger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.Logger
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// error writes a localized error body. code doubles as the message key.
func (a *App) error(w http.ResponseWriter, r *http.Request, status int, code string, args ...any) {
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, status, errorResponse{Error: i18n.T(locale, code, args...), Code: code})
}

// Deny adapts error to the middleware rejection callback.
func (a *App) Deny(w http.ResponseWriter, r *http.Request, status int) {
	switch status {
	case http.StatusUnauthorized:
		a.error(w, r, status, i18n.MsgUnauthorized)
	case http.StatusForbidden:
		a.error(w, r, status, i18n.MsgForbidden)
	case http.StatusTooManyRequests:
		a.error(w, r, status, i18n.MsgRateLimited)
	default:
		a.error(w, r, status, i18n.MsgInternal)
	}
}

// fail maps a domain or repository error to a response.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		a.error(w, r, http.StatusBadRequest, i18n.MsgInvalidInput, verr.Field)
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, r, http.StatusBadRequest, i18n.MsgInvalidInput, "input")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, r, http.StatusNotFound, i18n.MsgNotFound)
	case errors.Is(err, domain.ErrConflict):
		a.error(w, r, http.StatusConflict, i18n.MsgConflict)
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, r, http.StatusUnauthorized, i18n.MsgUnauthorized)
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, r, http.StatusForbidden, i18n.MsgForbidden)
	default:
		a.logger(r).Error().Err(err).Msg(msg)
		a.error(w, r, http.StatusInternalServerError, i18n.MsgInternal)
	}
}

// decode reads a JSON body into dst, rejecting unknown fields and trailing data.
func (a *App) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		a.error(w, r, http.StatusBadRequest, i18n.MsgInvalidPayload)
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		a.error(w, r, http.StatusBadRequest, i18n.MsgInvalidPayload)
		return false
	}
	return true
}

// pathID validates a UUID path parameter; malformed IDs cannot exist.
func (a *App) pathID(w http.ResponseWriter, r *http.Request, raw string) (string, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		a.error(w, r, http.StatusNotFound, i18n.MsgNotFound)
		return "", false
	}
	return id.String(), true
}

// publish delivers an event without failing the request.
func (a *App) publish(r *http.Request, e events.Event) {
	if a.Events == nil {
		return
	}
	if err := a.Events.Publish(r.Context(), e); err != nil {
		a.logger(r).Warn().Err(err).Str("event", string(e.Type)).Str("donation_id", e.DonationID).Msg("publish event failed")
	}
}

func validUUIDPtr(s *string) bool {
	if s == nil || *s == "" {
		return true
	}
	_, err := uuid.Parse(*s)
	return err == nil
}
