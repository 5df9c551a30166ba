package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"charity/internal/domain"
	"charity/internal/events"
	"charity/internal/middleware"
	"charity/internal/report"
)

// anonymousLabel replaces donor names the donor asked to hide.
const anonymousLabel = "Ẩn danh"

type donationDTO struct {
	ID              string                `json:"id"`
	ActivityID      *string               `json:"activityId"`
	PaymentMethodID *string               `json:"paymentMethodId,omitempty"`
	Name            *string               `json:"name"`
	DisplayName     string                `json:"displayName"`
	Amount          int64                 `json:"amount"`
	Message         string                `json:"message"`
	IsPublic        bool                  `json:"isPublic"`
	IsAnonymous     bool                  `json:"isAnonymous"`
	IsConfirmed     bool                  `json:"isConfirmed"`
	ConfirmedAt     *time.Time            `json:"confirmedAt,omitempty"`
	Status          domain.DonationStatus `json:"status"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// toDonationDTO renders d. Public views drop the raw name of anonymous
// donors and the payment method.
func toDonationDTO(d domain.Donation, now time.Time, public bool) donationDTO {
	dto := donationDTO{
		ID:              d.ID,
		ActivityID:      d.ActivityID,
		PaymentMethodID: d.PaymentMethodID,
		Name:            d.Name,
		DisplayName:     d.DisplayName(),
		Amount:          d.Amount,
		Message:         d.Message,
		IsPublic:        d.IsPublic,
		IsAnonymous:     d.IsAnonymous,
		IsConfirmed:     d.IsConfirmed,
		ConfirmedAt:     d.ConfirmedAt,
		Status:          report.StatusOf(d, now),
		CreatedAt:       d.CreatedAt,
	}
	if dto.DisplayName == "" {
		dto.DisplayName = anonymousLabel
	}
	if public {
		dto.PaymentMethodID = nil
		if d.IsAnonymous {
			dto.Name = nil
		}
	}
	return dto
}

func (a *App) donationDTOs(items []domain.Donation, public bool) []donationDTO {
	now := a.now()
	out := make([]donationDTO, 0, len(items))
	for _, d := range items {
		out = append(out, toDonationDTO(d, now, public))
	}
	return out
}

// donationFilter builds the listing filter from query params. Public
// callers only ever see confirmed, public donations.
func (a *App) donationFilter(r *http.Request) (domain.DonationFilter, error) {
	q := r.URL.Query()
	f := domain.DonationFilter{Search: strings.TrimSpace(q.Get("q"))}

	switch activityID := strings.TrimSpace(q.Get("activityId")); activityID {
	case "":
	case "general":
		f.General = true
	default:
		if !validUUIDPtr(&activityID) {
			return f, domain.Invalid("activityId", "malformed")
		}
		f.ActivityID = &activityID
	}

	limit, err := queryInt(r, "limit", defaultPageSize, maxPageSize)
	if err != nil {
		return f, err
	}
	offset, err := queryInt(r, "offset", 0, 0)
	if err != nil {
		return f, err
	}
	f.Limit, f.Offset = limit, offset

	since, until, err := queryYear(r, a.loc())
	if err != nil {
		return f, err
	}
	f.Since, f.Until = since, until

	if !middleware.IsStaff(r.Context()) {
		yes := true
		f.Confirmed = &yes
		f.OnlyPublic = true
		return f, nil
	}

	cutoff := a.now().Add(-report.OverdueAfter)
	switch status := domain.DonationStatus(strings.TrimSpace(q.Get("status"))); status {
	case "":
	case domain.DonationConfirmed:
		yes := true
		f.Confirmed = &yes
	case domain.DonationOverdue:
		no := false
		f.Confirmed = &no
		f.CreatedBefore = &cutoff
	case domain.DonationPending:
		no := false
		f.Confirmed = &no
		// storage keeps microseconds; the cutoff instant itself is overdue
		after := cutoff.Add(time.Microsecond)
		if f.Since == nil || after.After(*f.Since) {
			f.Since = &after
		}
	default:
		return f, domain.Invalid("status", "must be pending, confirmed or overdue")
	}
	return f, nil
}

func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	filter, err := a.donationFilter(r)
	if err != nil {
		a.fail(w, r, err, "parse donation filter")
		return
	}
	items, err := a.Donations.List(r.Context(), filter)
	if err != nil {
		a.fail(w, r, err, "list donations failed")
		return
	}
	public := !middleware.IsStaff(r.Context())
	a.json(w, http.StatusOK, map[string]any{
		"items":  a.donationDTOs(items, public),
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

type donationRequest struct {
	ActivityID      *string `json:"activityId"`
	PaymentMethodID *string `json:"paymentMethodId"`
	Name            *string `json:"name"`
	Amount          int64   `json:"amount"`
	Message         string  `json:"message"`
	IsPublic        *bool   `json:"isPublic"`
	IsAnonymous     bool    `json:"isAnonymous"`
	IsConfirmed     bool    `json:"isConfirmed"`
}

// DonationsCreate records a pledge from the public donate form. Staff may
// enter an already confirmed donation, e.g. cash handed over in person.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if !a.decode(w, r, &req) {
		return
	}
	activityID, paymentMethodID := trimPtr(req.ActivityID), trimPtr(req.PaymentMethodID)
	if !validUUIDPtr(activityID) {
		a.fail(w, r, domain.Invalid("activityId", "malformed"), "validate donation")
		return
	}
	if !validUUIDPtr(paymentMethodID) {
		a.fail(w, r, domain.Invalid("paymentMethodId", "malformed"), "validate donation")
		return
	}
	now := a.now().UTC().Truncate(time.Microsecond)
	d := &domain.Donation{
		ActivityID:      activityID,
		PaymentMethodID: paymentMethodID,
		Name:            trimPtr(req.Name),
		Amount:          req.Amount,
		Message:         strings.TrimSpace(req.Message),
		IsPublic:        req.IsPublic == nil || *req.IsPublic,
		IsAnonymous:     req.IsAnonymous,
		IsConfirmed:     req.IsConfirmed && middleware.IsStaff(r.Context()),
		CreatedAt:       now,
	}
	if err := d.Validate(); err != nil {
		a.fail(w, r, err, "validate donation")
		return
	}
	if d.IsConfirmed {
		d.ConfirmedAt = &now
	}
	if err := a.Donations.Create(r.Context(), d); err != nil {
		a.fail(w, r, err, "create donation failed")
		return
	}
	a.publish(r, events.ForDonation(events.DonationCreated, *d, now))
	if d.IsConfirmed {
		a.publish(r, events.ForDonation(events.DonationConfirmed, *d, now))
	}
	a.json(w, http.StatusCreated, toDonationDTO(*d, now, false))
}

func (a *App) DonationsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	d, err := a.Donations.GetByID(r.Context(), id)
	if err != nil {
		a.fail(w, r, err, "get donation failed")
		return
	}
	a.json(w, http.StatusOK, toDonationDTO(*d, a.now(), false))
}

// DonationsConfirm is one way. Repeating it returns the donation unchanged
// and publishes nothing.
func (a *App) DonationsConfirm(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	at := a.now().UTC().Truncate(time.Microsecond)
	d, err := a.Donations.Confirm(r.Context(), id, at)
	if err != nil {
		a.fail(w, r, err, "confirm donation failed")
		return
	}
	if d.ConfirmedAt != nil && d.ConfirmedAt.Equal(at) {
		a.publish(r, events.ForDonation(events.DonationConfirmed, *d, at))
	}
	a.json(w, http.StatusOK, toDonationDTO(*d, at, false))
}

func (a *App) DonationsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := a.Donations.Delete(r.Context(), id); err != nil {
		a.fail(w, r, err, "delete donation failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
