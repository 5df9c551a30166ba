package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"charity/internal/domain"
	"charity/internal/middleware"
)

type paymentMethodDTO struct {
	ID            string                   `json:"id"`
	Type          domain.PaymentMethodType `json:"type"`
	Name          string                   `json:"name"`
	AccountName   string                   `json:"accountName"`
	AccountNumber string                   `json:"accountNumber"`
	Branch        string                   `json:"branch"`
	QRImageURL    string                   `json:"qrImageUrl"`
	Instructions  string                   `json:"instructions"`
	IsActive      bool                     `json:"isActive"`
	SortOrder     int                      `json:"sortOrder"`
}

type paymentMethodRequest struct {
	Type          domain.PaymentMethodType `json:"type"`
	Name          string                   `json:"name"`
	AccountName   string                   `json:"accountName"`
	AccountNumber string                   `json:"accountNumber"`
	Branch        string                   `json:"branch"`
	QRImageURL    string                   `json:"qrImageUrl"`
	Instructions  string                   `json:"instructions"`
	IsActive      *bool                    `json:"isActive"`
	SortOrder     int                      `json:"sortOrder"`
}

func (req paymentMethodRequest) apply(p *domain.PaymentMethod) error {
	p.Type = domain.PaymentMethodType(strings.ToLower(strings.TrimSpace(string(req.Type))))
	p.Name = strings.TrimSpace(req.Name)
	p.AccountName = strings.TrimSpace(req.AccountName)
	p.AccountNumber = strings.TrimSpace(req.AccountNumber)
	p.Branch = strings.TrimSpace(req.Branch)
	p.QRImageURL = strings.TrimSpace(req.QRImageURL)
	p.Instructions = req.Instructions
	p.IsActive = req.IsActive == nil || *req.IsActive
	p.SortOrder = req.SortOrder
	return p.Validate()
}

func toPaymentMethodDTO(p domain.PaymentMethod) paymentMethodDTO {
	return paymentMethodDTO{
		ID:            p.ID,
		Type:          p.Type,
		Name:          p.Name,
		AccountName:   p.AccountName,
		AccountNumber: p.AccountNumber,
		Branch:        p.Branch,
		QRImageURL:    p.QRImageURL,
		Instructions:  p.Instructions,
		IsActive:      p.IsActive,
		SortOrder:     p.SortOrder,
	}
}

func (a *App) PaymentMethodsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.PaymentMethods.List(r.Context(), !middleware.IsStaff(r.Context()))
	if err != nil {
		a.fail(w, r, err, "list payment methods failed")
		return
	}
	out := make([]paymentMethodDTO, 0, len(items))
	for _, p := range items {
		out = append(out, toPaymentMethodDTO(p))
	}
	a.json(w, http.StatusOK, map[string]any{"items": out})
}

func (a *App) PaymentMethodsCreate(w http.ResponseWriter, r *http.Request) {
	var req paymentMethodRequest
	if !a.decode(w, r, &req) {
		return
	}
	p := &domain.PaymentMethod{CreatedAt: a.now().UTC()}
	if err := req.apply(p); err != nil {
		a.fail(w, r, err, "validate payment method")
		return
	}
	if err := a.PaymentMethods.Create(r.Context(), p); err != nil {
		a.fail(w, r, err, "create payment method failed")
		return
	}
	a.json(w, http.StatusCreated, toPaymentMethodDTO(*p))
}

func (a *App) PaymentMethodsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var req paymentMethodRequest
	if !a.decode(w, r, &req) {
		return
	}
	p := &domain.PaymentMethod{ID: id, UpdatedAt: a.now().UTC()}
	if err := req.apply(p); err != nil {
		a.fail(w, r, err, "validate payment method")
		return
	}
	if err := a.PaymentMethods.Update(r.Context(), p); err != nil {
		a.fail(w, r, err, "update payment method failed")
		return
	}
	a.json(w, http.StatusOK, toPaymentMethodDTO(*p))
}

func (a *App) PaymentMethodsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := a.PaymentMethods.Delete(r.Context(), id); err != nil {
		a.fail(w, r, err, "delete payment method failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
