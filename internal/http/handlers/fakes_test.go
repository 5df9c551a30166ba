package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"charity/internal/domain"
	"charity/internal/events"
	"charity/internal/middleware"
)

var testNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestApp() (*App, *stores) {
	s := newStores()
	app := &App{
		Activities:     s.activities,
		Donations:      s.donations,
		Expenses:       s.expenses,
		PaymentMethods: s.payments,
		Users:          s.users,
		Team:           s.team,
		Content:        s.content,
		Settings:       s.settings,
		Events:         s.events,
		Logger:         zerolog.Nop(),
		Location:       time.UTC,
		Now:            func() time.Time { return testNow },
	}
	return app, s
}

type stores struct {
	activities *memActivities
	donations  *memDonations
	expenses   *memExpenses
	payments   *memPaymentMethods
	users      *memUsers
	team       *memTeam
	content    *memContent
	settings   *memSettings
	events     *recordingPublisher
}

func newStores() *stores {
	return &stores{
		activities: &memActivities{},
		donations:  &memDonations{},
		expenses:   &memExpenses{},
		payments:   &memPaymentMethods{},
		users:      &memUsers{},
		team:       &memTeam{},
		content:    &memContent{},
		settings:   &memSettings{},
		events:     &recordingPublisher{},
	}
}

// asStaff attaches back-office claims the way OptionalAuth would.
func asStaff(r *http.Request, role, subject string) *http.Request {
	claims := &middleware.AdminClaims{Role: role}
	claims.Subject = subject
	return r.WithContext(middleware.ContextWithClaims(r.Context(), claims))
}

func serve(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, r)
	return rr
}

func strPtr(s string) *string { return &s }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type memActivities struct {
	mu    sync.Mutex
	items []domain.Activity
}

func (m *memActivities) Create(_ context.Context, a *domain.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.Slug == a.Slug {
			return domain.ErrConflict
		}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m.items = append(m.items, *a)
	return nil
}

func (m *memActivities) Update(_ context.Context, a *domain.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == a.ID {
			a.CreatedAt = m.items[i].CreatedAt
			m.items[i] = *a
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memActivities) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memActivities) GetByID(_ context.Context, id string) (*domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.items {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memActivities) GetBySlug(_ context.Context, slug string) (*domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.items {
		if a.Slug == slug {
			a := a
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memActivities) List(_ context.Context, f domain.ActivityFilter) ([]domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Activity{}
	for _, a := range m.items {
		if f.Published != nil && a.IsPublished != *f.Published {
			continue
		}
		if f.Upcoming != nil && a.IsUpcoming != *f.Upcoming {
			continue
		}
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type memDonations struct {
	mu    sync.Mutex
	items []domain.Donation
	// lastFilter is the filter of the most recent List call.
	lastFilter domain.DonationFilter
}

func (m *memDonations) Create(_ context.Context, d *domain.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	m.items = append(m.items, *d)
	return nil
}

func (m *memDonations) GetByID(_ context.Context, id string) (*domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.items {
		if d.ID == id {
			d := d
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memDonations) List(_ context.Context, f domain.DonationFilter) ([]domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = f
	out := []domain.Donation{}
	for _, d := range m.items {
		switch {
		case f.ActivityID != nil && (d.ActivityID == nil || *d.ActivityID != *f.ActivityID):
			continue
		case f.General && d.ActivityID != nil:
			continue
		case f.Confirmed != nil && d.IsConfirmed != *f.Confirmed:
			continue
		case f.CreatedBefore != nil && d.CreatedAt.After(*f.CreatedBefore):
			continue
		case f.OnlyPublic && !d.IsPublic:
			continue
		case f.Since != nil && d.CreatedAt.Before(*f.Since):
			continue
		case f.Until != nil && !d.CreatedAt.Before(*f.Until):
			continue
		case f.Search != "" && !strings.Contains(strings.ToLower(d.Message+" "+d.DisplayName()), strings.ToLower(f.Search)):
			continue
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []domain.Donation{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memDonations) Confirm(_ context.Context, id string, at time.Time) (*domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			if !m.items[i].IsConfirmed {
				m.items[i].IsConfirmed = true
				m.items[i].ConfirmedAt = &at
			}
			d := m.items[i]
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memDonations) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memDonations) ListOverdueUnreminded(_ context.Context, createdBefore time.Time, limit int) ([]domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Donation{}
	for _, d := range m.items {
		if !d.IsConfirmed && d.RemindedAt == nil && !d.CreatedAt.After(createdBefore) {
			out = append(out, d)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memDonations) MarkReminded(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id && m.items[i].RemindedAt == nil {
			m.items[i].RemindedAt = &at
		}
	}
	return nil
}

type memExpenses struct {
	mu    sync.Mutex
	items []domain.Expense
}

func (m *memExpenses) Create(_ context.Context, e *domain.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	m.items = append(m.items, *e)
	return nil
}

func (m *memExpenses) Update(_ context.Context, e *domain.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == e.ID {
			e.CreatedAt = m.items[i].CreatedAt
			m.items[i] = *e
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memExpenses) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memExpenses) GetByID(_ context.Context, id string) (*domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.items {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memExpenses) List(_ context.Context, f domain.ExpenseFilter) ([]domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Expense{}
	for _, e := range m.items {
		switch {
		case f.ActivityID != nil && (e.ActivityID == nil || *e.ActivityID != *f.ActivityID):
			continue
		case f.General && e.ActivityID != nil:
			continue
		case f.Category != "" && !matchesCategory(e.Category, f):
			continue
		case f.Since != nil && e.CreatedAt.Before(*f.Since):
			continue
		case f.Until != nil && !e.CreatedAt.Before(*f.Until):
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

type memPaymentMethods struct {
	items []domain.PaymentMethod
}

func (m *memPaymentMethods) Create(_ context.Context, p *domain.PaymentMethod) error {
	p.ID = uuid.NewString()
	m.items = append(m.items, *p)
	return nil
}

func (m *memPaymentMethods) Update(_ context.Context, p *domain.PaymentMethod) error {
	for i := range m.items {
		if m.items[i].ID == p.ID {
			m.items[i] = *p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memPaymentMethods) Delete(_ context.Context, id string) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memPaymentMethods) List(_ context.Context, activeOnly bool) ([]domain.PaymentMethod, error) {
	out := []domain.PaymentMethod{}
	for _, p := range m.items {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type memUsers struct {
	items []domain.User
}

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	for _, existing := range m.items {
		if existing.Email == u.Email {
			return domain.ErrConflict
		}
	}
	u.ID = uuid.NewString()
	m.items = append(m.items, *u)
	return nil
}

func (m *memUsers) Update(_ context.Context, u *domain.User) error {
	for i := range m.items {
		if m.items[i].ID == u.ID {
			if u.PasswordHash == "" {
				u.PasswordHash = m.items[i].PasswordHash
			}
			u.CreatedAt = m.items[i].CreatedAt
			m.items[i] = *u
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range m.items {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.items {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) List(context.Context) ([]domain.User, error) {
	return append([]domain.User{}, m.items...), nil
}

type memTeam struct {
	items []domain.TeamMember
}

func (m *memTeam) Create(_ context.Context, t *domain.TeamMember) error {
	t.ID = uuid.NewString()
	m.items = append(m.items, *t)
	return nil
}

func (m *memTeam) Update(_ context.Context, t *domain.TeamMember) error {
	for i := range m.items {
		if m.items[i].ID == t.ID {
			m.items[i] = *t
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memTeam) Delete(_ context.Context, id string) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memTeam) List(_ context.Context, activeOnly bool) ([]domain.TeamMember, error) {
	out := []domain.TeamMember{}
	for _, t := range m.items {
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

type memContent struct {
	items map[string]domain.ContentBlock
}

func (m *memContent) Get(_ context.Context, key string) (*domain.ContentBlock, error) {
	b, ok := m.items[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (m *memContent) List(context.Context) ([]domain.ContentBlock, error) {
	out := []domain.ContentBlock{}
	for _, b := range m.items {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *memContent) Upsert(_ context.Context, b *domain.ContentBlock) error {
	if m.items == nil {
		m.items = map[string]domain.ContentBlock{}
	}
	m.items[b.Key] = *b
	return nil
}

type memSettings struct {
	items map[string]domain.Setting
}

func (m *memSettings) List(context.Context) ([]domain.Setting, error) {
	out := []domain.Setting{}
	for _, s := range m.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *memSettings) UpsertAll(_ context.Context, settings []domain.Setting) error {
	if m.items == nil {
		m.items = map[string]domain.Setting{}
	}
	for _, s := range settings {
		m.items[s.Key] = s
	}
	return nil
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

func withLocale(r *http.Request, locale string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.LocaleKey, locale))
}

func matchesCategory(c *string, f domain.ExpenseFilter) bool {
	if c == nil || strings.TrimSpace(*c) == "" {
		return f.Uncategorized
	}
	return strings.TrimSpace(*c) == f.Category
}
