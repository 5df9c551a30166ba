package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"charity/internal/domain"
	"charity/internal/i18n"
	"charity/internal/middleware"
	"charity/internal/report"
)

type activityDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Location    string    `json:"location"`
	TripDate    *string   `json:"tripDate"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Images      []string  `json:"images"`
	IsPublished bool      `json:"isPublished"`
	IsUpcoming  bool      `json:"isUpcoming"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toActivityDTO(a domain.Activity) activityDTO {
	images := a.Images
	if images == nil {
		images = []string{}
	}
	return activityDTO{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Location:    a.Location,
		TripDate:    formatDate(a.TripDate),
		Category:    a.Category,
		Description: a.Description,
		Content:     a.Content,
		Images:      images,
		IsPublished: a.IsPublished,
		IsUpcoming:  a.IsUpcoming,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type activityRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Location    string   `json:"location"`
	TripDate    *string  `json:"tripDate"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Images      []string `json:"images"`
	IsPublished bool     `json:"isPublished"`
	IsUpcoming  bool     `json:"isUpcoming"`
}

// apply copies the request onto a. The slug falls back to the folded title.
func (req activityRequest) apply(a *domain.Activity) error {
	trip, err := parseDate("tripDate", req.TripDate)
	if err != nil {
		return err
	}
	slug := req.Slug
	if strings.TrimSpace(slug) == "" {
		slug = req.Title
	}
	images := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	a.Title = strings.TrimSpace(req.Title)
	a.Slug = i18n.Slugify(slug)
	a.Location = strings.TrimSpace(req.Location)
	a.TripDate = trip
	a.Category = strings.TrimSpace(req.Category)
	a.Description = req.Description
	a.Content = req.Content
	a.Images = images
	a.IsPublished = req.IsPublished
	a.IsUpcoming = req.IsUpcoming
	return a.Validate()
}

func (a *App) ActivitiesList(w http.ResponseWriter, r *http.Request) {
	published, err := queryBool(r, "published")
	if err != nil {
		a.fail(w, r, err, "parse activity filter")
		return
	}
	upcoming, err := queryBool(r, "upcoming")
	if err != nil {
		a.fail(w, r, err, "parse activity filter")
		return
	}
	if !middleware.IsStaff(r.Context()) {
		yes := true
		published = &yes
	}
	items, err := a.Activities.List(r.Context(), domain.ActivityFilter{
		Published: published,
		Upcoming:  upcoming,
		Category:  strings.TrimSpace(r.URL.Query().Get("category")),
	})
	if err != nil {
		a.fail(w, r, err, "list activities failed")
		return
	}
	out := make([]activityDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toActivityDTO(item))
	}
	a.json(w, http.StatusOK, map[string]any{"items": out})
}

func (a *App) ActivitiesGet(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	activity, err := a.visibleActivity(r, id)
	if err != nil {
		a.fail(w, r, err, "get activity failed")
		return
	}
	a.json(w, http.StatusOK, toActivityDTO(*activity))
}

func (a *App) ActivitiesGetBySlug(w http.ResponseWriter, r *http.Request) {
	activity, err := a.Activities.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err == nil && !activity.IsPublished && !middleware.IsStaff(r.Context()) {
		err = domain.ErrNotFound
	}
	if err != nil {
		a.fail(w, r, err, "get activity by slug failed")
		return
	}
	a.json(w, http.StatusOK, toActivityDTO(*activity))
}

// visibleActivity hides drafts from public callers.
func (a *App) visibleActivity(r *http.Request, id string) (*domain.Activity, error) {
	activity, err := a.Activities.GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if !activity.IsPublished && !middleware.IsStaff(r.Context()) {
		return nil, domain.ErrNotFound
	}
	return activity, nil
}

func (a *App) ActivitiesCreate(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if !a.decode(w, r, &req) {
		return
	}
	activity := &domain.Activity{CreatedAt: a.now().UTC()}
	if err := req.apply(activity); err != nil {
		a.fail(w, r, err, "validate activity")
		return
	}
	if err := a.Activities.Create(r.Context(), activity); err != nil {
		a.fail(w, r, err, "create activity failed")
		return
	}
	a.json(w, http.StatusCreated, toActivityDTO(*activity))
}

func (a *App) ActivitiesUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var req activityRequest
	if !a.decode(w, r, &req) {
		return
	}
	activity := &domain.Activity{ID: id, UpdatedAt: a.now().UTC()}
	if err := req.apply(activity); err != nil {
		a.fail(w, r, err, "validate activity")
		return
	}
	if err := a.Activities.Update(r.Context(), activity); err != nil {
		a.fail(w, r, err, "update activity failed")
		return
	}
	a.json(w, http.StatusOK, toActivityDTO(*activity))
}

func (a *App) ActivitiesDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := a.Activities.Delete(r.Context(), id); err != nil {
		a.fail(w, r, err, "delete activity failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type activityStatsResponse struct {
	Activity   activityDTO            `json:"activity"`
	Summary    report.Summary         `json:"summary"`
	Monthly    []report.MonthBucket   `json:"monthly"`
	Categories []report.CategoryTotal `json:"categories"`
}

// ActivitiesStats reports the totals of a single activity.
func (a *App) ActivitiesStats(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var (
		activity  *domain.Activity
		donations []domain.Donation
		expenses  []domain.Expense
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		activity, err = a.visibleActivity(r.WithContext(ctx), id)
		return err
	})
	g.Go(func() error {
		var err error
		confirmed := true
		donations, err = a.Donations.List(ctx, domain.DonationFilter{ActivityID: &id, Confirmed: &confirmed})
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = a.Expenses.List(ctx, domain.ExpenseFilter{ActivityID: &id})
		return err
	})
	if err := g.Wait(); err != nil {
		a.fail(w, r, err, "load activity stats failed")
		return
	}
	a.json(w, http.StatusOK, activityStatsResponse{
		Activity:   toActivityDTO(*activity),
		Summary:    report.Summarize(donations, expenses),
		Monthly:    nonNilMonths(report.Monthly(donations, expenses, a.loc())),
		Categories: nonNilCategories(report.ExpenseCategories(expenses)),
	})
}

func nonNilMonths(m []report.MonthBucket) []report.MonthBucket {
	if m == nil {
		return []report.MonthBucket{}
	}
	return m
}

func nonNilCategories(c []report.CategoryTotal) []report.CategoryTotal {
	if c == nil {
		return []report.CategoryTotal{}
	}
	return c
}
