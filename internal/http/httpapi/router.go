package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"charity/internal/http/handlers"
	"charity/internal/middleware"
)

// Options configures the middleware stack around the handlers.
type Options struct {
	JWTSecret       string
	AllowedOrigins  []string
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	RateLimitPerMin int
	Logger          zerolog.Logger
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
		middleware.OptionalAuth(opts.JWTSecret),
	)

	authn := middleware.AuthJWT(opts.JWTSecret, app.Deny)
	staff := func(next http.Handler) http.Handler { return authn(app.ActiveStaff(next)) }
	adminOnly := middleware.RequireRole(app.Deny, "admin")
	donateLimit := middleware.RateLimit(opts.RateLimitPerMin, time.Minute, app.Deny)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/transparency", app.Transparency)

		r.Route("/activities", func(r chi.Router) {
			r.Get("/", app.ActivitiesList)
			r.Get("/slug/{slug}", app.ActivitiesGetBySlug)
			r.Get("/{id}", app.ActivitiesGet)
			r.Get("/{id}/stats", app.ActivitiesStats)
			r.With(staff).Post("/", app.ActivitiesCreate)
			r.With(staff).Put("/{id}", app.ActivitiesUpdate)
			r.With(staff).Delete("/{id}", app.ActivitiesDelete)
		})

		r.Route("/donations", func(r chi.Router) {
			r.Get("/", app.DonationsList)
			r.With(donateLimit).Post("/", app.DonationsCreate)
			r.With(staff).Get("/export", app.DonationsExport)
			r.With(staff).Get("/{id}", app.DonationsGet)
			r.With(staff).Put("/{id}/confirm", app.DonationsConfirm)
			r.With(staff).Delete("/{id}", app.DonationsDelete)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", app.ExpensesList)
			r.With(staff).Get("/export", app.ExpensesExport)
			r.With(staff).Post("/", app.ExpensesCreate)
			r.With(staff).Put("/{id}", app.ExpensesUpdate)
			r.With(staff).Delete("/{id}", app.ExpensesDelete)
		})

		r.With(staff).Get("/export/bundle", app.ExportBundle)

		r.Get("/content", app.ContentGet)
		r.With(staff).Post("/content", app.ContentUpsert)

		r.Get("/settings", app.SettingsGet)
		r.With(staff).Put("/settings", app.SettingsUpdate)

		r.Route("/team", func(r chi.Router) {
			r.Get("/", app.TeamList)
			r.With(staff).Post("/", app.TeamCreate)
			r.With(staff).Put("/{id}", app.TeamUpdate)
			r.With(staff).Delete("/{id}", app.TeamDelete)
		})

		r.Route("/payment-methods", func(r chi.Router) {
			r.Get("/", app.PaymentMethodsList)
			r.With(staff).Post("/", app.PaymentMethodsCreate)
			r.With(staff).Put("/{id}", app.PaymentMethodsUpdate)
			r.With(staff).Delete("/{id}", app.PaymentMethodsDelete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(staff, adminOnly)
			r.Get("/", app.UsersList)
			r.Post("/", app.UsersCreate)
			r.Get("/{id}", app.UsersGet)
			r.Put("/{id}", app.UsersUpdate)
			r.Delete("/{id}", app.UsersDelete)
		})
	})

	return r
}
