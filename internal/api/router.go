package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/mycarexpenses-be/internal/api/handlers"
	"github.com/isdelr/mycarexpenses-be/internal/auth"
	"github.com/isdelr/mycarexpenses-be/internal/services"
)

// Dependencies groups everything the router needs to build its handlers.
type Dependencies struct {
	DB               *sql.DB
	Tokens           *auth.TokenManager
	UserService      services.UserServiceProvider
	CarService       services.CarServiceProvider
	ExpenseService   services.ExpenseServiceProvider
	AnalyticsService services.AnalyticsServiceProvider
	AllowedOrigins   []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(recoverer)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	// Bearer tokens travel in a header, so credentials (cookies) stay off.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Initialize handlers
	userHandler := handlers.NewUserHandler(deps.UserService)
	carHandler := handlers.NewCarHandler(deps.CarService)
	expenseHandler := handlers.NewExpenseHandler(deps.ExpenseService)
	analyticsHandler := handlers.NewAnalyticsHandler(deps.AnalyticsService)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	protect := deps.Tokens.Require

	r.Get("/healthz", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Get("/me", protect(userHandler.GetMe))

		r.Route("/cars", func(r chi.Router) {
			r.Get("/", protect(carHandler.GetAll))
			r.Post("/", protect(carHandler.Create))
			r.Delete("/{id}", protect(carHandler.Delete))
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", protect(expenseHandler.GetAll))
			r.Post("/", protect(expenseHandler.Create))
			r.Put("/{id}", protect(expenseHandler.Update))
			r.Delete("/{id}", protect(expenseHandler.Delete))
		})

		r.Get("/analytics/summary", protect(analyticsHandler.Summary))
	})

	return r
}
