package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookcook/api/internal/api/handlers"
	"github.com/bookcook/api/internal/services"
	"github.com/bookcook/api/internal/websocket"
)

// Options holds the collaborators and settings shared by both routers.
type Options struct {
	Recipes     services.RecipeServiceProvider
	Books       services.BookServiceProvider
	Users       services.UserServiceProvider
	Events      services.EventServiceProvider
	Hub         *websocket.Hub
	Development bool
	CORSOrigins []string
}

// newBaseRouter creates a Chi router with the middleware stack common to both services.
func newBaseRouter(opts Options) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handlers.RequestLogger)
	r.Use(handlers.DevelopmentMode(opts.Development))
	r.Use(handlers.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	// Unknown paths and unsupported methods share the same 404 envelope.
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)

	return r
}

// eventRoutes exposes the activity log and its live feed.
func eventRoutes(opts Options) func(chi.Router) {
	return func(r chi.Router) {
		eventHandler := handlers.NewEventHandler(opts.Events)
		r.Get("/", eventHandler.GetRecent)
		if opts.Hub != nil {
			r.Get("/ws", handlers.NewWebSocketHandler(opts.Hub).Serve)
		}
	}
}

// NewCookbookRouter creates the router for the cookbook service.
func NewCookbookRouter(opts Options) *chi.Mux {
	r := newBaseRouter(opts)

	recipeHandler := handlers.NewRecipeHandler(opts.Recipes)
	userHandler := handlers.NewUserHandler(opts.Users)

	r.Get("/", handlers.CookbookLanding())

	r.Route("/api", func(r chi.Router) {
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipeHandler.GetAll)
			r.Post("/", recipeHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", recipeHandler.Get)
				r.Put("/", recipeHandler.Update)
				r.Delete("/", recipeHandler.Delete)
			})
		})

		r.Post("/register", userHandler.Register)
		r.Post("/users/{email}/reset-password", userHandler.ResetPassword)
		r.Route("/events", eventRoutes(opts))
	})

	return r
}

// NewBooksRouter creates the router for the in-n-out-books service.
func NewBooksRouter(opts Options) *chi.Mux {
	r := newBaseRouter(opts)

	bookHandler := handlers.NewBookHandler(opts.Books)
	userHandler := handlers.NewUserHandler(opts.Users)

	r.Get("/", handlers.BooksLanding())

	r.Route("/api", func(r chi.Router) {
		r.Route("/books", func(r chi.Router) {
			r.Get("/", bookHandler.GetAll)
			r.Post("/", bookHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", bookHandler.Get)
				r.Put("/", bookHandler.Update)
				r.Delete("/", bookHandler.Delete)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/login", userHandler.Login)
			r.Post("/{email}/verify-security-question", userHandler.VerifySecurityQuestions)
		})

		r.Route("/events", eventRoutes(opts))
	})

	return r
}
