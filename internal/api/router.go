package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/thounda/employee-polls-be/internal/api/handlers"
	"github.com/thounda/employee-polls-be/internal/auth"
	"github.com/thounda/employee-polls-be/internal/services"
	"github.com/thounda/employee-polls-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(hub *websocket.Hub, pollService services.PollServiceProvider, authService services.AuthServiceProvider, allowedOrigin string, tokenTTL time.Duration) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(pollService)
	userHandler := handlers.NewUserHandler(authService, pollService, tokenTTL)
	healthHandler := handlers.NewHealthHandler()
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Get)

		// WebSocket connection endpoints
		r.Get("/ws", wsHandler.Serve)
		r.Get("/ws/questions/{id}", wsHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", userHandler.Login)
			r.Post("/logout", userHandler.Logout)
			r.With(auth.JWTMiddleware()).Get("/me", userHandler.GetMe)
		})

		r.Get("/users", userHandler.GetAll)
		r.Get("/leaderboard", pollHandler.Leaderboard)

		r.Route("/questions", func(r chi.Router) {
			r.Get("/", pollHandler.GetAll)
			r.With(auth.JWTMiddleware()).Post("/", pollHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", pollHandler.Get)
				r.With(auth.JWTMiddleware()).Post("/vote", pollHandler.Vote)
			})
		})

		r.With(auth.JWTMiddleware()).Get("/dashboard", pollHandler.Dashboard)
	})

	return r
}
