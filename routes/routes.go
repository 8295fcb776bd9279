package routes

import (
	_ "embed"
	"net/http"

	"github.com/dmavani25/teammatch-system/handlers"
	"github.com/dmavani25/teammatch-system/middleware"
	"github.com/dmavani25/teammatch-system/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openAPIDocument []byte

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	uploadHandler *handlers.UploadHandler,
	participantHandler *handlers.ParticipantHandler,
	matchingHandler *handlers.MatchingHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(openAPIDocument)
	})
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	// Progress subscriptions are read-only, no token required.
	router.Get("/ws/runs/{runID}", webSocketHandler.ServeRun)

	router.Route("/participants", func(r chi.Router) {
		r.Get("/", participantHandler.List)
		r.Get("/{participantID}", participantHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(models.UserRoleOrganizer))

			r.Post("/upload", uploadHandler.UploadSurvey)
			r.Delete("/", participantHandler.Clear)
		})
	})

	router.Route("/runs", func(r chi.Router) {
		r.Get("/", matchingHandler.ListRuns)
		r.Get("/{runID}", matchingHandler.GetRun)
		r.Get("/{runID}/teams", matchingHandler.GetRunTeams)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(models.UserRoleOrganizer))

			r.Post("/", matchingHandler.CreateRun)
		})
	})
}
