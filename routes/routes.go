package routes

import (
	"net/http"

	"github.com/askhat/football-analysis/docs"
	"github.com/askhat/football-analysis/handlers"
	"github.com/askhat/football-analysis/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	catalogHandler *handlers.CatalogHandler,
	sessionHandler *handlers.SessionHandler,
	lineupHandler *handlers.LineupHandler,
	taggingHandler *handlers.TaggingHandler,
	eventHandler *handlers.EventHandler,
	exportHandler *handlers.ExportHandler,
	videoHandler *handlers.VideoHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	// Catalog browsing is public; mutations require a login.
	router.Get("/leagues", catalogHandler.ListLeagues)
	router.Get("/leagues/{leagueID}/teams", catalogHandler.ListTeams)
	router.Get("/teams/{teamID}", catalogHandler.GetTeam)
	router.Get("/teams/{teamID}/players", catalogHandler.ListPlayers)
	router.Get("/positions", catalogHandler.ListPositions)
	router.Get("/tagging/options", taggingHandler.Options)

	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Post("/teams", catalogHandler.CreateTeam)
		r.Delete("/teams/{teamID}", catalogHandler.DeleteTeam)
		r.Post("/players", catalogHandler.CreatePlayer)
		r.Delete("/players/{playerID}", catalogHandler.DeletePlayer)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.List)
			r.Post("/", sessionHandler.Create)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", sessionHandler.Get)
				r.Put("/teams", sessionHandler.SetTeams)
				r.Delete("/", sessionHandler.Delete)

				r.Post("/play", sessionHandler.Play)
				r.Post("/pause", sessionHandler.Pause)
				r.Post("/seek", sessionHandler.Seek)
				r.Post("/half", sessionHandler.SetHalf)

				r.Get("/lineup", lineupHandler.Get)
				r.Post("/lineup/starting/{playerID}", lineupHandler.AddToStarting)
				r.Post("/lineup/substitutes/{playerID}", lineupHandler.MoveToSubstitutes)
				r.Post("/lineup/position/{playerID}", lineupHandler.SetTacticalPosition)

				r.Post("/drafts", taggingHandler.StartDraft)
				r.Get("/drafts/{category}", taggingHandler.CurrentDraft)
				r.Post("/drafts/{category}/steps", taggingHandler.Advance)
				r.Delete("/drafts/{category}", taggingHandler.Cancel)

				r.Get("/events", eventHandler.List)
				r.Delete("/events", eventHandler.Clear)
				r.Delete("/events/{eventID}", eventHandler.Delete)
				r.Post("/events/{eventID}/activate", eventHandler.Activate)

				r.Get("/export", exportHandler.ExportCSV)
				r.Post("/video", videoHandler.Upload)
			})
		})
	})

	router.Get("/ws/sessions/{sessionID}", webSocketHandler.ServeWs)

	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(docs.OpenAPI)
	})
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}
