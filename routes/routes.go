package routes

import (
	"github.com/Dosada05/fantasy-league/handlers"
	"github.com/Dosada05/fantasy-league/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	leagueHandler *handlers.LeagueHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	// Public reads
	router.Get("/roster", leagueHandler.GetRoster)
	router.Get("/standings", leagueHandler.GetStandings)
	router.Get("/events", leagueHandler.ListEvents)
	router.Get("/ws/feed", webSocketHandler.ServeFeed)

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", leagueHandler.ListTeams)
		r.Get("/{teamID}", leagueHandler.GetTeamByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", leagueHandler.CreateTeam)
			r.Post("/{teamID}/claim", leagueHandler.ClaimReward)
		})
	})

	// Admin-only announcement
	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireAdmin)
		r.Post("/results", leagueHandler.AnnounceResult)
	})
}
