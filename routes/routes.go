package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/muqabla/sportshub/handlers"
)

type Handlers struct {
	Sport        *handlers.SportHandler
	User         *handlers.UserHandler
	Team         *handlers.TeamHandler
	Event        *handlers.EventHandler
	Registration *handlers.RegistrationHandler
	Match        *handlers.MatchHandler
	WebSocket    *handlers.WebSocketHandler
}

func InitRoutes(h Handlers) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/sports", func(r chi.Router) {
		r.Get("/", h.Sport.ListSports)
		r.Post("/", h.Sport.CreateSport)
		r.Get("/{id}", h.Sport.GetSport)
		r.Patch("/{id}", h.Sport.UpdateSport)
		r.Delete("/{id}", h.Sport.DeleteSport)
	})

	router.Route("/users", func(r chi.Router) {
		r.Get("/", h.User.ListUsers)
		r.Post("/", h.User.CreateUser)
		r.Get("/{id}", h.User.GetUser)
		r.Patch("/{id}", h.User.UpdateUser)
		r.Delete("/{id}", h.User.DeleteUser)
		r.Post("/{id}/avatar", h.User.UploadAvatar)
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Team.ListTeams)
		r.Post("/", h.Team.CreateTeam)
		r.Get("/{id}", h.Team.GetTeam)
		r.Patch("/{id}", h.Team.UpdateTeam)
		r.Delete("/{id}", h.Team.DeleteTeam)
		r.Post("/{id}/members", h.Team.AddMember)
		r.Post("/{id}/logo", h.Team.UploadLogo)
	})

	router.Route("/events", func(r chi.Router) {
		r.Get("/", h.Event.ListEvents)
		r.Post("/", h.Event.CreateEvent)
		r.Get("/{id}", h.Event.GetEvent)
		r.Patch("/{id}", h.Event.UpdateEvent)
		r.Delete("/{id}", h.Event.DeleteEvent)
		r.Post("/{id}/banner", h.Event.UploadBanner)
		r.Get("/{id}/registrations", h.Registration.ListByEvent)
		r.Post("/{id}/registrations", h.Registration.RegisterTeam)
		r.Get("/{id}/standings", h.Event.ListStandings)
		r.Post("/{id}/standings/recalculate", h.Event.RecalculateStandings)
	})

	router.Route("/registrations", func(r chi.Router) {
		r.Patch("/{id}", h.Registration.UpdateRegistration)
		r.Delete("/{id}", h.Registration.DeleteRegistration)
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", h.Match.ListMatches)
		r.Post("/", h.Match.CreateMatch)
		r.Get("/{id}", h.Match.GetMatch)
		r.Patch("/{id}", h.Match.UpdateMatch)
		r.Delete("/{id}", h.Match.DeleteMatch)
		r.Get("/{id}/scorecards", h.Match.ListScorecard)
		r.Post("/{id}/scorecards", h.Match.AddScorecardEntry)
		r.Get("/{id}/statistics", h.Match.ListStatistics)
		r.Post("/{id}/statistics", h.Match.AddStatistic)
	})

	router.Get("/ws/events/{eventID}", h.WebSocket.ServeEventFeed)

	return router
}
