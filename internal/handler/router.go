package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter mounts every API route on a chi router. bearer is the
// authentication middleware; routes outside it are public by design
// (register, login, shared-trip resolution, destination reference data).
func NewRouter(s *Server, bearer func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.Health)
	r.Get("/openapi.yaml", s.OpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.Register)
			r.Post("/login", s.Login)
			r.Post("/logout", s.Logout)
			r.Group(func(r chi.Router) {
				r.Use(bearer)
				r.Get("/me", s.Me)
				r.Put("/profile", s.UpdateProfile)
			})
		})

		r.Route("/trips", func(r chi.Router) {
			// Public: share-token resolution needs no identity.
			r.Get("/shared/{token}", s.GetSharedTrip)

			r.Group(func(r chi.Router) {
				r.Use(bearer)
				r.Get("/", s.ListTrips)
				r.Post("/", s.CreateTrip)
				r.Get("/public", s.ListPublicTrips)
				r.Get("/{id}", s.GetTrip)
				r.Put("/{id}", s.UpdateTrip)
				r.Delete("/{id}", s.DeleteTrip)
				r.Post("/{id}/share", s.ShareTrip)
				r.Get("/{id}/stops", s.ListStops)
				r.Post("/{id}/stops", s.CreateStop)
				r.Get("/{id}/expenses", s.ListExpenses)
				r.Post("/{id}/expenses", s.CreateExpense)
				r.Get("/{id}/budget", s.GetBudget)
			})
		})

		r.Route("/stops", func(r chi.Router) {
			r.Use(bearer)
			r.Put("/reorder", s.ReorderStops)
			r.Put("/{id}", s.UpdateStop)
			r.Delete("/{id}", s.DeleteStop)
			r.Get("/{id}/activities", s.ListActivities)
			r.Post("/{id}/activities", s.CreateActivity)
		})

		r.Route("/activities", func(r chi.Router) {
			r.Use(bearer)
			r.Put("/{id}", s.UpdateActivity)
			r.Delete("/{id}", s.DeleteActivity)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Use(bearer)
			r.Put("/{id}", s.UpdateExpense)
			r.Delete("/{id}", s.DeleteExpense)
		})

		r.Route("/destinations", func(r chi.Router) {
			r.Get("/search", s.SearchDestinations)
			r.Get("/popular", s.PopularDestinations)
			r.Get("/continents", s.ListContinents)
			r.Get("/continent/{continent}", s.DestinationsByContinent)
			r.Get("/budget-friendly", s.BudgetFriendlyDestinations)
			r.Get("/{city}/{country}", s.DestinationByLocation)
		})
	})

	return r
}
