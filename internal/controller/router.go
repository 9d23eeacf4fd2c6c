package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (c Controller) Mux() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(c.requestIDMw)
	r.Use(c.requestLoggingMw)
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/players", func(r chi.Router) {
		r.Post("/", c.CreatePlayer)
		r.Get("/{player-id}", c.GetPlayer)
		r.Post("/{player-id}/commands", c.SendCommand)
	})
	r.Get("/ws/frame/{player-id}", c.ServeFrame)

	return r
}
