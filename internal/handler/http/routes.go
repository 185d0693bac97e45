package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	// withSession must see the writer installed by withLogging
	router.Use(h.withSession)
	router.Use(middleware.Compress(5, "application/json"))

	router.Get("/", h.home)

	router.Route(usersPath, func(r chi.Router) {
		r.Get("/", h.listUsers)
		r.Get("/new", h.newUser)
		r.With(h.withAuthRateLimit).Post("/", h.createUser)

		r.Get("/{id}", h.showUser)
		r.Get("/{id}/edit", h.editUser)
		r.Put("/{id}", h.updateUser)
		r.Patch("/{id}", h.updateUser)
	})

	router.Get(signInPath, h.newSession)
	router.With(h.withAuthRateLimit).Post(signInPath, h.createSession)
	router.Delete("/signout", h.destroySession)

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.notFound)

	return router
}
