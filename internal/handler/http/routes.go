package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// oracle callback routes: authenticated by attestation, not by JWT
	router.Group(func(r chi.Router) {
		r.Post("/api/oracle/record", h.recordCallback)
		r.Post("/api/oracle/count", h.countCallback)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/records", h.submitRecord)
		r.Get("/api/records", h.listRecords)
		r.Get("/api/records/{recordID}", h.getRevealed)
		r.Post("/api/records/{recordID}/decrypt", h.requestRecordDecryption)

		r.Get("/api/labels", h.listLabels)
		r.Post("/api/labels/{label}/decrypt", h.requestCountDecryption)

		r.Delete("/api/decryptions/{requestID}", h.cancelDecryption)
	})

	return router
}
