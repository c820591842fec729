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
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/auth/verify-email", h.verifyEmail)
	})

	// routes for any authenticated account
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Patch("/api/profile/me", h.updateProfile)
		r.Post("/api/accounts/{accountID}/upgrade", h.upgradeProfessional)
	})

	// administrative routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireAdmin)
		r.Get("/api/accounts", h.listAccounts)
		r.Get("/api/accounts/{accountID}", h.getAccount)
		r.Post("/api/accounts/{accountID}/unlock", h.unlockAccount)
		r.Post("/api/accounts/{accountID}/reset-password", h.resetPassword)
		r.Delete("/api/accounts/{accountID}", h.deleteAccount)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
