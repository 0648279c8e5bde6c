package http

import (
	"net/http"

	"pritapia/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(auth service.AuthService, audits service.AuditService, trustProxy bool) http.Handler {
	h := &handler{auth: auth, audits: audits, trustProxy: trustProxy}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Get("/session", h.session)
		r.Delete("/session", h.logout)
		r.Delete("/sessions", h.logoutAll)
		r.Get("/activate", h.activate)
		r.Get("/audit-logs", h.auditLogs)
	})

	return r
}
