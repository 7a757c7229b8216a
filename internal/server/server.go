// Package server exposes the application over a JSON HTTP API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tripledger/tripledger/internal/service"
)

// Server wires the application services into an HTTP handler.
type Server struct {
	groups   *service.GroupService
	ledgers  *service.LedgerService
	validate *validator.Validate
}

// New creates a Server over the given services.
func New(groups *service.GroupService, ledgers *service.LedgerService) *Server {
	return &Server{
		groups:   groups,
		ledgers:  ledgers,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Routes builds the full route tree with logging, CORS and metrics
// middleware applied.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(corsHeaders)
	r.Use(requestMetrics)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/groups", func(r chi.Router) {
		r.Post("/", s.createGroup)
		r.Get("/", s.listGroups)

		r.Route("/{groupID}", func(r chi.Router) {
			r.Get("/", s.getGroup)
			r.Put("/", s.updateGroup)
			r.Delete("/", s.deleteGroup)

			r.Post("/expenses", s.addExpense)
			r.Get("/expenses", s.listExpenses)
			r.Delete("/expenses/{expenseID}", s.deleteExpense)

			r.Post("/payments", s.recordPayment)
			r.Get("/payments", s.listPayments)

			r.Get("/settlement", s.getSettlement)
			r.Get("/summary", s.getSummary)
		})
	})

	return r
}
