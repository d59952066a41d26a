package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	srv *http.Server
}

func New(addr string, exposeMetrics bool, allowedOrigins []string, h *Handler) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if exposeMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Post("/products", h.createProduct)

		r.Get("/containers", h.listContainers)
		r.Post("/containers", h.createContainer)
		r.Delete("/containers/{id}", h.deleteContainer)

		r.Get("/balance", h.getBalance)
		r.Get("/movements", h.listMovements)
		r.Post("/transfer", h.transfer)
		r.Post("/sale", h.sale)

		r.Get("/deposits", h.listDeposits)
		r.Post("/deposits", h.createDeposit)
		r.Get("/deposits/{id}", h.getDeposit)
		r.Post("/deposits/{id}/toggle", h.toggleDeposit)
		r.Delete("/deposits/{id}", h.deleteDeposit)

		r.Get("/weekly/{uid}/{week}", h.getWeekly)
		r.Get("/reports/weekly.xlsx", h.weeklyReport)
	})

	return &Server{srv: &http.Server{Addr: addr, Handler: r}}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
