package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/rssched/rollingstock-solver/objective"
)

// NewRouter builds the solver's HTTP route tree: a health check and the
// POST /api/v1/solve endpoint.
func NewRouter(coeffs objective.FirstPhaseCoefficients) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	solveHandler := NewSolveHandler(coeffs)
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/solve", solveHandler.Solve).Methods(http.MethodPost)

	return router
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Run starts an HTTP server on addr serving router, and blocks until
// SIGINT/SIGTERM triggers a graceful shutdown.
func Run(addr string, router *mux.Router) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("[httpapi] listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case <-quit:
		log.Println("[httpapi] shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
