// Package httpapi exposes the solver over HTTP: POST /api/v1/solve reads
// a JSON instance, runs the greedy solver, and returns the solved
// schedule in the same export format cmd/rollingstock writes to disk.
//
// Grounded on: shivamshaw23-Hintro's cmd/server/main.go (mux.NewRouter,
// PathPrefix("/api/v1").Subrouter(), a /health endpoint, graceful
// srv.Shutdown on SIGINT/SIGTERM) and internal/handler's writeJSON +
// switch-on-errors.Is handler style.
package httpapi
