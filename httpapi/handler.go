package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/rssched/rollingstock-solver/greedy"
	"github.com/rssched/rollingstock-solver/ingest"
	"github.com/rssched/rollingstock-solver/objective"
)

// maxInstanceBytes bounds a POST /solve body; a single instance is never
// expected to approach this, and an unbounded io.ReadAll on a handler is
// an easy denial-of-service vector.
const maxInstanceBytes = 64 << 20

// SolveHandler runs the greedy solver against a posted JSON instance.
type SolveHandler struct {
	coefficients objective.FirstPhaseCoefficients
}

// NewSolveHandler builds a handler that evaluates solutions with coeffs.
func NewSolveHandler(coeffs objective.FirstPhaseCoefficients) *SolveHandler {
	return &SolveHandler{coefficients: coeffs}
}

// Solve handles POST /api/v1/solve.
//
// Request body is a JSON instance (the same schema ingest.Parse reads);
// response body is the JSON export (the same schema ingest.Export
// writes).
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxInstanceBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read request body"})
		return
	}
	if len(body) > maxInstanceBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "instance too large"})
		return
	}

	inst, err := ingest.Parse(body)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrInvalidInput):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed instance JSON"})
		}
		return
	}

	start := time.Now()
	obj := objective.FirstPhaseWithCoefficients(h.coefficients)
	solver := greedy.New(inst.Network, inst.Catalog, obj)
	evaluated, err := solver.Solve()
	if err != nil {
		log.Printf("[httpapi] solve error: %v", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "instance could not be solved"})
		return
	}

	data, err := ingest.Export(evaluated, obj, time.Since(start))
	if err != nil {
		log.Printf("[httpapi] export error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to encode solution"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// writeJSON is a helper that writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
