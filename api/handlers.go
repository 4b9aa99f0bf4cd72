package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/inference-sim/cpusched/sim"
	"github.com/inference-sim/cpusched/sim/trace"
)

// maxBodyBytes caps request bodies; process lists are small.
const maxBodyBytes = 1 << 20

// processPayload is the wire form of one process record.
type processPayload struct {
	ID      string `json:"id"`
	Arrival int64  `json:"arrival"`
	Burst   int64  `json:"burst"`
}

type simulateRequest struct {
	Algorithm string           `json:"algorithm"`
	Quantum   int64            `json:"quantum"`
	Trace     bool             `json:"trace"`
	Processes []processPayload `json:"processes"`
}

type compareRequest struct {
	Quantum   int64            `json:"quantum"`
	Trace     bool             `json:"trace"`
	Processes []processPayload `json:"processes"`
}

type storedSimulateRequest struct {
	Algorithm string `json:"algorithm"`
	Quantum   int64  `json:"quantum"`
	Trace     bool   `json:"trace"`
}

func toProcesses(in []processPayload) []sim.Process {
	procs := make([]sim.Process, len(in))
	for i, p := range in {
		procs[i] = sim.NewProcess(p.ID, p.Arrival, p.Burst)
	}
	return procs
}

func traceLevel(enabled bool) trace.TraceLevel {
	if enabled {
		return trace.TraceLevelTimeline
	}
	return trace.TraceLevelNone
}

// decodeBody strictly decodes a JSON request body into v. An empty body leaves v untouched.
// A malformed quantum is reported as ErrInvalidQuantum, anything else as ErrInvalidInput.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == "quantum" {
		return fmt.Errorf("%w: quantum must be an integer", sim.ErrInvalidQuantum)
	}
	return fmt.Errorf("%w: invalid request body: %v", sim.ErrInvalidInput, err)
}

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondOK(w, r, map[string]any{
		"status": "healthy",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

// --- Simulation ---

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := decodeBody(r, &req); err != nil {
		respondSimError(w, r, err)
		return
	}
	s.simulate(w, r, req.Algorithm, req.Quantum, req.Trace, toProcesses(req.Processes))
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decodeBody(r, &req); err != nil {
		respondSimError(w, r, err)
		return
	}
	results, err := sim.CompareAll(toProcesses(req.Processes), req.Quantum, traceLevel(req.Trace))
	if err != nil {
		respondSimError(w, r, err)
		return
	}
	respondOK(w, r, results)
}

func (s *Server) handleSimulateStored(w http.ResponseWriter, r *http.Request) {
	var req storedSimulateRequest
	if err := decodeBody(r, &req); err != nil {
		respondSimError(w, r, err)
		return
	}
	procs, err := s.store.ListProcesses(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("list processes")
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load processes")
		return
	}
	s.simulate(w, r, req.Algorithm, req.Quantum, req.Trace, procs)
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request, algorithm string, quantum int64, traced bool, procs []sim.Process) {
	alg, err := sim.ParseAlgorithm(algorithm)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeInvalidAlgorithm, err.Error())
		return
	}
	result, err := sim.Simulate(sim.SimulationConfig{
		Algorithm: alg,
		Quantum:   quantum,
		Trace:     traceLevel(traced),
	}, procs)
	if err != nil {
		respondSimError(w, r, err)
		return
	}
	respondOK(w, r, result)
}

// --- Process list ---

func (s *Server) handleListProcesses(w http.ResponseWriter, r *http.Request) {
	procs, err := s.store.ListProcesses(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("list processes")
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load processes")
		return
	}
	respondOK(w, r, procs)
}

func (s *Server) handleAddProcess(w http.ResponseWriter, r *http.Request) {
	var req processPayload
	if err := decodeBody(r, &req); err != nil {
		respondSimError(w, r, err)
		return
	}
	p := sim.NewProcess(req.ID, req.Arrival, req.Burst)
	if err := s.store.AddProcess(r.Context(), p); err != nil {
		respondSimError(w, r, err)
		return
	}
	respondCreated(w, r, p)
}

func (s *Server) handleClearProcesses(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		s.logger.WithError(err).Error("clear processes")
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to clear processes")
		return
	}
	respondOK(w, r, map[string]any{"cleared": true})
}
