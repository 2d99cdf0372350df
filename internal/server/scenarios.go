package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RaxHax/fratak/internal/calculations"
	"github.com/RaxHax/fratak/internal/scenario"
	"github.com/RaxHax/fratak/internal/validators"
)

// HandleScenarios serves POST (create) and GET (list) on /scenarios.
func (s *Server) HandleScenarios(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createScenario(w, r)
	case http.MethodGet:
		s.listScenarios(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleScenarioByID serves GET, PUT and DELETE on /scenarios/{id}, plus
// GET /scenarios/{id}/schedule which recomputes the schedule from the
// persisted configuration.
func (s *Server) HandleScenarioByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/scenarios/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		http.Error(w, "scenario id is required", http.StatusBadRequest)
		return
	}

	if sub == "schedule" {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.scenarioSchedule(w, r, id)
		return
	}
	if sub != "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		sc, err := s.store.Get(r.Context(), id)
		if err != nil {
			s.scenarioError(w, err)
			return
		}
		writeJSON(w, sc)
	case http.MethodPut:
		s.updateScenario(w, r, id)
	case http.MethodDelete:
		if err := s.store.Delete(r.Context(), id); err != nil {
			s.scenarioError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type scenarioRequest struct {
	Name   string                  `json:"name"`
	Config calculations.LoanConfig `json:"config"`
}

func (s *Server) createScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if err := validators.CheckLoanConfig(s.cfg, req.Config); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now().UTC()
	sc := scenario.Scenario{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Config:    req.Config,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(r.Context(), sc); err != nil {
		s.logger.Error("failed to save scenario", zap.Error(err))
		http.Error(w, "failed to save scenario", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sc)
}

func (s *Server) listScenarios(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list scenarios", zap.Error(err))
		http.Error(w, "failed to list scenarios", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []scenario.Scenario{}
	}
	writeJSON(w, list)
}

func (s *Server) updateScenario(w http.ResponseWriter, r *http.Request, id string) {
	existing, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.scenarioError(w, err)
		return
	}

	var req scenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validators.CheckLoanConfig(s.cfg, req.Config); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	existing.Config = req.Config
	if req.Name != "" {
		existing.Name = req.Name
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.store.Save(r.Context(), existing); err != nil {
		s.logger.Error("failed to update scenario", zap.Error(err))
		http.Error(w, "failed to update scenario", http.StatusInternalServerError)
		return
	}
	writeJSON(w, existing)
}

func (s *Server) scenarioSchedule(w http.ResponseWriter, r *http.Request, id string) {
	sc, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.scenarioError(w, err)
		return
	}
	result := calculations.CalculateSchedule(sc.Config)
	if result == nil {
		http.Error(w, "stored configuration is invalid", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, result)
}

func (s *Server) scenarioError(w http.ResponseWriter, err error) {
	if errors.Is(err, scenario.ErrNotFound) {
		http.Error(w, "scenario not found", http.StatusNotFound)
		return
	}
	s.logger.Error("scenario store error", zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}
