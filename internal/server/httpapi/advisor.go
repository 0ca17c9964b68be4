package httpapi

import (
	"net/http"

	"github.com/akolosov/fincoach/internal/server/services"
)

func (s *Server) handleAnalyzeExpenses(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CSV string `json:"csv"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.CSV == "" {
		writeError(w, http.StatusBadRequest, "CSV data is required")
		return
	}

	report, err := s.advisor.AnalyzeExpenses(r.Context(), req.CSV)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handlePlanBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Income     float64 `json:"income"`
		FixedCosts float64 `json:"fixed_costs"`
		Goals      string  `json:"goals"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Income <= 0 {
		writeError(w, http.StatusBadRequest, "Income must be positive")
		return
	}

	plan, err := s.advisor.PlanBudget(r.Context(), &services.BudgetRequest{
		Income:     req.Income,
		FixedCosts: req.FixedCosts,
		Goals:      req.Goals,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handlePlanGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Years  int     `json:"years"`
		Risk   string  `json:"risk"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Amount <= 0 || req.Years <= 0 {
		writeError(w, http.StatusBadRequest, "Name, amount, and years are required")
		return
	}

	strategy, err := s.advisor.PlanGoal(r.Context(), &services.GoalRequest{
		Name:   req.Name,
		Amount: req.Amount,
		Years:  req.Years,
		Risk:   req.Risk,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, strategy)
}

func (s *Server) handleExplainConcept(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Term string `json:"term"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Term == "" {
		writeError(w, http.StatusBadRequest, "Term is required")
		return
	}

	explanation, err := s.advisor.ExplainConcept(r.Context(), req.Term)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, explanation)
}
