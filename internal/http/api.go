package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"expenses/internal/core"
)

type apiExpense struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

func (s *Server) handleAPIExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.getAllExpenses(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load expenses", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load expenses"})
		return
	}
	core.SortByDateDesc(expenses)

	out := make([]apiExpense, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, apiExpense{
			ID:          e.ID,
			Date:        e.Date.String(),
			Amount:      e.Amount.Dollars(),
			Category:    e.Category,
			Description: e.Description,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.getAllExpenses(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load expenses", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load expenses"})
		return
	}

	categories := make(map[string]float64)
	for name, amount := range core.CategoryTotals(expenses) {
		categories[name] = amount.Dollars()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_amount":   core.TotalSpending(expenses).Dollars(),
		"total_expenses": len(expenses),
		"categories":     categories,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.getAllExpenses(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "unhealthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"error":     err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"expenses_count": len(expenses),
		"total_amount":   core.TotalSpending(expenses).Dollars(),
	})
}
