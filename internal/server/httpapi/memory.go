package httpapi

import (
	"net/http"
	"time"

	"github.com/akolosov/fincoach/internal/server/models"
)

type factPayload struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toFactPayload(f *models.MemoryFact) factPayload {
	return factPayload{ID: f.ID, Category: f.Category, Content: f.Content, CreatedAt: f.CreatedAt}
}

func (s *Server) handleMemoryList(w http.ResponseWriter, r *http.Request) {
	facts, err := s.memories.List(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]factPayload, 0, len(facts))
	for _, f := range facts {
		out = append(out, toFactPayload(f))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMemoryAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
		Content  string `json:"content"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "Content is required")
		return
	}

	fact, err := s.memories.Add(r.Context(), userIDFrom(r.Context()), req.Category, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFactPayload(fact))
}

func (s *Server) handleMemoryDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.memories.Remove(r.Context(), userIDFrom(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Memory deleted"})
}

func (s *Server) handleMemoryClear(w http.ResponseWriter, r *http.Request) {
	if _, err := s.memories.Clear(r.Context(), userIDFrom(r.Context())); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "All memories cleared"})
}
