package httpapi

import (
	"net/http"
	"time"

	"github.com/akolosov/fincoach/internal/server/models"
)

type messagePayload struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toMessagePayload(m *models.Message) messagePayload {
	return messagePayload{ID: m.ID, Role: m.Role, Content: m.Content, CreatedAt: m.CreatedAt}
}

func (s *Server) handleChatList(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.chatlog.List(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]messagePayload, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessagePayload(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleChatAppend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	msg, err := s.chatlog.Append(r.Context(), userIDFrom(r.Context()), req.Role, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMessagePayload(msg))
}

func (s *Server) handleChatClear(w http.ResponseWriter, r *http.Request) {
	if _, err := s.chatlog.Clear(r.Context(), userIDFrom(r.Context())); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chat history cleared"})
}

func (s *Server) handleConverse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	reply, err := s.chat.Converse(r.Context(), userIDFrom(r.Context()), req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
