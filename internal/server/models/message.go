package models

import "time"

// Roles a conversation turn may carry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a user's conversation log. The log is append-only;
// individual messages are never edited or deleted, only the full log can be
// cleared.
type Message struct {
	ID        string
	UserID    string
	Role      string
	Content   string
	CreatedAt time.Time
}
