package domain

import "time"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of a conversation. It is never modified after creation.
type Turn struct {
	Role      Role
	Content   string
	Timestamp time.Time
}

// String renders the turn the way it appears in a formatted log.
func (t Turn) String() string {
	return string(t.Role) + ": " + t.Content
}
