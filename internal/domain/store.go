package domain

// SessionStore owns the lifecycle of sessions. Sessions are never persisted.
type SessionStore interface {
	Create() *Session
	Open(id string) *Session
	Get(id string) (*Session, error)
	Destroy(id string) error
}
