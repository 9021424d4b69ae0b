package models

// Message roles as sent to the generation service.
const (
	RoleUser   = "user"
	RoleModel  = "model"
	RoleSystem = "system"
)

// Message is one turn of an editor or terminal chat. Messages live only in
// memory for the lifetime of a session and are never persisted. Streaming is
// true while the message is still receiving streamed content.
type Message struct {
	ID        string
	Role      string
	Content   string
	Timestamp int64
	Streaming bool
}
