package models

// Session is the persisted snapshot of the currently authenticated user,
// plus a signed token proving the snapshot was established by a real login.
// It is a denormalized read-through cache of the User record: any mutation
// of the user must rewrite the session copy or the snapshot goes stale.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
