package models

// Project is a single-file generated application owned by exactly one user.
// HTML holds the whole artifact (markup, style, script in one document).
// Timestamps are unix milliseconds. Branch is cosmetic and is always "main".
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	HTML      string `json:"html"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
	Branch    string `json:"branch"`
}
