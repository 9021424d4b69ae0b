// Package models defines the persisted and transient data types of the
// cyberdoom builder: users, projects, the global app config, the session
// snapshot, and in-memory chat messages.
package models

// User is an account record. PasswordHash is a bcrypt hash; the plaintext
// password is never stored. Credits is the generation balance; admins are
// exempt from debits. LastLoginDate holds the local calendar date
// ("2006-01-02") of the most recent login and drives the daily credit
// rollover. Users are never deleted.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	PasswordHash  string `json:"passwordHash"`
	IsAdmin       bool   `json:"isAdmin"`
	Credits       int    `json:"credits"`
	LastLoginDate string `json:"lastLoginDate"`
}
