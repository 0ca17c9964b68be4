// Package models contains the persisted entities of the fincoach server.
package models

import "time"

// User is an account identified by a unique email. PasswordHash is a bcrypt
// hash; the raw password is never persisted. Federated accounts carry a hash
// of random material that cannot be used to log in with a password.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
