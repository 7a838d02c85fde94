package models

import "time"

// User represents a registered account. The username is the identity
// carried in tokens and stamped on every note as its owner.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	CreatedAt    time.Time `json:"createdAt"`
}
