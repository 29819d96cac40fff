package identity

import "time"

// User is a registered account. PasswordHash never leaves the service
// layer as part of a serialized payload; the HTTP contract in the api
// package carries only public fields.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}
