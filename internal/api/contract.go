// Package api defines the JSON wire contract shared by the server handlers
// and the client. Every response carries a boolean status and a
// human-readable message so callers can render failures directly.
package api

import "time"

// Envelope is the base response shape for every endpoint.
type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
}

// ValidationFailure reports per-field validation errors.
type ValidationFailure struct {
	Status bool                `json:"status"`
	Errors map[string][]string `json:"errors"`
}

// LoginSuccess is returned by POST /login when credentials match.
type LoginSuccess struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// User is the public projection of an account. The password hash is never
// part of the contract.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileSuccess is returned by GET /profile.
type ProfileSuccess struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	User    User   `json:"user"`
}

// Product is a catalog entry owned by an authenticated user.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Cost        int64     `json:"cost"`
	BannerURL   string    `json:"banner_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductList is returned by GET /products.
type ProductList struct {
	Status   bool      `json:"status"`
	Products []Product `json:"products"`
}

// ProductSuccess is returned by product create/update calls.
type ProductSuccess struct {
	Status  bool    `json:"status"`
	Message string  `json:"message"`
	Product Product `json:"product"`
}
