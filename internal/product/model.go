package product

import "time"

// Product is a catalog entry managed by its owning user.
type Product struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Cost        int64
	BannerURL   string
	CreatedAt   time.Time
}

// Input carries the create/update form fields.
type Input struct {
	Title       string
	Description string
	Cost        int64
	BannerURL   string
}
