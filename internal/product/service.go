package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInput is returned for missing titles or negative costs.
var ErrInvalidInput = errors.New("invalid product input")

// Service manages the product catalog of each user.
type Service struct {
	repo Repository
}

// NewService creates a product service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validate(in Input) error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrInvalidInput
	}
	if in.Cost < 0 {
		return ErrInvalidInput
	}
	return nil
}

// Create adds a product owned by the given user.
func (s *Service) Create(ctx context.Context, ownerID string, in Input) (Product, error) {
	if err := validate(in); err != nil {
		return Product{}, err
	}
	p := Product{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Cost:        in.Cost,
		BannerURL:   in.BannerURL,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// List returns the owner's products.
func (s *Service) List(ctx context.Context, ownerID string) ([]Product, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Update rewrites a product's fields, keeping id and ownership.
func (s *Service) Update(ctx context.Context, ownerID, id string, in Input) (Product, error) {
	if err := validate(in); err != nil {
		return Product{}, err
	}
	existing, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return Product{}, err
	}
	existing.Title = in.Title
	existing.Description = in.Description
	existing.Cost = in.Cost
	existing.BannerURL = in.BannerURL
	if err := s.repo.Update(ctx, existing); err != nil {
		return Product{}, err
	}
	return existing, nil
}

// Delete removes a product owned by the given user.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, ownerID, id)
}
