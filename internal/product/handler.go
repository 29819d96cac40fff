package product

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/openshelf/openshelf/internal/api"
	"github.com/openshelf/openshelf/internal/auth"
)

// Handler exposes product CRUD endpoints. All routes sit behind the bearer
// middleware; the owner is always the authenticated user.
type Handler struct {
	service *Service
}

// NewHandler builds a product HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type productRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Cost        int64  `json:"cost"`
	BannerURL   string `json:"banner_url"`
}

func toAPI(p Product) api.Product {
	return api.Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Cost:        p.Cost,
		BannerURL:   p.BannerURL,
		CreatedAt:   p.CreatedAt,
	}
}

// List returns the authenticated user's products.
func (h *Handler) List(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	products, err := h.service.List(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	out := make([]api.Product, 0, len(products))
	for _, p := range products {
		out = append(out, toAPI(p))
	}
	return c.Status(http.StatusOK).JSON(api.ProductList{Status: true, Products: out})
}

// Create adds a product.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed request body")
	}
	user, _ := auth.CurrentUser(c)
	p, err := h.service.Create(c.UserContext(), user.ID, Input(req))
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return c.Status(http.StatusUnprocessableEntity).JSON(api.Envelope{Status: false, Message: "Invalid product input"})
		}
		return err
	}
	return c.Status(http.StatusCreated).JSON(api.ProductSuccess{Status: true, Message: "Product created successfully", Product: toAPI(p)})
}

// Update rewrites an existing product.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed request body")
	}
	user, _ := auth.CurrentUser(c)
	p, err := h.service.Update(c.UserContext(), user.ID, c.Params("productId"), Input(req))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			return c.Status(http.StatusUnprocessableEntity).JSON(api.Envelope{Status: false, Message: "Invalid product input"})
		case errors.Is(err, ErrNotFound):
			return c.Status(http.StatusNotFound).JSON(api.Envelope{Status: false, Message: "Product not found"})
		}
		return err
	}
	return c.Status(http.StatusOK).JSON(api.ProductSuccess{Status: true, Message: "Product updated successfully", Product: toAPI(p)})
}

// Delete removes a product.
func (h *Handler) Delete(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	if err := h.service.Delete(c.UserContext(), user.ID, c.Params("productId")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(api.Envelope{Status: false, Message: "Product not found"})
		}
		return err
	}
	return c.Status(http.StatusOK).JSON(api.Envelope{Status: true, Message: "Product deleted successfully"})
}
