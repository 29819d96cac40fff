package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openshelf/openshelf/internal/product"
)

// RegisterProductRoutes wires the product CRUD endpoints behind the bearer
// middleware.
func RegisterProductRoutes(r fiber.Router, h *product.Handler, bearer fiber.Handler) {
	group := r.Group("/products", bearer)
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Put("/:productId", h.Update)
	group.Delete("/:productId", h.Delete)
}
