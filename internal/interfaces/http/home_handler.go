package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cotizaciones-web/internal/application/dto"
)

// Home GET /
func (p paginas) Home(c *fiber.Ctx) error {
	return p.render(c, fiber.StatusOK, "home", p.base(dto.Mensaje{}))
}
