package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cotizaciones-web/internal/application/cotizaciones"
	"github.com/jhoicas/cotizaciones-web/internal/application/dto"
	"github.com/jhoicas/cotizaciones-web/internal/domain"
)

// DescargaHandler entrega los PDF retenidos tras crear una cotización.
type DescargaHandler struct {
	paginas
	uc *cotizaciones.DescargaUseCase
}

// NewDescargaHandler construye el handler.
func NewDescargaHandler(p paginas, uc *cotizaciones.DescargaUseCase) *DescargaHandler {
	return &DescargaHandler{paginas: p, uc: uc}
}

// Get GET /descargas/:token
func (h *DescargaHandler) Get(c *fiber.Ctx) error {
	archivo, err := h.uc.Obtener(c.UserContext(), c.Params("token"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.aviso(c, fiber.StatusNotFound, dto.Advertencia(cotizaciones.MsgDescargaExpirada))
		}
		return err
	}
	return enviarPDF(c, archivo)
}
