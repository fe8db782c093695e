package http

import (
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cotizaciones-web/internal/application/cotizaciones"
	"github.com/jhoicas/cotizaciones-web/internal/application/dto"
)

// HistorialHandler listado, estado, eliminación y PDF.
// Las acciones redirigen al historial conservando los filtros y un aviso.
type HistorialHandler struct {
	paginas
	uc *cotizaciones.HistorialUseCase
}

// NewHistorialHandler construye el handler.
func NewHistorialHandler(p paginas, uc *cotizaciones.HistorialUseCase) *HistorialHandler {
	return &HistorialHandler{paginas: p, uc: uc}
}

// List consulta el backend con los filtros de la URL.
// GET /historial
func (h *HistorialHandler) List(c *fiber.Ctx) error {
	filtro := filtroDesdeQuery(c)
	page := historialPage{
		Base:   h.base(avisos[c.Query("aviso")]),
		Filtro: filtro,
		Query:  template.URL(queryFiltro(filtro).Encode()),
	}
	lista, err := h.uc.Listar(c.UserContext(), filtro)
	if err != nil {
		page.Mensaje = dto.Error(cotizaciones.MsgErrorListar)
		return h.render(c, fiber.StatusBadGateway, "historial", page)
	}
	page.Cotizaciones = lista
	return h.render(c, fiber.StatusOK, "historial", page)
}

// CambiarEstado POST /historial/:id/estado
func (h *HistorialHandler) CambiarEstado(c *fiber.Ctx) error {
	id, err := cotizaciones.ParseID(c.Params("id"))
	if err == nil {
		err = h.uc.CambiarEstado(c.UserContext(), id, campoPost(c, "estado"))
	}
	if err != nil {
		return h.volver(c, avisoErrorEstado)
	}
	return h.volver(c, avisoEstadoActualizado)
}

// ConfirmarEliminar pide confirmación antes de borrar.
// GET /historial/:id/eliminar
func (h *HistorialHandler) ConfirmarEliminar(c *fiber.Ctx) error {
	id, err := cotizaciones.ParseID(c.Params("id"))
	if err != nil {
		return h.volver(c, avisoErrorEliminar)
	}
	return h.render(c, fiber.StatusOK, "confirmar_eliminar", confirmarPage{
		Base:     h.base(dto.Mensaje{}),
		ID:       id,
		Pregunta: cotizaciones.MsgConfirmarEliminar,
		Query:    template.URL(queryFiltro(filtroDesdeQuery(c)).Encode()),
	})
}

// Eliminar borra solo con confirmar=si.
// POST /historial/:id/eliminar
func (h *HistorialHandler) Eliminar(c *fiber.Ctx) error {
	id, err := cotizaciones.ParseID(c.Params("id"))
	if err != nil {
		return h.volver(c, avisoErrorEliminar)
	}
	eliminada, err := h.uc.Eliminar(c.UserContext(), id, campoPost(c, "confirmar") == "si")
	switch {
	case err != nil:
		return h.volver(c, avisoErrorEliminar)
	case !eliminada:
		return h.volver(c, "")
	}
	return h.volver(c, avisoEliminada)
}

// PDF descarga el PDF que genera el backend.
// GET /historial/:id/pdf?cliente=<nombre>
func (h *HistorialHandler) PDF(c *fiber.Ctx) error {
	id, err := cotizaciones.ParseID(c.Params("id"))
	if err != nil {
		return h.volver(c, avisoErrorPDF)
	}
	archivo, err := h.uc.DescargarPDF(c.UserContext(), id, c.Query("cliente"))
	if err != nil {
		return h.volver(c, avisoPDF(err))
	}
	return enviarPDF(c, archivo)
}

// Exportar genera el reporte PDF del historial filtrado.
// GET /historial/exportar
func (h *HistorialHandler) Exportar(c *fiber.Ctx) error {
	archivo, err := h.uc.ExportarPDF(c.UserContext(), filtroDesdeQuery(c))
	if err != nil {
		return h.volver(c, avisoErrorExportar)
	}
	return enviarPDF(c, archivo)
}

// volver redirige al historial con los filtros actuales y el aviso indicado.
func (h *HistorialHandler) volver(c *fiber.Ctx, aviso string) error {
	q := queryFiltro(filtroDesdeQuery(c))
	if aviso != "" {
		q.Set("aviso", aviso)
	}
	destino := cotizaciones.RutaHistorial
	if len(q) > 0 {
		destino += "?" + q.Encode()
	}
	return c.Redirect(destino, fiber.StatusSeeOther)
}

