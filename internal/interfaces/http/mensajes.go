package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cotizaciones-web/internal/application/cotizaciones"
	"github.com/jhoicas/cotizaciones-web/internal/application/dto"
	"github.com/jhoicas/cotizaciones-web/internal/domain"
)

const (
	msgPaginaNoEncontrada = "❌ Página no encontrada"
	msgErrorInterno       = "❌ Ocurrió un error inesperado"
)

// Avisos que viajan en ?aviso= tras redirigir al historial.
const (
	avisoEstadoActualizado = "estado-actualizado"
	avisoErrorEstado       = "error-estado"
	avisoEliminada         = "eliminada"
	avisoErrorEliminar     = "error-eliminar"
	avisoPDFIncompleta     = "pdf-incompleta"
	avisoErrorPDF          = "error-pdf"
	avisoErrorExportar     = "error-exportar"
)

var avisos = map[string]dto.Mensaje{
	avisoEstadoActualizado: dto.Exito(cotizaciones.MsgEstadoActualizado),
	avisoErrorEstado:       dto.Error(cotizaciones.MsgErrorEstado),
	avisoEliminada:         dto.Exito(cotizaciones.MsgEliminada),
	avisoErrorEliminar:     dto.Error(cotizaciones.MsgErrorEliminar),
	avisoPDFIncompleta:     dto.Advertencia(cotizaciones.MsgPDFIncompleta),
	avisoErrorPDF:          dto.Error(cotizaciones.MsgErrorPDF),
	avisoErrorExportar:     dto.Error(cotizaciones.MsgErrorExportar),
}

// mensajeCreacion traduce el error de Guardar a mensaje y código HTTP.
func mensajeCreacion(err error) (dto.Mensaje, int) {
	switch {
	case errors.Is(err, domain.ErrClienteIncompleto):
		return dto.Error(cotizaciones.MsgClienteIncompleto), fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrProductosIncompletos):
		return dto.Error(cotizaciones.MsgProductosIncompletos), fiber.StatusUnprocessableEntity
	default:
		return dto.Error(cotizaciones.MsgErrorGuardar), fiber.StatusBadGateway
	}
}

// mensajeCarga traduce el error de Cargar.
func mensajeCarga(err error) (dto.Mensaje, int) {
	if errors.Is(err, domain.ErrNotFound) {
		return dto.Error(cotizaciones.MsgNoEncontrada), fiber.StatusNotFound
	}
	return dto.Error(cotizaciones.MsgErrorCargar), fiber.StatusBadGateway
}

// avisoPDF elige el aviso según el motivo del fallo del PDF.
func avisoPDF(err error) string {
	if errors.Is(err, domain.ErrCotizacionIncompleta) {
		return avisoPDFIncompleta
	}
	return avisoErrorPDF
}
