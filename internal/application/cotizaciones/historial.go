package cotizaciones

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/cotizaciones-web/internal/application/dto"
	"github.com/jhoicas/cotizaciones-web/internal/application/ports"
	"github.com/jhoicas/cotizaciones-web/internal/domain"
	"github.com/jhoicas/cotizaciones-web/internal/domain/cotizacion"
	"github.com/jhoicas/cotizaciones-web/internal/domain/entity"
	"github.com/jhoicas/cotizaciones-web/internal/domain/repository"
	"github.com/jhoicas/cotizaciones-web/pkg/logger"
)

// HistorialUseCase listado, cambio de estado, eliminación y PDF de cotizaciones.
type HistorialUseCase struct {
	cotizaciones repository.CotizacionRepository
	pdf          ports.PDFSource
	reporte      ports.ReportGenerator
	log          *logger.Logger
	now          func() time.Time
}

// NewHistorialUseCase construye el caso de uso.
func NewHistorialUseCase(
	cotizaciones repository.CotizacionRepository,
	pdf ports.PDFSource,
	reporte ports.ReportGenerator,
	log *logger.Logger,
) *HistorialUseCase {
	return &HistorialUseCase{cotizaciones: cotizaciones, pdf: pdf, reporte: reporte, log: log, now: time.Now}
}

// Listar delega el filtrado al backend; el resultado no se vuelve a filtrar.
func (uc *HistorialUseCase) Listar(ctx context.Context, filtro entity.FiltroCotizaciones) ([]*entity.Cotizacion, error) {
	lista, err := uc.cotizaciones.List(ctx, filtro)
	if err != nil {
		uc.log.Error().Err(err).Msg("listar cotizaciones")
		return nil, fmt.Errorf("listar cotizaciones: %w", err)
	}
	return lista, nil
}

// CambiarEstado envía el nuevo estado. Un estado desconocido se rechaza sin
// llamar al backend.
func (uc *HistorialUseCase) CambiarEstado(ctx context.Context, id int64, estado string) error {
	e := entity.Estado(estado)
	if !e.Valido() {
		return domain.ErrInvalidInput
	}
	if err := uc.cotizaciones.UpdateEstado(ctx, id, e); err != nil {
		uc.log.Error().Err(err).Int64("cotizacion_id", id).Str("estado", estado).Msg("actualizar estado")
		return fmt.Errorf("actualizar estado: %w", err)
	}
	return nil
}

// Eliminar borra la cotización solo si el usuario confirmó. Devuelve false
// sin tocar el backend cuando no hay confirmación.
func (uc *HistorialUseCase) Eliminar(ctx context.Context, id int64, confirmado bool) (bool, error) {
	if !confirmado {
		return false, nil
	}
	if err := uc.cotizaciones.Delete(ctx, id); err != nil {
		uc.log.Error().Err(err).Int64("cotizacion_id", id).Msg("eliminar cotización")
		return false, fmt.Errorf("eliminar cotización: %w", err)
	}
	return true, nil
}

// DescargarPDF obtiene el PDF generado por el backend.
// Un 400 llega como domain.ErrCotizacionIncompleta.
func (uc *HistorialUseCase) DescargarPDF(ctx context.Context, id int64, nombreCliente string) (*dto.ArchivoPDF, error) {
	contenido, err := uc.pdf.FetchPDF(ctx, id)
	if err != nil {
		uc.log.Error().Err(err).Int64("cotizacion_id", id).Msg("descargar PDF")
		return nil, fmt.Errorf("descargar PDF: %w", err)
	}
	return &dto.ArchivoPDF{Nombre: cotizacion.NombreArchivoPDF(nombreCliente), Contenido: contenido}, nil
}

// ExportarPDF genera localmente el reporte del historial con el mismo filtro
// que usa el listado.
func (uc *HistorialUseCase) ExportarPDF(ctx context.Context, filtro entity.FiltroCotizaciones) (*dto.ArchivoPDF, error) {
	lista, err := uc.Listar(ctx, filtro)
	if err != nil {
		return nil, err
	}
	contenido, err := uc.reporte.GenerateHistorialPDF(ctx, lista, filtro)
	if err != nil {
		uc.log.Error().Err(err).Msg("generar reporte del historial")
		return nil, fmt.Errorf("generar reporte: %w", err)
	}
	nombre := fmt.Sprintf("historial-cotizaciones-%s.pdf", uc.now().Format("2006-01-02"))
	return &dto.ArchivoPDF{Nombre: nombre, Contenido: contenido}, nil
}
