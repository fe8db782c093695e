package cotizaciones

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/cotizaciones-web/internal/application/dto"
	"github.com/jhoicas/cotizaciones-web/internal/domain"
	"github.com/jhoicas/cotizaciones-web/internal/domain/cotizacion"
	"github.com/jhoicas/cotizaciones-web/internal/domain/entity"
	"github.com/jhoicas/cotizaciones-web/internal/domain/repository"
	"github.com/jhoicas/cotizaciones-web/pkg/logger"
)

// EditarCotizacionUseCase carga y actualiza una cotización existente.
type EditarCotizacionUseCase struct {
	cotizaciones      repository.CotizacionRepository
	esperaRedireccion time.Duration
	log               *logger.Logger
}

// NewEditarCotizacionUseCase construye el caso de uso.
func NewEditarCotizacionUseCase(cotizaciones repository.CotizacionRepository, esperaRedireccion time.Duration, log *logger.Logger) *EditarCotizacionUseCase {
	return &EditarCotizacionUseCase{cotizaciones: cotizaciones, esperaRedireccion: esperaRedireccion, log: log}
}

// ParseID convierte el identificador de la ruta. Cualquier valor que no sea
// un entero se trata como inexistente.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

// Cargar obtiene el listado completo y localiza la cotización por ID.
// Retorna domain.ErrNotFound si no existe.
func (uc *EditarCotizacionUseCase) Cargar(ctx context.Context, idParam string) (cotizacion.Borrador, error) {
	id, err := ParseID(idParam)
	if err != nil {
		return cotizacion.Borrador{}, err
	}
	lista, err := uc.cotizaciones.List(ctx, entity.FiltroCotizaciones{})
	if err != nil {
		uc.log.Error().Err(err).Int64("cotizacion_id", id).Msg("cargar cotización")
		return cotizacion.Borrador{}, fmt.Errorf("listar cotizaciones: %w", err)
	}
	for _, c := range lista {
		if c.ID == id {
			return cotizacion.DesdeCotizacion(c), nil
		}
	}
	return cotizacion.Borrador{}, domain.ErrNotFound
}

// GuardarCambios recalcula el total a partir de las líneas actuales y envía
// la actualización con el cliente original.
func (uc *EditarCotizacionUseCase) GuardarCambios(ctx context.Context, b cotizacion.Borrador) (*dto.ResultadoEdicion, error) {
	cot := b.Cotizacion()
	if err := uc.cotizaciones.Update(ctx, cot); err != nil {
		uc.log.Error().Err(err).Int64("cotizacion_id", cot.ID).Msg("actualizar cotización")
		return nil, fmt.Errorf("actualizar cotización: %w", err)
	}
	return &dto.ResultadoEdicion{
		Total:     cotizacion.FormatearTotal(cot.Total),
		Mensaje:   dto.Exito(MsgActualizada),
		Redirigir: RutaHistorial,
		Espera:    uc.esperaRedireccion,
	}, nil
}
