package repository

import (
	"context"

	"github.com/jhoicas/cotizaciones-web/internal/domain/entity"
)

// CotizacionRepository define el puerto de persistencia para Cotizacion y su detalle.
type CotizacionRepository interface {
	// Create registra la cotización (ClienteID, Productos, Total, Observaciones)
	// y asigna el ID devuelto por el backend.
	Create(ctx context.Context, cotizacion *entity.Cotizacion) error
	// List devuelve las cotizaciones que el backend considera dentro del filtro.
	List(ctx context.Context, filtro entity.FiltroCotizaciones) ([]*entity.Cotizacion, error)
	// Update reemplaza productos, total y observaciones de la cotización ID.
	Update(ctx context.Context, cotizacion *entity.Cotizacion) error
	UpdateEstado(ctx context.Context, id int64, estado entity.Estado) error
	Delete(ctx context.Context, id int64) error
}
