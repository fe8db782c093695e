package ports

import (
	"context"
	"time"

	"github.com/jhoicas/cotizaciones-web/internal/domain/entity"
)

// PDFSource obtiene el PDF que genera el backend para una cotización.
// Un HTTP 400 del backend se reporta como domain.ErrCotizacionIncompleta.
type PDFSource interface {
	FetchPDF(ctx context.Context, cotizacionID int64) ([]byte, error)
}

// Documento archivo listo para descargar.
type Documento struct {
	Nombre    string
	Contenido []byte
}

// DocumentStore guarda temporalmente los PDF obtenidos al crear una cotización
// para que el navegador los descargue después de la redirección.
// Implementaciones: Redis o memoria; ambas deben ser seguras para uso concurrente.
type DocumentStore interface {
	Put(ctx context.Context, doc Documento, ttl time.Duration) (token string, err error)
	// Get devuelve domain.ErrNotFound si el token no existe o expiró.
	Get(ctx context.Context, token string) (*Documento, error)
}

// ReportGenerator genera el reporte PDF del historial filtrado.
type ReportGenerator interface {
	GenerateHistorialPDF(ctx context.Context, cotizaciones []*entity.Cotizacion, filtro entity.FiltroCotizaciones) ([]byte, error)
}
