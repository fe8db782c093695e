package cotizaciones

import (
	"context"

	"github.com/jhoicas/cotizaciones-web/internal/application/dto"
	"github.com/jhoicas/cotizaciones-web/internal/application/ports"
)

// DescargaUseCase entrega los PDF guardados durante la creación.
type DescargaUseCase struct {
	store ports.DocumentStore
}

// NewDescargaUseCase construye el caso de uso.
func NewDescargaUseCase(store ports.DocumentStore) *DescargaUseCase {
	return &DescargaUseCase{store: store}
}

// Obtener devuelve domain.ErrNotFound si el token no existe o expiró.
func (uc *DescargaUseCase) Obtener(ctx context.Context, token string) (*dto.ArchivoPDF, error) {
	doc, err := uc.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	return &dto.ArchivoPDF{Nombre: doc.Nombre, Contenido: doc.Contenido}, nil
}
