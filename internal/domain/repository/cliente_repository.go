package repository

import (
	"context"

	"github.com/jhoicas/cotizaciones-web/internal/domain/entity"
)

// ClienteRepository define el puerto de persistencia para Cliente.
type ClienteRepository interface {
	// Create registra el cliente y asigna el ID devuelto por el backend.
	Create(ctx context.Context, cliente *entity.Cliente) error
}
