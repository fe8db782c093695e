package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/cotizaciones-web/internal/domain"
	"github.com/jhoicas/cotizaciones-web/internal/domain/entity"
	"github.com/jhoicas/cotizaciones-web/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepository)(nil)

// ClienteRepository implementa repository.ClienteRepository sobre el backend.
type ClienteRepository struct {
	c *Client
}

// NewClienteRepository construye el repositorio.
func NewClienteRepository(c *Client) *ClienteRepository {
	return &ClienteRepository{c: c}
}

// Create POST /clientes.
func (r *ClienteRepository) Create(ctx context.Context, cliente *entity.Cliente) error {
	var out clienteCreadoResponse
	in := clienteRequest{Nombre: cliente.Nombre, NIT: cliente.NIT}
	if err := r.c.doJSON(ctx, http.MethodPost, "/clientes", nil, in, &out); err != nil {
		return err
	}
	if out.ID == 0 {
		return fmt.Errorf("api: POST /clientes no devolvió id: %w", domain.ErrBackend)
	}
	cliente.ID = out.ID
	return nil
}
