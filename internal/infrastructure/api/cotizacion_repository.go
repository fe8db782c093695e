package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/cotizaciones-web/internal/application/ports"
	"github.com/jhoicas/cotizaciones-web/internal/domain"
	"github.com/jhoicas/cotizaciones-web/internal/domain/entity"
	"github.com/jhoicas/cotizaciones-web/internal/domain/repository"
)

var (
	_ repository.CotizacionRepository = (*CotizacionRepository)(nil)
	_ ports.PDFSource                 = (*CotizacionRepository)(nil)
)

// CotizacionRepository implementa repository.CotizacionRepository y
// ports.PDFSource sobre el backend.
type CotizacionRepository struct {
	c *Client
}

// NewCotizacionRepository construye el repositorio.
func NewCotizacionRepository(c *Client) *CotizacionRepository {
	return &CotizacionRepository{c: c}
}

// Create POST /cotizaciones.
func (r *CotizacionRepository) Create(ctx context.Context, cot *entity.Cotizacion) error {
	var out cotizacionCreadaResponse
	if err := r.c.doJSON(ctx, http.MethodPost, "/cotizaciones", nil, toCotizacionRequest(cot), &out); err != nil {
		return err
	}
	if out.CotizacionID == 0 {
		return fmt.Errorf("api: POST /cotizaciones no devolvió cotizacionId: %w", domain.ErrBackend)
	}
	cot.ID = out.CotizacionID
	return nil
}

// List GET /cotizaciones con los filtros no vacíos como query string.
func (r *CotizacionRepository) List(ctx context.Context, filtro entity.FiltroCotizaciones) ([]*entity.Cotizacion, error) {
	var out []cotizacionResponse
	if err := r.c.doJSON(ctx, http.MethodGet, "/cotizaciones", filtroQuery(filtro), nil, &out); err != nil {
		return nil, err
	}
	lista := make([]*entity.Cotizacion, 0, len(out))
	for _, c := range out {
		lista = append(lista, c.toEntity())
	}
	return lista, nil
}

// Update PUT /cotizaciones/:id.
func (r *CotizacionRepository) Update(ctx context.Context, cot *entity.Cotizacion) error {
	return r.c.doJSON(ctx, http.MethodPut, "/cotizaciones/"+id(cot.ID), nil, toCotizacionRequest(cot), nil)
}

// UpdateEstado PUT /cotizaciones/estado/:id.
func (r *CotizacionRepository) UpdateEstado(ctx context.Context, cotizacionID int64, estado entity.Estado) error {
	return r.c.doJSON(ctx, http.MethodPut, "/cotizaciones/estado/"+id(cotizacionID), nil, estadoRequest{Estado: string(estado)}, nil)
}

// Delete DELETE /cotizaciones/:id.
func (r *CotizacionRepository) Delete(ctx context.Context, cotizacionID int64) error {
	return r.c.doJSON(ctx, http.MethodDelete, "/cotizaciones/"+id(cotizacionID), nil, nil, nil)
}

// FetchPDF GET /cotizaciones/pdf/:id. Un 400 indica que la cotización está
// incompleta y se reporta como domain.ErrCotizacionIncompleta.
func (r *CotizacionRepository) FetchPDF(ctx context.Context, cotizacionID int64) ([]byte, error) {
	raw, err := r.c.do(ctx, http.MethodGet, "/cotizaciones/pdf/"+id(cotizacionID), nil, nil, "application/pdf", maxPDFBody)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %w", domain.ErrCotizacionIncompleta, err)
		}
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("api: PDF vacío para cotización %d: %w", cotizacionID, domain.ErrBackend)
	}
	return raw, nil
}

func filtroQuery(f entity.FiltroCotizaciones) url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("clienteNombre", f.ClienteNombre)
	set("estado", f.Estado)
	set("fechaDesde", f.FechaDesde)
	set("fechaHasta", f.FechaHasta)
	return q
}

func id(n int64) string { return strconv.FormatInt(n, 10) }
