package cotizaciones_test

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/cotizaciones-web/internal/application/ports"
	"github.com/jhoicas/cotizaciones-web/internal/domain"
	"github.com/jhoicas/cotizaciones-web/internal/domain/entity"
)

var errRed = errors.New("conexión rechazada")

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba de los puertos
// ──────────────────────────────────────────────────────────────────────────────

type fakeClientes struct {
	nextID  int64
	err     error
	creados []entity.Cliente
}

func (f *fakeClientes) Create(_ context.Context, c *entity.Cliente) error {
	if f.err != nil {
		return f.err
	}
	c.ID = f.nextID
	f.creados = append(f.creados, *c)
	return nil
}

type fakeCotizaciones struct {
	nextID  int64
	lista   []*entity.Cotizacion
	filtros []entity.FiltroCotizaciones

	createErr, listErr, updateErr, estadoErr, deleteErr error

	creadas      []entity.Cotizacion
	actualizadas []entity.Cotizacion
	estados      map[int64]entity.Estado
	eliminadas   []int64
}

func (f *fakeCotizaciones) Create(_ context.Context, c *entity.Cotizacion) error {
	if f.createErr != nil {
		return f.createErr
	}
	c.ID = f.nextID
	f.creadas = append(f.creadas, *c)
	return nil
}

func (f *fakeCotizaciones) List(_ context.Context, filtro entity.FiltroCotizaciones) ([]*entity.Cotizacion, error) {
	f.filtros = append(f.filtros, filtro)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lista, nil
}

func (f *fakeCotizaciones) Update(_ context.Context, c *entity.Cotizacion) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.actualizadas = append(f.actualizadas, *c)
	return nil
}

func (f *fakeCotizaciones) UpdateEstado(_ context.Context, id int64, e entity.Estado) error {
	if f.estadoErr != nil {
		return f.estadoErr
	}
	if f.estados == nil {
		f.estados = map[int64]entity.Estado{}
	}
	f.estados[id] = e
	return nil
}

func (f *fakeCotizaciones) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.eliminadas = append(f.eliminadas, id)
	return nil
}

func (f *fakeCotizaciones) llamadas() int {
	return len(f.creadas) + len(f.actualizadas) + len(f.estados) + len(f.eliminadas) + len(f.filtros)
}

// fakePDF responde en orden con los errores de respuestas; al agotarse
// devuelve contenido.
type fakePDF struct {
	respuestas []error
	contenido  []byte
	pedidos    []int64
}

func (f *fakePDF) FetchPDF(_ context.Context, id int64) ([]byte, error) {
	f.pedidos = append(f.pedidos, id)
	if n := len(f.pedidos); n <= len(f.respuestas) && f.respuestas[n-1] != nil {
		return nil, f.respuestas[n-1]
	}
	return f.contenido, nil
}

type fakeStore struct {
	err  error
	docs map[string]ports.Documento
	ttl  time.Duration
}

func (f *fakeStore) Put(_ context.Context, doc ports.Documento, ttl time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.docs == nil {
		f.docs = map[string]ports.Documento{}
	}
	f.ttl = ttl
	f.docs["tok-1"] = doc
	return "tok-1", nil
}

func (f *fakeStore) Get(_ context.Context, token string) (*ports.Documento, error) {
	doc, ok := f.docs[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

type fakeReporte struct {
	err   error
	lista []*entity.Cotizacion
}

func (f *fakeReporte) GenerateHistorialPDF(_ context.Context, lista []*entity.Cotizacion, _ entity.FiltroCotizaciones) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lista = lista
	return []byte("%PDF-1.3 reporte"), nil
}
