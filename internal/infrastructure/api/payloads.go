package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizaciones-web/internal/domain/cotizacion"
	"github.com/jhoicas/cotizaciones-web/internal/domain/entity"
)

// ── Cuerpos enviados al backend ───────────────────────────────────────────────

type clienteRequest struct {
	Nombre string `json:"nombre"`
	NIT    string `json:"nit"`
}

type clienteCreadoResponse struct {
	ID int64 `json:"id"`
}

type productoPayload struct {
	Descripcion    string      `json:"descripcion"`
	Cantidad       json.Number `json:"cantidad"`
	PrecioUnitario json.Number `json:"precioUnitario"`
	Total          json.Number `json:"total"`
	Tipo           string      `json:"tipo"`
}

// cotizacionRequest cuerpo de POST /cotizaciones y PUT /cotizaciones/:id.
// Total viaja como texto con dos decimales.
type cotizacionRequest struct {
	ClienteID     int64             `json:"clienteId"`
	Productos     []productoPayload `json:"productos"`
	Total         string            `json:"total"`
	Observaciones string            `json:"observaciones"`
}

type cotizacionCreadaResponse struct {
	CotizacionID int64 `json:"cotizacionId"`
}

type estadoRequest struct {
	Estado string `json:"estado"`
}

func toCotizacionRequest(c *entity.Cotizacion) cotizacionRequest {
	productos := make([]productoPayload, 0, len(c.Productos))
	for _, p := range c.Productos {
		productos = append(productos, productoPayload{
			Descripcion:    p.Descripcion,
			Cantidad:       json.Number(cotizacion.ParseNumero(p.Cantidad).String()),
			PrecioUnitario: json.Number(cotizacion.ParseNumero(p.PrecioUnitario).String()),
			Total:          json.Number(p.Total.String()),
			Tipo:           string(p.Tipo),
		})
	}
	return cotizacionRequest{
		ClienteID:     c.ClienteID,
		Productos:     productos,
		Total:         cotizacion.FormatearTotal(c.Total),
		Observaciones: c.Observaciones,
	}
}

// ── Respuestas del listado ────────────────────────────────────────────────────

// numeroTexto acepta un número JSON o un string con un número y conserva su texto.
type numeroTexto string

func (n *numeroTexto) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = numeroTexto(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("número inválido %s: %w", string(b), err)
	}
	*n = numeroTexto(num.String())
	return nil
}

type clienteResponse struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	NIT    string `json:"nit"`
}

type detalleResponse struct {
	Descripcion    string          `json:"descripcion"`
	Cantidad       numeroTexto     `json:"cantidad"`
	PrecioUnitario numeroTexto     `json:"precioUnitario"`
	Total          decimal.Decimal `json:"total"`
	Tipo           string          `json:"tipo"`
}

type cotizacionResponse struct {
	ID            int64             `json:"id"`
	ClienteID     int64             `json:"clienteId"`
	Total         decimal.Decimal   `json:"total"`
	Observaciones *string           `json:"observaciones"`
	Estado        string            `json:"estado"`
	Fecha         string            `json:"fecha"`
	Cliente       clienteResponse   `json:"Cliente"`
	Detalles      []detalleResponse `json:"DetalleCotizacions"`
}

func (r cotizacionResponse) toEntity() *entity.Cotizacion {
	productos := make([]entity.LineaDetalle, 0, len(r.Detalles))
	for _, d := range r.Detalles {
		productos = append(productos, entity.LineaDetalle{
			Descripcion:    d.Descripcion,
			Cantidad:       string(d.Cantidad),
			PrecioUnitario: string(d.PrecioUnitario),
			Total:          d.Total,
			Tipo:           entity.TipoLinea(d.Tipo),
		})
	}
	clienteID := r.ClienteID
	if clienteID == 0 {
		clienteID = r.Cliente.ID
	}
	var obs string
	if r.Observaciones != nil {
		obs = *r.Observaciones
	}
	return &entity.Cotizacion{
		ID:            r.ID,
		ClienteID:     clienteID,
		Cliente:       entity.Cliente{ID: r.Cliente.ID, Nombre: r.Cliente.Nombre, NIT: r.Cliente.NIT},
		Productos:     productos,
		Total:         r.Total,
		Observaciones: obs,
		Estado:        entity.Estado(r.Estado),
		Fecha:         parseFecha(r.Fecha),
	}
}

var formatosFecha = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.000 -07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseFecha interpreta la fecha del backend; si no la reconoce devuelve el
// instante cero y la vista la muestra vacía.
func parseFecha(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range formatosFecha {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
