package entity

import "github.com/shopspring/decimal"

// TipoLinea distingue bienes de servicios.
type TipoLinea string

const (
	TipoBien     TipoLinea = "bien"
	TipoServicio TipoLinea = "servicio"
)

// Etiqueta texto para mostrar en los selectores.
func (t TipoLinea) Etiqueta() string {
	if t == TipoServicio {
		return "Servicio"
	}
	return "Bien"
}

// LineaDetalle es un producto o servicio de la cotización.
// Cantidad y PrecioUnitario conservan el texto capturado en el formulario;
// Total se deriva de ambos (ver cotizacion.Recalcular).
type LineaDetalle struct {
	Descripcion    string
	Cantidad       string
	PrecioUnitario string
	Total          decimal.Decimal
	Tipo           TipoLinea
}
