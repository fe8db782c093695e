package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cotizacion representa una propuesta de precios emitida a un cliente.
type Cotizacion struct {
	ID            int64
	ClienteID     int64
	Cliente       Cliente
	Productos     []LineaDetalle
	Total         decimal.Decimal
	Observaciones string
	Estado        Estado
	Fecha         time.Time
}

// FiltroCotizaciones criterios opcionales del historial. Las fechas van en
// formato AAAA-MM-DD tal como las envía el formulario.
type FiltroCotizaciones struct {
	ClienteNombre string
	Estado        string
	FechaDesde    string
	FechaHasta    string
}

// Vacio indica si no se aplicó ningún criterio.
func (f FiltroCotizaciones) Vacio() bool {
	return f.ClienteNombre == "" && f.Estado == "" && f.FechaDesde == "" && f.FechaHasta == ""
}
