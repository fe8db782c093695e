package cotizacion

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizaciones-web/internal/domain/entity"
)

// Modo determina los valores por defecto de las filas nuevas.
type Modo int

const (
	// ModoCreacion: filas nuevas con cantidad y precio vacíos.
	ModoCreacion Modo = iota
	// ModoEdicion: filas nuevas con cantidad 1 y precio 0.
	ModoEdicion
)

// Campo identifica el campo editable de una línea.
type Campo string

const (
	CampoDescripcion    Campo = "descripcion"
	CampoCantidad       Campo = "cantidad"
	CampoPrecioUnitario Campo = "precioUnitario"
	CampoTipo           Campo = "tipo"
)

// NuevaLinea devuelve una fila vacía según el modo.
func NuevaLinea(modo Modo) entity.LineaDetalle {
	l := entity.LineaDetalle{Tipo: entity.TipoBien, Total: decimal.Zero}
	if modo == ModoEdicion {
		l.Cantidad = "1"
		l.PrecioUnitario = "0"
	}
	return l
}

// Recalcular fija Total = cantidad * precio unitario.
func Recalcular(l entity.LineaDetalle) entity.LineaDetalle {
	l.Total = ParseNumero(l.Cantidad).Mul(ParseNumero(l.PrecioUnitario))
	return l
}

// TotalGeneral suma los totales de las líneas.
func TotalGeneral(lineas []entity.LineaDetalle) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lineas {
		total = total.Add(l.Total)
	}
	return total
}

// FormatearTotal representa un monto con exactamente dos decimales, tal como
// se transmite al backend.
func FormatearTotal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func normalizarTipo(valor string) entity.TipoLinea {
	if entity.TipoLinea(valor) == entity.TipoServicio {
		return entity.TipoServicio
	}
	return entity.TipoBien
}
