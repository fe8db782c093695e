// Package cotizacion contiene el modelo de líneas de una cotización y sus
// totales derivados.
//
// Borrador es el agregado editable que posee una sola vista. Cada operación
// devuelve un Borrador nuevo con su propia copia de las líneas; nada se
// modifica en el lugar.
package cotizacion

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizaciones-web/internal/domain"
	"github.com/jhoicas/cotizaciones-web/internal/domain/entity"
)

// Borrador estado editable de una cotización dentro de un formulario.
type Borrador struct {
	Modo          Modo
	ID            int64 // solo en edición
	Cliente       entity.Cliente
	Observaciones string
	Productos     []entity.LineaDetalle
}

// NuevoBorrador crea el estado inicial del formulario de creación: cliente
// vacío y una fila en blanco.
func NuevoBorrador() Borrador {
	return Borrador{
		Modo:      ModoCreacion,
		Productos: []entity.LineaDetalle{NuevaLinea(ModoCreacion)},
	}
}

// DesdeCotizacion arma el borrador de edición a partir de la cotización del
// backend. Los campos numéricos se normalizan a su representación decimal.
func DesdeCotizacion(c *entity.Cotizacion) Borrador {
	productos := make([]entity.LineaDetalle, 0, len(c.Productos))
	for _, p := range c.Productos {
		p.Cantidad = ParseNumero(p.Cantidad).String()
		p.PrecioUnitario = ParseNumero(p.PrecioUnitario).String()
		if p.Tipo == "" {
			p.Tipo = entity.TipoBien
		}
		productos = append(productos, p)
	}
	clienteID := c.ClienteID
	if clienteID == 0 {
		clienteID = c.Cliente.ID
	}
	return Borrador{
		Modo:          ModoEdicion,
		ID:            c.ID,
		Cliente:       entity.Cliente{ID: clienteID, Nombre: c.Cliente.Nombre, NIT: c.Cliente.NIT},
		Observaciones: c.Observaciones,
		Productos:     productos,
	}
}

func (b Borrador) clonar() Borrador {
	b.Productos = append([]entity.LineaDetalle(nil), b.Productos...)
	return b
}

// AgregarFila agrega una fila vacía al final.
func (b Borrador) AgregarFila() Borrador {
	out := b.clonar()
	out.Productos = append(out.Productos, NuevaLinea(b.Modo))
	return out
}

// EliminarFila quita la fila i. La colección puede quedar vacía.
func (b Borrador) EliminarFila(i int) (Borrador, error) {
	if i < 0 || i >= len(b.Productos) {
		return b, domain.ErrInvalidInput
	}
	out := b.clonar()
	out.Productos = append(out.Productos[:i], out.Productos[i+1:]...)
	return out, nil
}

// ActualizarCampo cambia un campo de la fila i. Solo cantidad y precio
// disparan el recálculo del total de la línea.
func (b Borrador) ActualizarCampo(i int, campo Campo, valor string) (Borrador, error) {
	if i < 0 || i >= len(b.Productos) {
		return b, domain.ErrInvalidInput
	}
	out := b.clonar()
	l := out.Productos[i]
	switch campo {
	case CampoDescripcion:
		l.Descripcion = valor
	case CampoTipo:
		l.Tipo = normalizarTipo(valor)
	case CampoCantidad, CampoPrecioUnitario:
		if b.Modo == ModoEdicion {
			valor = ParseNumero(valor).String()
		}
		if campo == CampoCantidad {
			l.Cantidad = valor
		} else {
			l.PrecioUnitario = valor
		}
		l = Recalcular(l)
	default:
		return b, domain.ErrInvalidInput
	}
	out.Productos[i] = l
	return out, nil
}

// TotalGeneral suma de los totales de línea.
func (b Borrador) TotalGeneral() decimal.Decimal {
	return TotalGeneral(b.Productos)
}

// TotalFormateado total general con dos decimales.
func (b Borrador) TotalFormateado() string {
	return FormatearTotal(b.TotalGeneral())
}

// ValidarCreacion exige nombre y NIT del cliente, al menos una fila, y
// descripción, cantidad y precio en cada fila. No valida rangos.
func (b Borrador) ValidarCreacion() error {
	if b.Cliente.Nombre == "" || b.Cliente.NIT == "" {
		return domain.ErrClienteIncompleto
	}
	if len(b.Productos) == 0 {
		return domain.ErrProductosIncompletos
	}
	for _, p := range b.Productos {
		if p.Descripcion == "" || p.Cantidad == "" || p.PrecioUnitario == "" {
			return domain.ErrProductosIncompletos
		}
	}
	return nil
}

// Cotizacion arma la entidad a enviar al backend con el total recalculado.
func (b Borrador) Cotizacion() *entity.Cotizacion {
	return &entity.Cotizacion{
		ID:            b.ID,
		ClienteID:     b.Cliente.ID,
		Cliente:       b.Cliente,
		Productos:     append([]entity.LineaDetalle(nil), b.Productos...),
		Total:         b.TotalGeneral(),
		Observaciones: b.Observaciones,
	}
}

// NombreArchivoPDF nombre de descarga: cotizacion-<cliente>.pdf con cada
// secuencia de espacios reemplazada por un guion bajo.
func NombreArchivoPDF(nombreCliente string) string {
	var sb strings.Builder
	enEspacio := false
	for _, r := range nombreCliente {
		if unicode.IsSpace(r) {
			if !enEspacio {
				sb.WriteByte('_')
			}
			enEspacio = true
			continue
		}
		enEspacio = false
		sb.WriteRune(r)
	}
	return "cotizacion-" + sb.String() + ".pdf"
}
