package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizaciones-web/internal/domain/cotizacion"
	"github.com/jhoicas/cotizaciones-web/internal/domain/entity"
)

// Acciones del formulario de cotización (valor del botón "accion").
const (
	accionAgregar    = "agregar"
	accionEliminar   = "eliminar"
	accionRecalcular = "recalcular"
	accionGuardar    = "guardar"
)

type accion struct {
	nombre string
	indice int // solo para eliminar
}

// leerAccion interpreta "agregar", "eliminar:<i>", "recalcular" o "guardar".
// Cualquier otro valor equivale a recalcular.
func leerAccion(v string) accion {
	nombre, arg, _ := strings.Cut(v, ":")
	switch nombre {
	case accionAgregar, accionGuardar:
		return accion{nombre: nombre}
	case accionEliminar:
		i, err := strconv.Atoi(arg)
		if err != nil {
			return accion{nombre: accionRecalcular}
		}
		return accion{nombre: accionEliminar, indice: i}
	}
	return accion{nombre: accionRecalcular}
}

// campoPost lee un campo del cuerpo del formulario. FormValue no sirve aquí
// porque busca primero en la query, donde viajan los filtros del historial.
func campoPost(c *fiber.Ctx, k string) string {
	return string(c.Request().PostArgs().Peek(k))
}

// leerBorrador reconstruye el borrador enviado por el formulario sobre base
// (modo e ID). Cada fila viaja con sus valores previos de cantidad y precio
// y con su total; el total solo se recalcula si alguno de los dos cambió.
func leerBorrador(c *fiber.Ctx, base cotizacion.Borrador) cotizacion.Borrador {
	args := c.Request().PostArgs()
	campo := func(k string) []string {
		vals := args.PeekMulti(k)
		out := make([]string, len(vals))
		for i, v := range vals {
			out[i] = string(v)
		}
		return out
	}
	en := func(vals []string, i int) string {
		if i < len(vals) {
			return vals[i]
		}
		return ""
	}

	b := base
	b.Cliente = entity.Cliente{
		Nombre: campoPost(c, "clienteNombre"),
		NIT:    campoPost(c, "clienteNit"),
	}
	if id, err := strconv.ParseInt(campoPost(c, "clienteId"), 10, 64); err == nil {
		b.Cliente.ID = id
	}
	b.Observaciones = campoPost(c, "observaciones")

	var (
		tipos       = campo("tipo")
		descripcion = campo("descripcion")
		cantidad    = campo("cantidad")
		cantPrev    = campo("cantidadPrev")
		precio      = campo("precioUnitario")
		precioPrev  = campo("precioPrev")
		totales     = campo("total")
	)
	b.Productos = make([]entity.LineaDetalle, len(descripcion))
	for i := range descripcion {
		total, err := decimal.NewFromString(en(totales, i))
		if err != nil {
			total = decimal.Zero
		}
		b.Productos[i] = entity.LineaDetalle{
			Descripcion:    descripcion[i],
			Cantidad:       en(cantPrev, i),
			PrecioUnitario: en(precioPrev, i),
			Total:          total,
		}
	}

	for i := range b.Productos {
		b, _ = b.ActualizarCampo(i, cotizacion.CampoTipo, en(tipos, i))
		if v := en(cantidad, i); v != en(cantPrev, i) {
			b, _ = b.ActualizarCampo(i, cotizacion.CampoCantidad, v)
		}
		if v := en(precio, i); v != en(precioPrev, i) {
			b, _ = b.ActualizarCampo(i, cotizacion.CampoPrecioUnitario, v)
		}
	}
	return b
}
