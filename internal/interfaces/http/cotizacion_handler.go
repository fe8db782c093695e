package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cotizaciones-web/internal/application/cotizaciones"
	"github.com/jhoicas/cotizaciones-web/internal/application/dto"
	"github.com/jhoicas/cotizaciones-web/internal/domain/cotizacion"
)

// CotizacionHandler formularios de creación y edición.
type CotizacionHandler struct {
	paginas
	crear  *cotizaciones.CrearCotizacionUseCase
	editar *cotizaciones.EditarCotizacionUseCase
}

// NewCotizacionHandler construye el handler.
func NewCotizacionHandler(p paginas, crear *cotizaciones.CrearCotizacionUseCase, editar *cotizaciones.EditarCotizacionUseCase) *CotizacionHandler {
	return &CotizacionHandler{paginas: p, crear: crear, editar: editar}
}

// NuevaForm muestra el formulario vacío.
// GET /nueva
func (h *CotizacionHandler) NuevaForm(c *fiber.Ctx) error {
	return h.formularioNueva(c, fiber.StatusOK, cotizacion.NuevoBorrador(), dto.Mensaje{})
}

// Nueva aplica la acción del formulario; "guardar" registra la cotización.
// POST /nueva
func (h *CotizacionHandler) Nueva(c *fiber.Ctx) error {
	b := leerBorrador(c, cotizacion.Borrador{Modo: cotizacion.ModoCreacion})

	acc := leerAccion(campoPost(c, "accion"))
	if acc.nombre != accionGuardar {
		return h.formularioNueva(c, fiber.StatusOK, aplicarAccion(b, acc), dto.Mensaje{})
	}

	res, err := h.crear.Guardar(c.UserContext(), b)
	if err != nil {
		msg, status := mensajeCreacion(err)
		return h.formularioNueva(c, status, b, msg)
	}
	return h.render(c, fiber.StatusOK, "resultado", resultadoPage{
		Base:        h.base(res.Mensaje),
		Resultado:   res,
		Redireccion: nuevaRedireccion(res.Redirigir, res.Espera),
	})
}

// EditarForm carga la cotización desde el backend.
// GET /editar/:id
func (h *CotizacionHandler) EditarForm(c *fiber.Ctx) error {
	b, err := h.editar.Cargar(c.UserContext(), c.Params("id"))
	if err != nil {
		msg, status := mensajeCarga(err)
		return h.render(c, status, "formulario", formularioPage{Base: h.base(msg), Edicion: true})
	}
	return h.formularioEditar(c, fiber.StatusOK, b, dto.Mensaje{}, nil)
}

// Editar aplica la acción del formulario; "guardar" envía la actualización.
// POST /editar/:id
func (h *CotizacionHandler) Editar(c *fiber.Ctx) error {
	id, err := cotizaciones.ParseID(c.Params("id"))
	if err != nil {
		msg, status := mensajeCarga(err)
		return h.render(c, status, "formulario", formularioPage{Base: h.base(msg), Edicion: true})
	}
	b := leerBorrador(c, cotizacion.Borrador{Modo: cotizacion.ModoEdicion, ID: id})

	acc := leerAccion(campoPost(c, "accion"))
	if acc.nombre != accionGuardar {
		return h.formularioEditar(c, fiber.StatusOK, aplicarAccion(b, acc), dto.Mensaje{}, nil)
	}

	res, err := h.editar.GuardarCambios(c.UserContext(), b)
	if err != nil {
		return h.formularioEditar(c, fiber.StatusBadGateway, b, dto.Error(cotizaciones.MsgErrorActualizar), nil)
	}
	return h.formularioEditar(c, fiber.StatusOK, b, res.Mensaje, nuevaRedireccion(res.Redirigir, res.Espera))
}

func (h *CotizacionHandler) formularioNueva(c *fiber.Ctx, status int, b cotizacion.Borrador, m dto.Mensaje) error {
	return h.render(c, status, "formulario", formularioPage{
		Base:     h.base(m),
		Accion:   "/nueva",
		Mostrar:  true,
		Borrador: b,
	})
}

func (h *CotizacionHandler) formularioEditar(c *fiber.Ctx, status int, b cotizacion.Borrador, m dto.Mensaje, r *Redireccion) error {
	return h.render(c, status, "formulario", formularioPage{
		Base:        h.base(m),
		Accion:      c.Path(),
		Edicion:     true,
		Mostrar:     true,
		Borrador:    b,
		Redireccion: r,
	})
}

// aplicarAccion agrega o elimina filas; recalcular ya quedó hecho al leer el
// formulario. Un índice inválido deja el borrador sin cambios.
func aplicarAccion(b cotizacion.Borrador, acc accion) cotizacion.Borrador {
	switch acc.nombre {
	case accionAgregar:
		return b.AgregarFila()
	case accionEliminar:
		if out, err := b.EliminarFila(acc.indice); err == nil {
			return out
		}
	}
	return b
}
