package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cotizaciones-web/internal/application/cotizaciones"
	"github.com/jhoicas/cotizaciones-web/internal/interfaces/http/view"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	Vista     *view.Renderer
	Crear     *cotizaciones.CrearCotizacionUseCase
	Editar    *cotizaciones.EditarCotizacionUseCase
	Historial *cotizaciones.HistorialUseCase
	Descarga  *cotizaciones.DescargaUseCase
}

// Router registra las rutas de la aplicación.
func Router(app *fiber.App, deps RouterDeps) {
	p := paginas{vista: deps.Vista, app: deps.AppName}

	app.Get("/", p.Home)

	cotizacionHandler := NewCotizacionHandler(p, deps.Crear, deps.Editar)
	app.Get("/nueva", cotizacionHandler.NuevaForm)
	app.Post("/nueva", cotizacionHandler.Nueva)
	app.Get("/editar/:id", cotizacionHandler.EditarForm)
	app.Post("/editar/:id", cotizacionHandler.Editar)

	historial := app.Group("/historial")
	historialHandler := NewHistorialHandler(p, deps.Historial)
	historial.Get("/", historialHandler.List)
	historial.Get("/exportar", historialHandler.Exportar)
	historial.Post("/:id/estado", historialHandler.CambiarEstado)
	historial.Get("/:id/eliminar", historialHandler.ConfirmarEliminar)
	historial.Post("/:id/eliminar", historialHandler.Eliminar)
	historial.Get("/:id/pdf", historialHandler.PDF)

	descargaHandler := NewDescargaHandler(p, deps.Descarga)
	app.Get("/descargas/:token", descargaHandler.Get)
}
