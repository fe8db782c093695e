package http

import (
	"html/template"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cotizaciones-web/internal/application/dto"
	"github.com/jhoicas/cotizaciones-web/internal/domain/cotizacion"
	"github.com/jhoicas/cotizaciones-web/internal/domain/entity"
	"github.com/jhoicas/cotizaciones-web/internal/interfaces/http/view"
)

// Base datos comunes al layout.
type Base struct {
	App     string
	Mensaje dto.Mensaje
}

// Redireccion navegación diferida tras mostrar un resultado.
type Redireccion struct {
	URL          string
	Milisegundos int64
	Segundos     int64 // redondeado hacia arriba, para <meta refresh>
}

func nuevaRedireccion(url string, espera time.Duration) *Redireccion {
	ms := espera.Milliseconds()
	return &Redireccion{URL: url, Milisegundos: ms, Segundos: (ms + 999) / 1000}
}

type formularioPage struct {
	Base
	Accion      string
	Edicion     bool
	Mostrar     bool
	Borrador    cotizacion.Borrador
	Redireccion *Redireccion
}

type resultadoPage struct {
	Base
	Resultado   *dto.ResultadoCreacion
	Redireccion *Redireccion
}

type historialPage struct {
	Base
	Filtro       entity.FiltroCotizaciones
	Query        template.URL
	Cotizaciones []*entity.Cotizacion
}

type confirmarPage struct {
	Base
	ID       int64
	Pregunta string
	Query    template.URL
}

// paginas renderiza vistas con el nombre de la aplicación ya cargado.
type paginas struct {
	vista *view.Renderer
	app   string
}

func (p paginas) base(m dto.Mensaje) Base { return Base{App: p.app, Mensaje: m} }

func (p paginas) render(c *fiber.Ctx, status int, nombre string, data any) error {
	c.Status(status)
	c.Type("html", "utf-8")
	return p.vista.Render(c.Response().BodyWriter(), nombre, data)
}

// aviso página mínima con un mensaje y enlaces de navegación.
func (p paginas) aviso(c *fiber.Ctx, status int, m dto.Mensaje) error {
	return p.render(c, status, "aviso", p.base(m))
}

func enviarPDF(c *fiber.Ctx, a *dto.ArchivoPDF) error {
	c.Attachment(a.Nombre)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(a.Contenido)
}

// ── Filtros del historial ─────────────────────────────────────────────────────

func filtroDesdeQuery(c *fiber.Ctx) entity.FiltroCotizaciones {
	return entity.FiltroCotizaciones{
		ClienteNombre: c.Query("clienteNombre"),
		Estado:        c.Query("estado"),
		FechaDesde:    c.Query("fechaDesde"),
		FechaHasta:    c.Query("fechaHasta"),
	}
}

// queryFiltro solo incluye los filtros con valor.
func queryFiltro(f entity.FiltroCotizaciones) url.Values {
	q := url.Values{}
	for k, v := range map[string]string{
		"clienteNombre": f.ClienteNombre,
		"estado":        f.Estado,
		"fechaDesde":    f.FechaDesde,
		"fechaHasta":    f.FechaHasta,
	} {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}
