// Package view renderiza las páginas HTML. Las plantillas van embebidas en el
// binario y se parsean una sola vez, cada página junto con layout.html.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizaciones-web/internal/domain/cotizacion"
	"github.com/jhoicas/cotizaciones-web/internal/domain/entity"
	"github.com/jhoicas/cotizaciones-web/pkg/moneda"
)

//go:embed templates/*.html
var archivos embed.FS

const layout = "layout.html"

// Renderer conjunto de páginas ya parseadas. Seguro para uso concurrente.
type Renderer struct {
	paginas map[string]*template.Template
}

// New parsea todas las plantillas; falla si alguna es inválida.
func New() (*Renderer, error) {
	nombres, err := fs.Glob(archivos, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{paginas: make(map[string]*template.Template, len(nombres))}
	for _, n := range nombres {
		base := path.Base(n)
		if base == layout {
			continue
		}
		t, err := template.New(layout).Funcs(Funcs()).ParseFS(archivos, "templates/"+layout, n)
		if err != nil {
			return nil, fmt.Errorf("view: parsear %s: %w", base, err)
		}
		r.paginas[strings.TrimSuffix(base, ".html")] = t
	}
	return r, nil
}

// Render ejecuta la página en un buffer y solo escribe en w si no hubo error,
// para no dejar respuestas a medias.
func (r *Renderer) Render(w io.Writer, pagina string, data any) error {
	t, ok := r.paginas[pagina]
	if !ok {
		return fmt.Errorf("view: página %q no existe", pagina)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("view: render %s: %w", pagina, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Funcs helpers disponibles en todas las plantillas.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"moneda":  moneda.Formatear,
		"total2":  cotizacion.FormatearTotal,
		"decimal": func(d decimal.Decimal) string { return d.String() },
		"fecha": func(t time.Time) string {
			if t.IsZero() {
				return "—"
			}
			return t.Format("02/01/2006")
		},
		"estados": entity.Estados,
		"tipos":   func() []entity.TipoLinea { return []entity.TipoLinea{entity.TipoBien, entity.TipoServicio} },
		"year":    func() int { return time.Now().Year() },
	}
}
