// Package pdf genera el reporte del historial de cotizaciones con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app        │  Fecha de generación      │
//	│  FILTROS: Cliente / Estado / Rango de fechas                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° | Fecha | Cliente | NIT | Estado | Total          │
//	│         └ Cant x Descripción (tipo) ........ Subtotal        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: cotizaciones por estado + TOTAL                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizaciones-web/internal/application/ports"
	"github.com/jhoicas/cotizaciones-web/internal/domain/entity"
	"github.com/jhoicas/cotizaciones-web/pkg/moneda"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// HistorialReport implementa ports.ReportGenerator usando Maroto v2.
type HistorialReport struct {
	titulo string
	now    func() time.Time
}

var _ ports.ReportGenerator = (*HistorialReport)(nil)

// NewHistorialReport construye el generador; titulo encabeza cada reporte.
func NewHistorialReport(titulo string) *HistorialReport {
	return &HistorialReport{titulo: titulo, now: time.Now}
}

// GenerateHistorialPDF genera el PDF y devuelve sus bytes.
func (g *HistorialReport) GenerateHistorialPDF(
	ctx context.Context,
	cotizaciones []*entity.Cotizacion,
	filtro entity.FiltroCotizaciones,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Historial de cotizaciones", true).
		WithAuthor(g.titulo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.titulo, g.now()))
	m.AddRows(filtrosRow(filtro))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(cotizaciones) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay cotizaciones para los filtros seleccionados.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for _, c := range cotizaciones {
		m.AddRows(cotizacionRows(c)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(resumenRows(cotizaciones)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar historial: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(titulo string, generado time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Historial de cotizaciones", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generado.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// filtrosRow: resumen de los filtros aplicados.
func filtrosRow(f entity.FiltroCotizaciones) core.Row {
	estado := "Todos"
	if f.Estado != "" {
		estado = entity.Estado(f.Estado).Etiqueta()
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Cliente: %s   |   Estado: %s   |   Desde: %s   |   Hasta: %s",
			nonEmpty(f.ClienteNombre, "Todos"),
			estado,
			nonEmpty(f.FechaDesde, "—"),
			nonEmpty(f.FechaHasta, "—"),
		), props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N°", 1, align.Center),
		h("Fecha", 2, align.Left),
		h("Cliente", 4, align.Left),
		h("NIT", 2, align.Left),
		h("Estado", 1, align.Center),
		h("Total", 2, align.Right),
	)
}

// cotizacionRows: fila principal de la cotización seguida de sus líneas.
func cotizacionRows(c *entity.Cotizacion) []core.Row {
	fecha := "—"
	if !c.Fecha.IsZero() {
		fecha = c.Fecha.Format("02/01/2006")
	}
	rows := []core.Row{row.New(7).Add(
		col.New(1).Add(text.New(fmt.Sprintf("%d", c.ID), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(fecha, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(4).Add(text.New(c.Cliente.Nombre, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(c.Cliente.NIT, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(1).Add(text.New(c.Estado.Etiqueta(), props.Text{Size: 7, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(moneda.Formatear(c.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)}
	for _, p := range c.Productos {
		rows = append(rows, row.New(5).Add(
			col.New(1),
			col.New(8).Add(text.New(
				fmt.Sprintf("%s x %s (%s)", p.Cantidad, p.Descripcion, p.Tipo),
				props.Text{Size: 7, Color: colorGray, Left: 2},
			)),
			col.New(3).Add(text.New(
				moneda.Formatear(p.Total),
				props.Text{Size: 7, Align: align.Right, Color: colorGray, Right: 1},
			)),
		))
	}
	if c.Observaciones != "" {
		rows = append(rows, row.New(5).Add(
			col.New(1),
			col.New(11).Add(text.New("Obs.: "+c.Observaciones, props.Text{
				Size: 7, Style: fontstyle.Italic, Color: colorGray, Left: 2,
			})),
		))
	}
	return rows
}

// resumenRows: conteo por estado y suma de totales.
func resumenRows(cotizaciones []*entity.Cotizacion) []core.Row {
	conteo := make(map[entity.Estado]int)
	total := decimal.Zero
	for _, c := range cotizaciones {
		conteo[c.Estado]++
		total = total.Add(c.Total)
	}

	rows := make([]core.Row, 0, len(entity.Estados())+1)
	for _, e := range entity.Estados() {
		rows = append(rows, row.New(5).Add(
			col.New(8),
			col.New(2).Add(text.New(e.Etiqueta()+":", props.Text{Size: 8, Align: align.Right, Right: 2})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", conteo[e]), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	rows = append(rows, row.New(8).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(moneda.Formatear(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
