package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cotizaciones-web/internal/application/cotizaciones"
	"github.com/jhoicas/cotizaciones-web/internal/domain"
	"github.com/jhoicas/cotizaciones-web/internal/domain/entity"
	"github.com/jhoicas/cotizaciones-web/internal/infrastructure/cache"
	"github.com/jhoicas/cotizaciones-web/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/cotizaciones-web/internal/interfaces/http"
	"github.com/jhoicas/cotizaciones-web/internal/interfaces/http/view"
	"github.com/jhoicas/cotizaciones-web/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var errRed = errors.New("connection refused")

type fakeClientes struct {
	err error
}

func (f *fakeClientes) Create(_ context.Context, c *entity.Cliente) error {
	if f.err != nil {
		return f.err
	}
	c.ID = 11
	return nil
}

// fakeCotizaciones hace de repositorio y de fuente de PDF.
type fakeCotizaciones struct {
	mu           sync.Mutex
	lista        []*entity.Cotizacion
	filtros      []entity.FiltroCotizaciones
	creadas      []*entity.Cotizacion
	actualizadas []*entity.Cotizacion
	estados      map[int64]entity.Estado
	eliminadas   []int64
	pdfIDs       []int64

	crearErr, listErr, updateErr, pdfErr error
}

func (f *fakeCotizaciones) Create(_ context.Context, c *entity.Cotizacion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.crearErr != nil {
		return f.crearErr
	}
	c.ID = 42
	f.creadas = append(f.creadas, c)
	return nil
}

func (f *fakeCotizaciones) List(_ context.Context, filtro entity.FiltroCotizaciones) ([]*entity.Cotizacion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filtros = append(f.filtros, filtro)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lista, nil
}

func (f *fakeCotizaciones) Update(_ context.Context, c *entity.Cotizacion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.actualizadas = append(f.actualizadas, c)
	return nil
}

func (f *fakeCotizaciones) UpdateEstado(_ context.Context, id int64, estado entity.Estado) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.estados == nil {
		f.estados = map[int64]entity.Estado{}
	}
	f.estados[id] = estado
	return nil
}

func (f *fakeCotizaciones) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eliminadas = append(f.eliminadas, id)
	return nil
}

func (f *fakeCotizaciones) FetchPDF(_ context.Context, id int64) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pdfIDs = append(f.pdfIDs, id)
	if f.pdfErr != nil {
		return nil, f.pdfErr
	}
	return []byte("%PDF-1.4 cotizacion"), nil
}

func cotizacionAcme() *entity.Cotizacion {
	return &entity.Cotizacion{
		ID:        7,
		ClienteID: 3,
		Cliente:   entity.Cliente{ID: 3, Nombre: "Acme", NIT: "123"},
		Productos: []entity.LineaDetalle{
			{Descripcion: "Grama", Cantidad: "1", PrecioUnitario: "4.00", Total: decimal.NewFromInt(4), Tipo: entity.TipoBien},
			{Descripcion: "Poda", Cantidad: "2", PrecioUnitario: "10", Total: decimal.NewFromInt(20), Tipo: entity.TipoServicio},
		},
		Total:         decimal.NewFromInt(24),
		Observaciones: "entregar lunes",
		Estado:        entity.EstadoPendiente,
		Fecha:         time.Date(2025, 3, 4, 15, 0, 0, 0, time.UTC),
	}
}

type entorno struct {
	app          *fiber.App
	clientes     *fakeClientes
	cotizaciones *fakeCotizaciones
}

// buildTestApp arma la aplicación completa sobre repositorios en memoria.
func buildTestApp(t *testing.T) *entorno {
	t.Helper()
	vista, err := view.New()
	require.NoError(t, err, "las plantillas deben parsear")

	log := logger.Nop()
	e := &entorno{
		clientes:     &fakeClientes{},
		cotizaciones: &fakeCotizaciones{lista: []*entity.Cotizacion{cotizacionAcme()}},
	}
	store := cache.NewMemoryStore(time.Minute)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(vista, "Cotizaciones", log)})
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AppName: "Cotizaciones",
		Vista:   vista,
		Crear: cotizaciones.NewCrearCotizacionUseCase(e.clientes, e.cotizaciones, e.cotizaciones, store, cotizaciones.CrearConfig{
			PDFIntentos:       1,
			DescargaTTL:       time.Minute,
			EsperaRedireccion: time.Second,
		}, log),
		Editar:    cotizaciones.NewEditarCotizacionUseCase(e.cotizaciones, 1500*time.Millisecond, log),
		Historial: cotizaciones.NewHistorialUseCase(e.cotizaciones, e.cotizaciones, pdf.NewHistorialReport("Cotizaciones"), log),
		Descarga:  cotizaciones.NewDescargaUseCase(store),
	})
	e.app = app
	return e
}

func (e *entorno) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *entorno) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req)
}

func (e *entorno) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

// fila agrega una fila de producto al formulario con sus valores previos.
func fila(form url.Values, tipo, descripcion, cantidad, cantPrev, precio, precioPrev, total string) {
	form.Add("tipo", tipo)
	form.Add("descripcion", descripcion)
	form.Add("cantidad", cantidad)
	form.Add("cantidadPrev", cantPrev)
	form.Add("precioUnitario", precio)
	form.Add("precioPrev", precioPrev)
	form.Add("total", total)
}

func formAcme(accion string) url.Values {
	form := url.Values{}
	form.Set("clienteNombre", "Acme")
	form.Set("clienteNit", "123")
	form.Set("observaciones", "")
	form.Set("accion", accion)
	fila(form, "bien", "Grama", "2", "", "5.00", "", "0")
	return form
}

// ──────────────────────────────────────────────────────────────────────────────
// Landing y errores
// ──────────────────────────────────────────────────────────────────────────────

func TestHome(t *testing.T) {
	e := buildTestApp(t)
	resp, body := e.get(t, "/")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Sistema de Cotizaciones")
	assert.Contains(t, body, "Decogreen")
	assert.Contains(t, body, `href="/nueva"`)
	assert.Contains(t, body, `href="/historial"`)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestRutaInexistente(t *testing.T) {
	e := buildTestApp(t)
	resp, body := e.get(t, "/no-existe")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Página no encontrada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Nueva cotización
// ──────────────────────────────────────────────────────────────────────────────

func TestNueva_FormularioInicial(t *testing.T) {
	e := buildTestApp(t)
	resp, body := e.get(t, "/nueva")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, strings.Count(body, `name="descripcion"`), "una fila en blanco")
	assert.Contains(t, body, "Total: Q0.00")
}

func TestNueva_Recalcula(t *testing.T) {
	e := buildTestApp(t)
	resp, body := e.post(t, "/nueva", formAcme("recalcular"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Q10.00")
	assert.Contains(t, body, "Total: Q10.00")
	assert.Contains(t, body, `value="Acme"`, "el formulario conserva lo capturado")
}

func TestNueva_SinCambiosNoRecalcula(t *testing.T) {
	e := buildTestApp(t)
	form := url.Values{"accion": {"recalcular"}}
	fila(form, "servicio", "Grama", "2", "2", "5", "5", "99")
	_, body := e.post(t, "/nueva", form)
	assert.Contains(t, body, "Q99.00", "el total solo cambia con cantidad o precio")
}

func TestNueva_AgregarYEliminarFila(t *testing.T) {
	e := buildTestApp(t)
	_, body := e.post(t, "/nueva", formAcme("agregar"))
	assert.Equal(t, 2, strings.Count(body, `name="descripcion"`))

	form := formAcme("eliminar:0")
	fila(form, "bien", "Agapanto", "1", "1", "3", "3", "3")
	_, body = e.post(t, "/nueva", form)
	assert.Equal(t, 1, strings.Count(body, `name="descripcion"`))
	assert.Contains(t, body, `value="Agapanto"`)
	assert.NotContains(t, body, `value="Grama"`)
}

func TestNueva_ValidacionSinRed(t *testing.T) {
	e := buildTestApp(t)
	form := formAcme("guardar")
	form.Set("clienteNit", "")
	resp, body := e.post(t, "/nueva", form)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, cotizaciones.MsgClienteIncompleto)
	assert.Empty(t, e.cotizaciones.creadas, "no debe haber llamadas al backend")

	form = formAcme("guardar")
	form.Set("descripcion", "")
	resp, body = e.post(t, "/nueva", form)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, cotizaciones.MsgProductosIncompletos)
}

var reDescarga = regexp.MustCompile(`/descargas/([0-9a-f-]{36})`)

func TestNueva_GuardarYDescargar(t *testing.T) {
	e := buildTestApp(t)
	resp, body := e.post(t, "/nueva", formAcme("guardar"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, cotizaciones.MsgGuardada)
	assert.Contains(t, body, "/historial", "redirige al historial")
	assert.NotContains(t, body, `name="descripcion"`, "el formulario se reinicia")

	require.Len(t, e.cotizaciones.creadas, 1)
	creada := e.cotizaciones.creadas[0]
	assert.Equal(t, int64(11), creada.ClienteID)
	assert.Equal(t, "10.00", creada.Total.StringFixed(2))
	assert.Equal(t, []int64{42}, e.cotizaciones.pdfIDs)

	m := reDescarga.FindStringSubmatch(body)
	require.Len(t, m, 2, "la página enlaza la descarga")
	resp, pdfBody := e.get(t, "/descargas/"+m[1])
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "cotizacion-Acme.pdf")
	assert.Equal(t, "%PDF-1.4 cotizacion", pdfBody)
}

func TestNueva_PDFFallaPeroQuedaGuardada(t *testing.T) {
	e := buildTestApp(t)
	e.cotizaciones.pdfErr = errRed
	resp, body := e.post(t, "/nueva", formAcme("guardar"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, cotizaciones.MsgGuardadaSinPDF)
	assert.NotContains(t, body, "/descargas/")
	assert.Len(t, e.cotizaciones.creadas, 1)
}

func TestNueva_ErrorDelBackendConservaFormulario(t *testing.T) {
	e := buildTestApp(t)
	e.cotizaciones.crearErr = errRed
	resp, body := e.post(t, "/nueva", formAcme("guardar"))
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, cotizaciones.MsgErrorGuardar)
	assert.Contains(t, body, `value="Grama"`)
}

func TestDescarga_TokenDesconocido(t *testing.T) {
	e := buildTestApp(t)
	resp, body := e.get(t, "/descargas/no-existe")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "La descarga ya no está disponible.")
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestEditar_Carga(t *testing.T) {
	e := buildTestApp(t)
	resp, body := e.get(t, "/editar/7")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `value="Acme"`)
	assert.Contains(t, body, "readonly")
	assert.Contains(t, body, `value="Grama"`)
	assert.Contains(t, body, `value="4"`, "los números se normalizan")
	assert.Contains(t, body, "entregar lunes")
}

func TestEditar_NoEncontrada(t *testing.T) {
	e := buildTestApp(t)
	for _, path := range []string{"/editar/99", "/editar/abc"} {
		resp, body := e.get(t, path)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
		assert.Contains(t, body, "Cotización no encontrada", path)
		assert.NotContains(t, body, `name="descripcion"`, path)
	}
}

func TestEditar_ErrorAlCargar(t *testing.T) {
	e := buildTestApp(t)
	e.cotizaciones.listErr = errRed
	resp, body := e.get(t, "/editar/7")
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "Error al cargar la cotización")
}

func formEdicion(accion string) url.Values {
	form := url.Values{}
	form.Set("clienteId", "3")
	form.Set("clienteNombre", "Acme")
	form.Set("clienteNit", "123")
	form.Set("observaciones", "entregar martes")
	form.Set("accion", accion)
	fila(form, "bien", "Grama", "3", "1", "4", "4", "4")
	fila(form, "servicio", "Poda", "2", "2", "10", "10", "20")
	return form
}

func TestEditar_GuardarCambios(t *testing.T) {
	e := buildTestApp(t)
	resp, body := e.post(t, "/editar/7", formEdicion("guardar"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, cotizaciones.MsgActualizada)
	assert.Contains(t, body, "1500", "redirige tras 1.5 s")
	assert.Contains(t, body, "Total: Q32.00")

	require.Len(t, e.cotizaciones.actualizadas, 1)
	c := e.cotizaciones.actualizadas[0]
	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, int64(3), c.ClienteID, "se conserva el cliente original")
	assert.Equal(t, "32", c.Total.String())
	assert.Equal(t, "12", c.Productos[0].Total.String())
	assert.Equal(t, "entregar martes", c.Observaciones)
}

func TestEditar_AgregarFilaUsaValoresDeEdicion(t *testing.T) {
	e := buildTestApp(t)
	_, body := e.post(t, "/editar/7", formEdicion("agregar"))
	assert.Equal(t, 3, strings.Count(body, `name="descripcion"`))
	assert.Empty(t, e.cotizaciones.actualizadas)
}

func TestEditar_ErrorAlActualizar(t *testing.T) {
	e := buildTestApp(t)
	e.cotizaciones.updateErr = errRed
	resp, body := e.post(t, "/editar/7", formEdicion("guardar"))
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "Error al actualizar cotización")
	assert.Contains(t, body, `value="3"`, "el formulario no se reinicia")
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial
// ──────────────────────────────────────────────────────────────────────────────

func TestHistorial_ListaConFiltros(t *testing.T) {
	e := buildTestApp(t)
	resp, body := e.get(t, "/historial?clienteNombre=Acme&estado=pendiente")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Acme")
	assert.Contains(t, body, "Q24.00")
	assert.Contains(t, body, "04/03/2025")
	assert.Contains(t, body, "entregar lunes")

	require.Len(t, e.cotizaciones.filtros, 1)
	assert.Equal(t, entity.FiltroCotizaciones{ClienteNombre: "Acme", Estado: "pendiente"}, e.cotizaciones.filtros[0])
}

func TestHistorial_ErrorAlListar(t *testing.T) {
	e := buildTestApp(t)
	e.cotizaciones.listErr = errRed
	resp, body := e.get(t, "/historial")
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "Error al cargar cotizaciones")
}

func TestHistorial_CambiarEstado(t *testing.T) {
	e := buildTestApp(t)
	resp, _ := e.post(t, "/historial/7/estado?clienteNombre=Acme", url.Values{"estado": {"entregada"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	loc := resp.Header.Get(fiber.HeaderLocation)
	assert.Contains(t, loc, "aviso=estado-actualizado")
	assert.Contains(t, loc, "clienteNombre=Acme", "se conservan los filtros")
	assert.Equal(t, entity.EstadoEntregada, e.cotizaciones.estados[7])

	_, body := e.get(t, loc)
	assert.Contains(t, body, "Estado actualizado correctamente")
}

func TestHistorial_EstadoDesconocido(t *testing.T) {
	e := buildTestApp(t)
	resp, _ := e.post(t, "/historial/7/estado", url.Values{"estado": {"archivada"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderLocation), "aviso=error-estado")
	assert.Empty(t, e.cotizaciones.estados)
}

func TestHistorial_Eliminar(t *testing.T) {
	e := buildTestApp(t)

	resp, body := e.get(t, "/historial/7/eliminar")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, cotizaciones.MsgConfirmarEliminar)

	resp, _ = e.post(t, "/historial/7/eliminar", url.Values{})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.NotContains(t, resp.Header.Get(fiber.HeaderLocation), "aviso")
	assert.Empty(t, e.cotizaciones.eliminadas, "sin confirmar no se elimina")

	resp, _ = e.post(t, "/historial/7/eliminar", url.Values{"confirmar": {"si"}})
	assert.Contains(t, resp.Header.Get(fiber.HeaderLocation), "aviso=eliminada")
	assert.Equal(t, []int64{7}, e.cotizaciones.eliminadas)
}

func TestHistorial_PDF(t *testing.T) {
	e := buildTestApp(t)
	resp, body := e.get(t, "/historial/7/pdf?cliente=Acme+Verde")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "cotizacion-Acme_Verde.pdf")
	assert.Equal(t, "%PDF-1.4 cotizacion", body)
}

func TestHistorial_PDFIncompleta(t *testing.T) {
	e := buildTestApp(t)
	e.cotizaciones.pdfErr = domain.ErrCotizacionIncompleta
	resp, _ := e.get(t, "/historial/7/pdf?cliente=Acme")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	loc := resp.Header.Get(fiber.HeaderLocation)
	assert.Contains(t, loc, "aviso=pdf-incompleta")

	_, body := e.get(t, loc)
	assert.Contains(t, body, "La cotización está incompleta. No se puede generar el PDF.")
}

func TestHistorial_PDFOtroError(t *testing.T) {
	e := buildTestApp(t)
	e.cotizaciones.pdfErr = errRed
	resp, _ := e.get(t, "/historial/7/pdf?cliente=Acme")
	assert.Contains(t, resp.Header.Get(fiber.HeaderLocation), "aviso=error-pdf")
}

func TestHistorial_Exportar(t *testing.T) {
	e := buildTestApp(t)
	resp, body := e.get(t, "/historial/exportar?estado=pendiente")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "historial-cotizaciones-")
	assert.True(t, strings.HasPrefix(body, "%PDF"))
	assert.Equal(t, "pendiente", e.cotizaciones.filtros[0].Estado)
}

func TestRutaInexistente_JSON(t *testing.T) {
	e := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/no-existe", nil)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	resp, body := e.do(t, req)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"code":"NOT_FOUND","message":"❌ Página no encontrada"}`, body)
}
