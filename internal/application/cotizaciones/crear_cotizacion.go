package cotizaciones

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jhoicas/cotizaciones-web/internal/application/dto"
	"github.com/jhoicas/cotizaciones-web/internal/application/ports"
	"github.com/jhoicas/cotizaciones-web/internal/domain"
	"github.com/jhoicas/cotizaciones-web/internal/domain/cotizacion"
	"github.com/jhoicas/cotizaciones-web/internal/domain/repository"
	"github.com/jhoicas/cotizaciones-web/pkg/logger"
)

// CrearConfig parámetros del flujo de creación.
type CrearConfig struct {
	// PDFIntentos y PDFIntervalo acotan la espera a que el backend tenga
	// listo el PDF de la cotización recién creada.
	PDFIntentos  int
	PDFIntervalo time.Duration
	DescargaTTL  time.Duration
	// EsperaRedireccion tiempo que se muestra el resultado antes de ir al historial.
	EsperaRedireccion time.Duration
}

// CrearCotizacionUseCase registra cliente y cotización y obtiene su PDF.
type CrearCotizacionUseCase struct {
	clientes     repository.ClienteRepository
	cotizaciones repository.CotizacionRepository
	pdf          ports.PDFSource
	store        ports.DocumentStore
	cfg          CrearConfig
	log          *logger.Logger
}

// NewCrearCotizacionUseCase construye el caso de uso.
func NewCrearCotizacionUseCase(
	clientes repository.ClienteRepository,
	cotizaciones repository.CotizacionRepository,
	pdf ports.PDFSource,
	store ports.DocumentStore,
	cfg CrearConfig,
	log *logger.Logger,
) *CrearCotizacionUseCase {
	if cfg.PDFIntentos <= 0 {
		cfg.PDFIntentos = 1
	}
	return &CrearCotizacionUseCase{
		clientes:     clientes,
		cotizaciones: cotizaciones,
		pdf:          pdf,
		store:        store,
		cfg:          cfg,
		log:          log,
	}
}

// Guardar ejecuta el flujo completo:
//  1. valida el borrador (sin llamadas de red);
//  2. crea el cliente y luego la cotización que lo referencia;
//  3. espera el PDF y lo deja listo para descargar.
//
// Un error en 1 o 2 se devuelve y el formulario conserva su estado. Si el PDF
// falla la cotización queda guardada y el resultado lleva una advertencia.
func (uc *CrearCotizacionUseCase) Guardar(ctx context.Context, b cotizacion.Borrador) (*dto.ResultadoCreacion, error) {
	if err := b.ValidarCreacion(); err != nil {
		return nil, err
	}

	cliente := b.Cliente
	cliente.ID = 0
	if err := uc.clientes.Create(ctx, &cliente); err != nil {
		uc.log.Error().Err(err).Str("cliente", cliente.Nombre).Msg("crear cliente")
		return nil, fmt.Errorf("crear cliente: %w", err)
	}

	cot := b.Cotizacion()
	cot.ID = 0
	cot.ClienteID = cliente.ID
	cot.Cliente = cliente
	if err := uc.cotizaciones.Create(ctx, cot); err != nil {
		uc.log.Error().Err(err).Int64("cliente_id", cliente.ID).Msg("crear cotización")
		return nil, fmt.Errorf("crear cotización: %w", err)
	}
	uc.log.Info().Int64("cotizacion_id", cot.ID).Str("total", cotizacion.FormatearTotal(cot.Total)).Msg("cotización creada")

	res := &dto.ResultadoCreacion{
		CotizacionID: cot.ID,
		Mensaje:      dto.Exito(MsgGuardada),
		Redirigir:    RutaHistorial,
		Espera:       uc.cfg.EsperaRedireccion,
	}

	contenido, err := uc.esperarPDF(ctx, cot.ID)
	if err != nil {
		uc.log.Warn().Err(err).Int64("cotizacion_id", cot.ID).Msg("descargar PDF")
		res.Mensaje = dto.Advertencia(MsgGuardadaSinPDF)
		return res, nil
	}

	nombre := cotizacion.NombreArchivoPDF(cliente.Nombre)
	token, err := uc.store.Put(ctx, ports.Documento{Nombre: nombre, Contenido: contenido}, uc.cfg.DescargaTTL)
	if err != nil {
		uc.log.Warn().Err(err).Int64("cotizacion_id", cot.ID).Msg("guardar PDF para descarga")
		res.Mensaje = dto.Advertencia(MsgGuardadaSinPDF)
		return res, nil
	}
	res.Descarga = &dto.Descarga{Token: token, Nombre: nombre}
	return res, nil
}

// esperarPDF pide el PDF apenas el backend confirma la creación y reintenta
// a intervalo fijo mientras no esté listo. Un 400 (cotización incompleta) no
// se reintenta.
func (uc *CrearCotizacionUseCase) esperarPDF(ctx context.Context, id int64) ([]byte, error) {
	politica := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(uc.cfg.PDFIntervalo), uint64(uc.cfg.PDFIntentos-1)),
		ctx,
	)
	pedir := func() ([]byte, error) {
		contenido, err := uc.pdf.FetchPDF(ctx, id)
		if errors.Is(err, domain.ErrCotizacionIncompleta) {
			return nil, backoff.Permanent(err)
		}
		return contenido, err
	}
	avisar := func(err error, espera time.Duration) {
		uc.log.Debug().Err(err).Int64("cotizacion_id", id).Dur("espera", espera).Msg("PDF aún no disponible")
	}
	return backoff.RetryNotifyWithData(pedir, politica, avisar)
}
