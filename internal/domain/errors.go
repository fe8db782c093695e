package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrClienteIncompleto    = errors.New("datos del cliente incompletos")
	ErrProductosIncompletos = errors.New("productos incompletos")
	ErrCotizacionIncompleta = errors.New("cotización incompleta, no se puede generar el PDF")
	ErrBackend              = errors.New("error en el servicio de cotizaciones")
)
