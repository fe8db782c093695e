package dto

import "time"

// ArchivoPDF PDF listo para enviarse como adjunto.
type ArchivoPDF struct {
	Nombre    string
	Contenido []byte
}

// ResultadoCreacion resultado de guardar una cotización nueva.
// Descarga queda vacío si el PDF no pudo obtenerse.
type ResultadoCreacion struct {
	CotizacionID int64
	Mensaje      Mensaje
	Descarga     *Descarga
	Redirigir    string
	Espera       time.Duration
}

// Descarga referencia a un PDF guardado temporalmente.
type Descarga struct {
	Token  string
	Nombre string
}

// ResultadoEdicion resultado de guardar cambios de una cotización.
type ResultadoEdicion struct {
	Total     string
	Mensaje   Mensaje
	Redirigir string
	Espera    time.Duration
}
