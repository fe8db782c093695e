package entity

// Cliente representa al cliente al que se emite una cotización.
// El ID lo asigna el backend al persistirlo.
type Cliente struct {
	ID     int64
	Nombre string
	NIT    string // Número de Identificación Tributaria (Guatemala), opaco
}
