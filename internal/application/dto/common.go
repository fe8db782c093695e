package dto

// Nivel de un mensaje en la vista; se usa como clase CSS.
type Nivel string

const (
	NivelExito       Nivel = "exito"
	NivelAdvertencia Nivel = "advertencia"
	NivelError       Nivel = "error"
)

// Mensaje aviso transitorio que se muestra en línea en la vista.
type Mensaje struct {
	Texto string
	Nivel Nivel
}

// Vacio indica que no hay nada que mostrar.
func (m Mensaje) Vacio() bool { return m.Texto == "" }

func Exito(texto string) Mensaje       { return Mensaje{Texto: texto, Nivel: NivelExito} }
func Advertencia(texto string) Mensaje { return Mensaje{Texto: texto, Nivel: NivelAdvertencia} }
func Error(texto string) Mensaje       { return Mensaje{Texto: texto, Nivel: NivelError} }

// ErrorResponse cuerpo de error HTTP para respuestas no HTML.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
