package entity

// Estado de una cotización. Cualquier estado es alcanzable desde cualquier otro.
type Estado string

const (
	EstadoPendiente Estado = "pendiente"
	EstadoEntregada Estado = "entregada"
	EstadoCancelada Estado = "cancelada"
)

// Estados devuelve los estados en el orden en que se muestran.
func Estados() []Estado {
	return []Estado{EstadoPendiente, EstadoEntregada, EstadoCancelada}
}

// Valido indica si e es uno de los estados conocidos.
func (e Estado) Valido() bool {
	switch e {
	case EstadoPendiente, EstadoEntregada, EstadoCancelada:
		return true
	}
	return false
}

// Etiqueta texto para mostrar en los selectores.
func (e Estado) Etiqueta() string {
	switch e {
	case EstadoPendiente:
		return "Pendiente"
	case EstadoEntregada:
		return "Entregada"
	case EstadoCancelada:
		return "Cancelada"
	}
	return string(e)
}
