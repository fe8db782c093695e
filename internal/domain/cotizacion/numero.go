package cotizacion

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// prefijoNumerico toma el número más largo al inicio del texto: signo,
// dígitos con punto decimal opcional y exponente opcional.
var prefijoNumerico = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// maxExponente acota la notación científica al rango de un float64.
const maxExponente = 308

// ParseNumero convierte el texto capturado en un formulario a decimal usando
// el prefijo numérico del texto ("2abc" vale 2). Texto vacío o sin prefijo
// numérico vale cero: la vista sigue mostrando un total y la validación de
// creación se encarga de exigir el campo.
func ParseNumero(s string) decimal.Decimal {
	m := prefijoNumerico.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	if e := d.Exponent(); e > maxExponente || e < -maxExponente {
		return decimal.Zero
	}
	return d
}
