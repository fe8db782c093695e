// Package moneda formatea montos en quetzales para mostrarlos en pantalla y
// en reportes.
package moneda

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Simbolo del quetzal.
const Simbolo = "Q"

var printer = message.NewPrinter(language.MustParse("es-GT"))

// Formatear devuelve el monto con separador de miles y dos decimales, con el
// símbolo del quetzal: Q1,250.50. Parte entera y centavos salen del texto
// decimal exacto, sin pasar por float64.
func Formatear(d decimal.Decimal) string {
	redondeado := d.Round(2)
	entero, centavos, _ := strings.Cut(redondeado.Abs().StringFixed(2), ".")
	signo := ""
	if redondeado.IsNegative() {
		signo = "-"
	}
	return Simbolo + signo + agruparMiles(entero) + "." + centavos
}

// agruparMiles aplica el agrupamiento de es-GT a la parte entera. Montos que
// no caben en uint64 se agrupan de tres en tres con coma.
func agruparMiles(entero string) string {
	if n, err := strconv.ParseUint(entero, 10, 64); err == nil {
		return printer.Sprint(number.Decimal(n))
	}
	var sb strings.Builder
	for i, r := range entero {
		if i > 0 && (len(entero)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
