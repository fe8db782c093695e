package cotizaciones

// Textos que ve el usuario.
const (
	MsgClienteIncompleto    = "Por favor completa los datos del cliente."
	MsgProductosIncompletos = "Verifica que todos los productos estén completos."
	MsgGuardada             = "✅ Cotización guardada correctamente"
	MsgGuardadaSinPDF       = "⚠️ Cotización guardada, pero falló la descarga del PDF"
	MsgErrorGuardar         = "❌ Error al guardar la cotización"

	MsgNoEncontrada    = "❌ Cotización no encontrada"
	MsgErrorCargar     = "❌ Error al cargar la cotización"
	MsgActualizada     = "✅ Cotización actualizada correctamente"
	MsgErrorActualizar = "❌ Error al actualizar cotización"

	MsgErrorListar       = "❌ Error al cargar cotizaciones"
	MsgPDFIncompleta     = "⚠️ La cotización está incompleta. No se puede generar el PDF."
	MsgErrorPDF          = "❌ Error inesperado al generar el PDF."
	MsgEstadoActualizado = "✅ Estado actualizado correctamente"
	MsgErrorEstado       = "❌ Error al actualizar el estado"
	MsgConfirmarEliminar = "¿Estás seguro de eliminar esta cotización?"
	MsgEliminada         = "🗑️ Cotización eliminada correctamente"
	MsgErrorEliminar     = "❌ Error al eliminar la cotización"
	MsgErrorExportar     = "❌ Error al generar el reporte del historial"
	MsgDescargaExpirada  = "⚠️ La descarga ya no está disponible."
)

// RutaHistorial destino de las redirecciones tras guardar.
const RutaHistorial = "/historial"
