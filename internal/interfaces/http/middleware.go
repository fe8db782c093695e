package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/cotizaciones-web/internal/application/dto"
	"github.com/jhoicas/cotizaciones-web/internal/interfaces/http/view"
	"github.com/jhoicas/cotizaciones-web/pkg/logger"
)

// RequestLogger asigna un X-Request-ID (o respeta el recibido), lo deja en el
// contexto para las llamadas al backend y registra cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.SetUserContext(logger.WithRequestID(c.UserContext(), id))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("request_id", id).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latencia", time.Since(start)).
			Msg("http")
		return err
	}
}

// ErrorHandler responde los errores no manejados con la página de aviso.
func ErrorHandler(vista *view.Renderer, appName string, log *logger.Logger) fiber.ErrorHandler {
	p := paginas{vista: vista, app: appName}
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		msg := dto.Error(msgErrorInterno)
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			if status == fiber.StatusNotFound {
				msg = dto.Error(msgPaginaNoEncontrada)
			}
		}
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no manejado")
		}
		if c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON {
			return c.Status(status).JSON(dto.ErrorResponse{Code: codigoError(status), Message: msg.Texto})
		}
		if rerr := p.aviso(c, status, msg); rerr != nil {
			return c.Status(status).SendString(msg.Texto)
		}
		return nil
	}
}

func codigoError(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	}
	if status >= fiber.StatusInternalServerError {
		return "INTERNAL"
	}
	return "BAD_REQUEST"
}
