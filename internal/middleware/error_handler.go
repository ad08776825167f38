package middleware

import (
	"net/http"
	"time"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorHandler converts errors attached to the Gin context into the JSON
// error envelope. Stack traces and internal causes are NEVER exposed to
// clients outside development mode.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		apiErr := apierror.From(err)

		if apiErr.Status >= http.StatusInternalServerError {
			log.Error().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Err(err).
				Msg("unhandled error")
		}

		body := gin.H{"success": false, "mensaje": apiErr.Mensaje}
		for k, v := range apiErr.Extra {
			body[k] = v
		}
		if gin.Mode() != gin.ReleaseMode && apiErr.Interno != nil {
			body["detalle"] = apiErr.Interno.Error()
		}
		c.AbortWithStatusJSON(apiErr.Status, body)
	}
}

// Recovery handles panics and converts them into 500 responses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("panic", r).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					gin.H{"success": false, "mensaje": "Error interno del servidor"})
			}
		}()
		c.Next()
	}
}

// Logger logs each request with method, path, status, latency, and request_id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
