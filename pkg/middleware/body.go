package middleware

import (
	"net/http"

	"bitwise74/reelhub-api/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// BodySizeLimiter caps request bodies at maxBytes. Handlers see a
// *http.MaxBytesError when a body without Content-Length runs over.
func BodySizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Fast reject for legit requests
		if c.Request.ContentLength > maxBytes {
			apperr.Respond(c, apperr.New(apperr.TooLarge, "Request body size exceeds limit"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
