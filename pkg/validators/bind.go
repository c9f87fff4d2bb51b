package validators

import (
	"errors"
	"net/http"

	"bitwise74/reelhub-api/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// BindJSON decodes the request body into dst and validates it. A non
// empty msg replaces the generated validation message.
func (v *Validator) BindJSON(c *gin.Context, dst any, msg string) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Wrap(apperr.TooLarge, "Request body size exceeds limit", err)
		}

		if msg == "" {
			msg = "Invalid request body"
		}

		return apperr.Wrap(apperr.Validation, msg, err)
	}

	if err := v.Validate(dst); err != nil {
		if msg == "" {
			msg = err.Error()
		}

		return apperr.Wrap(apperr.Validation, msg, err)
	}

	return nil
}
