package root

import (
	"net/http"

	"bitwise74/reelhub-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// Validate echoes the identity of a token that made it through the auth
// middleware
func Validate(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.Identity(c))
}
