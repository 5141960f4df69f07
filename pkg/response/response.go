package response

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/Varshith2802/ip-reputation-checker/pkg/errors"
)

// Envelope wraps error responses in a common contract. Success payloads
// are returned flat so clients see the documented wire shapes directly.
type Envelope struct {
	Error *appErrors.Error `json:"error,omitempty"`
}

// JSON sends a success response body as-is.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{Error: appErr})
}
