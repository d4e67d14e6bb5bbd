package middleware

import (
	"errors"
	"net/http"

	"fulfillment-ledger/pkg/apperror"
	"fulfillment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// MaxBodySize caps request bodies at maxBytes. A declared Content-Length over
// the cap is rejected with REQ_002 before the handler runs; chunked bodies are
// cut off by the reader and surface through PayloadTooLarge.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.AbortError(c, apperror.ErrPayloadTooLarge())
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// PayloadTooLarge maps a body read error caused by MaxBodySize to REQ_002.
// It returns nil for any other error.
func PayloadTooLarge(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperror.ErrPayloadTooLarge()
	}
	return nil
}
