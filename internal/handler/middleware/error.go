package middleware

import (
	"log/slog"
	"net/http"

	"parkingbot/internal/handler/httperr"
	"parkingbot/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the last public error if the handler did not answer.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if !err.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := err.Meta.(httperr.Response); ok {
				resp.RequestID = GetRequestID(c)
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		resp := httperr.NewResponse(http.StatusInternalServerError, "Internal server error", nil)
		resp.RequestID = GetRequestID(c)
		c.JSON(http.StatusInternalServerError, resp)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				err := errs.New("panic while serving request")
				slog.Error("recovered from panic",
					"panic", rec,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
					"stack", errs.ExtractStackLines(err, 12),
				)

				resp := httperr.NewResponse(http.StatusInternalServerError, "Internal server error", nil)
				resp.RequestID = GetRequestID(c)
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
