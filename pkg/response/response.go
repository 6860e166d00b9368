package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/NTElissa/Tech-Enthusiast/pkg/apperr"
)

// APIResponse is the uniform envelope for every endpoint.
type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// Success writes a success envelope and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
	ctx.JSON(status, resp)
	return resp
}

// Error writes an error envelope, aborts the request, and returns the envelope.
func Error[T any](ctx *gin.Context, status int, message string, details interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     details,
	}
	ctx.AbortWithStatusJSON(status, resp)
	return resp
}

// FromError maps an application error to its status and client message.
// Anything that is not an apperr is logged and reported as a generic 500,
// leaking no internal detail.
func FromError(ctx *gin.Context, logger *logrus.Logger, err error) {
	if e, ok := apperr.As(err); ok {
		if e.Kind == apperr.KindInternal {
			if logger != nil {
				logger.WithError(err).WithField("request_id", ctx.GetString("request_id")).Error("internal error")
			}
			Error[any](ctx, http.StatusInternalServerError, "server error", nil)
			return
		}
		Error[any](ctx, e.HTTPStatus(), e.Message, e.Details)
		return
	}
	if logger != nil {
		logger.WithError(err).WithField("request_id", ctx.GetString("request_id")).Error("unhandled error")
	}
	Error[any](ctx, http.StatusInternalServerError, "server error", nil)
}
