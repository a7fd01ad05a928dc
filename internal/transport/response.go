package transport

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/service"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type successResponse struct {
	Status string `json:"status"`
	Result any    `json:"result"`
}

type errorBody struct {
	ErrorType service.ErrorKind `json:"errorType"`
	Code      service.ErrorCode `json:"code"`
	Message   string            `json:"message"`
}

type errorResponse struct {
	Status string    `json:"status"`
	Error  errorBody `json:"error"`
}

func sendResult(c echo.Context, result any) error {
	return c.JSON(http.StatusOK, successResponse{Status: statusSuccess, Result: result})
}

// statusClientClosedRequest is reported when the client went away before the response was ready.
const statusClientClosedRequest = 499

// sendError writes err in the API envelope: client errors as 400, everything else as 500.
func sendError(c echo.Context, logger *zap.Logger, err error) error {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		svcErr = &service.Error{
			Kind:    service.KindStorageFailure,
			Code:    service.CodeStorageError,
			Message: "internal error",
			Err:     err,
		}
	}

	var code int
	switch service.KindOf(svcErr) {
	case service.KindInvalidInput:
		code = http.StatusBadRequest
	case service.KindCanceled:
		code = statusClientClosedRequest
		logger.Debug("request canceled", zap.String("path", c.Request().URL.Path), zap.Error(err))
	default:
		code = http.StatusInternalServerError
		logger.Error("request failed", zap.String("path", c.Request().URL.Path), zap.Error(err))
	}

	return c.JSON(code, errorResponse{
		Status: statusError,
		Error: errorBody{
			ErrorType: svcErr.Kind,
			Code:      svcErr.Code,
			Message:   svcErr.Message,
		},
	})
}
