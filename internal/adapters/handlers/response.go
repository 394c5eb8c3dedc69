package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/iwtcode/pendantService/internal/domain/instruction"
	"github.com/iwtcode/pendantService/internal/domain/interlock"
	"github.com/iwtcode/pendantService/internal/domain/program"
	"github.com/iwtcode/pendantService/internal/services/pendant_service"
	"github.com/iwtcode/pendantService/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse возвращает стандартизированный ответ с ошибкой
func (h *Handler) ErrorResponse(c *gin.Context, err error, statusCode int, message string, showError bool) {
	errorMessage := message
	if showError && err != nil {
		errorMessage = message + ": " + err.Error()
	}

	h.logger.Error(message, "error", err, "statusCode", statusCode)
	c.AbortWithStatusJSON(statusCode, gin.H{
		"status": "error",
		"error": gin.H{
			"code":    statusCode,
			"message": errorMessage,
		},
	})
}

// BadRequest возвращает ошибку 400
func (h *Handler) BadRequest(c *gin.Context, err error, message string) {
	if message == "" {
		message = errors.BadRequest
	}
	h.ErrorResponse(c, err, http.StatusBadRequest, message, true)
}

// InternalError возвращает ошибку 500
func (h *Handler) InternalError(c *gin.Context, err error) {
	h.ErrorResponse(c, err, http.StatusInternalServerError, errors.InternalServerError, false)
}

// NotFound возвращает ошибку 404
func (h *Handler) NotFound(c *gin.Context, err error) {
	h.ErrorResponse(c, err, http.StatusNotFound, errors.NotFound, true)
}

// Conflict возвращает ошибку 409: операция недопустима в текущем состоянии пульта
func (h *Handler) Conflict(c *gin.Context, err error) {
	h.ErrorResponse(c, err, http.StatusConflict, errors.Conflict, true)
}

var (
	notFoundErrors = []error{program.ErrProgramNotFound}

	conflictErrors = []error{
		program.ErrProgramExists,
		program.ErrProgramInUse,
		pendant_service.ErrNoProgramOpen,
		pendant_service.ErrNoProgramLoaded,
		pendant_service.ErrProgramRunning,
		pendant_service.ErrStartRefused,
		pendant_service.ErrNotHeld,
	}

	badRequestErrors = []error{
		program.ErrInvalidName,
		program.ErrIndexOutOfRange,
		program.ErrPointOutOfRange,
		instruction.ErrUnknownWireType,
		instruction.ErrInvalidWireValue,
		interlock.ErrUnknownCode,
		interlock.ErrUnknownDomain,
		interlock.ErrUnknownStatus,
		pendant_service.ErrUnknownEditOp,
		pendant_service.ErrUnknownKind,
		pendant_service.ErrUnknownMode,
		pendant_service.ErrUnknownSensor,
	}
)

func matches(err error, targets []error) bool {
	for _, t := range targets {
		if stderrors.Is(err, t) {
			return true
		}
	}
	return false
}

// Fail выбирает код ответа по ошибке сервиса
func (h *Handler) Fail(c *gin.Context, err error) {
	if appErr, ok := errors.AsAppError(err); ok {
		h.ErrorResponse(c, appErr.Err, appErr.Code, appErr.Message, appErr.IsUserFacing)
		return
	}
	switch {
	case matches(err, notFoundErrors):
		h.NotFound(c, err)
	case matches(err, conflictErrors):
		h.Conflict(c, err)
	case matches(err, badRequestErrors):
		h.BadRequest(c, err, "")
	default:
		h.InternalError(c, err)
	}
}
