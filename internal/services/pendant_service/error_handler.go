package pendant_service

import (
	"errors"

	"github.com/iwtcode/pendantService/internal/domain/interlock"
	"github.com/iwtcode/pendantService/internal/middleware/logging"
)

// ErrorHandler - точка входа для запросов на поднятие, снятие и сброс ошибок.
// Недопустимые переходы проглатываются, ошибки конфигурации возвращаются вызывающему.
type ErrorHandler struct {
	requester *interlock.Requester
	logger    *logging.Logger
}

func NewErrorHandler(requester *interlock.Requester, logger *logging.Logger) *ErrorHandler {
	return &ErrorHandler{requester: requester, logger: logger.WithPrefix("INTERLOCK")}
}

func (h *ErrorHandler) Raise(code string) (bool, error)   { return h.Handle(code, interlock.Raised) }
func (h *ErrorHandler) Unraise(code string) (bool, error) { return h.Handle(code, interlock.Unraised) }
func (h *ErrorHandler) Reset(code string) (bool, error)   { return h.Handle(code, interlock.Reset) }

func (h *ErrorHandler) Handle(code string, status interlock.Status) (bool, error) {
	handled, err := h.requester.Handle(code, "", status)
	if errors.Is(err, interlock.ErrIllegalTransition) {
		h.logger.Debug("Transition ignored", "code", code, "status", status, "reason", err)
		return false, nil
	}
	if err != nil {
		h.logger.Error("Error request failed", "code", code, "status", status, "error", err)
		return false, err
	}
	if handled {
		h.logger.Info("Error transition applied", "code", code, "status", status)
	}
	return handled, nil
}

// ResetAll сбрасывает все снятые ошибки (кнопка RESET пульта).
func (h *ErrorHandler) ResetAll() ([]string, error) {
	codes, err := h.requester.ResetAll()
	if err != nil {
		h.logger.Error("Reset all failed", "error", err)
		return codes, err
	}
	if len(codes) > 0 {
		h.logger.Info("Errors reset", "codes", codes)
	}
	return codes, nil
}

func (h *ErrorHandler) Requester() *interlock.Requester { return h.requester }
