package handlers

import (
	"net/http"
	"strconv"

	"github.com/iwtcode/pendantService/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// ListErrors возвращает все известные ошибки с их вхождениями.
// @Summary Список ошибок
// @Tags Errors
// @Produce json
// @Success 200 {object} models.ErrorsResponse
// @Router /errors [get]
func (h *Handler) ListErrors(c *gin.Context) {
	errs, err := h.usecase.ListErrors(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "errors": errs})
}

// HandleError поднимает, снимает или сбрасывает ошибку по коду.
// @Summary Переход ошибки
// @Description Недопустимый переход не является ошибкой запроса: в ответе handled=false.
// @Tags Errors
// @Accept json
// @Produce json
// @Param input body models.HandleErrorRequest true "Код и статус"
// @Success 200 {object} models.HandleErrorResponse
// @Failure 400 {object} models.ErrorResponse "Неизвестный код или статус"
// @Router /errors [post]
func (h *Handler) HandleError(c *gin.Context) {
	var req models.HandleErrorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	result, err := h.usecase.HandleError(c.Request.Context(), req.Code, req.Status)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.logger.Debug("Error transition handled", "code", req.Code, "status", req.Status, "handled", result.Handled)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "result": result})
}

// ResetAll сбрасывает все неактивные ошибки.
// @Summary Сбросить все ошибки
// @Tags Errors
// @Produce json
// @Success 200 {object} models.ResetAllResponse
// @Router /errors/reset-all [post]
func (h *Handler) ResetAll(c *gin.Context) {
	reset, err := h.usecase.ResetAll(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "reset": reset})
}

// GetInterlockState возвращает состояние блокировок.
// @Summary Состояние блокировок
// @Tags Errors
// @Produce json
// @Success 200 {object} models.InterlockStateResponse
// @Router /errors/state [get]
func (h *Handler) GetInterlockState(c *gin.Context) {
	state, err := h.usecase.InterlockState(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "interlock": state})
}

// GetHistory возвращает журнал переходов ошибок.
// @Summary Журнал ошибок
// @Tags Errors
// @Produce json
// @Param code query string false "Код ошибки"
// @Param limit query int false "Максимум записей"
// @Success 200 {object} models.HistoryResponse
// @Failure 503 {object} models.ErrorResponse "Журнал недоступен"
// @Router /errors/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.BadRequest(c, err, "Invalid limit")
			return
		}
		limit = n
	}

	history, err := h.usecase.History(c.Request.Context(), c.Query("code"), limit)
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "history": history})
}
