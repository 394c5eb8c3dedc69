package handlers

import (
	"net/http"

	"github.com/iwtcode/pendantService/internal/domain/models"
	pub "github.com/iwtcode/pendantService/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) respondExecution(c *gin.Context, state *pub.ExecutionState, err error) {
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "execution": state})
}

// GetExecution возвращает состояние исполнения.
// @Summary Состояние исполнения
// @Tags Execution
// @Produce json
// @Success 200 {object} models.ExecutionResponse
// @Router /execution [get]
func (h *Handler) GetExecution(c *gin.Context) {
	state, err := h.usecase.ExecutionState(c.Request.Context())
	h.respondExecution(c, state, err)
}

// LoadProgram загружает программу на исполнение.
// @Summary Загрузить программу
// @Tags Execution
// @Accept json
// @Produce json
// @Param input body models.ProgramNameRequest true "Имя программы"
// @Success 200 {object} models.ExecutionResponse
// @Failure 404 {object} models.ErrorResponse "Программа не найдена"
// @Failure 409 {object} models.ErrorResponse "Программа исполняется"
// @Router /execution/load [post]
func (h *Handler) LoadProgram(c *gin.Context) {
	var req models.ProgramNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	state, err := h.usecase.LoadProgram(c.Request.Context(), req.Name)
	h.respondExecution(c, state, err)
}

// StartProgram запускает загруженную программу с первой строки.
// @Summary Запуск программы
// @Description Запуск отклоняется, пока не сброшены все ошибки безопасности.
// @Tags Execution
// @Produce json
// @Success 200 {object} models.ExecutionResponse
// @Failure 409 {object} models.ErrorResponse "Запуск запрещен"
// @Router /execution/start [post]
func (h *Handler) StartProgram(c *gin.Context) {
	state, err := h.usecase.StartProgram(c.Request.Context())
	h.respondExecution(c, state, err)
}

// StopProgram останавливает исполнение.
// @Summary Остановить программу
// @Tags Execution
// @Produce json
// @Success 200 {object} models.ExecutionResponse
// @Router /execution/stop [post]
func (h *Handler) StopProgram(c *gin.Context) {
	state, err := h.usecase.StopProgram(c.Request.Context())
	h.respondExecution(c, state, err)
}

// ResumeProgram продолжает удержанную программу.
// @Summary Продолжить программу
// @Tags Execution
// @Produce json
// @Success 200 {object} models.ExecutionResponse
// @Failure 409 {object} models.ErrorResponse "Программа не удерживается или запуск запрещен"
// @Router /execution/resume [post]
func (h *Handler) ResumeProgram(c *gin.Context) {
	state, err := h.usecase.ResumeProgram(c.Request.Context())
	h.respondExecution(c, state, err)
}

// SetMode задает режим движения.
// @Summary Режим движения
// @Tags Execution
// @Accept json
// @Produce json
// @Param input body models.ModeRequest true "Режим"
// @Success 200 {object} models.ExecutionResponse
// @Failure 400 {object} models.ErrorResponse "Неизвестный режим"
// @Router /execution/mode [post]
func (h *Handler) SetMode(c *gin.Context) {
	var req models.ModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	state, err := h.usecase.SetMode(c.Request.Context(), req.Mode)
	h.respondExecution(c, state, err)
}

// SetDeadman задает состояние кнопки разрешения.
// @Summary Кнопка разрешения
// @Tags Execution
// @Accept json
// @Produce json
// @Param input body models.DeadmanRequest true "Состояние кнопки"
// @Success 200 {object} models.ExecutionResponse
// @Router /execution/deadman [post]
func (h *Handler) SetDeadman(c *gin.Context) {
	var req models.DeadmanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	state, err := h.usecase.SetDeadman(c.Request.Context(), req.Held)
	h.respondExecution(c, state, err)
}

// Jog перемещает робота в заданную позицию.
// @Summary Ручное перемещение
// @Tags Execution
// @Accept json
// @Produce json
// @Param input body models.JogRequest true "Позиция"
// @Success 200 {object} models.ExecutionResponse
// @Failure 409 {object} models.ErrorResponse "Программа исполняется"
// @Router /execution/jog [post]
func (h *Handler) Jog(c *gin.Context) {
	var req models.JogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}
	state, err := h.usecase.Jog(c.Request.Context(), req.Position)
	h.respondExecution(c, state, err)
}
