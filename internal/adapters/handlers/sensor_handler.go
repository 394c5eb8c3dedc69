package handlers

import (
	"net/http"

	pub "github.com/iwtcode/pendantService/models"

	"github.com/gin-gonic/gin"
)

// GetSensors возвращает привязку датчиков к кодам ошибок.
// @Summary Привязка датчиков
// @Tags Sensors
// @Produce json
// @Success 200 {object} models.SensorsResponse
// @Router /sensors [get]
func (h *Handler) GetSensors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sensors": h.usecase.Sensors()})
}

// Signal применяет сигнал датчика или цифрового входа.
// @Summary Сигнал датчика
// @Tags Sensors
// @Accept json
// @Produce json
// @Param input body pub.Signal true "Сигнал"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse "Неизвестный датчик или вход"
// @Router /sensors/signal [post]
func (h *Handler) Signal(c *gin.Context) {
	var sig pub.Signal
	if err := c.ShouldBindJSON(&sig); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	if err := h.usecase.Signal(c.Request.Context(), sig); err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Signal applied"})
}

// GetInputs возвращает состояние цифровых входов.
// @Summary Цифровые входы
// @Tags Sensors
// @Produce json
// @Success 200 {object} models.InputsResponse
// @Router /sensors/inputs [get]
func (h *Handler) GetInputs(c *gin.Context) {
	inputs, err := h.usecase.Inputs(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "inputs": inputs})
}
