package handlers

import (
	"net/http"

	"github.com/iwtcode/pendantService/internal/domain/models"
	pub "github.com/iwtcode/pendantService/models"

	"github.com/gin-gonic/gin"
)

// GetEditor возвращает состояние редактора.
// @Summary Состояние редактора
// @Tags Editor
// @Produce json
// @Success 200 {object} models.EditorResponse
// @Failure 409 {object} models.ErrorResponse "Программа не открыта"
// @Router /editor [get]
func (h *Handler) GetEditor(c *gin.Context) {
	state, err := h.usecase.EditorState(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "editor": state})
}

// OpenProgram открывает программу в редакторе.
// @Summary Открыть программу
// @Tags Editor
// @Accept json
// @Produce json
// @Param input body models.ProgramNameRequest true "Имя программы"
// @Success 200 {object} models.EditorResponse
// @Failure 404 {object} models.ErrorResponse "Программа не найдена"
// @Router /editor/open [post]
func (h *Handler) OpenProgram(c *gin.Context) {
	var req models.ProgramNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	state, err := h.usecase.OpenProgram(c.Request.Context(), req.Name)
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "editor": state})
}

// CloseProgram закрывает программу в редакторе.
// @Summary Закрыть программу
// @Tags Editor
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Router /editor/close [post]
func (h *Handler) CloseProgram(c *gin.Context) {
	if err := h.usecase.CloseProgram(c.Request.Context()); err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Editor closed"})
}

// Edit применяет команду редактора к открытой программе.
// @Summary Команда редактора
// @Description Операции: goto, step, select_part, next_part, prev_part, input, insert, delete, change_kind, toggle_comment, set_text, touch_up.
// @Tags Editor
// @Accept json
// @Produce json
// @Param input body pub.EditRequest true "Команда"
// @Success 200 {object} models.EditorResponse
// @Failure 400 {object} models.ErrorResponse "Неизвестная операция или вид строки"
// @Failure 409 {object} models.ErrorResponse "Программа не открыта или исполняется"
// @Router /editor/edit [post]
func (h *Handler) Edit(c *gin.Context) {
	var req pub.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	state, err := h.usecase.Edit(c.Request.Context(), req)
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "editor": state})
}
