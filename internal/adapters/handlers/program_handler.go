package handlers

import (
	"net/http"

	"github.com/iwtcode/pendantService/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// ListPrograms возвращает список сохраненных программ.
// @Summary Список программ
// @Description Возвращает сохраненные программы в алфавитном порядке.
// @Tags Programs
// @Produce json
// @Success 200 {object} models.ProgramListResponse
// @Router /programs [get]
func (h *Handler) ListPrograms(c *gin.Context) {
	programs, err := h.usecase.ListPrograms(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "count": len(programs), "programs": programs})
}

// CreateProgram создает пустую программу.
// @Summary Создать программу
// @Tags Programs
// @Accept json
// @Produce json
// @Param input body models.CreateProgramRequest true "Имя и описание программы"
// @Success 200 {object} models.ProgramResponse
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Failure 409 {object} models.ErrorResponse "Программа уже существует"
// @Router /programs [post]
func (h *Handler) CreateProgram(c *gin.Context) {
	var req models.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	p, err := h.usecase.CreateProgram(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.logger.Info("Program created", "name", p.Name)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "program": p})
}

// GetProgram возвращает содержимое программы.
// @Summary Получить программу
// @Tags Programs
// @Produce json
// @Param name path string true "Имя программы"
// @Success 200 {object} models.ProgramResponse
// @Failure 404 {object} models.ErrorResponse "Программа не найдена"
// @Router /programs/{name} [get]
func (h *Handler) GetProgram(c *gin.Context) {
	p, err := h.usecase.GetProgram(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "program": p})
}

// DeleteProgram удаляет программу.
// @Summary Удалить программу
// @Description Программу, открытую в редакторе или загруженную на исполнение, удалить нельзя.
// @Tags Programs
// @Produce json
// @Param name path string true "Имя программы"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse "Программа не найдена"
// @Failure 409 {object} models.ErrorResponse "Программа используется"
// @Router /programs/{name} [delete]
func (h *Handler) DeleteProgram(c *gin.Context) {
	name := c.Param("name")
	if err := h.usecase.DeleteProgram(c.Request.Context(), name); err != nil {
		h.Fail(c, err)
		return
	}

	h.logger.Info("Program deleted", "name", name)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Program deleted"})
}

// DuplicateProgram сохраняет копию программы под новым именем.
// @Summary Копировать программу
// @Tags Programs
// @Accept json
// @Produce json
// @Param name path string true "Имя исходной программы"
// @Param input body models.DuplicateProgramRequest true "Имя копии"
// @Success 200 {object} models.ProgramResponse
// @Failure 404 {object} models.ErrorResponse "Программа не найдена"
// @Failure 409 {object} models.ErrorResponse "Программа с таким именем уже существует"
// @Router /programs/{name}/duplicate [post]
func (h *Handler) DuplicateProgram(c *gin.Context) {
	var req models.DuplicateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	p, err := h.usecase.DuplicateProgram(c.Request.Context(), c.Param("name"), req.Name)
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "program": p})
}

// SavePrograms записывает библиотеку программ в хранилище.
// @Summary Сохранить программы
// @Tags Programs
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Failure 500 {object} models.ErrorResponse "Ошибка хранилища"
// @Router /programs/save [post]
func (h *Handler) SavePrograms(c *gin.Context) {
	if err := h.usecase.SavePrograms(c.Request.Context()); err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Programs saved"})
}
