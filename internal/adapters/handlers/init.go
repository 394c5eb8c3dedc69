package handlers

import (
	"net/http"

	"github.com/iwtcode/pendantService/internal/config"
	"github.com/iwtcode/pendantService/internal/interfaces"
	"github.com/iwtcode/pendantService/internal/middleware/logging"
	"github.com/iwtcode/pendantService/internal/middleware/swagger"

	"github.com/gin-gonic/gin"
)

// Handler - структура для обработчиков HTTP-запросов
type Handler struct {
	usecase interfaces.Usecases
	logger  *logging.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(usecase interfaces.Usecases, logger *logging.Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger.WithPrefix("HANDLER"),
	}
}

// ProvideRouter настраивает и возвращает HTTP-роутер
func ProvideRouter(h *Handler, cfg *config.AppConfig, swagCfg *swagger.Config) http.Handler {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())

	// Swagger
	swagger.Setup(router, swagCfg)

	// Logger Middleware
	router.Use(LoggingMiddleware(h.logger))

	// Поток событий
	router.GET("/ws/events", h.StreamEvents)

	// Группа API v1
	v1 := router.Group("/api/v1")
	{
		programs := v1.Group("/programs")
		{
			programs.GET("", h.ListPrograms)
			programs.POST("", h.CreateProgram)
			programs.POST("/save", h.SavePrograms)
			programs.GET("/:name", h.GetProgram)
			programs.DELETE("/:name", h.DeleteProgram)
			programs.POST("/:name/duplicate", h.DuplicateProgram)
		}

		editor := v1.Group("/editor")
		{
			editor.GET("", h.GetEditor)
			editor.POST("/open", h.OpenProgram)
			editor.POST("/close", h.CloseProgram)
			editor.POST("/edit", h.Edit)
		}

		errs := v1.Group("/errors")
		{
			errs.GET("", h.ListErrors)
			errs.POST("", h.HandleError)
			errs.POST("/reset-all", h.ResetAll)
			errs.GET("/state", h.GetInterlockState)
			errs.GET("/history", h.GetHistory)
		}

		execution := v1.Group("/execution")
		{
			execution.GET("", h.GetExecution)
			execution.POST("/load", h.LoadProgram)
			execution.POST("/start", h.StartProgram)
			execution.POST("/stop", h.StopProgram)
			execution.POST("/resume", h.ResumeProgram)
			execution.POST("/mode", h.SetMode)
			execution.POST("/deadman", h.SetDeadman)
			execution.POST("/jog", h.Jog)
		}

		sensors := v1.Group("/sensors")
		{
			sensors.GET("", h.GetSensors)
			sensors.POST("/signal", h.Signal)
			sensors.GET("/inputs", h.GetInputs)
		}
	}

	return router
}
