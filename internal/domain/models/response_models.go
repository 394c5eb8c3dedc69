package models

import "github.com/iwtcode/pendantService/models"

// ErrorResponse представляет стандартный ответ с ошибкой.
type ErrorResponse struct {
	Status string `json:"status" example:"error"`
	Error  struct {
		Code    int    `json:"code" example:"404"`
		Message string `json:"message" example:"not_found: program not found: weld"`
	} `json:"error"`
}

// MessageResponse представляет стандартный успешный ответ с сообщением.
type MessageResponse struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message" example:"Program deleted"`
}

// ProgramListResponse - список сохраненных программ.
type ProgramListResponse struct {
	Status   string                  `json:"status" example:"ok"`
	Count    int                     `json:"count" example:"2"`
	Programs []models.ProgramSummary `json:"programs"`
}

// ProgramResponse - содержимое программы.
type ProgramResponse struct {
	Status  string              `json:"status" example:"ok"`
	Program *models.ProgramView `json:"program"`
}

// EditorResponse - состояние редактора после операции.
type EditorResponse struct {
	Status string              `json:"status" example:"ok"`
	Editor *models.EditorState `json:"editor"`
}

// ErrorsResponse - зарегистрированные ошибки с историей.
type ErrorsResponse struct {
	Status string             `json:"status" example:"ok"`
	Errors []models.ErrorView `json:"errors"`
}

// HandleErrorResponse - результат запроса на изменение статуса ошибки.
type HandleErrorResponse struct {
	Status string               `json:"status" example:"ok"`
	Result *models.HandleResult `json:"result"`
}

// ResetAllResponse - коды ошибок, сброшенных кнопкой RESET.
type ResetAllResponse struct {
	Status string   `json:"status" example:"ok"`
	Reset  []string `json:"reset"`
}

// InterlockStateResponse - сводные условия запуска.
type InterlockStateResponse struct {
	Status    string                 `json:"status" example:"ok"`
	Interlock *models.InterlockState `json:"interlock"`
}

// HistoryResponse - журнал переходов ошибок.
type HistoryResponse struct {
	Status  string                  `json:"status" example:"ok"`
	History []models.InterlockEvent `json:"history"`
}

// ExecutionResponse - состояние исполнения программы.
type ExecutionResponse struct {
	Status    string                 `json:"status" example:"ok"`
	Execution *models.ExecutionState `json:"execution"`
}

// InputsResponse - состояние цифровых входов.
type InputsResponse struct {
	Status string `json:"status" example:"ok"`
	Inputs []bool `json:"inputs"`
}

// SensorsResponse - привязки датчиков к кодам ошибок.
type SensorsResponse struct {
	Status  string            `json:"status" example:"ok"`
	Sensors map[string]string `json:"sensors"`
}
