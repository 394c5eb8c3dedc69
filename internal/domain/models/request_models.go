package models

// CreateProgramRequest определяет структуру запроса на создание программы.
type CreateProgramRequest struct {
	Name        string `json:"name" binding:"required" example:"weld_seam"`
	Description string `json:"description" example:"Шов по левой кромке"`
}

// DuplicateProgramRequest задает имя копии программы.
type DuplicateProgramRequest struct {
	Name string `json:"name" binding:"required" example:"weld_seam_copy"`
}

// ProgramNameRequest определяет структуру для запросов, использующих имя программы.
type ProgramNameRequest struct {
	Name string `json:"name" binding:"required" example:"weld_seam"`
}

// HandleErrorRequest - запрос на поднятие, снятие или сброс ошибки.
type HandleErrorRequest struct {
	Code   string `json:"code" binding:"required" example:"S-1002"`
	Status string `json:"status" binding:"required" example:"Raised"` // Raised / Unraised / Reset
}

// ModeRequest задает режим работы контроллера.
type ModeRequest struct {
	Mode string `json:"mode" binding:"required" example:"T1"` // T1 / T2 / AUTO
}

// DeadmanRequest задает состояние кнопки разрешения.
type DeadmanRequest struct {
	Held bool `json:"held" example:"true"`
}

// JogRequest перемещает робота в позицию вне программы.
type JogRequest struct {
	Position [3]float64 `json:"position"`
}
