package interfaces

import (
	"context"

	"github.com/iwtcode/pendantService/models"
)

// PendantService - это агрегирующий интерфейс для всей бизнес-логики пульта.
type PendantService interface {
	ProgramManager
	EditorManager
	InterlockManager
	ExecutionManager
	SensorManager
	EventSource
}

// ProgramManager управляет библиотекой сохраненных программ.
type ProgramManager interface {
	ListPrograms(ctx context.Context) ([]models.ProgramSummary, error)
	GetProgram(ctx context.Context, name string) (*models.ProgramView, error)
	CreateProgram(ctx context.Context, name, description string) (*models.ProgramView, error)
	DuplicateProgram(ctx context.Context, src, dst string) (*models.ProgramView, error)
	DeleteProgram(ctx context.Context, name string) error
	SavePrograms(ctx context.Context) error
}

// EditorManager управляет построчным редактором.
type EditorManager interface {
	OpenProgram(ctx context.Context, name string) (*models.EditorState, error)
	CloseProgram(ctx context.Context) error
	EditorState(ctx context.Context) (*models.EditorState, error)
	Edit(ctx context.Context, req models.EditRequest) (*models.EditorState, error)
}

// InterlockManager управляет ошибками и блокировками.
type InterlockManager interface {
	HandleError(ctx context.Context, code, status string) (*models.HandleResult, error)
	ResetAll(ctx context.Context) ([]string, error)
	ListErrors(ctx context.Context) ([]models.ErrorView, error)
	InterlockState(ctx context.Context) (*models.InterlockState, error)
}

// ExecutionManager управляет исполнением программы.
type ExecutionManager interface {
	LoadProgram(ctx context.Context, name string) (*models.ExecutionState, error)
	StartProgram(ctx context.Context) (*models.ExecutionState, error)
	StopProgram(ctx context.Context) (*models.ExecutionState, error)
	ResumeProgram(ctx context.Context) (*models.ExecutionState, error)
	SetMode(ctx context.Context, mode string) (*models.ExecutionState, error)
	SetDeadman(ctx context.Context, held bool) (*models.ExecutionState, error)
	Jog(ctx context.Context, position [3]float64) (*models.ExecutionState, error)
	ExecutionState(ctx context.Context) (*models.ExecutionState, error)
}

// SensorManager принимает сигналы датчиков ячейки.
type SensorManager interface {
	Signal(ctx context.Context, sig models.Signal) error
	Inputs(ctx context.Context) ([]bool, error)
	Sensors() map[string]string
}

// EventSource отдает поток событий подписчику до вызова отмены.
type EventSource interface {
	Subscribe() (<-chan models.Event, func())
}
