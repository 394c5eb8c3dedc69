package interfaces

import (
	"context"

	"github.com/iwtcode/pendantService/internal/domain/program"
	"github.com/iwtcode/pendantService/models"
)

// ProgramRepository определяет контракт хранилища сохраненных программ.
// Коллекция читается и пишется целиком, как один документ.
type ProgramRepository interface {
	LoadAll(ctx context.Context) ([]*program.Program, error)
	SaveAll(ctx context.Context, programs []*program.Program) error
}

// ProgramWatcher уведомляет о внешнем изменении хранилища программ.
type ProgramWatcher interface {
	Watch(ctx context.Context, onChange func([]*program.Program)) error
}

// OccurrenceLog определяет контракт журнала переходов ошибок.
type OccurrenceLog interface {
	Append(ctx context.Context, event models.InterlockEvent) error
	List(ctx context.Context, code string, limit int) ([]models.InterlockEvent, error)
}
