package interfaces

import (
	"context"

	"github.com/iwtcode/pendantService/models"
)

// Usecases - это агрегирующий интерфейс для всех use cases
type Usecases interface {
	PendantService
	History(ctx context.Context, code string, limit int) ([]models.InterlockEvent, error)
}
