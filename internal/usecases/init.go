package usecases

import "github.com/iwtcode/pendantService/internal/interfaces"

// NewUsecases - конструктор для use cases. journal может быть nil.
func NewUsecases(
	pendantSvc interfaces.PendantService,
	journal interfaces.OccurrenceLog,
) interfaces.Usecases {
	return NewUsecase(pendantSvc, journal)
}
