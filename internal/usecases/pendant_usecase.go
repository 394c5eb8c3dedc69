package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/iwtcode/pendantService/internal/interfaces"
	"github.com/iwtcode/pendantService/models"
	"github.com/iwtcode/pendantService/pkg/errors"
)

const maxHistoryLimit = 1000

// Usecase делегирует операции пульта сервису и добавляет проверку входных данных.
type Usecase struct {
	interfaces.PendantService
	journal interfaces.OccurrenceLog
}

func NewUsecase(pendantSvc interfaces.PendantService, journal interfaces.OccurrenceLog) interfaces.Usecases {
	return &Usecase{
		PendantService: pendantSvc,
		journal:        journal,
	}
}

func (u *Usecase) CreateProgram(ctx context.Context, name, description string) (*models.ProgramView, error) {
	name = strings.TrimSpace(name)
	if strings.ContainsAny(name, `/\`) {
		return nil, errors.NewAppError(errors.BadRequestErrorCode, errors.BadRequest,
			fmt.Errorf("имя программы '%s' содержит недопустимые символы", name), true)
	}
	return u.PendantService.CreateProgram(ctx, name, description)
}

func (u *Usecase) DuplicateProgram(ctx context.Context, src, dst string) (*models.ProgramView, error) {
	dst = strings.TrimSpace(dst)
	if strings.ContainsAny(dst, `/\`) {
		return nil, errors.NewAppError(errors.BadRequestErrorCode, errors.BadRequest,
			fmt.Errorf("имя программы '%s' содержит недопустимые символы", dst), true)
	}
	return u.PendantService.DuplicateProgram(ctx, src, dst)
}

func (u *Usecase) HandleError(ctx context.Context, code, status string) (*models.HandleResult, error) {
	return u.PendantService.HandleError(ctx, strings.ToUpper(strings.TrimSpace(code)), status)
}

// History возвращает журнал переходов ошибок, новые первыми.
func (u *Usecase) History(ctx context.Context, code string, limit int) ([]models.InterlockEvent, error) {
	if u.journal == nil {
		return nil, errors.NewAppError(errors.UnavailableErrorCode, errors.Unavailable, errors.ErrHistoryUnavailable, true)
	}
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return u.journal.List(ctx, strings.ToUpper(strings.TrimSpace(code)), limit)
}
