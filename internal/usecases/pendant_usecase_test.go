package usecases

import (
	"context"
	"testing"

	"github.com/iwtcode/pendantService/internal/interfaces"
	"github.com/iwtcode/pendantService/models"
	"github.com/iwtcode/pendantService/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	interfaces.PendantService
	created string
	code    string
}

func (s *stubService) CreateProgram(_ context.Context, name, _ string) (*models.ProgramView, error) {
	s.created = name
	return &models.ProgramView{Name: name}, nil
}

func (s *stubService) HandleError(_ context.Context, code, status string) (*models.HandleResult, error) {
	s.code = code
	return &models.HandleResult{Code: code, Status: status}, nil
}

type stubJournal struct {
	code  string
	limit int
}

func (j *stubJournal) Append(context.Context, models.InterlockEvent) error { return nil }

func (j *stubJournal) List(_ context.Context, code string, limit int) ([]models.InterlockEvent, error) {
	j.code, j.limit = code, limit
	return []models.InterlockEvent{{Code: code}}, nil
}

func TestUsecase_CreateProgramValidatesName(t *testing.T) {
	svc := &stubService{}
	u := NewUsecases(svc, nil)

	_, err := u.CreateProgram(context.Background(), "  cell/a ", "")
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.BadRequestErrorCode, appErr.Code)
	assert.Empty(t, svc.created)

	_, err = u.CreateProgram(context.Background(), "  weld ", "")
	require.NoError(t, err)
	assert.Equal(t, "weld", svc.created)
}

func TestUsecase_HandleErrorNormalizesCode(t *testing.T) {
	svc := &stubService{}
	u := NewUsecases(svc, nil)

	_, err := u.HandleError(context.Background(), " s-1002 ", "raised")
	require.NoError(t, err)
	assert.Equal(t, "S-1002", svc.code)
}

func TestUsecase_History(t *testing.T) {
	_, err := NewUsecases(&stubService{}, nil).History(context.Background(), "", 10)
	assert.ErrorIs(t, err, errors.ErrHistoryUnavailable)

	journal := &stubJournal{}
	u := NewUsecases(&stubService{}, journal)
	events, err := u.History(context.Background(), "a-3001", 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "A-3001", journal.code)
	assert.Equal(t, maxHistoryLimit, journal.limit)
}
