package occurrence

import (
	"context"

	"github.com/google/uuid"
	"github.com/iwtcode/pendantService/internal/domain/entities"
	"github.com/iwtcode/pendantService/models"
)

const defaultListLimit = 100

func (r *OccurrenceLogImpl) Append(ctx context.Context, ev models.InterlockEvent) error {
	return r.db.WithContext(ctx).Create(toRecord(ev)).Error
}

// List возвращает последние переходы, новые первыми. Пустой code - по всем ошибкам.
func (r *OccurrenceLogImpl) List(ctx context.Context, code string, limit int) ([]models.InterlockEvent, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	q := r.db.WithContext(ctx).Order("occurred_at DESC").Limit(limit)
	if code != "" {
		q = q.Where("code = ?", code)
	}
	var records []entities.OccurrenceRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]models.InterlockEvent, len(records))
	for i, rec := range records {
		out[i] = fromRecord(rec)
	}
	return out, nil
}

func toRecord(ev models.InterlockEvent) *entities.OccurrenceRecord {
	return &entities.OccurrenceRecord{
		ID:         uuid.New(),
		ErrorID:    ev.ErrorID,
		Code:       ev.Code,
		Domain:     ev.Domain,
		Message:    ev.Message,
		Status:     ev.Status,
		Counter:    ev.Counter,
		OccurredAt: ev.Timestamp,
	}
}

func fromRecord(rec entities.OccurrenceRecord) models.InterlockEvent {
	return models.InterlockEvent{
		ErrorID:   rec.ErrorID,
		Code:      rec.Code,
		Domain:    rec.Domain,
		Message:   rec.Message,
		Status:    rec.Status,
		Counter:   rec.Counter,
		Timestamp: rec.OccurredAt,
	}
}
