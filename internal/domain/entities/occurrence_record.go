package entities

import (
	"time"

	"github.com/google/uuid"
)

// OccurrenceRecord - строка журнала переходов ошибок.
type OccurrenceRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ErrorID    string    `gorm:"index;not null" json:"error_id"`
	Code       string    `gorm:"index;not null" json:"code"`
	Domain     string    `gorm:"not null" json:"domain"`
	Message    string    `json:"message"`
	Status     string    `gorm:"not null" json:"status"` // Raised / Unraised / Reset
	Counter    int       `json:"counter"`
	OccurredAt time.Time `gorm:"index;not null" json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (OccurrenceRecord) TableName() string { return "occurrence_records" }
