package entities

import (
	"time"

	"gorm.io/datatypes"
)

// ProgramDocument - сохраненная программа в виде JSON-документа того же формата, что и файл программ.
type ProgramDocument struct {
	Name        string         `gorm:"primaryKey;not null" json:"name"`
	Description string         `json:"description"`
	Document    datatypes.JSON `gorm:"type:jsonb;not null" json:"document"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (ProgramDocument) TableName() string { return "program_documents" }
