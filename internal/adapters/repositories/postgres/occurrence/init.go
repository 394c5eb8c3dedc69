package occurrence

import (
	"github.com/iwtcode/pendantService/internal/interfaces"
	"gorm.io/gorm"
)

type OccurrenceLogImpl struct {
	db *gorm.DB
}

func NewOccurrenceLog(db *gorm.DB) interfaces.OccurrenceLog {
	return &OccurrenceLogImpl{db: db}
}
