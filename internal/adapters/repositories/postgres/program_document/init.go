package program_document

import (
	"github.com/iwtcode/pendantService/internal/interfaces"
	"gorm.io/gorm"
)

type ProgramDocumentRepositoryImpl struct {
	db *gorm.DB
}

func NewProgramDocumentRepository(db *gorm.DB) interfaces.ProgramRepository {
	return &ProgramDocumentRepositoryImpl{db: db}
}
