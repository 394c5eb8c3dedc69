package program_document

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iwtcode/pendantService/internal/domain/entities"
	"github.com/iwtcode/pendantService/internal/domain/program"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoadAll возвращает все программы в алфавитном порядке имен
func (r *ProgramDocumentRepositoryImpl) LoadAll(ctx context.Context) ([]*program.Program, error) {
	var docs []entities.ProgramDocument
	if err := r.db.WithContext(ctx).Order("name").Find(&docs).Error; err != nil {
		return nil, err
	}
	out := make([]*program.Program, 0, len(docs))
	for _, doc := range docs {
		p := &program.Program{}
		if err := json.Unmarshal(doc.Document, p); err != nil {
			return nil, fmt.Errorf("программа '%s' повреждена: %w", doc.Name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// SaveAll заменяет содержимое таблицы переданной коллекцией в одной транзакции
func (r *ProgramDocumentRepositoryImpl) SaveAll(ctx context.Context, programs []*program.Program) error {
	docs := make([]entities.ProgramDocument, 0, len(programs))
	names := make([]string, 0, len(programs))
	for _, p := range programs {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		docs = append(docs, entities.ProgramDocument{
			Name:        p.Name,
			Description: p.Description,
			Document:    datatypes.JSON(data),
		})
		names = append(names, p.Name)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stale := tx.Model(&entities.ProgramDocument{})
		if len(names) > 0 {
			stale = stale.Where("name NOT IN ?", names)
		} else {
			stale = stale.Where("1 = 1")
		}
		if err := stale.Delete(&entities.ProgramDocument{}).Error; err != nil {
			return err
		}
		if len(docs) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "document", "updated_at"}),
		}).Create(&docs).Error
	})
}
