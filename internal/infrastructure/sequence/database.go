package sequence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/civictrack/civictrack/internal/infrastructure/persistence/models"
)

// DatabaseAllocator keeps counters in the sequences table. The row is
// incremented before it is read, inside one transaction, so the row lock
// taken by UPDATE serialises concurrent callers.
type DatabaseAllocator struct {
	db *gorm.DB
}

func NewDatabaseAllocator(db *gorm.DB) *DatabaseAllocator {
	return &DatabaseAllocator{db: db}
}

func (a *DatabaseAllocator) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.SequenceModel{Name: name, Value: 0}).Error; err != nil {
			return fmt.Errorf("failed to initialise sequence: %w", err)
		}

		if err := tx.Model(&models.SequenceModel{}).
			Where("name = ?", name).
			Update("value", gorm.Expr("value + ?", 1)).Error; err != nil {
			return fmt.Errorf("failed to increment sequence: %w", err)
		}

		var row models.SequenceModel
		if err := tx.Where("name = ?", name).First(&row).Error; err != nil {
			return fmt.Errorf("failed to read sequence: %w", err)
		}
		value = row.Value
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("sequence %s: %w", name, err)
	}
	return value, nil
}
