package models

import "github.com/civictrack/civictrack/internal/shared/constants"

// SequenceModel is a named monotonic counter.
type SequenceModel struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value int64  `gorm:"not null;default:0"`
}

func (SequenceModel) TableName() string {
	return constants.TableSequences
}
