package models

import (
	"time"

	"github.com/civictrack/civictrack/internal/shared/constants"
)

// UserModel is the persistence shape of user.User.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	SID          string `gorm:"column:sid;uniqueIndex;size:20;not null"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	Name         string `gorm:"not null;size:100"`
	Phone        string `gorm:"size:255"`
	Address      string `gorm:"size:255"`
	City         string `gorm:"size:255"`
	Role         string `gorm:"not null;size:30;default:citizen;index"`
	PasswordHash string `gorm:"not null;size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
