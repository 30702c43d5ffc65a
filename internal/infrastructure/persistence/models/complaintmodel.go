package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/civictrack/civictrack/internal/shared/constants"
)

// LocationJSON is the stored shape of a complaint location.
type LocationJSON struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ComplaintModel struct {
	ID                 uint                             `gorm:"primaryKey"`
	SID                string                           `gorm:"column:sid;uniqueIndex;size:20;not null"`
	HumanID            string                           `gorm:"column:human_id;uniqueIndex;size:32;not null"`
	CitizenID          uint                             `gorm:"not null;index"`
	IssueType          string                           `gorm:"size:30;not null;index"`
	Description        string                           `gorm:"type:text;not null"`
	Location           datatypes.JSONType[LocationJSON] `gorm:"not null"`
	Image              *string                          `gorm:"size:16777215"`
	Status             string                           `gorm:"size:20;not null;index"`
	Priority           string                           `gorm:"size:20;not null"`
	AssignedDepartment *string                          `gorm:"size:30;index"`
	AssignedOfficerID  *uint                            `gorm:"index"`
	ResolutionNotes    *string                          `gorm:"type:text"`
	CompletedAt        *time.Time
	Rating             *int
	Feedback           *string   `gorm:"type:text"`
	CreatedAt          time.Time `gorm:"not null;index"`
	UpdatedAt          time.Time `gorm:"not null"`

	// No foreign keys: citizen and officer are resolved by the application.
}

func (ComplaintModel) TableName() string {
	return constants.TableComplaints
}
