package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/civictrack/civictrack/internal/domain/complaint"
	vo "github.com/civictrack/civictrack/internal/domain/complaint/valueobjects"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/models"
)

// ComplaintMapper converts between the complaint aggregate and its persistence model.
type ComplaintMapper interface {
	ToModel(c *complaint.Complaint) *models.ComplaintModel
	ToDomain(model *models.ComplaintModel) (*complaint.Complaint, error)
	ToDomainList(models []models.ComplaintModel) ([]*complaint.Complaint, error)
}

type ComplaintMapperImpl struct{}

func NewComplaintMapper() ComplaintMapper {
	return &ComplaintMapperImpl{}
}

func (m *ComplaintMapperImpl) ToModel(c *complaint.Complaint) *models.ComplaintModel {
	loc := c.Location()
	model := &models.ComplaintModel{
		ID:          c.ID(),
		SID:         c.SID(),
		HumanID:     c.HumanID(),
		CitizenID:   c.CitizenID(),
		IssueType:   c.IssueType().String(),
		Description: c.Description(),
		Location: datatypes.NewJSONType(models.LocationJSON{
			Address:   loc.Address(),
			Latitude:  loc.Latitude(),
			Longitude: loc.Longitude(),
		}),
		Image:             c.Image(),
		Status:            c.Status().String(),
		Priority:          c.Priority().String(),
		AssignedOfficerID: c.AssignedOfficerID(),
		ResolutionNotes:   c.ResolutionNotes(),
		CompletedAt:       c.CompletedAt(),
		CreatedAt:         c.CreatedAt(),
		UpdatedAt:         c.UpdatedAt(),
	}

	if dept := c.AssignedDepartment(); dept != nil {
		s := dept.String()
		model.AssignedDepartment = &s
	}

	if r := c.Rating(); r != nil {
		value := r.Value()
		model.Rating = &value
		if fb := r.Feedback(); fb != "" {
			model.Feedback = &fb
		}
	}

	return model
}

func (m *ComplaintMapperImpl) ToDomain(model *models.ComplaintModel) (*complaint.Complaint, error) {
	stored := model.Location.Data()
	location, err := vo.NewLocation(stored.Address, stored.Latitude, stored.Longitude)
	if err != nil {
		return nil, fmt.Errorf("invalid stored location (complaint id=%d): %w", model.ID, err)
	}

	var dept *vo.Department
	if model.AssignedDepartment != nil {
		d := vo.Department(*model.AssignedDepartment)
		dept = &d
	}

	var rating *vo.Rating
	if model.Rating != nil {
		feedback := ""
		if model.Feedback != nil {
			feedback = *model.Feedback
		}
		r, err := vo.NewRating(*model.Rating, feedback)
		if err != nil {
			return nil, fmt.Errorf("invalid stored rating (complaint id=%d): %w", model.ID, err)
		}
		rating = &r
	}

	return complaint.ReconstructComplaint(
		model.ID,
		model.SID,
		model.HumanID,
		model.CitizenID,
		vo.IssueType(model.IssueType),
		model.Description,
		location,
		model.Image,
		vo.ComplaintStatus(model.Status),
		vo.Priority(model.Priority),
		dept,
		model.AssignedOfficerID,
		model.ResolutionNotes,
		model.CompletedAt,
		rating,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ComplaintMapperImpl) ToDomainList(list []models.ComplaintModel) ([]*complaint.Complaint, error) {
	out := make([]*complaint.Complaint, 0, len(list))
	for i := range list {
		c, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
