package complaint

import (
	"github.com/gin-gonic/gin"

	"github.com/civictrack/civictrack/internal/application/complaint/usecases"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

// CreateComplaintRequest is the body of POST /complaints. Location fields are
// flat; image is an optional data URL.
type CreateComplaintRequest struct {
	IssueType   string   `json:"issueType" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Address     string   `json:"address" binding:"required"`
	Latitude    *float64 `json:"latitude" binding:"required"`
	Longitude   *float64 `json:"longitude" binding:"required"`
	Image       *string  `json:"image,omitempty"`
}

func (r *CreateComplaintRequest) ToCommand(requester authorization.Identity) usecases.CreateComplaintCommand {
	return usecases.CreateComplaintCommand{
		Requester:   requester,
		IssueType:   r.IssueType,
		Description: r.Description,
		Address:     r.Address,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Image:       r.Image,
	}
}

// UpdateStatusRequest carries any subset of the triage fields; omitted
// fields are left untouched.
type UpdateStatusRequest struct {
	Status             *string `json:"status,omitempty"`
	AssignedDepartment *string `json:"assignedDepartment,omitempty"`
	AssignedOfficer    *string `json:"assignedOfficer,omitempty"`
	ResolutionNotes    *string `json:"resolutionNotes,omitempty"`
	Priority           *string `json:"priority,omitempty"`
}

func (r *UpdateStatusRequest) ToCommand(requester authorization.Identity, complaintID string) usecases.UpdateComplaintStatusCommand {
	return usecases.UpdateComplaintStatusCommand{
		Requester:          requester,
		ComplaintID:        complaintID,
		Status:             r.Status,
		AssignedDepartment: r.AssignedDepartment,
		AssignedOfficer:    r.AssignedOfficer,
		ResolutionNotes:    r.ResolutionNotes,
		Priority:           r.Priority,
	}
}

type RateComplaintRequest struct {
	Rating   *int   `json:"rating"`
	Feedback string `json:"feedback,omitempty"`
}

func (r *RateComplaintRequest) ToCommand(requester authorization.Identity, complaintID string) usecases.RateComplaintCommand {
	return usecases.RateComplaintCommand{
		Requester:   requester,
		ComplaintID: complaintID,
		Rating:      r.Rating,
		Feedback:    r.Feedback,
	}
}

func parseListComplaintsQuery(c *gin.Context, requester authorization.Identity) usecases.ListComplaintsQuery {
	pagination := utils.ParsePagination(c)
	return usecases.ListComplaintsQuery{
		Requester: requester,
		Status:    c.Query("status"),
		IssueType: c.Query("issueType"),
		Page:      pagination.Page,
		Limit:     pagination.Limit,
	}
}
