package dto

import (
	"time"

	"github.com/civictrack/civictrack/internal/domain/complaint"
	vo "github.com/civictrack/civictrack/internal/domain/complaint/valueobjects"
	"github.com/civictrack/civictrack/internal/domain/user"
)

// PartyDetail selects which user fields are attached to a complaint.
type PartyDetail int

const (
	// PartyNone attaches only the user ID.
	PartyNone PartyDetail = iota
	// PartyBasic attaches name and email.
	PartyBasic
	// PartyContact adds phone.
	PartyContact
	// PartyFull adds address and city.
	PartyFull
)

// View chooses the party detail for citizen and officer.
type View struct {
	Citizen PartyDetail
	Officer PartyDetail
}

var (
	// ListView is used by list and rate.
	ListView = View{Citizen: PartyContact, Officer: PartyBasic}
	// DetailView is used by get.
	DetailView = View{Citizen: PartyFull, Officer: PartyContact}
	// UpdateView is used by create and updateStatus.
	UpdateView = View{Citizen: PartyContact, Officer: PartyContact}
)

type PartyDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
}

type LocationDTO struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type RatingDTO struct {
	Rating   *int    `json:"rating"`
	Feedback *string `json:"feedback"`
}

type ComplaintDTO struct {
	ID                 string      `json:"id"`
	ComplaintID        string      `json:"complaintId"`
	Citizen            *PartyDTO   `json:"citizen"`
	IssueType          string      `json:"issueType"`
	Description        string      `json:"description"`
	Location           LocationDTO `json:"location"`
	Image              *string     `json:"image"`
	Status             string      `json:"status"`
	Priority           string      `json:"priority"`
	AssignedDepartment *string     `json:"assignedDepartment"`
	AssignedOfficer    *PartyDTO   `json:"assignedOfficer"`
	ResolutionNotes    *string     `json:"resolutionNotes"`
	CompletedAt        *time.Time  `json:"completedAt"`
	Ratings            RatingDTO   `json:"ratings"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

type IssueTypeStatDTO struct {
	ID    string `json:"_id"`
	Count int64  `json:"count"`
}

type StatsDTO struct {
	TotalComplaints int64              `json:"totalComplaints"`
	Pending         int64              `json:"pending"`
	InProgress      int64              `json:"inProgress"`
	Resolved        int64              `json:"resolved"`
	Rejected        int64              `json:"rejected"`
	IssueTypeStats  []IssueTypeStatDTO `json:"issueTypeStats"`
}

// ToComplaintDTO maps a complaint. users holds the parties already loaded,
// keyed by internal ID; a party missing from it is rendered as null.
func ToComplaintDTO(c *complaint.Complaint, users map[uint]*user.User, view View) *ComplaintDTO {
	if c == nil {
		return nil
	}

	loc := c.Location()
	out := &ComplaintDTO{
		ID:          c.SID(),
		ComplaintID: c.HumanID(),
		Citizen:     toPartyDTO(users[c.CitizenID()], view.Citizen),
		IssueType:   c.IssueType().String(),
		Description: c.Description(),
		Location: LocationDTO{
			Address:   loc.Address(),
			Latitude:  loc.Latitude(),
			Longitude: loc.Longitude(),
		},
		Image:           c.Image(),
		Status:          c.Status().String(),
		Priority:        c.Priority().String(),
		ResolutionNotes: c.ResolutionNotes(),
		CompletedAt:     c.CompletedAt(),
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
	}

	if dept := c.AssignedDepartment(); dept != nil {
		s := dept.String()
		out.AssignedDepartment = &s
	}
	if officerID := c.AssignedOfficerID(); officerID != nil {
		out.AssignedOfficer = toPartyDTO(users[*officerID], view.Officer)
	}
	if r := c.Rating(); r != nil {
		value := r.Value()
		out.Ratings.Rating = &value
		if fb := r.Feedback(); fb != "" {
			out.Ratings.Feedback = &fb
		}
	}

	return out
}

func toPartyDTO(u *user.User, detail PartyDetail) *PartyDTO {
	if u == nil {
		return nil
	}

	p := &PartyDTO{ID: u.SID()}
	if detail >= PartyBasic {
		p.Name = u.Name().String()
		p.Email = u.Email().String()
	}
	if detail >= PartyContact {
		p.Phone = u.Phone()
	}
	if detail >= PartyFull {
		p.Address = u.Address()
		p.City = u.City()
	}
	return p
}

// ToStatsDTO flattens repository stats. Every status is present even when zero.
func ToStatsDTO(s *complaint.Stats) *StatsDTO {
	out := &StatsDTO{
		IssueTypeStats: make([]IssueTypeStatDTO, 0),
	}
	if s == nil {
		return out
	}

	out.TotalComplaints = s.Total
	out.Pending = s.CountFor(vo.StatusPending)
	out.InProgress = s.CountFor(vo.StatusInProgress)
	out.Resolved = s.CountFor(vo.StatusResolved)
	out.Rejected = s.CountFor(vo.StatusRejected)

	for _, it := range s.ByIssueType {
		out.IssueTypeStats = append(out.IssueTypeStats, IssueTypeStatDTO{
			ID:    it.IssueType.String(),
			Count: it.Count,
		})
	}
	return out
}
