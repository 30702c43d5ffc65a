package complaint

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/civictrack/civictrack/internal/domain/complaint/valueobjects"
)

const (
	MinDescriptionLength = 10
	MaxDescriptionLength = 5000
	maxNotesLength       = 5000
)

// Complaint is a citizen-filed report of a civic issue.
//
// humanID and citizenID are write-once. completedAt is stamped whenever
// status is set to resolved and is never cleared afterwards.
type Complaint struct {
	id                 uint
	sid                string
	humanID            string
	citizenID          uint
	issueType          vo.IssueType
	description        string
	location           vo.Location
	image              *string
	status             vo.ComplaintStatus
	priority           vo.Priority
	assignedDepartment *vo.Department
	assignedOfficerID  *uint
	resolutionNotes    *string
	completedAt        *time.Time
	rating             *vo.Rating
	createdAt          time.Time
	updatedAt          time.Time
}

// NewComplaint creates a pending, medium-priority, unassigned complaint.
func NewComplaint(
	citizenID uint,
	issueType vo.IssueType,
	description string,
	location vo.Location,
	image *string,
	shortIDGenerator func() (string, error),
) (*Complaint, error) {
	if citizenID == 0 {
		return nil, fmt.Errorf("citizen ID is required")
	}
	if !issueType.IsValid() {
		return nil, fmt.Errorf("invalid issue type: %s", issueType)
	}

	description = strings.TrimSpace(description)
	if n := utf8.RuneCountInString(description); n < MinDescriptionLength {
		return nil, fmt.Errorf("description must be at least %d characters", MinDescriptionLength)
	} else if n > MaxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", MaxDescriptionLength)
	}

	if location.Address() == "" {
		return nil, fmt.Errorf("location is required")
	}

	if image != nil && *image == "" {
		image = nil
	}

	sid, err := shortIDGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to generate complaint ID: %w", err)
	}

	now := time.Now().UTC()
	return &Complaint{
		sid:         sid,
		citizenID:   citizenID,
		issueType:   issueType,
		description: description,
		location:    location,
		image:       image,
		status:      vo.StatusPending,
		priority:    vo.PriorityMedium,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructComplaint rebuilds a complaint from persistence.
func ReconstructComplaint(
	id uint,
	sid string,
	humanID string,
	citizenID uint,
	issueType vo.IssueType,
	description string,
	location vo.Location,
	image *string,
	status vo.ComplaintStatus,
	priority vo.Priority,
	assignedDepartment *vo.Department,
	assignedOfficerID *uint,
	resolutionNotes *string,
	completedAt *time.Time,
	rating *vo.Rating,
	createdAt, updatedAt time.Time,
) (*Complaint, error) {
	if id == 0 {
		return nil, fmt.Errorf("complaint ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("complaint SID is required")
	}
	if humanID == "" {
		return nil, fmt.Errorf("complaint human ID is required")
	}
	if !issueType.IsValid() {
		return nil, fmt.Errorf("invalid issue type: %s", issueType)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if assignedDepartment != nil && !assignedDepartment.IsValid() {
		return nil, fmt.Errorf("invalid department: %s", *assignedDepartment)
	}

	return &Complaint{
		id:                 id,
		sid:                sid,
		humanID:            humanID,
		citizenID:          citizenID,
		issueType:          issueType,
		description:        description,
		location:           location,
		image:              image,
		status:             status,
		priority:           priority,
		assignedDepartment: assignedDepartment,
		assignedOfficerID:  assignedOfficerID,
		resolutionNotes:    resolutionNotes,
		completedAt:        completedAt,
		rating:             rating,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (c *Complaint) ID() uint {
	return c.id
}

func (c *Complaint) SID() string {
	return c.sid
}

func (c *Complaint) HumanID() string {
	return c.humanID
}

func (c *Complaint) CitizenID() uint {
	return c.citizenID
}

func (c *Complaint) IssueType() vo.IssueType {
	return c.issueType
}

func (c *Complaint) Description() string {
	return c.description
}

func (c *Complaint) Location() vo.Location {
	return c.location
}

func (c *Complaint) Image() *string {
	return c.image
}

func (c *Complaint) Status() vo.ComplaintStatus {
	return c.status
}

func (c *Complaint) Priority() vo.Priority {
	return c.priority
}

func (c *Complaint) AssignedDepartment() *vo.Department {
	return c.assignedDepartment
}

func (c *Complaint) AssignedOfficerID() *uint {
	return c.assignedOfficerID
}

func (c *Complaint) ResolutionNotes() *string {
	return c.resolutionNotes
}

func (c *Complaint) CompletedAt() *time.Time {
	return c.completedAt
}

func (c *Complaint) Rating() *vo.Rating {
	return c.rating
}

func (c *Complaint) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Complaint) UpdatedAt() time.Time {
	return c.updatedAt
}

// SetID is called by the repository after insert.
func (c *Complaint) SetID(id uint) error {
	if c.id != 0 {
		return ErrIDAlreadyAssigned
	}
	if id == 0 {
		return fmt.Errorf("complaint ID cannot be zero")
	}
	c.id = id
	return nil
}

// AssignHumanID sets the human-readable ID. It can only happen once.
func (c *Complaint) AssignHumanID(humanID string) error {
	if c.humanID != "" {
		return ErrHumanIDAlreadyAssigned
	}
	if humanID == "" {
		return fmt.Errorf("complaint human ID is required")
	}
	c.humanID = humanID
	return nil
}

// AttachImage replaces the inline photo with its stored reference. It is
// only allowed before the complaint is first persisted.
func (c *Complaint) AttachImage(ref string) error {
	if c.id != 0 {
		return fmt.Errorf("image can only be attached before the complaint is saved")
	}
	if ref == "" {
		return fmt.Errorf("image reference is required")
	}
	c.image = &ref
	return nil
}

// IsOwnedBy reports whether userID filed the complaint.
func (c *Complaint) IsOwnedBy(userID uint) bool {
	return userID != 0 && c.citizenID == userID
}

// StatusPatch carries an administrative update. Nil fields are left unchanged.
type StatusPatch struct {
	Status             *vo.ComplaintStatus
	AssignedDepartment *vo.Department
	AssignedOfficerID  *uint
	ResolutionNotes    *string
	Priority           *vo.Priority
}

// ApplyStatusPatch validates the whole patch and then applies it. Every
// status may move to every other; resolving stamps completedAt with now.
func (c *Complaint) ApplyStatusPatch(patch StatusPatch, now time.Time) error {
	if patch.Status != nil && !patch.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", *patch.Status)
	}
	if patch.AssignedDepartment != nil && !patch.AssignedDepartment.IsValid() {
		return fmt.Errorf("invalid department: %s", *patch.AssignedDepartment)
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", *patch.Priority)
	}
	if patch.AssignedOfficerID != nil && *patch.AssignedOfficerID == 0 {
		return fmt.Errorf("assigned officer ID cannot be zero")
	}
	if patch.ResolutionNotes != nil && utf8.RuneCountInString(*patch.ResolutionNotes) > maxNotesLength {
		return fmt.Errorf("resolution notes exceed maximum length of %d characters", maxNotesLength)
	}

	if patch.Status != nil {
		c.status = *patch.Status
		if c.status == vo.StatusResolved {
			completedAt := now
			c.completedAt = &completedAt
		}
	}
	if patch.AssignedDepartment != nil {
		dept := *patch.AssignedDepartment
		c.assignedDepartment = &dept
	}
	if patch.AssignedOfficerID != nil {
		officerID := *patch.AssignedOfficerID
		c.assignedOfficerID = &officerID
	}
	if patch.ResolutionNotes != nil {
		notes := *patch.ResolutionNotes
		c.resolutionNotes = &notes
	}
	if patch.Priority != nil {
		c.priority = *patch.Priority
	}

	c.updatedAt = now
	return nil
}

// Rate records the citizen's rating, replacing any earlier one.
func (c *Complaint) Rate(rating vo.Rating, now time.Time) {
	c.rating = &rating
	c.updatedAt = now
}
