package complaint

import (
	"context"

	vo "github.com/civictrack/civictrack/internal/domain/complaint/valueobjects"
)

// Repository persists complaints. Lookups return nil, nil when the
// complaint does not exist.
//
// The update methods write only the columns their operation changes, so
// concurrent updates to different fields do not overwrite each other.
type Repository interface {
	Create(ctx context.Context, complaint *Complaint) error
	UpdateStatusPatch(ctx context.Context, complaint *Complaint, patch StatusPatch) error
	UpdateRating(ctx context.Context, complaint *Complaint) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Complaint, error)
	GetBySID(ctx context.Context, sid string) (*Complaint, error)
	List(ctx context.Context, filter Filter) ([]*Complaint, int64, error)
	Stats(ctx context.Context) (*Stats, error)
}

// Filter narrows List by equality. Results are newest first.
type Filter struct {
	Status    *vo.ComplaintStatus
	IssueType *vo.IssueType
	CitizenID *uint
	Page      int
	PageSize  int
}

// Stats aggregates the whole collection.
type Stats struct {
	Total       int64
	ByStatus    map[vo.ComplaintStatus]int64
	ByIssueType []IssueTypeCount
}

type IssueTypeCount struct {
	IssueType vo.IssueType
	Count     int64
}

// CountFor returns the number of complaints in status, zero when absent.
func (s *Stats) CountFor(status vo.ComplaintStatus) int64 {
	if s == nil || s.ByStatus == nil {
		return 0
	}
	return s.ByStatus[status]
}
