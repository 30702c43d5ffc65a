package valueobjects

import "fmt"

type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "pending"
	StatusInProgress ComplaintStatus = "in_progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusRejected   ComplaintStatus = "rejected"
)

var validComplaintStatuses = map[ComplaintStatus]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusResolved:   true,
	StatusRejected:   true,
}

// AllStatuses lists every status in display order.
func AllStatuses() []ComplaintStatus {
	return []ComplaintStatus{StatusPending, StatusInProgress, StatusResolved, StatusRejected}
}

func (s ComplaintStatus) String() string {
	return string(s)
}

func (s ComplaintStatus) IsValid() bool {
	return validComplaintStatuses[s]
}

// IsFinal reports whether the citizen should be told the outcome.
// Any status can still move to any other.
func (s ComplaintStatus) IsFinal() bool {
	return s == StatusResolved || s == StatusRejected
}

func NewComplaintStatus(s string) (ComplaintStatus, error) {
	status := ComplaintStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return status, nil
}
