package usecases

import (
	"context"

	"github.com/civictrack/civictrack/internal/domain/complaint"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/id"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

const msgComplaintNotFound = "Complaint not found"

// findComplaint resolves an external ID. Malformed and unknown IDs are both
// reported as not found.
func findComplaint(ctx context.Context, repo complaint.Repository, log logger.Interface, sid string) (*complaint.Complaint, error) {
	if err := id.ValidatePrefix(sid, id.PrefixComplaint); err != nil {
		return nil, errors.NewNotFoundError(msgComplaintNotFound)
	}

	c, err := repo.GetBySID(ctx, sid)
	if err != nil {
		log.Errorw("failed to get complaint", "complaint_id", sid, "error", err)
		return nil, errors.NewInternalError("failed to get complaint")
	}
	if c == nil {
		return nil, errors.NewNotFoundError(msgComplaintNotFound)
	}
	return c, nil
}

// reloadComplaint reads a complaint back by its internal ID after a partial
// write, so the response reflects concurrent changes to other fields.
func reloadComplaint(ctx context.Context, repo complaint.Repository, log logger.Interface, c *complaint.Complaint) (*complaint.Complaint, error) {
	fresh, err := repo.GetByID(ctx, c.ID())
	if err != nil {
		log.Errorw("failed to reload complaint", "complaint_id", c.SID(), "error", err)
		return nil, errors.NewInternalError("failed to get complaint")
	}
	if fresh == nil {
		return nil, errors.NewNotFoundError(msgComplaintNotFound)
	}
	return fresh, nil
}
