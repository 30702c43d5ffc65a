package usecases

import (
	"context"
	stderrors "errors"

	"github.com/civictrack/civictrack/internal/domain/complaint"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

type DeleteComplaintCommand struct {
	Requester   authorization.Identity
	ComplaintID string
}

type DeleteComplaintUseCase struct {
	complaintRepo complaint.Repository
	authorizer    authorization.Checker
	images        ImageStore
	logger        logger.Interface
}

func NewDeleteComplaintUseCase(
	complaintRepo complaint.Repository,
	authorizer authorization.Checker,
	images ImageStore,
	logger logger.Interface,
) *DeleteComplaintUseCase {
	return &DeleteComplaintUseCase{
		complaintRepo: complaintRepo,
		authorizer:    authorizer,
		images:        images,
		logger:        logger,
	}
}

func (uc *DeleteComplaintUseCase) Execute(ctx context.Context, cmd DeleteComplaintCommand) error {
	c, err := findComplaint(ctx, uc.complaintRepo, uc.logger, cmd.ComplaintID)
	if err != nil {
		return err
	}

	if !uc.authorizer.Can(cmd.Requester, authorization.Complaint(c.CitizenID()), authorization.ActionDelete) {
		return errors.NewForbiddenError("Not authorized to delete this complaint")
	}

	if err := uc.complaintRepo.Delete(ctx, c.ID()); err != nil {
		if stderrors.Is(err, complaint.ErrComplaintNotFound) {
			return errors.NewNotFoundError(msgComplaintNotFound)
		}
		uc.logger.Errorw("failed to delete complaint", "complaint_id", c.SID(), "error", err)
		return errors.NewInternalError("failed to delete complaint")
	}

	if uc.images != nil && c.Image() != nil {
		if err := uc.images.Remove(ctx, c.SID()); err != nil {
			uc.logger.Warnw("failed to remove complaint image", "complaint_id", c.SID(), "error", err)
		}
	}

	uc.logger.Infow("complaint deleted", "complaint_id", c.SID(), "deleted_by", cmd.Requester.UserID)
	return nil
}
