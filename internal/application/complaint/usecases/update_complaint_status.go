package usecases

import (
	"context"
	"time"

	"github.com/civictrack/civictrack/internal/application/complaint/dto"
	"github.com/civictrack/civictrack/internal/domain/complaint"
	vo "github.com/civictrack/civictrack/internal/domain/complaint/valueobjects"
	"github.com/civictrack/civictrack/internal/domain/user"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// UpdateComplaintStatusCommand is a partial update; nil fields stay as they are.
// AssignedOfficer is the officer's external user ID.
type UpdateComplaintStatusCommand struct {
	Requester          authorization.Identity
	ComplaintID        string
	Status             *string
	AssignedDepartment *string
	AssignedOfficer    *string
	ResolutionNotes    *string
	Priority           *string
}

type UpdateComplaintStatusUseCase struct {
	complaintRepo complaint.Repository
	userRepo      user.Repository
	authorizer    authorization.Checker
	sanitizer     TextSanitizer
	notifier      StatusNotifier
	logger        logger.Interface
	now           func() time.Time
}

func NewUpdateComplaintStatusUseCase(
	complaintRepo complaint.Repository,
	userRepo user.Repository,
	authorizer authorization.Checker,
	sanitizer TextSanitizer,
	notifier StatusNotifier,
	logger logger.Interface,
) *UpdateComplaintStatusUseCase {
	return &UpdateComplaintStatusUseCase{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		authorizer:    authorizer,
		sanitizer:     sanitizer,
		notifier:      notifier,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (uc *UpdateComplaintStatusUseCase) Execute(ctx context.Context, cmd UpdateComplaintStatusCommand) (*dto.ComplaintDTO, error) {
	uc.logger.Infow("executing update complaint status use case", "complaint_id", cmd.ComplaintID, "user_id", cmd.Requester.UserID)

	c, err := findComplaint(ctx, uc.complaintRepo, uc.logger, cmd.ComplaintID)
	if err != nil {
		return nil, err
	}

	if !uc.authorizer.Can(cmd.Requester, authorization.Complaint(c.CitizenID()), authorization.ActionUpdate) {
		return nil, errors.NewForbiddenError("Not authorized to update this complaint")
	}

	patch, err := uc.buildPatch(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if err := c.ApplyStatusPatch(patch, uc.now()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.complaintRepo.UpdateStatusPatch(ctx, c, patch); err != nil {
		uc.logger.Errorw("failed to update complaint", "complaint_id", c.SID(), "error", err)
		return nil, errors.NewInternalError("failed to update complaint")
	}

	c, err = reloadComplaint(ctx, uc.complaintRepo, uc.logger, c)
	if err != nil {
		return nil, err
	}

	users, err := loadParties(ctx, uc.userRepo, c)
	if err != nil {
		uc.logger.Errorw("failed to load complaint parties", "complaint_id", c.SID(), "error", err)
		return nil, errors.NewInternalError("failed to load complaint")
	}

	if patch.Status != nil && patch.Status.IsFinal() {
		uc.notify(ctx, users[c.CitizenID()], c)
	}

	uc.logger.Infow("complaint updated successfully",
		"complaint_id", c.SID(),
		"status", c.Status(),
		"updated_by", cmd.Requester.UserID)

	return dto.ToComplaintDTO(c, users, dto.UpdateView), nil
}

func (uc *UpdateComplaintStatusUseCase) buildPatch(ctx context.Context, cmd UpdateComplaintStatusCommand) (complaint.StatusPatch, error) {
	var patch complaint.StatusPatch

	if cmd.Status != nil {
		status, err := vo.NewComplaintStatus(*cmd.Status)
		if err != nil {
			return patch, errors.NewValidationError(err.Error())
		}
		patch.Status = &status
	}
	if cmd.AssignedDepartment != nil {
		dept, err := vo.NewDepartment(*cmd.AssignedDepartment)
		if err != nil {
			return patch, errors.NewValidationError(err.Error())
		}
		patch.AssignedDepartment = &dept
	}
	if cmd.Priority != nil {
		priority, err := vo.NewPriority(*cmd.Priority)
		if err != nil {
			return patch, errors.NewValidationError(err.Error())
		}
		patch.Priority = &priority
	}
	if cmd.ResolutionNotes != nil {
		notes := uc.sanitizer.PlainText(*cmd.ResolutionNotes)
		patch.ResolutionNotes = &notes
	}
	if cmd.AssignedOfficer != nil {
		officer, err := uc.userRepo.GetBySID(ctx, *cmd.AssignedOfficer)
		if err != nil {
			uc.logger.Errorw("failed to look up officer", "officer_id", *cmd.AssignedOfficer, "error", err)
			return patch, errors.NewInternalError("failed to update complaint")
		}
		if officer == nil {
			return patch, errors.NewValidationError("Assigned officer not found")
		}
		if !officer.IsStaff() {
			return patch, errors.NewValidationError("Assigned officer must be a department officer or admin")
		}
		officerID := officer.ID()
		patch.AssignedOfficerID = &officerID
	}

	return patch, nil
}

// notify is best effort: the update has already been stored.
func (uc *UpdateComplaintStatusUseCase) notify(ctx context.Context, citizen *user.User, c *complaint.Complaint) {
	if uc.notifier == nil || citizen == nil {
		return
	}
	if err := uc.notifier.NotifyStatusChanged(ctx, citizen, c); err != nil {
		uc.logger.Warnw("failed to send complaint status notification",
			"complaint_id", c.SID(),
			"citizen_id", citizen.SID(),
			"error", err)
	}
}
