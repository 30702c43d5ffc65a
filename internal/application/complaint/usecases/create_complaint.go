package usecases

import (
	"context"
	"fmt"

	"github.com/civictrack/civictrack/internal/application/complaint/dto"
	"github.com/civictrack/civictrack/internal/domain/complaint"
	vo "github.com/civictrack/civictrack/internal/domain/complaint/valueobjects"
	"github.com/civictrack/civictrack/internal/domain/user"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/id"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

type CreateComplaintCommand struct {
	Requester   authorization.Identity
	IssueType   string
	Description string
	Address     string
	Latitude    *float64
	Longitude   *float64
	Image       *string
}

type CreateComplaintUseCase struct {
	complaintRepo complaint.Repository
	userRepo      user.Repository
	humanIDs      HumanIDGenerator
	authorizer    authorization.Checker
	sanitizer     TextSanitizer
	images        ImageStore
	maxImageBytes int
	logger        logger.Interface
}

func NewCreateComplaintUseCase(
	complaintRepo complaint.Repository,
	userRepo user.Repository,
	humanIDs HumanIDGenerator,
	authorizer authorization.Checker,
	sanitizer TextSanitizer,
	images ImageStore,
	maxImageBytes int,
	logger logger.Interface,
) *CreateComplaintUseCase {
	return &CreateComplaintUseCase{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		humanIDs:      humanIDs,
		authorizer:    authorizer,
		sanitizer:     sanitizer,
		images:        images,
		maxImageBytes: maxImageBytes,
		logger:        logger,
	}
}

func (uc *CreateComplaintUseCase) Execute(ctx context.Context, cmd CreateComplaintCommand) (*dto.ComplaintDTO, error) {
	uc.logger.Infow("executing create complaint use case", "user_id", cmd.Requester.UserID, "issue_type", cmd.IssueType)

	if !uc.authorizer.Can(cmd.Requester, authorization.Complaints(), authorization.ActionCreate) {
		return nil, errors.NewForbiddenError("Only citizens can file complaints")
	}

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Warnw("invalid create complaint command", "error", err)
		return nil, err
	}

	location, err := vo.NewLocation(cmd.Address, *cmd.Latitude, *cmd.Longitude)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	sid, err := id.NewComplaintID()
	if err != nil {
		uc.logger.Errorw("failed to generate complaint id", "error", err)
		return nil, errors.NewInternalError("failed to create complaint")
	}

	newComplaint, err := complaint.NewComplaint(
		cmd.Requester.UserID,
		vo.IssueType(cmd.IssueType),
		uc.sanitizer.PlainText(cmd.Description),
		location,
		cmd.Image,
		func() (string, error) { return sid, nil },
	)
	if err != nil {
		uc.logger.Warnw("failed to create complaint entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	humanID, err := uc.humanIDs.Generate(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate complaint number", "error", err)
		return nil, errors.NewInternalError("failed to create complaint")
	}
	if err := newComplaint.AssignHumanID(humanID); err != nil {
		return nil, errors.NewInternalError("failed to create complaint")
	}

	stored, err := uc.storeImage(ctx, newComplaint)
	if err != nil {
		return nil, err
	}

	if err := uc.complaintRepo.Create(ctx, newComplaint); err != nil {
		uc.logger.Errorw("failed to save complaint", "error", err)
		if stored {
			uc.removeImage(ctx, sid)
		}
		return nil, errors.NewInternalError("failed to create complaint")
	}

	users, err := loadParties(ctx, uc.userRepo, newComplaint)
	if err != nil {
		uc.logger.Errorw("failed to load complaint citizen", "complaint_id", newComplaint.SID(), "error", err)
		return nil, errors.NewInternalError("failed to load complaint")
	}

	uc.logger.Infow("complaint created successfully",
		"complaint_id", newComplaint.SID(),
		"human_id", newComplaint.HumanID(),
		"citizen_id", newComplaint.CitizenID())

	return dto.ToComplaintDTO(newComplaint, users, dto.UpdateView), nil
}

// storeImage uploads the inline photo and puts its reference on c.
// It reports whether anything was uploaded.
func (uc *CreateComplaintUseCase) storeImage(ctx context.Context, c *complaint.Complaint) (bool, error) {
	if uc.images == nil || c.Image() == nil {
		return false, nil
	}

	ref, err := uc.images.Store(ctx, c.SID(), *c.Image())
	if err != nil {
		uc.logger.Errorw("failed to store complaint image", "complaint_id", c.SID(), "error", err)
		return false, errors.NewInternalError("failed to store complaint image")
	}
	if err := c.AttachImage(ref); err != nil {
		uc.removeImage(ctx, c.SID())
		return false, errors.NewInternalError("failed to store complaint image")
	}
	return true, nil
}

func (uc *CreateComplaintUseCase) removeImage(ctx context.Context, sid string) {
	if err := uc.images.Remove(ctx, sid); err != nil {
		uc.logger.Warnw("failed to remove orphaned complaint image", "complaint_id", sid, "error", err)
	}
}

func (uc *CreateComplaintUseCase) validateCommand(cmd CreateComplaintCommand) error {
	if cmd.IssueType == "" {
		return errors.NewValidationError("Please select an issue type")
	}
	if !vo.IssueType(cmd.IssueType).IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid issue type: %s", cmd.IssueType))
	}
	if cmd.Description == "" {
		return errors.NewValidationError("Please provide a description")
	}
	if cmd.Address == "" || cmd.Latitude == nil || cmd.Longitude == nil {
		return errors.NewValidationError("Please provide address, latitude and longitude")
	}
	if cmd.Image != nil && uc.maxImageBytes > 0 && len(*cmd.Image) > uc.maxImageBytes {
		return errors.NewValidationError(fmt.Sprintf("image exceeds maximum size of %d bytes", uc.maxImageBytes))
	}
	return nil
}
