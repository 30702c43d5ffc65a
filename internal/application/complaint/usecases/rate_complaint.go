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

type RateComplaintCommand struct {
	Requester   authorization.Identity
	ComplaintID string
	Rating      *int
	Feedback    string
}

type RateComplaintUseCase struct {
	complaintRepo complaint.Repository
	userRepo      user.Repository
	authorizer    authorization.Checker
	sanitizer     TextSanitizer
	logger        logger.Interface
}

func NewRateComplaintUseCase(
	complaintRepo complaint.Repository,
	userRepo user.Repository,
	authorizer authorization.Checker,
	sanitizer TextSanitizer,
	logger logger.Interface,
) *RateComplaintUseCase {
	return &RateComplaintUseCase{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		authorizer:    authorizer,
		sanitizer:     sanitizer,
		logger:        logger,
	}
}

// Execute records the owner's rating. The complaint need not be resolved.
// The rating value is checked before the complaint is looked up.
func (uc *RateComplaintUseCase) Execute(ctx context.Context, cmd RateComplaintCommand) (*dto.ComplaintDTO, error) {
	if cmd.Rating == nil {
		return nil, errors.NewValidationError("rating is required")
	}

	rating, err := vo.NewRating(*cmd.Rating, uc.sanitizer.PlainText(cmd.Feedback))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	c, err := findComplaint(ctx, uc.complaintRepo, uc.logger, cmd.ComplaintID)
	if err != nil {
		return nil, err
	}

	if !uc.authorizer.Can(cmd.Requester, authorization.Complaint(c.CitizenID()), authorization.ActionRate) {
		return nil, errors.NewForbiddenError("Not authorized to rate this complaint")
	}

	if c.Rating() != nil {
		uc.logger.Infow("complaint rating overwritten", "complaint_id", c.SID())
	}
	c.Rate(rating, time.Now().UTC())

	if err := uc.complaintRepo.UpdateRating(ctx, c); err != nil {
		uc.logger.Errorw("failed to save complaint rating", "complaint_id", c.SID(), "error", err)
		return nil, errors.NewInternalError("failed to rate complaint")
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

	uc.logger.Infow("complaint rated", "complaint_id", c.SID(), "rating", rating.Value())

	return dto.ToComplaintDTO(c, users, dto.ListView), nil
}
