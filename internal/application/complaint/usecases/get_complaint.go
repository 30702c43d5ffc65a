package usecases

import (
	"context"

	"github.com/civictrack/civictrack/internal/application/complaint/dto"
	"github.com/civictrack/civictrack/internal/domain/complaint"
	"github.com/civictrack/civictrack/internal/domain/user"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

type GetComplaintQuery struct {
	Requester   authorization.Identity
	ComplaintID string
}

type GetComplaintUseCase struct {
	complaintRepo complaint.Repository
	userRepo      user.Repository
	authorizer    authorization.Checker
	logger        logger.Interface
}

func NewGetComplaintUseCase(
	complaintRepo complaint.Repository,
	userRepo user.Repository,
	authorizer authorization.Checker,
	logger logger.Interface,
) *GetComplaintUseCase {
	return &GetComplaintUseCase{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		authorizer:    authorizer,
		logger:        logger,
	}
}

func (uc *GetComplaintUseCase) Execute(ctx context.Context, query GetComplaintQuery) (*dto.ComplaintDTO, error) {
	c, err := findComplaint(ctx, uc.complaintRepo, uc.logger, query.ComplaintID)
	if err != nil {
		return nil, err
	}

	if !uc.authorizer.Can(query.Requester, authorization.Complaint(c.CitizenID()), authorization.ActionRead) {
		uc.logger.Warnw("complaint read denied", "complaint_id", c.SID(), "user_id", query.Requester.UserID)
		return nil, errors.NewForbiddenError("Not authorized to view this complaint")
	}

	users, err := loadParties(ctx, uc.userRepo, c)
	if err != nil {
		uc.logger.Errorw("failed to load complaint parties", "complaint_id", c.SID(), "error", err)
		return nil, errors.NewInternalError("failed to get complaint")
	}

	return dto.ToComplaintDTO(c, users, dto.DetailView), nil
}
