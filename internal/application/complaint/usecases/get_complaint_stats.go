package usecases

import (
	"context"

	"github.com/civictrack/civictrack/internal/application/complaint/dto"
	"github.com/civictrack/civictrack/internal/domain/complaint"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

type GetComplaintStatsQuery struct {
	Requester authorization.Identity
}

type GetComplaintStatsUseCase struct {
	complaintRepo complaint.Repository
	authorizer    authorization.Checker
	logger        logger.Interface
}

func NewGetComplaintStatsUseCase(
	complaintRepo complaint.Repository,
	authorizer authorization.Checker,
	logger logger.Interface,
) *GetComplaintStatsUseCase {
	return &GetComplaintStatsUseCase{
		complaintRepo: complaintRepo,
		authorizer:    authorizer,
		logger:        logger,
	}
}

func (uc *GetComplaintStatsUseCase) Execute(ctx context.Context, query GetComplaintStatsQuery) (*dto.StatsDTO, error) {
	if !uc.authorizer.Can(query.Requester, authorization.Complaints(), authorization.ActionStats) {
		return nil, errors.NewForbiddenError("Not authorized to view complaint statistics")
	}

	stats, err := uc.complaintRepo.Stats(ctx)
	if err != nil {
		uc.logger.Errorw("failed to get complaint stats", "error", err)
		return nil, errors.NewInternalError("failed to get complaint statistics")
	}

	return dto.ToStatsDTO(stats), nil
}
