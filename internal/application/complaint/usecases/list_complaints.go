package usecases

import (
	"context"

	"github.com/civictrack/civictrack/internal/application/complaint/dto"
	"github.com/civictrack/civictrack/internal/domain/complaint"
	vo "github.com/civictrack/civictrack/internal/domain/complaint/valueobjects"
	"github.com/civictrack/civictrack/internal/domain/user"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

type ListComplaintsQuery struct {
	Requester authorization.Identity
	Status    string
	IssueType string
	Page      int
	Limit     int
}

type ListComplaintsResult struct {
	Complaints []*dto.ComplaintDTO
	Total      int64
	Page       int
	Limit      int
	Pages      int
}

type ListComplaintsUseCase struct {
	complaintRepo complaint.Repository
	userRepo      user.Repository
	authorizer    authorization.Checker
	logger        logger.Interface
}

func NewListComplaintsUseCase(
	complaintRepo complaint.Repository,
	userRepo user.Repository,
	authorizer authorization.Checker,
	logger logger.Interface,
) *ListComplaintsUseCase {
	return &ListComplaintsUseCase{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		authorizer:    authorizer,
		logger:        logger,
	}
}

func (uc *ListComplaintsUseCase) Execute(ctx context.Context, query ListComplaintsQuery) (*ListComplaintsResult, error) {
	if !uc.authorizer.Can(query.Requester, authorization.Complaints(), authorization.ActionList) {
		return nil, errors.NewForbiddenError("Not authorized to list complaints")
	}

	pagination := utils.ValidatePagination(query.Page, query.Limit)
	filter := complaint.Filter{
		Page:     pagination.Page,
		PageSize: pagination.Limit,
	}

	if query.Status != "" {
		status, err := vo.NewComplaintStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if query.IssueType != "" {
		issueType, err := vo.NewIssueType(query.IssueType)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.IssueType = &issueType
	}

	// Citizens only ever see their own complaints, whatever else was asked for.
	if query.Requester.Role.IsCitizen() {
		citizenID := query.Requester.UserID
		filter.CitizenID = &citizenID
	}

	complaints, total, err := uc.complaintRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list complaints", "error", err)
		return nil, errors.NewInternalError("failed to list complaints")
	}

	users, err := loadParties(ctx, uc.userRepo, complaints...)
	if err != nil {
		uc.logger.Errorw("failed to load complaint parties", "error", err)
		return nil, errors.NewInternalError("failed to list complaints")
	}

	items := make([]*dto.ComplaintDTO, 0, len(complaints))
	for _, c := range complaints {
		items = append(items, dto.ToComplaintDTO(c, users, dto.ListView))
	}

	return &ListComplaintsResult{
		Complaints: items,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		Pages:      utils.TotalPages(total, pagination.Limit),
	}, nil
}
