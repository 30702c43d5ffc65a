package http

import (
	complaintUsecases "github.com/civictrack/civictrack/internal/application/complaint/usecases"
	userUsecases "github.com/civictrack/civictrack/internal/application/user/usecases"
	"github.com/civictrack/civictrack/internal/infrastructure/config"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// allUseCases holds the use case instances handed to the handlers.
type allUseCases struct {
	// Auth
	registerUC       *userUsecases.RegisterUseCase
	loginUC          *userUsecases.LoginUseCase
	getCurrentUserUC *userUsecases.GetCurrentUserUseCase
	updateProfileUC  *userUsecases.UpdateProfileUseCase

	// Complaints
	createComplaintUC *complaintUsecases.CreateComplaintUseCase
	listComplaintsUC  *complaintUsecases.ListComplaintsUseCase
	getComplaintUC    *complaintUsecases.GetComplaintUseCase
	updateStatusUC    *complaintUsecases.UpdateComplaintStatusUseCase
	rateComplaintUC   *complaintUsecases.RateComplaintUseCase
	deleteComplaintUC *complaintUsecases.DeleteComplaintUseCase
	complaintStatsUC  *complaintUsecases.GetComplaintStatsUseCase
}

// ============================================================
// Section 2: Use cases
// ============================================================

func newUseCases(repos *repositories, svcs *services, cfg *config.Config, log logger.Interface) *allUseCases {
	authLog := log.Named("auth")
	complaintLog := log.Named("complaint")

	return &allUseCases{
		registerUC:       userUsecases.NewRegisterUseCase(repos.userRepo, svcs.hasher, svcs.tokens, authLog),
		loginUC:          userUsecases.NewLoginUseCase(repos.userRepo, svcs.hasher, svcs.tokens, authLog),
		getCurrentUserUC: userUsecases.NewGetCurrentUserUseCase(repos.userRepo, authLog),
		updateProfileUC:  userUsecases.NewUpdateProfileUseCase(repos.userRepo, authLog),

		createComplaintUC: complaintUsecases.NewCreateComplaintUseCase(
			repos.complaintRepo,
			repos.userRepo,
			svcs.humanIDs,
			svcs.authorizer,
			svcs.sanitizer,
			svcs.images,
			cfg.Complaint.MaxImageBytes,
			complaintLog,
		),
		listComplaintsUC: complaintUsecases.NewListComplaintsUseCase(
			repos.complaintRepo, repos.userRepo, svcs.authorizer, complaintLog,
		),
		getComplaintUC: complaintUsecases.NewGetComplaintUseCase(
			repos.complaintRepo, repos.userRepo, svcs.authorizer, complaintLog,
		),
		updateStatusUC: complaintUsecases.NewUpdateComplaintStatusUseCase(
			repos.complaintRepo, repos.userRepo, svcs.authorizer, svcs.sanitizer, svcs.notifier, complaintLog,
		),
		rateComplaintUC: complaintUsecases.NewRateComplaintUseCase(
			repos.complaintRepo, repos.userRepo, svcs.authorizer, svcs.sanitizer, complaintLog,
		),
		deleteComplaintUC: complaintUsecases.NewDeleteComplaintUseCase(
			repos.complaintRepo, svcs.authorizer, svcs.images, complaintLog,
		),
		complaintStatsUC: complaintUsecases.NewGetComplaintStatsUseCase(
			repos.complaintRepo, svcs.authorizer, complaintLog,
		),
	}
}
