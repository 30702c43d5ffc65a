package usecases

import (
	"context"
	"strings"

	"github.com/civictrack/civictrack/internal/application/user/dto"
	"github.com/civictrack/civictrack/internal/domain/user"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

const invalidCredentialsMessage = "Invalid email or password"

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	tokens         TokenIssuer
	logger         logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		tokens:         tokens,
		logger:         logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.AuthResultDTO, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("Please provide email and password")
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, errors.NewInternalError("failed to log in")
	}

	// Same response whether or not the email exists.
	if existing == nil {
		uc.logger.Debugw("login for unknown email", "email", utils.MaskEmail(email))
		return nil, errors.NewUnauthorizedError(invalidCredentialsMessage)
	}
	if err := uc.passwordHasher.Verify(cmd.Password, existing.PasswordHash()); err != nil {
		uc.logger.Warnw("failed login attempt", "user_id", existing.SID())
		return nil, errors.NewUnauthorizedError(invalidCredentialsMessage)
	}

	result, err := issueToken(uc.tokens, existing)
	if err != nil {
		uc.logger.Errorw("failed to issue token", "user_id", existing.SID(), "error", err)
		return nil, errors.NewInternalError("failed to log in")
	}

	uc.logger.Infow("user logged in successfully", "user_id", existing.SID(), "role", existing.Role())
	return result, nil
}
