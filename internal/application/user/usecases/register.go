package usecases

import (
	"context"
	"unicode/utf8"

	"github.com/civictrack/civictrack/internal/application/user/dto"
	"github.com/civictrack/civictrack/internal/domain/user"
	vo "github.com/civictrack/civictrack/internal/domain/user/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/id"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

const (
	minPasswordLength = 6
	// bcrypt ignores input past 72 bytes
	maxPasswordBytes = 72
)

type RegisterCommand struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	City     string
}

type RegisterUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	tokens         TokenIssuer
	logger         logger.Interface
}

func NewRegisterUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		tokens:         tokens,
		logger:         logger,
	}
}

// Execute creates a citizen account. Staff accounts are provisioned by seeding only.
func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*dto.AuthResultDTO, error) {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	name, err := vo.NewName(cmd.Name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := validatePassword(cmd.Password); err != nil {
		return nil, err
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check email existence", "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}
	if exists {
		uc.logger.Warnw("registration with existing email", "email", utils.MaskEmail(email.String()))
		return nil, errors.NewConflictError("User already exists")
	}

	hash, err := uc.passwordHasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}

	newUser, err := user.NewUser(
		name,
		email,
		hash,
		authorization.RoleCitizen,
		user.Contact{Phone: cmd.Phone, Address: cmd.Address, City: cmd.City},
		id.NewUserID,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		// lost a race with a concurrent registration
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("User already exists")
		}
		uc.logger.Errorw("failed to create user in database", "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}

	result, err := issueToken(uc.tokens, newUser)
	if err != nil {
		uc.logger.Errorw("failed to issue token", "user_id", newUser.SID(), "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}

	uc.logger.Infow("user registered successfully", "user_id", newUser.SID())
	return result, nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return errors.NewValidationError("password must be at least 6 characters")
	}
	if len(password) > maxPasswordBytes {
		return errors.NewValidationError("password cannot exceed 72 bytes")
	}
	return nil
}
