package usecases

import (
	"context"

	"github.com/civictrack/civictrack/internal/application/user/dto"
	"github.com/civictrack/civictrack/internal/domain/user"
	vo "github.com/civictrack/civictrack/internal/domain/user/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// UpdateProfileCommand edits the caller's own profile; nil fields are left unchanged.
// Email and role are not editable here.
type UpdateProfileCommand struct {
	UserID  uint
	Name    *string
	Phone   *string
	Address *string
	City    *string
}

type UpdateProfileUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewUpdateProfileUseCase(userRepo user.Repository, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing update profile use case", "user_id", cmd.UserID)

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to update profile")
	}
	if u == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	update := user.ProfileUpdate{
		Phone:   cmd.Phone,
		Address: cmd.Address,
		City:    cmd.City,
	}
	if cmd.Name != nil {
		name, err := vo.NewName(*cmd.Name)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		update.Name = &name
	}

	if err := u.UpdateProfile(update); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user", "user_id", u.SID(), "error", err)
		return nil, errors.NewInternalError("failed to update profile")
	}

	uc.logger.Infow("profile updated successfully", "user_id", u.SID())
	return dto.ToUserDTO(u), nil
}
