package mappers

import (
	"fmt"

	"github.com/civictrack/civictrack/internal/domain/user"
	vo "github.com/civictrack/civictrack/internal/domain/user/valueobjects"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/models"
	"github.com/civictrack/civictrack/internal/shared/authorization"
)

type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
	ToDomainList(models []models.UserModel) ([]*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		SID:          u.SID(),
		Email:        u.Email().String(),
		Name:         u.Name().String(),
		Phone:        u.Phone(),
		Address:      u.Address(),
		City:         u.City(),
		Role:         u.Role().String(),
		PasswordHash: u.PasswordHash(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid stored email (user id=%d): %w", model.ID, err)
	}
	name, err := vo.NewName(model.Name)
	if err != nil {
		return nil, fmt.Errorf("invalid stored name (user id=%d): %w", model.ID, err)
	}

	return user.ReconstructUser(
		model.ID,
		model.SID,
		name,
		email,
		model.PasswordHash,
		authorization.UserRole(model.Role),
		user.Contact{Phone: model.Phone, Address: model.Address, City: model.City},
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *UserMapperImpl) ToDomainList(list []models.UserModel) ([]*user.User, error) {
	out := make([]*user.User, 0, len(list))
	for i := range list {
		u, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
