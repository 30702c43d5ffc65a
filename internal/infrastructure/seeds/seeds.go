// Package seeds provisions staff accounts from a YAML file. Self-registration
// only ever creates citizens, so admins and department officers come from here.
package seeds

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/civictrack/civictrack/internal/domain/user"
	vo "github.com/civictrack/civictrack/internal/domain/user/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/id"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

// File is the seed document.
//
//	users:
//	  - name: City Administrator
//	    email: admin@civictrack.local
//	    password: ${CIVICTRACK_ADMIN_PASSWORD}
//	    role: admin
type File struct {
	Users []StaffUser `yaml:"users"`
}

type StaffUser struct {
	Name     string `yaml:"name" validate:"required"`
	Email    string `yaml:"email" validate:"required,email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role" validate:"required,oneof=admin department_officer citizen"`
	Phone    string `yaml:"phone"`
	Address  string `yaml:"address"`
	City     string `yaml:"city"`
}

// Result counts what Apply did.
type Result struct {
	Created   int
	Updated   int
	Unchanged int
}

// Load reads path and expands ${VAR} references so passwords can stay out of the file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

type Seeder struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	logger   logger.Interface
}

func NewSeeder(userRepo user.Repository, hasher user.PasswordHasher, log logger.Interface) *Seeder {
	return &Seeder{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   log.With("component", "seeds"),
	}
}

// Apply creates missing accounts and corrects the role of existing ones.
// Passwords of existing accounts are never touched.
func (s *Seeder) Apply(ctx context.Context, f *File) (*Result, error) {
	result := &Result{}

	for i, su := range f.Users {
		if err := utils.ValidateStruct(su); err != nil {
			return result, fmt.Errorf("users[%d]: %w", i, err)
		}

		role := authorization.UserRole(strings.TrimSpace(su.Role))
		if !role.IsValid() {
			return result, fmt.Errorf("users[%d]: invalid role %q", i, su.Role)
		}

		email, err := vo.NewEmail(su.Email)
		if err != nil {
			return result, fmt.Errorf("users[%d]: %w", i, err)
		}

		existing, err := s.userRepo.GetByEmail(ctx, email.String())
		if err != nil {
			return result, fmt.Errorf("users[%d]: failed to look up %s: %w", i, email, err)
		}

		if existing != nil {
			if existing.Role() == role {
				result.Unchanged++
				continue
			}
			if err := existing.ChangeRole(role); err != nil {
				return result, fmt.Errorf("users[%d]: %w", i, err)
			}
			if err := s.userRepo.Update(ctx, existing); err != nil {
				return result, fmt.Errorf("users[%d]: failed to update %s: %w", i, email, err)
			}
			s.logger.Infow("staff role updated", "email", email.String(), "role", role.String())
			result.Updated++
			continue
		}

		if err := s.create(ctx, su, email, role); err != nil {
			return result, fmt.Errorf("users[%d]: %w", i, err)
		}
		s.logger.Infow("staff account created", "email", email.String(), "role", role.String())
		result.Created++
	}

	return result, nil
}

func (s *Seeder) create(ctx context.Context, su StaffUser, email vo.Email, role authorization.UserRole) error {
	name, err := vo.NewName(su.Name)
	if err != nil {
		return err
	}
	if len(su.Password) < 8 {
		return fmt.Errorf("password for %s must be at least 8 characters", email)
	}

	hash, err := s.hasher.Hash(su.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := user.NewUser(name, email, hash, role, user.Contact{
		Phone:   su.Phone,
		Address: su.Address,
		City:    su.City,
	}, id.NewUserID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return fmt.Errorf("failed to create %s: %w", email, err)
	}
	return nil
}
