package http

import (
	"gorm.io/gorm"

	"github.com/civictrack/civictrack/internal/domain/complaint"
	"github.com/civictrack/civictrack/internal/domain/user"
	"github.com/civictrack/civictrack/internal/infrastructure/repository"
)

// repositories holds the repository instances shared by the use cases.
type repositories struct {
	userRepo      user.Repository
	complaintRepo complaint.Repository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		userRepo:      repository.NewUserRepository(db),
		complaintRepo: repository.NewComplaintRepository(db),
	}
}
