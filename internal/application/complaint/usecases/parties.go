package usecases

import (
	"context"
	"fmt"

	"github.com/civictrack/civictrack/internal/domain/complaint"
	"github.com/civictrack/civictrack/internal/domain/user"
)

// loadParties fetches citizens and officers referenced by complaints in one query.
func loadParties(ctx context.Context, userRepo user.Repository, complaints ...*complaint.Complaint) (map[uint]*user.User, error) {
	seen := make(map[uint]bool)
	ids := make([]uint, 0, len(complaints)*2)
	for _, c := range complaints {
		if c == nil {
			continue
		}
		if !seen[c.CitizenID()] {
			seen[c.CitizenID()] = true
			ids = append(ids, c.CitizenID())
		}
		if officerID := c.AssignedOfficerID(); officerID != nil && !seen[*officerID] {
			seen[*officerID] = true
			ids = append(ids, *officerID)
		}
	}

	users := make(map[uint]*user.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	found, err := userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load complaint parties: %w", err)
	}
	for _, u := range found {
		users[u.ID()] = u
	}
	return users, nil
}
