package permission

import (
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// InitComplaintPermissions seeds the default complaint access table.
// It is idempotent: existing rules are skipped by the enforcer.
func InitComplaintPermissions(enforcer *Enforcer, log logger.Interface) error {
	if err := enforcer.AddPolicies(authorization.DefaultPolicies()); err != nil {
		return err
	}

	log.Infow("complaint permissions initialized", "rules", len(authorization.DefaultPolicies()))
	return nil
}
