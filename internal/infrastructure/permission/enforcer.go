package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// modelText matches a request on role, resource and action. A policy
// scoped "any" matches every owner; one scoped "own" only the owner.
const modelText = `
[request_definition]
r = sub, obj, act, scope

[policy_definition]
p = sub, obj, act, scope

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act && (p.scope == "any" || r.scope == p.scope)
`

var _ authorization.Checker = (*Enforcer)(nil)

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer builds an enforcer whose policies persist in the casbin_rule
// table through the GORM adapter.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

// NewMemoryEnforcer builds an enforcer holding the given policies in memory only.
func NewMemoryEnforcer(policies []authorization.Policy, log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	e := &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}
	if err := e.AddPolicies(policies); err != nil {
		return nil, err
	}
	return e, nil
}

// Can evaluates the policy table. Evaluation errors deny.
func (e *Enforcer) Can(identity authorization.Identity, resource authorization.Resource, action authorization.Action) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	scope := authorization.ScopeFor(identity, resource)
	allowed, err := e.enforcer.Enforce(string(identity.Role), resource.Kind, string(action), string(scope))
	if err != nil {
		e.logger.Errorw("permission check failed",
			"error", err,
			"user_id", identity.UserID,
			"role", identity.Role,
			"resource", resource.Kind,
			"action", action)
		return false
	}

	return allowed
}

// AddPolicies adds each rule; rules already present are left alone.
func (e *Enforcer) AddPolicies(policies []authorization.Policy) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range policies {
		_, err := e.enforcer.AddPolicy(string(p.Role), p.Resource, string(p.Action), string(p.Scope))
		if err != nil {
			e.logger.Errorw("failed to add policy",
				"error", err,
				"role", p.Role,
				"resource", p.Resource,
				"action", p.Action)
			return fmt.Errorf("failed to add policy [%s, %s, %s, %s]: %w",
				p.Role, p.Resource, p.Action, p.Scope, err)
		}
	}

	return nil
}
