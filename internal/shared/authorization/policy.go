package authorization

// Identity is the authenticated caller as seen by the authorization layer.
type Identity struct {
	UserID uint
	Role   UserRole
}

type Action string

const (
	ActionCreate Action = "create"
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionRate   Action = "rate"
	ActionDelete Action = "delete"
	ActionStats  Action = "stats"
)

const ResourceComplaint = "complaint"

// Scope qualifies a request or a policy by ownership.
type Scope string

const (
	ScopeAny   Scope = "any"
	ScopeOwn   Scope = "own"
	ScopeOther Scope = "other"
)

// Resource describes what is being acted on. OwnerID is zero for
// collection-level actions such as create, list and stats.
type Resource struct {
	Kind    string
	OwnerID uint
}

// Complaint returns the resource for a single complaint owned by ownerID.
func Complaint(ownerID uint) Resource {
	return Resource{Kind: ResourceComplaint, OwnerID: ownerID}
}

// Complaints returns the collection-level complaint resource.
func Complaints() Resource {
	return Resource{Kind: ResourceComplaint}
}

// ScopeFor resolves the request scope of identity against resource.
func ScopeFor(identity Identity, resource Resource) Scope {
	if identity.UserID != 0 && resource.OwnerID == identity.UserID {
		return ScopeOwn
	}
	return ScopeOther
}

// Policy is one allow rule. Scope is ScopeAny or ScopeOwn.
type Policy struct {
	Role     UserRole
	Resource string
	Action   Action
	Scope    Scope
}

// Checker decides whether identity may perform action on resource.
// Implementations are pure: no storage lookups happen behind Can.
type Checker interface {
	Can(identity Identity, resource Resource, action Action) bool
}

// DefaultPolicies is the complaint access table.
func DefaultPolicies() []Policy {
	return []Policy{
		{RoleCitizen, ResourceComplaint, ActionCreate, ScopeAny},
		{RoleCitizen, ResourceComplaint, ActionList, ScopeAny},
		{RoleCitizen, ResourceComplaint, ActionRead, ScopeOwn},
		{RoleCitizen, ResourceComplaint, ActionRate, ScopeOwn},
		{RoleCitizen, ResourceComplaint, ActionDelete, ScopeOwn},

		{RoleDepartmentOfficer, ResourceComplaint, ActionList, ScopeAny},
		{RoleDepartmentOfficer, ResourceComplaint, ActionRead, ScopeAny},
		{RoleDepartmentOfficer, ResourceComplaint, ActionUpdate, ScopeAny},
		{RoleDepartmentOfficer, ResourceComplaint, ActionStats, ScopeAny},

		{RoleAdmin, ResourceComplaint, ActionList, ScopeAny},
		{RoleAdmin, ResourceComplaint, ActionRead, ScopeAny},
		{RoleAdmin, ResourceComplaint, ActionUpdate, ScopeAny},
		{RoleAdmin, ResourceComplaint, ActionDelete, ScopeAny},
		{RoleAdmin, ResourceComplaint, ActionStats, ScopeAny},
	}
}
