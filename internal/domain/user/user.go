package user

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/civictrack/civictrack/internal/domain/user/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/authorization"
)

const maxContactFieldLength = 255

// User is an account holder: a citizen filing complaints or a staff member
// handling them.
type User struct {
	id           uint
	sid          string
	name         vo.Name
	email        vo.Email
	phone        string
	address      string
	city         string
	role         authorization.UserRole
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

// Contact groups the optional contact fields.
type Contact struct {
	Phone   string
	Address string
	City    string
}

func (c Contact) validate() error {
	for field, v := range map[string]string{"phone": c.Phone, "address": c.Address, "city": c.City} {
		if len(v) > maxContactFieldLength {
			return fmt.Errorf("%s cannot exceed %d characters", field, maxContactFieldLength)
		}
	}
	return nil
}

// NewUser creates an account with an already hashed password.
func NewUser(
	name vo.Name,
	email vo.Email,
	passwordHash string,
	role authorization.UserRole,
	contact Contact,
	shortIDGenerator func() (string, error),
) (*User, error) {
	if name.String() == "" {
		return nil, fmt.Errorf("name is required")
	}
	if email.String() == "" {
		return nil, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	contact = trimContact(contact)
	if err := contact.validate(); err != nil {
		return nil, err
	}

	sid, err := shortIDGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	now := time.Now().UTC()
	return &User{
		sid:          sid,
		name:         name,
		email:        email,
		phone:        contact.Phone,
		address:      contact.Address,
		city:         contact.City,
		role:         role,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(
	id uint,
	sid string,
	name vo.Name,
	email vo.Email,
	passwordHash string,
	role authorization.UserRole,
	contact Contact,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("user SID is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		id:           id,
		sid:          sid,
		name:         name,
		email:        email,
		phone:        contact.Phone,
		address:      contact.Address,
		city:         contact.City,
		role:         role,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func trimContact(c Contact) Contact {
	return Contact{
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
		City:    strings.TrimSpace(c.City),
	}
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) SID() string {
	return u.sid
}

func (u *User) Name() vo.Name {
	return u.name
}

func (u *User) Email() vo.Email {
	return u.email
}

func (u *User) Phone() string {
	return u.phone
}

func (u *User) Address() string {
	return u.address
}

func (u *User) City() string {
	return u.city
}

func (u *User) Role() authorization.UserRole {
	return u.role
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// IsStaff reports whether the user may be assigned complaints.
func (u *User) IsStaff() bool {
	return u.role.IsStaff()
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// ProfileUpdate carries profile edits; nil fields are left unchanged.
type ProfileUpdate struct {
	Name    *vo.Name
	Phone   *string
	Address *string
	City    *string
}

func (u *User) UpdateProfile(update ProfileUpdate) error {
	contact := Contact{Phone: u.phone, Address: u.address, City: u.city}
	if update.Phone != nil {
		contact.Phone = *update.Phone
	}
	if update.Address != nil {
		contact.Address = *update.Address
	}
	if update.City != nil {
		contact.City = *update.City
	}
	contact = trimContact(contact)
	if err := contact.validate(); err != nil {
		return err
	}

	if update.Name != nil {
		u.name = *update.Name
	}
	u.phone = contact.Phone
	u.address = contact.Address
	u.city = contact.City
	u.updatedAt = time.Now().UTC()
	return nil
}

// ChangeRole is used by seeding to promote accounts to staff.
func (u *User) ChangeRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	u.role = role
	u.updatedAt = time.Now().UTC()
	return nil
}

func (u *User) ChangePasswordHash(hash string) error {
	if hash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = hash
	u.updatedAt = time.Now().UTC()
	return nil
}
