package domain

import (
	"errors"
	"time"
)

// Role is the coarse authorization category, fixed at registration.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
)

// Valid reports whether the role is one of the defined values.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleManager
}

var ErrValidation = errors.New("validation failed")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")

// User models an account in the directory.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ManagerID    string    `json:"manager_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsManagedBy reports whether managerID is this user's direct manager.
// Kept as an in-memory predicate so the approval policy can be tested
// without a store round-trip.
func (u *User) IsManagedBy(managerID string) bool {
	return u.ManagerID != "" && u.ManagerID == managerID
}

// UserRef is the public projection embedded in request views and directory
// listings. It never carries credentials.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Ref returns the public projection of the user.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Registration is a role-tagged registration variant: employees may carry a
// manager reference, managers never do. Construct via NewEmployeeRegistration
// or NewManagerRegistration.
type Registration struct {
	Email    string
	Password string
	Name     string

	role      Role
	managerID string
}

// NewEmployeeRegistration builds an EMPLOYEE registration. The manager
// reference is optional; when set it must point at a MANAGER (the service
// checks this against the store).
func NewEmployeeRegistration(email, password, name, managerID string) Registration {
	return Registration{
		Email:     email,
		Password:  password,
		Name:      name,
		role:      RoleEmployee,
		managerID: managerID,
	}
}

// NewManagerRegistration builds a MANAGER registration.
func NewManagerRegistration(email, password, name string) Registration {
	return Registration{
		Email:    email,
		Password: password,
		Name:     name,
		role:     RoleManager,
	}
}

func (r Registration) Role() Role        { return r.role }
func (r Registration) ManagerID() string { return r.managerID }
