package domain

// UserRole distinguishes store employees from managers.
type UserRole string

const (
	UserRoleEmployee UserRole = "employee"
	UserRoleManager  UserRole = "manager"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r == UserRoleEmployee || r == UserRoleManager
}

// User is a member of store staff. PasswordHash is never serialized so the
// persisted session record only carries the public profile.
type User struct {
	ID           string   `json:"id" yaml:"id" validate:"required"`
	Name         string   `json:"name" yaml:"name" validate:"required"`
	Email        string   `json:"email" yaml:"email" validate:"required,email"`
	EmployeeID   string   `json:"employeeId" yaml:"employeeId" validate:"required"`
	Role         UserRole `json:"role" yaml:"role" validate:"required,oneof=employee manager"`
	StoreID      string   `json:"storeId" yaml:"storeId" validate:"required"`
	PasswordHash string   `json:"-" yaml:"-"`
}

// IsManager reports whether the user holds the manager role.
func (u *User) IsManager() bool {
	return u != nil && u.Role == UserRoleManager
}
