package entity

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDAdmin   = 1
	RoleIDDoctor  = 2
	RoleIDStaff   = 3
	RoleIDPatient = 4
)

// Role name constants
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RoleStaff   = "staff"
	RolePatient = "patient"
)

// RoleName maps a role ID to its canonical name. Unknown IDs map to "".
func RoleName(roleID int) string {
	switch roleID {
	case RoleIDAdmin:
		return RoleAdmin
	case RoleIDDoctor:
		return RoleDoctor
	case RoleIDStaff:
		return RoleStaff
	case RoleIDPatient:
		return RolePatient
	default:
		return ""
	}
}

// IsStaffOrAbove reports whether the role may operate on clinic-side
// resources (wait time, invoice ledger).
func IsStaffOrAbove(roleID int) bool {
	return roleID == RoleIDAdmin || roleID == RoleIDDoctor || roleID == RoleIDStaff
}
