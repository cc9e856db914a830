package entity

import "time"

// User is a portal account. Passwords are stored as bcrypt hashes.
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	Name         string     `json:"name" gorm:"size:64;not null"`
	Email        string     `json:"email" gorm:"size:128;not null;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"size:128;not null"`
	Role         string     `json:"role" gorm:"size:16;not null;default:Sales"`
	Status       string     `json:"status" gorm:"size:16;not null;default:Active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// User role
const (
	RoleAdmin  = "Admin"
	RoleSales  = "Sales"
	RoleOffice = "Office"
)

// User status
const (
	UserStatusActive   = "Active"
	UserStatusInactive = "Inactive"
)
