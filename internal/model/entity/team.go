package entity

import "time"

// Team is a field installation crew.
type Team struct {
	ID        string     `json:"id" gorm:"primaryKey;size:32"`
	Name      string     `json:"name" gorm:"size:64;not null"`
	Leader    string     `json:"leader" gorm:"size:64"`
	Members   int        `json:"members" gorm:"not null;default:0"`
	Contact   string     `json:"contact" gorm:"size:32"`
	Location  string     `json:"location" gorm:"size:128"`
	Specialty string     `json:"specialty" gorm:"size:64"`
	Status    string     `json:"status" gorm:"size:16;not null;default:Available"`
	ProjectID string     `json:"project_id" gorm:"size:32;index"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (Team) TableName() string {
	return "teams"
}

// Team status
const (
	TeamStatusAvailable = "Available"
	TeamStatusDeployed  = "Deployed"
	TeamStatusOnLeave   = "On Leave"
)

// TeamHomeBase is where released teams report back to.
const TeamHomeBase = "Ahmedabad"
