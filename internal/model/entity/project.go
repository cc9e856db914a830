package entity

import "time"

// Project is an installation project, usually created by converting a won lead.
type Project struct {
	ID         string     `json:"id" gorm:"primaryKey;size:32"`
	ClientName string     `json:"client_name" gorm:"size:128;not null"`
	Location   string     `json:"location" gorm:"size:128"`
	Capacity   float64    `json:"capacity" gorm:"not null;default:0"`
	Type       string     `json:"type" gorm:"size:16;not null;default:Residential"`
	Status     string     `json:"status" gorm:"size:16;not null;default:In Progress"`
	Stage      string     `json:"stage" gorm:"size:32;not null;default:Site Survey"`
	Progress   int        `json:"progress" gorm:"not null;default:0"`
	LeadID     string     `json:"lead_id" gorm:"size:32;index"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Materials []ProjectMaterial `json:"materials,omitempty" gorm:"foreignKey:ProjectID"`
	Documents []ProjectDocument `json:"documents,omitempty" gorm:"foreignKey:ProjectID"`
}

func (Project) TableName() string {
	return "projects"
}

// Project status
const (
	ProjectStatusInProgress = "In Progress"
	ProjectStatusOnHold     = "On Hold"
	ProjectStatusCompleted  = "Completed"
)

// Project stage
const (
	StageSiteSurvey       = "Site Survey"
	StageDesign           = "Design"
	StageMaterialDispatch = "Material Dispatch"
	StageInstallation     = "Installation"
	StageNetMetering      = "Net Metering"
	StageCompleted        = "Completed"
)

var stageProgress = map[string]int{
	StageSiteSurvey:       10,
	StageDesign:           30,
	StageMaterialDispatch: 50,
	StageInstallation:     80,
	StageNetMetering:      90,
	StageCompleted:        100,
}

// StageProgress maps a stage to its completion percentage. A completed
// project is always 100 regardless of stage.
func StageProgress(stage, status string) int {
	if status == ProjectStatusCompleted {
		return 100
	}
	if p, ok := stageProgress[stage]; ok {
		return p
	}
	return 0
}

// ProjectMaterial records stock consumed by a project. Cost is frozen at
// allocation time; later price edits never change it.
type ProjectMaterial struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	ProjectID string    `json:"project_id" gorm:"size:32;not null;index"`
	ItemID    string    `json:"item_id" gorm:"size:32;not null;index"`
	ItemName  string    `json:"item_name" gorm:"size:128;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Cost      float64   `json:"cost" gorm:"not null;default:0"`
	DateUsed  time.Time `json:"date_used"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProjectMaterial) TableName() string {
	return "project_materials"
}

// ProjectDocument is a file attached to a project, stored in object storage.
type ProjectDocument struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	ProjectID   string    `json:"project_id" gorm:"size:32;not null;index"`
	Name        string    `json:"name" gorm:"size:256;not null"`
	Type        string    `json:"type" gorm:"size:32;not null"`
	ObjectKey   string    `json:"object_key" gorm:"size:512;not null"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type" gorm:"size:128"`
	UploadedBy  string    `json:"uploaded_by" gorm:"size:32"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ProjectDocument) TableName() string {
	return "project_documents"
}

// Document type
const (
	DocTypeSitePlan   = "Site Plan"
	DocTypeInvoice    = "Invoice"
	DocTypePermission = "Permission"
	DocTypePhoto      = "Photo"
	DocTypeContract   = "Contract"
)
