package entity

import "time"

// Lead is a sales enquiry captured from the website, a referral or a walk-in.
type Lead struct {
	ID        string     `json:"id" gorm:"primaryKey;size:32"`
	Name      string     `json:"name" gorm:"size:128;not null"`
	Phone     string     `json:"phone" gorm:"size:32"`
	City      string     `json:"city" gorm:"size:64"`
	Capacity  string     `json:"capacity" gorm:"size:32"`
	Type      string     `json:"type" gorm:"size:16;not null;default:Residential"`
	Status    string     `json:"status" gorm:"size:16;not null;default:New"`
	Source    string     `json:"source" gorm:"size:32"`
	Notes     string     `json:"notes" gorm:"type:text"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (Lead) TableName() string {
	return "leads"
}

// Lead status
const (
	LeadStatusNew        = "New"
	LeadStatusContacted  = "Contacted"
	LeadStatusSiteSurvey = "Site Survey"
	LeadStatusQualified  = "Qualified"
	LeadStatusProposal   = "Proposal"
	LeadStatusWon        = "Won"
	LeadStatusLost       = "Lost"
)

// Lead source
const (
	LeadSourceWebsite      = "Website"
	LeadSourceReferral     = "Referral"
	LeadSourceWalkIn       = "Walk-in"
	LeadSourceQuoteRequest = "Quote Request"
)

// Customer type, shared by leads, projects and quotations.
const (
	TypeResidential = "Residential"
	TypeCommercial  = "Commercial"
	TypeIndustrial  = "Industrial"
)
