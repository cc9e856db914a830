package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// JSONB maps to PostgreSQL's jsonb column type.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	}
	return nil
}

// Quotation is a generated quote document. DataSnapshot holds the complete
// form state the document was generated from; re-rendering reads only the
// snapshot, so the document survives later changes to defaults and rates.
type Quotation struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	ClientName   string     `json:"client_name" gorm:"size:128;not null"`
	Type         string     `json:"type" gorm:"size:16;not null"`
	Amount       string     `json:"amount" gorm:"size:32"`
	Status       string     `json:"status" gorm:"size:16;not null;default:Generated"`
	Capacity     float64    `json:"capacity"`
	Address      string     `json:"address" gorm:"size:256"`
	DataSnapshot JSONB      `json:"data_snapshot" gorm:"type:jsonb"`
	CreatedBy    string     `json:"created_by" gorm:"size:32"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (Quotation) TableName() string {
	return "quotations"
}

// Quotation status
const (
	QuoteStatusGenerated = "Generated"
	QuoteStatusSent      = "Sent"
	QuoteStatusAccepted  = "Accepted"
	QuoteStatusRejected  = "Rejected"
)

// Pricing defaults used when the snapshot does not override them.
const (
	ResidentialPricePerKw = 52469.0
	ResidentialSubsidy    = 78000.0
	IndustrialRatePerKw   = 31500.0
	PanelWattageKw        = 0.540
)
