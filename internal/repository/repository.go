package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist or is soft-deleted.
var ErrNotFound = errors.New("record not found")

// ErrInsufficientStock is returned when a conditional stock decrement
// matches no row, i.e. the item does not hold enough stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrAlreadyConverted is returned when the conditional lead status update
// matches no row, i.e. the lead is already won.
var ErrAlreadyConverted = errors.New("lead already converted")

// Repositories aggregates all data access objects.
type Repositories struct {
	Lead      *LeadRepository
	Project   *ProjectRepository
	Inventory *InventoryRepository
	Team      *TeamRepository
	Schedule  *ScheduleRepository
	Quotation *QuotationRepository
	User      *UserRepository
}

// NewRepositories creates all repositories sharing one gorm handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Lead:      NewLeadRepository(db),
		Project:   NewProjectRepository(db),
		Inventory: NewInventoryRepository(db),
		Team:      NewTeamRepository(db),
		Schedule:  NewScheduleRepository(db),
		Quotation: NewQuotationRepository(db),
		User:      NewUserRepository(db),
	}
}
