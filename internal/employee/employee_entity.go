package employee

import (
	"time"

	"github.com/ekowhinson/HRMS-sub004/internal/engine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;index"`
	GradeID       *uuid.UUID `gorm:"type:uuid;index"`
	FullName      string
	Email         string     `gorm:"uniqueIndex"`
	DateOfJoining time.Time  `gorm:"type:date;not null"`
	DateOfExit    *time.Time `gorm:"type:date"`
	NonResident   bool       `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// Snapshot converts the row into the engine's read-only input view.
func (e Employee) Snapshot() engine.EmployeeSnapshot {
	return engine.EmployeeSnapshot{
		ID:            e.ID,
		DateOfJoining: e.DateOfJoining,
		DateOfExit:    e.DateOfExit,
		GradeID:       e.GradeID,
		NonResident:   e.NonResident,
	}
}
