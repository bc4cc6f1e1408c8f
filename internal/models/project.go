package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// IsValid reports whether s is a known project status
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted:
		return true
	}
	return false
}

type Project struct {
	ID          uint64        `gorm:"primarykey" json:"id"`
	Name        string        `gorm:"type:varchar(200);not null" json:"name"`
	Description *string       `gorm:"type:text" json:"description"`
	ClientName  *string       `gorm:"type:varchar(200)" json:"client_name"`
	Status      ProjectStatus `gorm:"type:varchar(50);not null" json:"status"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
	Budget      *float64      `json:"budget"`
	HourlyRate  *float64      `json:"hourly_rate"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   *time.Time    `gorm:"autoUpdateTime:false" json:"updated_at"`

	// Relations
	Members      []User       `gorm:"many2many:project_members;constraint:OnDelete:CASCADE" json:"-"`
	Technologies []Technology `gorm:"many2many:project_technologies;constraint:OnDelete:CASCADE" json:"-"`
}

// ProjectMember is the join record between projects and users
type ProjectMember struct {
	ProjectID  uint64    `gorm:"primaryKey" json:"project_id"`
	UserID     uint64    `gorm:"primaryKey" json:"user_id"`
	Role       *string   `gorm:"type:varchar(50)" json:"role"`
	AssignedAt time.Time `json:"assigned_at"`
}

func (m *ProjectMember) BeforeCreate(tx *gorm.DB) error {
	if m.AssignedAt.IsZero() {
		m.AssignedAt = time.Now()
	}
	return nil
}

// ProjectTechnology is the join record between projects and technologies
type ProjectTechnology struct {
	ProjectID    uint64 `gorm:"primaryKey" json:"project_id"`
	TechnologyID uint64 `gorm:"primaryKey" json:"technology_id"`
}
