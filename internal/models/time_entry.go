package models

import "time"

type TimeEntry struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Hours       float64    `gorm:"not null" json:"hours"`
	Description *string    `gorm:"type:text" json:"description"`
	Date        time.Time  `gorm:"not null;index" json:"date"`
	UserID      uint64     `gorm:"not null;index" json:"user_id"`
	ProjectID   uint64     `gorm:"not null;index" json:"project_id"`
	TaskID      *uint64    `gorm:"index" json:"task_id"`
	Billable    bool       `gorm:"not null" json:"billable"`
	Billed      bool       `gorm:"not null" json:"billed"`
	InvoiceID   *uint64    `json:"invoice_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`

	// Relations
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Task    *Task    `gorm:"foreignKey:TaskID;constraint:OnDelete:SET NULL" json:"task,omitempty"`
	Invoice *Invoice `gorm:"foreignKey:InvoiceID;constraint:OnDelete:SET NULL" json:"-"`
}
