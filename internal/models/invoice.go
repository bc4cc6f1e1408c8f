package models

import (
	"time"

	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// IsValid reports whether s is a known invoice status
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

type Invoice struct {
	ID            uint64        `gorm:"primarykey" json:"id"`
	InvoiceNumber string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"invoice_number"`
	Status        InvoiceStatus `gorm:"type:varchar(50);not null;index" json:"status"`
	IssueDate     *time.Time    `json:"issue_date"`
	DueDate       *time.Time    `gorm:"index" json:"due_date"`
	PaidDate      *time.Time    `json:"paid_date"`
	Subtotal      float64       `gorm:"not null" json:"subtotal"`
	TaxRate       float64       `gorm:"not null" json:"tax_rate"`
	TaxAmount     *float64      `json:"tax_amount"`
	Total         float64       `gorm:"not null" json:"total"`
	Notes         *string       `gorm:"type:text" json:"notes"`
	PaymentTerms  *string       `gorm:"type:text" json:"payment_terms"`
	ProjectID     uint64        `gorm:"not null;index" json:"project_id"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     *time.Time    `gorm:"autoUpdateTime:false" json:"updated_at"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
}

// BeforeCreate stamps the issue date when none was supplied
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.IssueDate == nil {
		now := time.Now()
		i.IssueDate = &now
	}
	return nil
}
