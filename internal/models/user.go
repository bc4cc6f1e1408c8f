package models

import "time"

type User struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username       string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	HashedPassword string     `gorm:"type:varchar(255);not null" json:"-"`
	FullName       *string    `gorm:"type:varchar(200)" json:"full_name"`
	Role           *string    `gorm:"type:varchar(100);index" json:"role"`
	Seniority      *string    `gorm:"type:varchar(50)" json:"seniority"`
	Department     *string    `gorm:"type:varchar(100)" json:"department"`
	HourlyRate     *float64   `json:"hourly_rate"`
	Skills         *string    `gorm:"type:text" json:"skills"`
	IsActive       bool       `gorm:"not null" json:"is_active"`
	IsSuperuser    bool       `gorm:"not null" json:"is_superuser"`
	LastLogin      *time.Time `json:"last_login"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}
