package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrganizationID uint           `json:"organization_id" gorm:"not null;index"`
	Rut            string         `json:"rut" gorm:"not null;uniqueIndex"`
	Name           string         `json:"name" gorm:"not null"`
	Email          *string        `json:"email,omitempty"`
	Role           string         `json:"role" gorm:"not null;default:'student'"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
