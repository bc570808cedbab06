package model

import "gorm.io/gorm"

const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)

type Project struct {
	gorm.Model
	ID          string `gorm:"primaryKey;uuid;not null;"`
	Name        string `gorm:"not null"`
	Code        string `gorm:"not null;uniqueIndex"` // short show code, e.g. BSA
	Status      string `gorm:"not null;default:'active'"`
	Description string
}

func (Project) Kind() string { return KindProject }
