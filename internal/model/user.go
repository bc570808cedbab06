package model

import "gorm.io/gorm"

type User struct {
	gorm.Model
	ID         string `gorm:"primaryKey;uuid;not null;"`
	Name       string `gorm:"not null"`
	Email      string `gorm:"not null;uniqueIndex"`
	Role       string // artist, lead, producer
	Department string // modeling, lookdev, fx, ...
}

func (User) Kind() string { return KindUser }
