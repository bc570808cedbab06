package model

import "gorm.io/gorm"

// Geometry represents a geometry cache or model file.
type Geometry struct {
	gorm.Model
	ID        string `gorm:"primaryKey;uuid;not null;"`
	Name      string `gorm:"not null;index"`
	FilePath  string `gorm:"not null"`
	PolyCount int64
	Format    string // abc, obj, usd, bgeo
	FileSize  int64
	Checksum  string
}

func (Geometry) Kind() string { return KindGeometry }
