package model

import "gorm.io/gorm"

// Texture represents a texture map on disk. UDIM textures span multiple
// tiles; TileCount is 1 for non-UDIM maps.
type Texture struct {
	gorm.Model
	ID         string `gorm:"primaryKey;uuid;not null;"`
	Name       string `gorm:"not null;index"`
	FilePath   string `gorm:"not null"`
	Resolution string // 4096x4096
	ColorSpace string // srgb, acescg, raw
	UDIM       bool   `gorm:"not null;default:false"`
	TileCount  int    `gorm:"not null;default:1"`
	Format     string // exr, png, tif
	FileSize   int64
	Checksum   string
}

func (Texture) Kind() string { return KindTexture }
