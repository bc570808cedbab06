package model

import (
	"encoding/json"

	"gorm.io/gorm"
)

const (
	AssetStatusActive  = "active"
	AssetStatusTrashed = "trashed"
)

// Asset represents a published library asset. The heavy data lives on
// the filesystem under the library root; the row carries the metadata
// the browser and the graph need.
type Asset struct {
	gorm.Model
	ID          string `gorm:"primaryKey;uuid;not null;"`
	Name        string `gorm:"not null;index"`
	Category    string `gorm:"not null;index"` // characters, props, environments, fx, ...
	Description string
	Tags        string `gorm:"not null;default:'[]'"` // json encoded []string
	FilePath    string `gorm:"not null"`
	FileSize    int64
	Checksum    string // sha256 hex of the primary file
	Format      string // usd, abc, blend, hip, ...
	Version     string `gorm:"not null;default:'1.0.0'"` // semver
	Thumbnail   string
	CreatorID   string `gorm:"uuid;index"`
	ProjectID   string `gorm:"uuid;index"`
	Status      string `gorm:"not null;default:'active';index"`
	TrashedAt   *int64 // unix seconds, set when the asset is moved to trash
}

func (Asset) Kind() string { return KindAsset }

func (a *Asset) TagList() []string {
	tags := make([]string, 0)
	if a.Tags == "" {
		return tags
	}
	if err := json.Unmarshal([]byte(a.Tags), &tags); err != nil {
		return make([]string, 0)
	}
	return tags
}

func (a *Asset) SetTags(tags []string) error {
	if tags == nil {
		tags = make([]string, 0)
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	a.Tags = string(data)
	return nil
}

// HasTag reports whether the asset carries the tag. Used by the list
// filters, which AND all requested tags together.
func (a *Asset) HasTag(tag string) bool {
	for _, t := range a.TagList() {
		if t == tag {
			return true
		}
	}
	return false
}

func (a *Asset) MarshalBinary() ([]byte, error) {
	return json.Marshal(a)
}
