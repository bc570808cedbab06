package model

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Material represents a shader setup. Parameters holds the engine
// specific parameter dict as json.
type Material struct {
	gorm.Model
	ID         string `gorm:"primaryKey;uuid;not null;"`
	Name       string `gorm:"not null;index"`
	Engine     string `gorm:"not null"` // karma, arnold, redshift, ...
	Parameters string `gorm:"not null;default:'{}'"`
}

func (Material) Kind() string { return KindMaterial }

func (m *Material) ParameterMap() (map[string]any, error) {
	params := make(map[string]any)
	if m.Parameters == "" {
		return params, nil
	}
	err := json.Unmarshal([]byte(m.Parameters), &params)
	return params, err
}
