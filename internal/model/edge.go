package model

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Node kinds. Every edge relation expects fixed kinds on both ends.
const (
	KindAsset    = "asset"
	KindTexture  = "texture"
	KindMaterial = "material"
	KindGeometry = "geometry"
	KindProject  = "project"
	KindUser     = "user"
)

// Edge relations. The relation name encodes the direction: the source
// kind comes first.
const (
	RelationAssetUsesTexture     = "asset_uses_texture"
	RelationAssetHasMaterial     = "asset_has_material"
	RelationMaterialUsesTexture  = "material_uses_texture"
	RelationAssetUsesGeometry    = "asset_uses_geometry"
	RelationAssetDependsOn       = "asset_depends_on"
	RelationProjectContainsAsset = "project_contains_asset"
	RelationUserCreatedAsset     = "user_created_asset"
)

var relationEndpoints = map[string][2]string{
	RelationAssetUsesTexture:     {KindAsset, KindTexture},
	RelationAssetHasMaterial:     {KindAsset, KindMaterial},
	RelationMaterialUsesTexture:  {KindMaterial, KindTexture},
	RelationAssetUsesGeometry:    {KindAsset, KindGeometry},
	RelationAssetDependsOn:       {KindAsset, KindAsset},
	RelationProjectContainsAsset: {KindProject, KindAsset},
	RelationUserCreatedAsset:     {KindUser, KindAsset},
}

// RelationEndpoints returns the node kinds a relation connects,
// source first. ok is false for an unknown relation.
func RelationEndpoints(relation string) (source, target string, ok bool) {
	kinds, ok := relationEndpoints[relation]
	if !ok {
		return "", "", false
	}
	return kinds[0], kinds[1], true
}

// Edge is a typed directed relationship between two nodes. Meta carries
// relationship metadata as json: usage type for textures, blend mode
// and channel for material maps, approval status for materials.
type Edge struct {
	gorm.Model
	ID       string `gorm:"primaryKey;uuid;not null;"`
	Relation string `gorm:"not null;index;uniqueIndex:idx_edges_src_tgt_rel,priority:3"`
	SourceID string `gorm:"uuid;not null;index:idx_edges_source;uniqueIndex:idx_edges_src_tgt_rel,priority:1"`
	TargetID string `gorm:"uuid;not null;index:idx_edges_target;uniqueIndex:idx_edges_src_tgt_rel,priority:2"`
	Meta     string `gorm:"not null;default:'{}'"`
}

func (Edge) TableName() string {
	return "edges"
}

func (e *Edge) MetaMap() (map[string]string, error) {
	meta := make(map[string]string)
	if e.Meta == "" {
		return meta, nil
	}
	err := json.Unmarshal([]byte(e.Meta), &meta)
	return meta, err
}

func (e *Edge) SetMeta(meta map[string]string) error {
	if meta == nil {
		meta = make(map[string]string)
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	e.Meta = string(data)
	return nil
}
