package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/blacksmith/atlas/internal/model"
)

// Seed loads a small demo dataset so a fresh install has something to
// browse: a project, an artist, a few connected assets and the edges
// between them. A database that already holds assets is left alone.
func Seed(ctx context.Context, s Store) error {
	_, total, err := s.ListAssets(ctx, AssetFilter{Limit: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	return s.Transaction(ctx, func(tx Store) error {
		project := &model.Project{
			ID:          uuid.New().String(),
			Name:        "Atlas Demo",
			Code:        "DEMO",
			Status:      model.ProjectStatusActive,
			Description: "seeded demo show",
		}
		if err := tx.CreateProject(ctx, project); err != nil {
			return err
		}

		artist := &model.User{
			ID:         uuid.New().String(),
			Name:       "demo artist",
			Email:      "demo@blacksmith.vfx",
			Role:       "artist",
			Department: "lookdev",
		}
		if err := tx.CreateUser(ctx, artist); err != nil {
			return err
		}

		forest := seedAsset("set_forest", "environments", project.ID, artist.ID)
		_ = forest.SetTags([]string{"demo", "set"})
		tree := seedAsset("pine_tree_01", "environments", project.ID, artist.ID)
		_ = tree.SetTags([]string{"demo", "tree"})
		for _, asset := range []*model.Asset{forest, tree} {
			if err := tx.CreateAsset(ctx, asset); err != nil {
				return err
			}
		}

		texture := &model.Texture{
			ID:         uuid.New().String(),
			Name:       "pine_bark_diffuse",
			FilePath:   "/library/tex/pine_bark_diffuse.1001.exr",
			Resolution: "4096x4096",
			ColorSpace: "acescg",
			UDIM:       true,
			TileCount:  4,
			Format:     "exr",
		}
		if err := tx.CreateTexture(ctx, texture); err != nil {
			return err
		}

		material := &model.Material{
			ID:         uuid.New().String(),
			Name:       "pine_bark",
			Engine:     "karma",
			Parameters: `{"roughness":0.8}`,
		}
		if err := tx.CreateMaterial(ctx, material); err != nil {
			return err
		}

		geometry := &model.Geometry{
			ID:        uuid.New().String(),
			Name:      "pine_tree_01_geo",
			FilePath:  "/library/geo/pine_tree_01.abc",
			PolyCount: 120000,
			Format:    "abc",
		}
		if err := tx.CreateGeometry(ctx, geometry); err != nil {
			return err
		}

		edges := [][3]string{
			{model.RelationProjectContainsAsset, project.ID, forest.ID},
			{model.RelationProjectContainsAsset, project.ID, tree.ID},
			{model.RelationUserCreatedAsset, artist.ID, forest.ID},
			{model.RelationUserCreatedAsset, artist.ID, tree.ID},
			{model.RelationAssetDependsOn, forest.ID, tree.ID},
			{model.RelationAssetHasMaterial, tree.ID, material.ID},
			{model.RelationMaterialUsesTexture, material.ID, texture.ID},
			{model.RelationAssetUsesGeometry, tree.ID, geometry.ID},
		}
		for _, e := range edges {
			edge := &model.Edge{
				ID:       uuid.New().String(),
				Relation: e[0],
				SourceID: e[1],
				TargetID: e[2],
				Meta:     "{}",
			}
			if err := tx.CreateEdge(ctx, edge); err != nil {
				return err
			}
		}

		return nil
	})
}

func seedAsset(name, category, projectID, creatorID string) *model.Asset {
	return &model.Asset{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  category,
		FilePath:  "/library/" + category + "/" + name,
		Version:   "1.0.0",
		Status:    model.AssetStatusActive,
		Tags:      "[]",
		ProjectID: projectID,
		CreatorID: creatorID,
	}
}
