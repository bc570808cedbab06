package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blacksmith/atlas/internal/model"
	"github.com/blacksmith/atlas/internal/store"
)

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store store.Store) *CatalogService {
	return &CatalogService{store: store}
}

// CatalogService covers the non-asset nodes of the graph: textures,
// materials, geometry, projects and users. Deleting a node removes its
// incident edges in the same transaction.
type CatalogService struct {
	store store.Store
}

func (s *CatalogService) CreateTexture(ctx context.Context, texture *model.Texture) (*model.Texture, error) {
	if texture.ID == "" {
		texture.ID = uuid.New().String()
	}
	if texture.TileCount <= 0 {
		texture.TileCount = 1
	}
	if err := s.store.CreateTexture(ctx, texture); err != nil {
		return nil, err
	}
	return texture, nil
}

func (s *CatalogService) GetTexture(ctx context.Context, id uuid.UUID) (*model.Texture, error) {
	texture, err := s.store.GetTexture(ctx, id)
	return texture, mapNotFound(err)
}

func (s *CatalogService) ListTextures(ctx context.Context, limit, offset int) ([]*model.Texture, int64, error) {
	return s.store.ListTextures(ctx, limit, offset)
}

func (s *CatalogService) UpdateTexture(ctx context.Context, texture *model.Texture) (*model.Texture, error) {
	id, err := uuid.Parse(texture.ID)
	if err != nil {
		return nil, ErrNodeNotFound
	}
	if _, err := s.GetTexture(ctx, id); err != nil {
		return nil, err
	}
	return texture, s.store.UpdateTexture(ctx, texture)
}

func (s *CatalogService) DeleteTexture(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetTexture(ctx, id); err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.DeleteNodeEdges(ctx, id); err != nil {
			return err
		}
		return tx.DeleteTexture(ctx, id)
	})
}

func (s *CatalogService) CreateMaterial(ctx context.Context, material *model.Material) (*model.Material, error) {
	if material.ID == "" {
		material.ID = uuid.New().String()
	}
	if material.Parameters == "" {
		material.Parameters = "{}"
	}
	if err := s.store.CreateMaterial(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *CatalogService) GetMaterial(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	material, err := s.store.GetMaterial(ctx, id)
	return material, mapNotFound(err)
}

func (s *CatalogService) ListMaterials(ctx context.Context, limit, offset int) ([]*model.Material, int64, error) {
	return s.store.ListMaterials(ctx, limit, offset)
}

func (s *CatalogService) UpdateMaterial(ctx context.Context, material *model.Material) (*model.Material, error) {
	id, err := uuid.Parse(material.ID)
	if err != nil {
		return nil, ErrNodeNotFound
	}
	if _, err := s.GetMaterial(ctx, id); err != nil {
		return nil, err
	}
	return material, s.store.UpdateMaterial(ctx, material)
}

func (s *CatalogService) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetMaterial(ctx, id); err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.DeleteNodeEdges(ctx, id); err != nil {
			return err
		}
		return tx.DeleteMaterial(ctx, id)
	})
}

func (s *CatalogService) CreateGeometry(ctx context.Context, geometry *model.Geometry) (*model.Geometry, error) {
	if geometry.ID == "" {
		geometry.ID = uuid.New().String()
	}
	if err := s.store.CreateGeometry(ctx, geometry); err != nil {
		return nil, err
	}
	return geometry, nil
}

func (s *CatalogService) GetGeometry(ctx context.Context, id uuid.UUID) (*model.Geometry, error) {
	geometry, err := s.store.GetGeometry(ctx, id)
	return geometry, mapNotFound(err)
}

func (s *CatalogService) ListGeometries(ctx context.Context, limit, offset int) ([]*model.Geometry, int64, error) {
	return s.store.ListGeometries(ctx, limit, offset)
}

func (s *CatalogService) UpdateGeometry(ctx context.Context, geometry *model.Geometry) (*model.Geometry, error) {
	id, err := uuid.Parse(geometry.ID)
	if err != nil {
		return nil, ErrNodeNotFound
	}
	if _, err := s.GetGeometry(ctx, id); err != nil {
		return nil, err
	}
	return geometry, s.store.UpdateGeometry(ctx, geometry)
}

func (s *CatalogService) DeleteGeometry(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetGeometry(ctx, id); err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.DeleteNodeEdges(ctx, id); err != nil {
			return err
		}
		return tx.DeleteGeometry(ctx, id)
	})
}

func (s *CatalogService) CreateProject(ctx context.Context, project *model.Project) (*model.Project, error) {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.Status == "" {
		project.Status = model.ProjectStatusActive
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *CatalogService) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.store.GetProject(ctx, id)
	return project, mapNotFound(err)
}

func (s *CatalogService) ListProjects(ctx context.Context) ([]*model.Project, error) {
	return s.store.ListProjects(ctx)
}

func (s *CatalogService) UpdateProject(ctx context.Context, project *model.Project) (*model.Project, error) {
	id, err := uuid.Parse(project.ID)
	if err != nil {
		return nil, ErrNodeNotFound
	}
	if _, err := s.GetProject(ctx, id); err != nil {
		return nil, err
	}
	return project, s.store.UpdateProject(ctx, project)
}

func (s *CatalogService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProject(ctx, id); err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.DeleteNodeEdges(ctx, id); err != nil {
			return err
		}
		return tx.DeleteProject(ctx, id)
	})
}

func (s *CatalogService) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *CatalogService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.store.GetUser(ctx, id)
	return user, mapNotFound(err)
}

func (s *CatalogService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.store.ListUsers(ctx)
}

func (s *CatalogService) UpdateUser(ctx context.Context, user *model.User) (*model.User, error) {
	id, err := uuid.Parse(user.ID)
	if err != nil {
		return nil, ErrNodeNotFound
	}
	if _, err := s.GetUser(ctx, id); err != nil {
		return nil, err
	}
	return user, s.store.UpdateUser(ctx, user)
}

func (s *CatalogService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.DeleteNodeEdges(ctx, id); err != nil {
			return err
		}
		return tx.DeleteUser(ctx, id)
	})
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNodeNotFound
	}
	return err
}
