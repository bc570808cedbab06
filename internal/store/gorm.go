package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blacksmith/atlas/internal/model"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) CreateAsset(ctx context.Context, asset *model.Asset) error {
	return g.db.WithContext(ctx).Create(asset).Error
}

func (g *GormStore) GetAsset(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var asset model.Asset
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&asset).Error
	return &asset, err
}

func (g *GormStore) ListAssets(ctx context.Context, filter AssetFilter) ([]*model.Asset, int64, error) {
	var assets []*model.Asset
	var total int64

	query := g.db.WithContext(ctx).Model(&model.Asset{})
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.ProjectID != "" {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.CreatorID != "" {
		query = query.Where("creator_id = ?", filter.CreatorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case "name":
		query = query.Order("name asc")
	case "size":
		query = query.Order("file_size desc")
	default:
		query = query.Order("created_at desc")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	err := query.Find(&assets).Error
	return assets, total, err
}

func (g *GormStore) ListAssetsFromIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Asset, error) {
	var assets []*model.Asset
	err := g.db.WithContext(ctx).Where("id in (?)", uuidStrings(ids)).Find(&assets).Error
	return assets, err
}

func (g *GormStore) UpdateAsset(ctx context.Context, asset *model.Asset) error {
	return g.db.WithContext(ctx).Save(asset).Error
}

func (g *GormStore) TrashAsset(ctx context.Context, id uuid.UUID, at time.Time) error {
	ts := at.Unix()
	return g.db.WithContext(ctx).Model(&model.Asset{}).
		Where("id = ?", id.String()).
		Updates(map[string]any{"status": model.AssetStatusTrashed, "trashed_at": ts}).Error
}

func (g *GormStore) RestoreAsset(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Model(&model.Asset{}).
		Where("id = ?", id.String()).
		Updates(map[string]any{"status": model.AssetStatusActive, "trashed_at": nil}).Error
}

func (g *GormStore) EraseAsset(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Unscoped().Where("id = ?", id.String()).Delete(&model.Asset{}).Error
}

func (g *GormStore) ListTrashedBefore(ctx context.Context, cutoff time.Time) ([]*model.Asset, error) {
	var assets []*model.Asset
	err := g.db.WithContext(ctx).
		Where("status = ? AND trashed_at < ?", model.AssetStatusTrashed, cutoff.Unix()).
		Find(&assets).Error
	return assets, err
}

func (g *GormStore) CreateTexture(ctx context.Context, texture *model.Texture) error {
	return g.db.WithContext(ctx).Create(texture).Error
}

func (g *GormStore) GetTexture(ctx context.Context, id uuid.UUID) (*model.Texture, error) {
	var texture model.Texture
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&texture).Error
	return &texture, err
}

func (g *GormStore) ListTextures(ctx context.Context, limit, offset int) ([]*model.Texture, int64, error) {
	var textures []*model.Texture
	var total int64

	query := g.db.WithContext(ctx).Model(&model.Texture{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Order("created_at desc").Find(&textures).Error
	return textures, total, err
}

func (g *GormStore) ListTexturesFromIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Texture, error) {
	var textures []*model.Texture
	err := g.db.WithContext(ctx).Where("id in (?)", uuidStrings(ids)).Find(&textures).Error
	return textures, err
}

func (g *GormStore) UpdateTexture(ctx context.Context, texture *model.Texture) error {
	return g.db.WithContext(ctx).Save(texture).Error
}

func (g *GormStore) DeleteTexture(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&model.Texture{}).Error
}

func (g *GormStore) CreateMaterial(ctx context.Context, material *model.Material) error {
	return g.db.WithContext(ctx).Create(material).Error
}

func (g *GormStore) GetMaterial(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	var material model.Material
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&material).Error
	return &material, err
}

func (g *GormStore) ListMaterials(ctx context.Context, limit, offset int) ([]*model.Material, int64, error) {
	var materials []*model.Material
	var total int64

	query := g.db.WithContext(ctx).Model(&model.Material{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Order("created_at desc").Find(&materials).Error
	return materials, total, err
}

func (g *GormStore) ListMaterialsFromIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Material, error) {
	var materials []*model.Material
	err := g.db.WithContext(ctx).Where("id in (?)", uuidStrings(ids)).Find(&materials).Error
	return materials, err
}

func (g *GormStore) UpdateMaterial(ctx context.Context, material *model.Material) error {
	return g.db.WithContext(ctx).Save(material).Error
}

func (g *GormStore) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&model.Material{}).Error
}

func (g *GormStore) CreateGeometry(ctx context.Context, geometry *model.Geometry) error {
	return g.db.WithContext(ctx).Create(geometry).Error
}

func (g *GormStore) GetGeometry(ctx context.Context, id uuid.UUID) (*model.Geometry, error) {
	var geometry model.Geometry
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&geometry).Error
	return &geometry, err
}

func (g *GormStore) ListGeometries(ctx context.Context, limit, offset int) ([]*model.Geometry, int64, error) {
	var geometries []*model.Geometry
	var total int64

	query := g.db.WithContext(ctx).Model(&model.Geometry{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Order("created_at desc").Find(&geometries).Error
	return geometries, total, err
}

func (g *GormStore) ListGeometriesFromIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Geometry, error) {
	var geometries []*model.Geometry
	err := g.db.WithContext(ctx).Where("id in (?)", uuidStrings(ids)).Find(&geometries).Error
	return geometries, err
}

func (g *GormStore) UpdateGeometry(ctx context.Context, geometry *model.Geometry) error {
	return g.db.WithContext(ctx).Save(geometry).Error
}

func (g *GormStore) DeleteGeometry(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&model.Geometry{}).Error
}

func (g *GormStore) CreateProject(ctx context.Context, project *model.Project) error {
	return g.db.WithContext(ctx).Create(project).Error
}

func (g *GormStore) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&project).Error
	return &project, err
}

func (g *GormStore) ListProjects(ctx context.Context) ([]*model.Project, error) {
	var projects []*model.Project
	err := g.db.WithContext(ctx).Order("name asc").Find(&projects).Error
	return projects, err
}

func (g *GormStore) UpdateProject(ctx context.Context, project *model.Project) error {
	return g.db.WithContext(ctx).Save(project).Error
}

func (g *GormStore) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&model.Project{}).Error
}

func (g *GormStore) CreateUser(ctx context.Context, user *model.User) error {
	return g.db.WithContext(ctx).Create(user).Error
}

func (g *GormStore) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&user).Error
	return &user, err
}

func (g *GormStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	err := g.db.WithContext(ctx).Order("name asc").Find(&users).Error
	return users, err
}

func (g *GormStore) UpdateUser(ctx context.Context, user *model.User) error {
	return g.db.WithContext(ctx).Save(user).Error
}

func (g *GormStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&model.User{}).Error
}

func (g *GormStore) CreateEdge(ctx context.Context, edge *model.Edge) error {
	return g.db.WithContext(ctx).Create(edge).Error
}

func (g *GormStore) GetEdge(ctx context.Context, id uuid.UUID) (*model.Edge, error) {
	var edge model.Edge
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&edge).Error
	return &edge, err
}

func (g *GormStore) GetEdgeByEndpoints(ctx context.Context, sourceID, targetID uuid.UUID, relation string) (*model.Edge, error) {
	var edge model.Edge
	err := g.db.WithContext(ctx).
		Where("source_id = ? AND target_id = ? AND relation = ?", sourceID.String(), targetID.String(), relation).
		First(&edge).Error
	return &edge, err
}

func (g *GormStore) ListEdges(ctx context.Context, filter EdgeFilter) ([]*model.Edge, error) {
	var edges []*model.Edge

	query := g.db.WithContext(ctx).Model(&model.Edge{})
	if filter.Relation != "" {
		query = query.Where("relation = ?", filter.Relation)
	}
	if filter.SourceID != "" {
		query = query.Where("source_id = ?", filter.SourceID)
	}
	if filter.TargetID != "" {
		query = query.Where("target_id = ?", filter.TargetID)
	}

	err := query.Find(&edges).Error
	return edges, err
}

// Edge deletes are hard deletes. A soft deleted row would still occupy
// the unique (source, target, relation) slot and block recreating the
// relationship later.
func (g *GormStore) DeleteEdge(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Unscoped().Where("id = ?", id.String()).Delete(&model.Edge{}).Error
}

func (g *GormStore) DeleteNodeEdges(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Unscoped().
		Where("source_id = ? OR target_id = ?", id.String(), id.String()).
		Delete(&model.Edge{}).Error
}

func (g *GormStore) NodeExists(ctx context.Context, kind string, id uuid.UUID) (bool, error) {
	var count int64
	var err error

	db := g.db.WithContext(ctx)
	switch kind {
	case model.KindAsset:
		err = db.Model(&model.Asset{}).Where("id = ?", id.String()).Count(&count).Error
	case model.KindTexture:
		err = db.Model(&model.Texture{}).Where("id = ?", id.String()).Count(&count).Error
	case model.KindMaterial:
		err = db.Model(&model.Material{}).Where("id = ?", id.String()).Count(&count).Error
	case model.KindGeometry:
		err = db.Model(&model.Geometry{}).Where("id = ?", id.String()).Count(&count).Error
	case model.KindProject:
		err = db.Model(&model.Project{}).Where("id = ?", id.String()).Count(&count).Error
	case model.KindUser:
		err = db.Model(&model.User{}).Where("id = ?", id.String()).Count(&count).Error
	}

	return count > 0, err
}

func (g *GormStore) CountNodes(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	db := g.db.WithContext(ctx)

	tables := []struct {
		kind  string
		model any
	}{
		{model.KindAsset, &model.Asset{}},
		{model.KindTexture, &model.Texture{}},
		{model.KindMaterial, &model.Material{}},
		{model.KindGeometry, &model.Geometry{}},
		{model.KindProject, &model.Project{}},
		{model.KindUser, &model.User{}},
	}

	for _, t := range tables {
		var count int64
		if err := db.Model(t.model).Count(&count).Error; err != nil {
			return nil, err
		}
		counts[t.kind] = count
	}

	return counts, nil
}

func (g *GormStore) CountEdges(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Relation string
		Count    int64
	}
	var rows []row

	err := g.db.WithContext(ctx).Model(&model.Edge{}).
		Select("relation, count(*) as count").
		Group("relation").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, r := range rows {
		counts[r.Relation] = r.Count
	}

	return counts, nil
}

func (g *GormStore) CountAssetsByCategory(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Category string
		Count    int64
	}
	var rows []row

	err := g.db.WithContext(ctx).Model(&model.Asset{}).
		Select("category, count(*) as count").
		Where("status = ?", model.AssetStatusActive).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, r := range rows {
		counts[r.Category] = r.Count
	}

	return counts, nil
}

func (g *GormStore) SumAssetSizes(ctx context.Context) (int64, error) {
	var total int64
	err := g.db.WithContext(ctx).Model(&model.Asset{}).
		Where("status = ?", model.AssetStatusActive).
		Select("coalesce(sum(file_size), 0)").
		Scan(&total).Error
	return total, err
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
