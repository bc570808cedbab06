package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/blacksmith/atlas/internal/model"
)

type textureView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	FilePath   string    `json:"file_path"`
	Resolution string    `json:"resolution,omitempty"`
	ColorSpace string    `json:"color_space,omitempty"`
	UDIM       bool      `json:"udim"`
	TileCount  int       `json:"tile_count"`
	Format     string    `json:"format,omitempty"`
	FileSize   int64     `json:"file_size"`
	Checksum   string    `json:"checksum,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func viewTexture(t *model.Texture) textureView {
	return textureView{
		ID:         t.ID,
		Name:       t.Name,
		FilePath:   t.FilePath,
		Resolution: t.Resolution,
		ColorSpace: t.ColorSpace,
		UDIM:       t.UDIM,
		TileCount:  t.TileCount,
		Format:     t.Format,
		FileSize:   t.FileSize,
		Checksum:   t.Checksum,
		CreatedAt:  t.CreatedAt,
	}
}

func viewTextures(textures []*model.Texture) []textureView {
	views := make([]textureView, 0, len(textures))
	for _, t := range textures {
		views = append(views, viewTexture(t))
	}
	return views
}

type materialView struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Engine     string         `json:"engine"`
	Parameters map[string]any `json:"parameters"`
	CreatedAt  time.Time      `json:"created_at"`
}

func viewMaterial(m *model.Material) materialView {
	params, err := m.ParameterMap()
	if err != nil {
		params = map[string]any{}
	}
	return materialView{
		ID:         m.ID,
		Name:       m.Name,
		Engine:     m.Engine,
		Parameters: params,
		CreatedAt:  m.CreatedAt,
	}
}

func viewMaterials(materials []*model.Material) []materialView {
	views := make([]materialView, 0, len(materials))
	for _, m := range materials {
		views = append(views, viewMaterial(m))
	}
	return views
}

type geometryView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FilePath  string    `json:"file_path"`
	PolyCount int64     `json:"poly_count"`
	Format    string    `json:"format,omitempty"`
	FileSize  int64     `json:"file_size"`
	Checksum  string    `json:"checksum,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func viewGeometry(g *model.Geometry) geometryView {
	return geometryView{
		ID:        g.ID,
		Name:      g.Name,
		FilePath:  g.FilePath,
		PolyCount: g.PolyCount,
		Format:    g.Format,
		FileSize:  g.FileSize,
		Checksum:  g.Checksum,
		CreatedAt: g.CreatedAt,
	}
}

func viewGeometries(geometries []*model.Geometry) []geometryView {
	views := make([]geometryView, 0, len(geometries))
	for _, g := range geometries {
		views = append(views, viewGeometry(g))
	}
	return views
}

type textureRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FilePath   string `json:"file_path"`
	Resolution string `json:"resolution"`
	ColorSpace string `json:"color_space"`
	UDIM       bool   `json:"udim"`
	TileCount  int    `json:"tile_count"`
	Format     string `json:"format"`
	FileSize   int64  `json:"file_size"`
	Checksum   string `json:"checksum"`
}

func (r *textureRequest) toModel() *model.Texture {
	return &model.Texture{
		ID:         r.ID,
		Name:       r.Name,
		FilePath:   r.FilePath,
		Resolution: r.Resolution,
		ColorSpace: r.ColorSpace,
		UDIM:       r.UDIM,
		TileCount:  r.TileCount,
		Format:     r.Format,
		FileSize:   r.FileSize,
		Checksum:   r.Checksum,
	}
}

type geometryRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FilePath  string `json:"file_path"`
	PolyCount int64  `json:"poly_count"`
	Format    string `json:"format"`
	FileSize  int64  `json:"file_size"`
	Checksum  string `json:"checksum"`
}

func (r *geometryRequest) toModel() *model.Geometry {
	return &model.Geometry{
		ID:        r.ID,
		Name:      r.Name,
		FilePath:  r.FilePath,
		PolyCount: r.PolyCount,
		Format:    r.Format,
		FileSize:  r.FileSize,
		Checksum:  r.Checksum,
	}
}

func pagination(r *http.Request) (int, int) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}

func postTexture(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "postTexture"

	var req textureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return route, badRequest(w, "invalid request body")
	}
	if req.Name == "" || req.FilePath == "" {
		return route, badRequest(w, "name and file_path are required")
	}

	created, err := ctx.Catalog.CreateTexture(r.Context(), req.toModel())
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusCreated, viewTexture(created))
}

func getTextures(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getTextures"

	limit, offset := pagination(r)
	textures, total, err := ctx.Catalog.ListTextures(r.Context(), limit, offset)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeList(w, viewTextures(textures), total)
}

func getTexture(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getTexture"

	id, err := uuid.Parse(p.ByName("textureID"))
	if err != nil {
		return route, badRequest(w, "invalid texture id")
	}

	texture, err := ctx.Catalog.GetTexture(r.Context(), id)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, viewTexture(texture))
}

func putTexture(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "putTexture"

	id, err := uuid.Parse(p.ByName("textureID"))
	if err != nil {
		return route, badRequest(w, "invalid texture id")
	}

	var req textureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return route, badRequest(w, "invalid request body")
	}
	req.ID = id.String()

	updated, err := ctx.Catalog.UpdateTexture(r.Context(), req.toModel())
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, viewTexture(updated))
}

func deleteTexture(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "deleteTexture"

	id, err := uuid.Parse(p.ByName("textureID"))
	if err != nil {
		return route, badRequest(w, "invalid texture id")
	}

	if err := ctx.Catalog.DeleteTexture(r.Context(), id); err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func getTextureAssets(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getTextureAssets"

	id, err := uuid.Parse(p.ByName("textureID"))
	if err != nil {
		return route, badRequest(w, "invalid texture id")
	}

	assets, err := ctx.Graph.TextureAssets(r.Context(), id)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeList(w, viewAssets(assets), int64(len(assets)))
}

func postMaterial(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "postMaterial"

	var req struct {
		ID         string         `json:"id"`
		Name       string         `json:"name"`
		Engine     string         `json:"engine"`
		Parameters map[string]any `json:"parameters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return route, badRequest(w, "invalid request body")
	}
	if req.Name == "" {
		return route, badRequest(w, "name is required")
	}

	params, err := json.Marshal(req.Parameters)
	if err != nil {
		return route, writeError(w, err)
	}

	material := &model.Material{
		ID:         req.ID,
		Name:       req.Name,
		Engine:     req.Engine,
		Parameters: string(params),
	}

	created, err := ctx.Catalog.CreateMaterial(r.Context(), material)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusCreated, viewMaterial(created))
}

func getMaterials(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getMaterials"

	limit, offset := pagination(r)
	materials, total, err := ctx.Catalog.ListMaterials(r.Context(), limit, offset)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeList(w, viewMaterials(materials), total)
}

func getMaterial(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getMaterial"

	id, err := uuid.Parse(p.ByName("materialID"))
	if err != nil {
		return route, badRequest(w, "invalid material id")
	}

	material, err := ctx.Catalog.GetMaterial(r.Context(), id)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, viewMaterial(material))
}

func putMaterial(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "putMaterial"

	id, err := uuid.Parse(p.ByName("materialID"))
	if err != nil {
		return route, badRequest(w, "invalid material id")
	}

	var req struct {
		Name       string         `json:"name"`
		Engine     string         `json:"engine"`
		Parameters map[string]any `json:"parameters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return route, badRequest(w, "invalid request body")
	}

	params, err := json.Marshal(req.Parameters)
	if err != nil {
		return route, writeError(w, err)
	}

	material := &model.Material{
		ID:         id.String(),
		Name:       req.Name,
		Engine:     req.Engine,
		Parameters: string(params),
	}

	updated, err := ctx.Catalog.UpdateMaterial(r.Context(), material)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, viewMaterial(updated))
}

func deleteMaterial(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "deleteMaterial"

	id, err := uuid.Parse(p.ByName("materialID"))
	if err != nil {
		return route, badRequest(w, "invalid material id")
	}

	if err := ctx.Catalog.DeleteMaterial(r.Context(), id); err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func postGeometry(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "postGeometry"

	var req geometryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return route, badRequest(w, "invalid request body")
	}
	if req.Name == "" || req.FilePath == "" {
		return route, badRequest(w, "name and file_path are required")
	}

	created, err := ctx.Catalog.CreateGeometry(r.Context(), req.toModel())
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusCreated, viewGeometry(created))
}

func getGeometries(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getGeometries"

	limit, offset := pagination(r)
	geometries, total, err := ctx.Catalog.ListGeometries(r.Context(), limit, offset)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeList(w, viewGeometries(geometries), total)
}

func getGeometry(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getGeometry"

	id, err := uuid.Parse(p.ByName("geometryID"))
	if err != nil {
		return route, badRequest(w, "invalid geometry id")
	}

	geometry, err := ctx.Catalog.GetGeometry(r.Context(), id)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, viewGeometry(geometry))
}

func putGeometry(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "putGeometry"

	id, err := uuid.Parse(p.ByName("geometryID"))
	if err != nil {
		return route, badRequest(w, "invalid geometry id")
	}

	var req geometryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return route, badRequest(w, "invalid request body")
	}
	req.ID = id.String()

	updated, err := ctx.Catalog.UpdateGeometry(r.Context(), req.toModel())
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, viewGeometry(updated))
}

func deleteGeometry(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "deleteGeometry"

	id, err := uuid.Parse(p.ByName("geometryID"))
	if err != nil {
		return route, badRequest(w, "invalid geometry id")
	}

	if err := ctx.Catalog.DeleteGeometry(r.Context(), id); err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func getAssetTextures(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getAssetTextures"

	id, err := uuid.Parse(p.ByName("assetID"))
	if err != nil {
		return route, badRequest(w, "invalid asset id")
	}

	textures, err := ctx.Graph.AssetTextures(r.Context(), id)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeList(w, viewTextures(textures), int64(len(textures)))
}

func getAssetMaterials(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getAssetMaterials"

	id, err := uuid.Parse(p.ByName("assetID"))
	if err != nil {
		return route, badRequest(w, "invalid asset id")
	}

	materials, err := ctx.Graph.AssetMaterials(r.Context(), id)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeList(w, viewMaterials(materials), int64(len(materials)))
}

func getAssetGeometry(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getAssetGeometry"

	id, err := uuid.Parse(p.ByName("assetID"))
	if err != nil {
		return route, badRequest(w, "invalid asset id")
	}

	geometries, err := ctx.Graph.AssetGeometry(r.Context(), id)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeList(w, viewGeometries(geometries), int64(len(geometries)))
}
