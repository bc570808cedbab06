package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/blacksmith/atlas/internal/model"
	"github.com/blacksmith/atlas/internal/store"
)

type assetRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	FilePath    string   `json:"file_path"`
	FileSize    int64    `json:"file_size"`
	Checksum    string   `json:"checksum"`
	Format      string   `json:"format"`
	Version     string   `json:"version"`
	Thumbnail   string   `json:"thumbnail"`
	CreatorID   string   `json:"creator_id"`
	ProjectID   string   `json:"project_id"`
}

type assetView struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Description   string    `json:"description,omitempty"`
	Tags          []string  `json:"tags"`
	FilePath      string    `json:"file_path"`
	FileSize      int64     `json:"file_size"`
	FileSizeHuman string    `json:"file_size_human"`
	Checksum      string    `json:"checksum,omitempty"`
	Format        string    `json:"format,omitempty"`
	Version       string    `json:"version"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	CreatorID     string    `json:"creator_id,omitempty"`
	ProjectID     string    `json:"project_id,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func viewAsset(asset *model.Asset) assetView {
	return assetView{
		ID:            asset.ID,
		Name:          asset.Name,
		Category:      asset.Category,
		Description:   asset.Description,
		Tags:          asset.TagList(),
		FilePath:      asset.FilePath,
		FileSize:      asset.FileSize,
		FileSizeHuman: humanize.Bytes(uint64(asset.FileSize)),
		Checksum:      asset.Checksum,
		Format:        asset.Format,
		Version:       asset.Version,
		Thumbnail:     asset.Thumbnail,
		CreatorID:     asset.CreatorID,
		ProjectID:     asset.ProjectID,
		Status:        asset.Status,
		CreatedAt:     asset.CreatedAt,
		UpdatedAt:     asset.UpdatedAt,
	}
}

func viewAssets(assets []*model.Asset) []assetView {
	views := make([]assetView, 0, len(assets))
	for _, asset := range assets {
		views = append(views, viewAsset(asset))
	}
	return views
}

func (r *assetRequest) toModel() (*model.Asset, error) {
	asset := &model.Asset{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		FilePath:    r.FilePath,
		FileSize:    r.FileSize,
		Checksum:    r.Checksum,
		Format:      r.Format,
		Version:     r.Version,
		Thumbnail:   r.Thumbnail,
		CreatorID:   r.CreatorID,
		ProjectID:   r.ProjectID,
	}
	if err := asset.SetTags(r.Tags); err != nil {
		return nil, err
	}
	return asset, nil
}

func postAsset(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "postAsset"

	var req assetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return route, badRequest(w, "invalid request body")
	}
	if req.Name == "" || req.Category == "" {
		return route, badRequest(w, "name and category are required")
	}

	asset, err := req.toModel()
	if err != nil {
		return route, writeError(w, err)
	}

	created, err := ctx.Assets.CreateAsset(r.Context(), asset)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusCreated, viewAsset(created))
}

func getAssets(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getAssets"

	query := r.URL.Query()
	filter := store.AssetFilter{
		Query:     query.Get("q"),
		Category:  query.Get("category"),
		ProjectID: query.Get("project"),
		CreatorID: query.Get("creator"),
		Status:    query.Get("status"),
		Sort:      query.Get("sort"),
	}
	if limit := query.Get("limit"); limit != "" {
		filter.Limit, _ = strconv.Atoi(limit)
	}
	if offset := query.Get("offset"); offset != "" {
		filter.Offset, _ = strconv.Atoi(offset)
	}

	assets, total, err := ctx.Assets.ListAssets(r.Context(), filter, query["tag"])
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeList(w, viewAssets(assets), total)
}

func getAsset(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getAsset"

	id, err := uuid.Parse(p.ByName("assetID"))
	if err != nil {
		return route, badRequest(w, "invalid asset id")
	}

	asset, err := ctx.Assets.GetAsset(r.Context(), id)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, viewAsset(asset))
}

func putAsset(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "putAsset"

	id, err := uuid.Parse(p.ByName("assetID"))
	if err != nil {
		return route, badRequest(w, "invalid asset id")
	}

	var req assetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return route, badRequest(w, "invalid request body")
	}
	req.ID = id.String()

	asset, err := req.toModel()
	if err != nil {
		return route, writeError(w, err)
	}

	updated, err := ctx.Assets.UpdateAsset(r.Context(), asset)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, viewAsset(updated))
}

func deleteAsset(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "deleteAsset"

	id, err := uuid.Parse(p.ByName("assetID"))
	if err != nil {
		return route, badRequest(w, "invalid asset id")
	}

	if err := ctx.Assets.TrashAsset(r.Context(), id); err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, map[string]string{"status": model.AssetStatusTrashed})
}

func postAssetRestore(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "postAssetRestore"

	id, err := uuid.Parse(p.ByName("assetID"))
	if err != nil {
		return route, badRequest(w, "invalid asset id")
	}

	asset, err := ctx.Assets.RestoreAsset(r.Context(), id)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, viewAsset(asset))
}

func postAssetOpen(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "postAssetOpen"

	id, err := uuid.Parse(p.ByName("assetID"))
	if err != nil {
		return route, badRequest(w, "invalid asset id")
	}

	if err := ctx.Assets.OpenFolder(r.Context(), id); err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, map[string]string{"status": "opened"})
}

func postAssetBump(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "postAssetBump"

	id, err := uuid.Parse(p.ByName("assetID"))
	if err != nil {
		return route, badRequest(w, "invalid asset id")
	}

	var req struct {
		Level string `json:"level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return route, badRequest(w, "invalid request body")
	}

	asset, err := ctx.Assets.BumpVersion(r.Context(), id, req.Level)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, viewAsset(asset))
}

func getAssetDependencies(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getAssetDependencies"

	id, err := uuid.Parse(p.ByName("assetID"))
	if err != nil {
		return route, badRequest(w, "invalid asset id")
	}

	depth := 0
	if v := r.URL.Query().Get("depth"); v != "" {
		depth, _ = strconv.Atoi(v)
	}

	assets, err := ctx.Graph.Dependencies(r.Context(), id, depth)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeList(w, viewAssets(assets), int64(len(assets)))
}

func getAssetDependents(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getAssetDependents"

	id, err := uuid.Parse(p.ByName("assetID"))
	if err != nil {
		return route, badRequest(w, "invalid asset id")
	}

	assets, err := ctx.Graph.Dependents(r.Context(), id)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeList(w, viewAssets(assets), int64(len(assets)))
}
