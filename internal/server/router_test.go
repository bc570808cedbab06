package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"

	"github.com/blacksmith/atlas/internal/compress"
	"github.com/blacksmith/atlas/internal/delivery"
	"github.com/blacksmith/atlas/internal/library"
	"github.com/blacksmith/atlas/internal/queue"
	"github.com/blacksmith/atlas/internal/service"
	"github.com/blacksmith/atlas/internal/store"
	"github.com/blacksmith/atlas/internal/tester"
)

func newTestRouter(t *testing.T) *httprouter.Router {
	t.Helper()

	tester.RemoveDBFile()
	tester.Setup()

	atlasStore := store.NewGormStore(tester.TestDB())
	assetCache := tester.Cache()
	lib := library.New(tester.LibraryRoot())

	renderer, err := delivery.NewRenderer("")
	assert.NoError(t, err)

	return NewRouter(&handlerContext{
		Assets:   service.NewAssetService(atlasStore, assetCache, queue.NewNopQueue(), lib),
		Catalog:  service.NewCatalogService(atlasStore),
		Graph:    service.NewGraphService(atlasStore),
		Delivery: service.NewDeliveryService(renderer, compress.NewLz4()),
		Stats:    service.NewStatsService(atlasStore, assetCache, lib),
	})
}

type testEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Total *int64          `json:"total"`
	Error string          `json:"error"`
}

func doJSON(t *testing.T, router *httprouter.Router, method, path string, body any) (int, testEnvelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env testEnvelope
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&env))

	return rec.Code, env
}

func TestRouter_AssetLifecycle(t *testing.T) {
	router := newTestRouter(t)

	status, env := doJSON(t, router, http.MethodPost, "/api/v1/assets", map[string]any{
		"name":      "pine_tree_01",
		"category":  "environments",
		"file_path": "/library/env/pine_tree_01",
		"tags":      []string{"tree", "winter"},
	})
	assert.Equal(t, http.StatusCreated, status)

	var created struct {
		ID      string   `json:"id"`
		Version string   `json:"version"`
		Tags    []string `json:"tags"`
		Status  string   `json:"status"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "1.0.0", created.Version)
	assert.Equal(t, []string{"tree", "winter"}, created.Tags)
	assert.Equal(t, "active", created.Status)

	status, _ = doJSON(t, router, http.MethodGet, "/api/v1/assets/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = doJSON(t, router, http.MethodGet, "/api/v1/assets?tag=tree&tag=winter", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NotNil(t, env.Total)
	assert.Equal(t, int64(1), *env.Total)

	status, env = doJSON(t, router, http.MethodGet, "/api/v1/assets?tag=tree&tag=autumn", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(0), *env.Total)

	status, env = doJSON(t, router, http.MethodPost, "/api/v1/assets/"+created.ID+"/bump", map[string]string{"level": "minor"})
	assert.Equal(t, http.StatusOK, status)

	var bumped struct {
		Version string `json:"version"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &bumped))
	assert.Equal(t, "1.1.0", bumped.Version)
}

func TestRouter_AssetErrors(t *testing.T) {
	router := newTestRouter(t)

	status, env := doJSON(t, router, http.MethodGet, "/api/v1/assets/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, env.Error)

	status, env = doJSON(t, router, http.MethodGet, "/api/v1/assets/adc6f2d4-9b6a-4f51-b2c6-1cbf1ce0a6f8", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, env.Error)

	status, _ = doJSON(t, router, http.MethodPost, "/api/v1/assets", map[string]string{"name": "no category"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRouter_Edges(t *testing.T) {
	router := newTestRouter(t)

	_, env := doJSON(t, router, http.MethodPost, "/api/v1/assets", map[string]string{
		"name": "wagon", "category": "props", "file_path": "/library/props/wagon",
	})
	var wagon struct {
		ID string `json:"id"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &wagon))

	_, env = doJSON(t, router, http.MethodPost, "/api/v1/assets", map[string]string{
		"name": "wheel", "category": "props", "file_path": "/library/props/wheel",
	})
	var wheel struct {
		ID string `json:"id"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &wheel))

	status, env := doJSON(t, router, http.MethodPost, "/api/v1/edges", map[string]any{
		"relation":  "asset_depends_on",
		"source_id": wagon.ID,
		"target_id": wheel.ID,
	})
	assert.Equal(t, http.StatusCreated, status)

	// the duplicate is a conflict
	status, _ = doJSON(t, router, http.MethodPost, "/api/v1/edges", map[string]any{
		"relation":  "asset_depends_on",
		"source_id": wagon.ID,
		"target_id": wheel.ID,
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = doJSON(t, router, http.MethodPost, "/api/v1/edges", map[string]any{
		"relation":  "asset_likes_asset",
		"source_id": wagon.ID,
		"target_id": wheel.ID,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = doJSON(t, router, http.MethodGet, "/api/v1/assets/"+wagon.ID+"/dependencies", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), *env.Total)
}

func TestRouter_DeliverySlates(t *testing.T) {
	router := newTestRouter(t)

	csv := "shot,version,artist,date,vendor\nbsa_010,v002,kaeli,2026-08-28,blacksmith\n"

	req := httptest.NewRequest(http.MethodPost, "/api/v1/delivery/slates", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var env testEnvelope
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, int64(1), *env.Total)

	var slates []struct {
		Shot  string `json:"shot"`
		Block string `json:"block"`
		Text  string `json:"text"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &slates))
	assert.Equal(t, "BSA_010_v002_2026-08-28", slates[0].Block)
	assert.Contains(t, slates[0].Text, "SHOT:     BSA_010")

	// the JSON row form answers the same way
	status, env := doJSON(t, router, http.MethodPost, "/api/v1/delivery/slates", map[string]any{
		"rows": []map[string]string{{"shot": "bsa_020", "date": "2026-08-28"}},
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), *env.Total)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	status, env := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)

	var checks map[string]string
	assert.NoError(t, json.Unmarshal(env.Data, &checks))
	assert.Equal(t, "ok", checks["database"])

	status, env = doJSON(t, router, http.MethodGet, "/stats", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NotNil(t, env.Data)
}
