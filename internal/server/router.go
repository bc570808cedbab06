package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/blacksmith/atlas/internal/service"
)

var (
	promResponseDurationMilliseconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "atlas_api_response_duration_milliseconds",
		Help:    "The duration of time it takes to receive and write a response to an API request",
		Buckets: prometheus.ExponentialBuckets(9.375, 2, 10),
	}, []string{"route", "code"})
)

func init() {
	prometheus.MustRegister(promResponseDurationMilliseconds)
}

// handlerContext carries the services into every handler.
type handlerContext struct {
	Assets    *service.AssetService
	Catalog   *service.CatalogService
	Graph     *service.GraphService
	Delivery  *service.DeliveryService
	Stats     *service.StatsService
	PingCache func(ctx context.Context) error
}

type handler func(http.ResponseWriter, *http.Request, httprouter.Params, *handlerContext) (route string, status int)

func httpHandler(h handler, ctx *handlerContext) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		start := time.Now()
		route, status := h(w, r, p, ctx)
		statusStr := strconv.Itoa(status)
		if status == 0 {
			statusStr = "???"
		}

		promResponseDurationMilliseconds.
			WithLabelValues(route, statusStr).
			Observe(float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond))

		log.WithFields(log.Fields{
			"remote addr":  r.RemoteAddr,
			"method":       r.Method,
			"request uri":  r.RequestURI,
			"status":       statusStr,
			"elapsed time": time.Since(start),
		}).Info("Handled HTTP request")
	}
}

// NewRouter wires the v1 API routes.
func NewRouter(ctx *handlerContext) *httprouter.Router {
	router := httprouter.New()

	// Assets
	router.POST("/api/v1/assets", httpHandler(postAsset, ctx))
	router.GET("/api/v1/assets", httpHandler(getAssets, ctx))
	router.GET("/api/v1/assets/:assetID", httpHandler(getAsset, ctx))
	router.PUT("/api/v1/assets/:assetID", httpHandler(putAsset, ctx))
	router.DELETE("/api/v1/assets/:assetID", httpHandler(deleteAsset, ctx))
	router.POST("/api/v1/assets/:assetID/restore", httpHandler(postAssetRestore, ctx))
	router.POST("/api/v1/assets/:assetID/open", httpHandler(postAssetOpen, ctx))
	router.POST("/api/v1/assets/:assetID/bump", httpHandler(postAssetBump, ctx))
	router.GET("/api/v1/assets/:assetID/textures", httpHandler(getAssetTextures, ctx))
	router.GET("/api/v1/assets/:assetID/materials", httpHandler(getAssetMaterials, ctx))
	router.GET("/api/v1/assets/:assetID/geometry", httpHandler(getAssetGeometry, ctx))
	router.GET("/api/v1/assets/:assetID/dependencies", httpHandler(getAssetDependencies, ctx))
	router.GET("/api/v1/assets/:assetID/dependents", httpHandler(getAssetDependents, ctx))

	// Textures
	router.POST("/api/v1/textures", httpHandler(postTexture, ctx))
	router.GET("/api/v1/textures", httpHandler(getTextures, ctx))
	router.GET("/api/v1/textures/:textureID", httpHandler(getTexture, ctx))
	router.PUT("/api/v1/textures/:textureID", httpHandler(putTexture, ctx))
	router.DELETE("/api/v1/textures/:textureID", httpHandler(deleteTexture, ctx))
	router.GET("/api/v1/textures/:textureID/assets", httpHandler(getTextureAssets, ctx))

	// Materials
	router.POST("/api/v1/materials", httpHandler(postMaterial, ctx))
	router.GET("/api/v1/materials", httpHandler(getMaterials, ctx))
	router.GET("/api/v1/materials/:materialID", httpHandler(getMaterial, ctx))
	router.PUT("/api/v1/materials/:materialID", httpHandler(putMaterial, ctx))
	router.DELETE("/api/v1/materials/:materialID", httpHandler(deleteMaterial, ctx))

	// Geometry
	router.POST("/api/v1/geometry", httpHandler(postGeometry, ctx))
	router.GET("/api/v1/geometry", httpHandler(getGeometries, ctx))
	router.GET("/api/v1/geometry/:geometryID", httpHandler(getGeometry, ctx))
	router.PUT("/api/v1/geometry/:geometryID", httpHandler(putGeometry, ctx))
	router.DELETE("/api/v1/geometry/:geometryID", httpHandler(deleteGeometry, ctx))

	// Projects
	router.POST("/api/v1/projects", httpHandler(postProject, ctx))
	router.GET("/api/v1/projects", httpHandler(getProjects, ctx))
	router.GET("/api/v1/projects/:projectID", httpHandler(getProject, ctx))
	router.PUT("/api/v1/projects/:projectID", httpHandler(putProject, ctx))
	router.DELETE("/api/v1/projects/:projectID", httpHandler(deleteProject, ctx))
	router.GET("/api/v1/projects/:projectID/assets", httpHandler(getProjectAssets, ctx))

	// Users
	router.POST("/api/v1/users", httpHandler(postUser, ctx))
	router.GET("/api/v1/users", httpHandler(getUsers, ctx))
	router.GET("/api/v1/users/:userID", httpHandler(getUser, ctx))
	router.PUT("/api/v1/users/:userID", httpHandler(putUser, ctx))
	router.DELETE("/api/v1/users/:userID", httpHandler(deleteUser, ctx))
	router.GET("/api/v1/users/:userID/assets", httpHandler(getUserAssets, ctx))

	// Edges
	router.POST("/api/v1/edges", httpHandler(postEdge, ctx))
	router.GET("/api/v1/edges", httpHandler(getEdges, ctx))
	router.GET("/api/v1/edges/:edgeID", httpHandler(getEdge, ctx))
	router.DELETE("/api/v1/edges/:edgeID", httpHandler(deleteEdge, ctx))

	// Delivery
	router.POST("/api/v1/delivery/slates", httpHandler(postDeliverySlates, ctx))
	router.GET("/api/v1/delivery/templates", httpHandler(getDeliveryTemplates, ctx))

	// Ops
	router.GET("/health", httpHandler(getHealth, ctx))
	router.GET("/stats", httpHandler(getStats, ctx))

	return router
}
