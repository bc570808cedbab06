package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/blacksmith/atlas/internal/cache"
	"github.com/blacksmith/atlas/internal/compress"
	"github.com/blacksmith/atlas/internal/config"
	"github.com/blacksmith/atlas/internal/delivery"
	"github.com/blacksmith/atlas/internal/jobs"
	"github.com/blacksmith/atlas/internal/library"
	"github.com/blacksmith/atlas/internal/queue"
	"github.com/blacksmith/atlas/internal/service"
	"github.com/blacksmith/atlas/internal/store"
)

// Server represents the server
type Server struct {
	httpPort string
}

// NewServer creates a new server
func NewServer(httpPort string) *Server {
	return &Server{
		httpPort: httpPort,
	}
}

// Start starts the server
func (s *Server) Start() {
	if err := Start(s.httpPort); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start starts the http server and the background jobs
func Start(httpPort string) error {
	httpPort = ":" + httpPort

	cnf := config.LoadConfig()
	rdb := config.GetDb(cnf)

	listener, err := net.Listen("tcp", httpPort)
	if err != nil {
		return err
	}

	atlasStore := store.NewGormStore(rdb)
	if err := atlasStore.Migrate(); err != nil {
		return err
	}

	redis, err := cache.NewRedis(cnf.RedisAddr, cnf.RedisDB)
	if err != nil {
		return err
	}

	var assetCache cache.AssetCache
	var pingCache func(ctx context.Context) error
	if err := redis.Ping(context.Background()); err != nil {
		logrus.Warnf("redis unreachable at %s, falling back to in-memory cache: %v", cnf.RedisAddr, err)
		assetCache = cache.NewMemoryAssetCache()
		// the memory cache has no daemon to ping
	} else {
		assetCache = cache.NewRedisAssetCache(redis)
		pingCache = redis.Ping
	}

	var events queue.AssetQueue
	if cnf.KafkaBrokers != "" {
		events, err = queue.NewKafkaQueue(cnf.KafkaBrokers)
		if err != nil {
			return err
		}
	} else {
		events = queue.NewNopQueue()
	}
	defer events.Close()

	lib := library.New(cnf.LibraryRoot)

	renderer, err := delivery.NewRenderer(cnf.TemplateDir)
	if err != nil {
		return err
	}

	assetService := service.NewAssetService(atlasStore, assetCache, events, lib)
	graphService := service.NewGraphService(atlasStore)
	catalogService := service.NewCatalogService(atlasStore)
	statsService := service.NewStatsService(atlasStore, assetCache, lib)
	deliveryService := service.NewDeliveryService(renderer, compress.NewLz4())

	retention, err := time.ParseDuration(cnf.TrashRetention)
	if err != nil {
		retention = 30 * 24 * time.Hour
	}

	executor := jobs.NewTaskExecutor([]jobs.CronJob{
		jobs.NewTrashPurger(atlasStore, assetService, retention),
		jobs.NewCacheWarmTask(cnf.CacheWarmCron, atlasStore, assetCache),
		jobs.NewStatsRefreshTask(cnf.StatsCron, statsService),
	})
	executor.Run()
	defer executor.Stop()

	handlerCtx := &handlerContext{
		Assets:    assetService,
		Catalog:   catalogService,
		Graph:     graphService,
		Delivery:  deliveryService,
		Stats:     statsService,
		PingCache: pingCache,
	}

	apiMux := http.NewServeMux()
	apiMux.Handle("/metrics", promhttp.Handler())
	apiMux.Handle("/", NewRouter(handlerCtx))

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // the library browser runs on the vite dev port
		AllowedMethods:   []string{"GET", "POST", "DELETE", "PUT"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	restServer := &http.Server{
		Addr:    httpPort,
		Handler: c.Handler(apiMux),
	}

	// make sure to wait for the server to stop before exiting
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting atlas api on: ", httpPort)
		if err := restServer.Serve(listener); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("error starting atlas api: %v", err)
			}
		}
		logrus.Infof("atlas api stopped")
	}()

	time.Sleep(1 * time.Second)
	logrus.Infof("Press Ctrl+C to stop the server")

	// listen for interrupt signal to gracefully shut down the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT, unix.SIGTSTP)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	if err := restServer.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error stopping atlas api: %v", err)
	}

	wg.Wait()

	return nil
}
