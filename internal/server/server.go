// Package server boots the SupplyHub process: config, database, cache,
// storage, then the HTTP stack.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/supplyhub/supplyhub/app/controllers"
	"github.com/supplyhub/supplyhub/app/repositories"
	"github.com/supplyhub/supplyhub/app/routes"
	"github.com/supplyhub/supplyhub/config"
	"github.com/supplyhub/supplyhub/internal/feed"
	"github.com/supplyhub/supplyhub/pkg/cache"
	"github.com/supplyhub/supplyhub/pkg/database"
	"github.com/supplyhub/supplyhub/pkg/logger"
	"github.com/supplyhub/supplyhub/pkg/metrics"
	"github.com/supplyhub/supplyhub/pkg/middleware"
	"github.com/supplyhub/supplyhub/pkg/orm"
	"github.com/supplyhub/supplyhub/pkg/reqid"
	"github.com/supplyhub/supplyhub/pkg/router"
	"github.com/supplyhub/supplyhub/pkg/storage"
)

// cacher adapts pkg/cache's package functions to orm.Cacher.
type cacher struct{}

func (cacher) Get(key string, dest interface{}) bool { return cache.Get(key, dest) }

func (cacher) Set(key string, v interface{}, ttl time.Duration) error {
	return cache.Set(key, v, ttl)
}

// Boot initializes every subsystem except the HTTP listener. The sync CLI
// commands use it too.
func Boot() error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := database.Connect(); err != nil {
		return err
	}
	// Redis down means slower responses, not a dead process.
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, continuing without it", slog.Any("error", err))
	} else {
		orm.CacheStore = cacher{}
	}
	storage.Connect()
	return nil
}

// NewRunner wires the feed pipeline against the booted subsystems.
func NewRunner() *feed.Runner {
	var archive storage.Disk
	if storage.Has("s3") {
		archive = storage.Use("s3")
	}
	repo := repositories.NewCatalogRepository(database.DB)
	return feed.NewRunner(repo, storage.Use("local"), archive, feed.DialFTP)
}

// Handler assembles the middleware stack and routes.
func Handler() http.Handler {
	repo := repositories.NewCatalogRepository(database.DB)
	catalog := controllers.NewCatalogController(repo)
	sync := controllers.NewSyncController(NewRunner())

	r := router.New()
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(metrics.Middleware())

	r.Get("/metrics", "metrics", metrics.Handler())
	routes.RegisterAPI(r, catalog, sync)
	return r.Handler()
}

// Start boots the process and serves HTTP until the listener fails.
func Start() error {
	if err := Boot(); err != nil {
		return err
	}

	addr := ":" + config.AppPort()
	logger.Info("supplyhub listening", slog.String("addr", addr))

	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
