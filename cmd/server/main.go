package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/geo"
	"trip-planner-service/internal/adapters/render"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres/Redis, Nominatim, OSRM)
// behind ports and starts the HTTP server.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("load configuration")
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	sqliteDB, err := openSqlite(cfg.DBPath)
	if err != nil {
		logger.WithError(err).Fatal("open sqlite database")
	}
	defer sqliteDB.Close()

	if err := repositories.InitSchema(sqliteDB); err != nil {
		logger.WithError(err).Fatal("initialize schema")
	}

	geocodeCache, routeCache, closeCaches, err := buildCaches(cfg, sqliteDB, logger)
	if err != nil {
		logger.WithError(err).Fatal("configure caches")
	}
	defer closeCaches()

	geocoder, err := geo.NewNominatimGeocoder(cfg.NominatimBaseURL, cfg.UserAgent, geocodeCache, logger)
	if err != nil {
		logger.WithError(err).Fatal("configure geocoder")
	}
	routes, err := geo.NewOSRMRouteProvider(cfg.OSRMBaseURL, cfg.UserAgent, routeCache, logger)
	if err != nil {
		logger.WithError(err).Fatal("configure route provider")
	}

	trips := &handlers.TripHandler{
		Repo:         repositories.NewSqliteTripRepository(sqliteDB),
		Geocoder:     geocoder,
		Routes:       routes,
		Renderer:     render.NewPDFRenderer(),
		Rules:        services.DefaultHOSRules(),
		PickupHours:  cfg.PickupHours,
		DropoffHours: cfg.DropoffHours,
		PlanTimeout:  cfg.PlanTimeout,
		Logger:       logger,
	}

	router := api.NewRouter(trips, logger)

	// Timeouts are tuned for cold-cache trip planning (external API latency).
	logger.WithField("addr", ":"+cfg.Port).Info("server listening")
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Fatal(srv.ListenAndServe())
}

func openSqlite(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory %q: %w", dir, err)
		}
	}

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", dbPath, err)
	}
	if err := sqliteDB.Ping(); err != nil {
		return nil, fmt.Errorf("verify sqlite connection to %q: %w", dbPath, err)
	}
	return sqliteDB, nil
}

// buildCaches picks the geocode/route cache backend. Postgres is preferred
// when DATABASE_URL is set, then Redis (geocode only) when REDIS_ADDR is
// set, falling back to the local SQLite database.
func buildCaches(cfg config.Config, sqliteDB *sql.DB, logger *logrus.Logger) (geo.GeocodeCache, geo.RouteCache, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		pg, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		logger.Info("using postgres caches")
		return cache.NewSQLGeocodeCache(pg), cache.NewSQLRouteCache(pg), func() { pg.Close() }, nil

	case cfg.RedisAddr != "":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		logger.WithField("addr", cfg.RedisAddr).Info("using redis geocode cache")
		return cache.NewRedisGeocodeCache(client, 24*time.Hour),
			cache.NewSqliteRouteCache(sqliteDB),
			func() { client.Close() },
			nil

	default:
		logger.Info("using sqlite caches")
		return cache.NewSqliteGeocodeCache(sqliteDB), cache.NewSqliteRouteCache(sqliteDB), func() {}, nil
	}
}
