package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"homescope/server/config"
	"homescope/server/internal/amenities"
	"homescope/server/internal/api"
	"homescope/server/internal/database"
	"homescope/server/internal/enrichment"
	"homescope/server/internal/history"
	"homescope/server/internal/mapimage"
	"homescope/server/internal/planning"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	city := config.GetCityByName(cfg.Server.City)
	if city == nil {
		logger.Warnf("Unknown reference city %q, using default", cfg.Server.City)
		city = config.DefaultCity()
	}
	centerLat, centerLon := city.CenterLatLon()

	timeout := time.Duration(cfg.Adapters.TimeoutSeconds) * time.Second
	amenitiesClient := amenities.NewClient(logger, cfg.Adapters.AmenitiesURL, timeout)
	planningClient := planning.NewClient(logger, cfg.Adapters.PlanningURL, timeout)
	mapGenerator := mapimage.NewGenerator(cfg.Adapters.MapImageURL)

	pipeline := enrichment.NewPipeline(
		logger, amenitiesClient, planningClient, mapGenerator,
		centerLat, centerLon, cfg.Walkability.Jitter,
	)

	var recorder *history.Recorder
	if cfg.History.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.History.DBPath), 0755); err != nil {
			logger.WithError(err).Fatal("Failed to create database directory")
		}

		db, err := database.NewDatabase(cfg.History.DBPath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize database")
		}
		defer db.Close()

		logger.Info("Running database migrations...")
		if err := db.RunMigrations(); err != nil {
			logger.WithError(err).Fatal("Failed to run database migrations")
		}

		recorder = history.NewRecorder(db, cfg, logger)
		recorder.Start()
		defer recorder.Stop()
	}

	handler := api.NewHandler(logger, pipeline, recorder)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	api.SetupRoutes(router, handler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Infof("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
