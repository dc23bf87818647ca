package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"student-score-predictor/internal/api"
	"student-score-predictor/internal/config"
	"student-score-predictor/internal/dataset"
	"student-score-predictor/internal/logger"
	"student-score-predictor/internal/metrics"
	"student-score-predictor/internal/models"
	"student-score-predictor/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	clamp, err := service.ParseClampPolicy(cfg.ClampPolicy)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Training data source
	var source dataset.Source
	if cfg.Database.Enabled() {
		pg := dataset.NewPostgresSource(cfg.Database.ConnectionString(), cfg.Database.Table)
		defer pg.Close()
		source = pg
	} else {
		source = dataset.NewCSVSource(cfg.DatasetPath)
	}

	// Initialize Services
	m := metrics.New()
	predictor := service.NewPredictor(models.StudentHabitsSchema, models.StudentHabitsControls, source, clamp, m)
	if err := predictor.Train(context.Background()); err != nil {
		slog.Error("failed to fit model", "source", source.Name(), "error", err)
		os.Exit(1)
	}

	// Initialize Handler
	handler := api.NewHandler(predictor)

	// Router Setup
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	handler.RegisterRoutes(r)
	r.Handle("/metrics", m.Handler())

	slog.Info("starting server",
		"addr", "http://localhost:"+cfg.Port,
		"source", source.Name(),
		"clamp", string(clamp),
	)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
