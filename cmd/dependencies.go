package cmd

import (
	"trading-journal/config"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/pkg/cache"
	"trading-journal/pkg/database"
	"trading-journal/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AppDependency struct {
	db        *database.DB
	cfg       *config.Config
	log       *logger.Logger
	validator *goValidator.Validate
	echo      *echo.Echo
	cache     cache.Cache
}

func NewAppDependency() (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	db, err := database.NewDB(cfg.DB, log)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return nil, err
	}

	// PostgreSQL is migrated with `migrate up`; a local SQLite file is
	// brought up to date on start.
	if cfg.DB.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(model.All()...); err != nil {
			log.Error("Failed to migrate sqlite database", zap.Error(err))
			_ = db.Close()
			return nil, err
		}
	}

	e := echo.New()
	e.HideBanner = true
	return &AppDependency{
		cfg:       cfg,
		log:       log,
		validator: dto.NewValidator(),
		db:        db,
		echo:      e,
		cache:     cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
	}, nil
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	defer func() { _ = d.log.Sync() }()
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
