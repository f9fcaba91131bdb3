package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bizdash/import-service/internal/application/contract"
	"github.com/bizdash/import-service/internal/application/importing"
	"github.com/bizdash/import-service/internal/application/importrun"
	"github.com/bizdash/import-service/internal/application/partner"
	"github.com/bizdash/import-service/internal/config"
	infrafile "github.com/bizdash/import-service/internal/infrastructure/file"
	"github.com/bizdash/import-service/internal/infrastructure/metrics"
	"github.com/bizdash/import-service/internal/infrastructure/repository"
	"github.com/bizdash/import-service/internal/infrastructure/sessionstore"
	"github.com/bizdash/import-service/internal/infrastructure/spreadsheet"
)

// App holds the wired import services shared by the HTTP server and the CLI.
type App struct {
	Config   config.Config
	Logger   *logrus.Logger
	DB       *gorm.DB
	Pool     *pgxpool.Pool
	Registry *importing.Registry
	Metrics  *prometheus.Registry

	FromSource   importing.StartFromSource
	GetImportRun importrun.GetImportRun

	redis *redis.Client
}

func NewApp(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*App, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	app := &App{Config: cfg, Logger: logger, DB: db}

	app.Pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	pool := app.Pool

	if cfg.Import.SessionStore == "redis" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		app.redis = redis.NewClient(opts)
	}

	matcher, err := importing.NewMatcher(cfg.Import.Matcher)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Metrics = prometheus.NewRegistry()
	app.Metrics.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	importMetrics := metrics.NewImportMetrics(app.Metrics)

	partnerRepo := repository.NewPartnerRepository(db)
	runRepo := repository.NewImportRunRepository(db)
	listers := referenceListers(repository.NewUnitRepository(db), repository.NewEmployeeRepository(db), partnerRepo)
	recorder := importrun.NewRecorder(runRepo)
	reader := spreadsheet.NewReader()
	template := spreadsheet.NewTemplateWriter()

	contracts := importing.NewService(contract.NewSchema(), importing.ServiceDeps[contract.Row]{
		Listers:  listers,
		Matcher:  matcher,
		Reader:   reader,
		Template: template,
		Store:    newSessionStore[contract.Row](cfg, app.redis),
		Creator:  contract.NewCreator(repository.NewContractRepository(db), repository.NewSequenceRepository(pool)),
		Recorder: recorder,
		Logger:   logger,
		Metrics:  importMetrics,
	})
	partners := importing.NewService(partner.NewSchema(), importing.ServiceDeps[partner.Row]{
		Listers:  listers,
		Matcher:  matcher,
		Reader:   reader,
		Template: template,
		Store:    newSessionStore[partner.Row](cfg, app.redis),
		Creator:  partner.NewCreator(partnerRepo),
		Recorder: recorder,
		Logger:   logger,
		Metrics:  importMetrics,
	})
	app.Registry = importing.NewRegistry(contracts, partners)

	router := infrafile.Router{Local: infrafile.NewLocalSource(cfg.Import.BaseDir)}
	if cfg.S3Enabled() {
		s3Source, err := infrafile.NewS3Source(ctx, infrafile.S3Config{
			Bucket:   cfg.S3.Bucket,
			Region:   cfg.S3.Region,
			Endpoint: cfg.S3.Endpoint,
		})
		if err != nil {
			app.Close()
			return nil, err
		}
		router.Remote = s3Source
	}
	app.FromSource = importing.NewStartFromSource(app.Registry, router)
	app.GetImportRun = importrun.NewGetImportRun(runRepo)

	return app, nil
}

func newSessionStore[T any](cfg config.Config, client *redis.Client) importing.Store[T] {
	if client != nil {
		return sessionstore.NewRedisStore[T](client, cfg.Import.SessionTTL)
	}
	return sessionstore.NewMemoryStore[T](cfg.Import.SessionTTL)
}

func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.WithError(err).Warn("close redis client")
		}
	}
	if a.Pool != nil {
		a.Pool.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
