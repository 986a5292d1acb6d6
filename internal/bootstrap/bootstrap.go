package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/brainora/internal/app/controllers"
	appRepos "github.com/yigit/brainora/internal/app/repositories"
	appRoutes "github.com/yigit/brainora/internal/app/routes"
	appServices "github.com/yigit/brainora/internal/app/services"
	"github.com/yigit/brainora/internal/app/team"
	"github.com/yigit/brainora/internal/config"
	"github.com/yigit/brainora/internal/db"
	appMiddleware "github.com/yigit/brainora/internal/middleware"
	pkgAuth "github.com/yigit/brainora/internal/pkg/auth"
	"github.com/yigit/brainora/internal/pkg/filestorage"
	"github.com/yigit/brainora/internal/pkg/flash"
	"github.com/yigit/brainora/internal/pkg/logger"
	"github.com/yigit/brainora/internal/pkg/metrics"
	"github.com/yigit/brainora/internal/pkg/redis"
	"github.com/yigit/brainora/internal/seed"
	"github.com/yigit/brainora/internal/web"
)

// multipart overhead allowed on top of the upload limit
const bodySlackBytes = 1 << 20

// Dependencies holds all the application dependencies
type Dependencies struct {
	Config         *config.Config
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	TokenService   *pkgAuth.TokenService
	FileStorage    filestorage.FileStorage
	// LocalStorage is set when uploads are served from disk.
	LocalStorage *filestorage.LocalStorage
	Redis        *redis.Client
	Logger       zerolog.Logger
}

// Close releases connections opened by BuildDependencies.
func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close redis client")
		}
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.ParseConfig(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	if err := db.RunMigrations(dbPool); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// SeedData applies the configured sample data and admin account. Failures are
// logged and do not stop the startup.
func SeedData(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := seed.CreateDefaultData(ctx, seed.Stores{
		Courses:    repos.CourseRepository,
		Activities: repos.ActivityRepository,
		Users:      repos.UserRepository,
	}, seed.Options{
		SampleData:    cfg.Seed.SampleData,
		AdminUsername: cfg.Seed.AdminUsername,
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
	}, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// setupFileStorage picks the upload backend named by the storage driver.
func setupFileStorage(cfg *config.Config, deps *Dependencies) error {
	if strings.EqualFold(cfg.Storage.Driver, "minio") {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		storage, err := filestorage.NewMinioStorage(ctx, filestorage.MinioConfig{
			Endpoint:        cfg.Storage.Minio.Endpoint,
			AccessKeyID:     cfg.Storage.Minio.AccessKeyID,
			SecretAccessKey: cfg.Storage.Minio.SecretAccessKey,
			Bucket:          cfg.Storage.Minio.Bucket,
			UseSSL:          cfg.Storage.Minio.UseSSL,
			PublicURL:       cfg.Storage.Minio.PublicURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize minio storage: %w", err)
		}
		deps.FileStorage = storage
		deps.Logger.Info().Str("bucket", cfg.Storage.Minio.Bucket).Msg("Using minio file storage")
		return nil
	}

	storage, err := filestorage.NewLocalStorage(cfg.Storage.Path, cfg.Storage.URLPrefix)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = storage
	deps.LocalStorage = storage
	deps.Logger.Info().Str("path", storage.Root()).Msg("Using local file storage")
	return nil
}

// setupSessionStore picks where server-side sessions live.
func setupSessionStore(cfg *config.Config, deps *Dependencies) (appServices.SessionStore, error) {
	if strings.EqualFold(cfg.Session.Store, "redis") {
		client, err := redis.NewClient(redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		deps.Redis = client
		deps.Logger.Info().Msg("Using redis session store")
		return appRepos.NewRedisSessionRepository(client), nil
	}

	deps.Logger.Info().Msg("Using postgres session store")
	return deps.Repos.SessionRepository, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Config: cfg, Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	if err := setupFileStorage(cfg, deps); err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, err
	}

	sessions, err := setupSessionStore(cfg, deps)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize session store")
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	deps.TokenService = pkgAuth.NewTokenService(pkgAuth.TokenConfig{
		SecretKey: cfg.Session.Secret,
		Issuer:    cfg.Session.Issuer,
	})

	maxUploadBytes := int64(cfg.Server.MaxUploadMB) << 20

	deps.Services = &appServices.Services{
		Auth: appServices.NewAuthService(
			deps.Repos.UserRepository,
			sessions,
			deps.TokenService,
			cfg.SessionTTL(),
			logger.WithComponent("auth"),
		),
		Users:      appServices.NewUserService(deps.Repos.UserRepository, deps.FileStorage, maxUploadBytes),
		Courses:    appServices.NewCourseService(deps.Repos.CourseRepository, deps.Repos.PaperRepository),
		Papers:     appServices.NewPaperService(deps.Repos.PaperRepository, deps.FileStorage),
		Activities: appServices.NewActivityService(deps.Repos.ActivityRepository, deps.FileStorage),
		Resources:  appServices.NewResourceService(deps.Repos.ResourceRepository, deps.FileStorage, maxUploadBytes),
	}

	cookie := appMiddleware.SessionCookie{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure}
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Services.Auth, cookie)

	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.Services.Auth, cookie, logger.WithComponent("auth")),
		Pages:      appControllers.NewPageController(deps.Services, logger.WithComponent("pages")),
		Courses:    appControllers.NewCourseController(deps.Services.Courses),
		Papers:     appControllers.NewPaperController(deps.Services.Papers, deps.Services.Courses),
		Activities: appControllers.NewActivityController(deps.Services.Activities, cfg.Server.BaseURL),
		Resources:  appControllers.NewResourceController(deps.Services.Resources),
		Users:      appControllers.NewUserController(deps.Services.Users, logger.WithComponent("profile")),
		Info:       appControllers.NewInfoController(team.Default()),
		Health:     appControllers.NewHealthController(dbPool),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.MaxMultipartMemory = int64(cfg.Server.MaxUploadMB) << 20

	tmpl, err := web.Templates(web.FuncMap(deps.FileStorage))
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(logger.WithComponent("http")),
	)
	if cfg.Metrics.Enabled {
		router.Use(metrics.Middleware())
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	router.Use(
		appMiddleware.LimitBody(int64(cfg.Server.MaxUploadMB)<<20+bodySlackBytes),
		flash.Middleware(cfg.Session.Secure),
		deps.AuthMiddleware.LoadSession(),
	)

	mediaPrefix, mediaRoot := "", ""
	if deps.LocalStorage != nil {
		mediaPrefix, mediaRoot = deps.LocalStorage.URLPrefix(), deps.LocalStorage.Root()
	}
	appRoutes.SetupStatic(router, web.Static(), mediaPrefix, mediaRoot)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router, nil
}
