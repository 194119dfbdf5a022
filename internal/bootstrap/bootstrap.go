package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/sempozyum/internal/app/auth"
	appControllers "github.com/yigit/sempozyum/internal/app/controllers"
	appMigrations "github.com/yigit/sempozyum/internal/app/migrations"
	appRepos "github.com/yigit/sempozyum/internal/app/repositories"
	appRoutes "github.com/yigit/sempozyum/internal/app/routes"
	appServices "github.com/yigit/sempozyum/internal/app/services"
	"github.com/yigit/sempozyum/internal/config"
	"github.com/yigit/sempozyum/internal/db"
	appMiddleware "github.com/yigit/sempozyum/internal/middleware"
	pkgAuth "github.com/yigit/sempozyum/internal/pkg/auth"
	"github.com/yigit/sempozyum/internal/pkg/email"
	"github.com/yigit/sempozyum/internal/pkg/filestorage"
	"github.com/yigit/sempozyum/internal/pkg/logger"
	"github.com/yigit/sempozyum/internal/pkg/metrics"
	"github.com/yigit/sempozyum/internal/pkg/websocket"
	"github.com/yigit/sempozyum/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AccessService  *appAuth.AuthorizationService
	AuthService    *appServices.AuthService
	FileStorage    *filestorage.LocalStorage
	Mailer         email.EmailService
	Metrics        *metrics.Metrics
	Hub            *websocket.Hub
	Publisher      *appServices.StatusPublisher
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	WSHandler      *websocket.Handler
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	format := strings.ToLower(cfg.Logging.Format)
	lgr := logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  format == "pretty" || format == "text",
		Service: "sempozyum",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, logger.Component("migrator"))
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(ctx, dbPool, cfg.Seed, lgr); err != nil {
		// Startup continues; the admin can still be created by hand
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.Path, cfg.Storage.BaseURL, logger.Component("storage"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Mailer = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.Server.BaseURL,
	}, logger.Component("email"))

	deps.Metrics = metrics.New("sempozyum")
	deps.Hub = websocket.NewHub(logger.Component("websocket"))
	deps.WSHandler = websocket.NewHandler(deps.Hub, cfg.CORS.AllowedOrigins, logger.Component("websocket"))

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  cfg.AccessTokenTTL(),
		RefreshTokenExp: cfg.RefreshTokenTTL(),
		TokenIssuer:     cfg.JWT.Issuer,
	})
	deps.AccessService = appAuth.NewAuthorizationService(deps.Repos.PaperRepository)
	deps.Publisher = appServices.NewStatusPublisher(deps.Repos.UserRepository, deps.Hub, deps.Mailer, deps.Metrics, logger.Component("publisher"))

	repos := deps.Repos
	deps.AuthService = appServices.NewAuthService(repos.UserRepository, repos.TokenRepository, deps.JWTService, logger.Component("auth"))
	userService := appServices.NewUserService(repos.UserRepository, repos.TokenRepository, deps.AuthService, deps.Publisher, logger.Component("users"))
	symposiumService := appServices.NewSymposiumService(repos.SymposiumRepository, repos.TopicRepository, deps.FileStorage, logger.Component("symposia"))
	paperService := appServices.NewPaperService(appServices.PaperServiceDeps{
		Papers:    repos.PaperRepository,
		Symposia:  repos.SymposiumRepository,
		Topics:    repos.TopicRepository,
		Users:     repos.UserRepository,
		Access:    deps.AccessService,
		Storage:   deps.FileStorage,
		Publisher: deps.Publisher,
		Metrics:   deps.Metrics,
		MaxPages:  cfg.Submission.MaxPages,
		Logger:    logger.Component("papers"),
	})
	reviewService := appServices.NewReviewService(repos.PaperRepository, repos.RevisionRepository, deps.AccessService,
		deps.FileStorage, deps.Publisher, deps.Metrics, logger.Component("reviews"))

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, repos.UserRepository)

	maxUpload := cfg.Storage.MaxUploadSize
	deps.Controllers = appRoutes.Controllers{
		Auth:      appControllers.NewAuthController(deps.AuthService, lgr),
		User:      appControllers.NewUserController(userService, lgr),
		Symposium: appControllers.NewSymposiumController(symposiumService, lgr),
		Paper:     appControllers.NewPaperController(paperService, maxUpload, lgr),
		Review:    appControllers.NewReviewController(reviewService, maxUpload, lgr),
		Committee: appControllers.NewCommitteeController(appServices.NewCommitteeService(repos.CommitteeRepository, repos.SymposiumRepository)),
		Journal:   appControllers.NewJournalController(appServices.NewJournalService(repos.JournalRepository)),
		Program: appControllers.NewProgramController(
			appServices.NewProgramService(repos.ProgramRepository, repos.SymposiumRepository, repos.PaperRepository), lgr),
		Sponsor: appControllers.NewSponsorController(
			appServices.NewSponsorService(repos.SponsorRepository, repos.SymposiumRepository, deps.FileStorage, logger.Component("sponsors")), maxUpload),
		Contact: appControllers.NewContactController(appServices.NewContactService(repos.ContactRepository, deps.Mailer, logger.Component("contact"))),
		Archive: appControllers.NewArchiveController(appServices.NewArchiveService(repos.SymposiumRepository, repos.PaperRepository)),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.Metrics(deps.Metrics),
		appMiddleware.CORS(cfg.CORS.AllowedOrigins),
	)
	// Multipart parts beyond this spill to temp files
	router.MaxMultipartMemory = 8 << 20

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.WSHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
