package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/object"
	localstore "resume-builder/internal/shared/storage/object/local"
	s3store "resume-builder/internal/shared/storage/object/s3"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/parse"
)

// App holds shared dependencies and the configured router.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.Store
	Verifier       *auth.HS256
	Extractor      *parse.Extractor
	ResumesRepo    resumes.Repo
	ResumesService *resumes.Service
	ResumesHandler *resumes.Handler
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.LogLevel) != "" {
		telemetry.SetLevel(cfg.LogLevel)
	}
	ctx := context.Background()

	extractor, err := buildExtractor(cfg)
	if err != nil {
		return nil, err
	}

	verifier, err := auth.NewHS256(cfg.JWTSecret, cfg.Env)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo resumes.Repo
	if sqlDB != nil {
		repo = &resumes.PGRepo{DB: sqlDB}
	} else {
		repo = resumes.NewMemoryRepo()
	}
	svc := resumes.NewService(repo, store, extractor)

	app := &App{
		Config:         cfg,
		DB:             sqlDB,
		Store:          store,
		Verifier:       verifier,
		Extractor:      extractor,
		ResumesRepo:    repo,
		ResumesService: svc,
		ResumesHandler: resumes.NewHandler(svc, cfg.MaxUploadBytes),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		Verifier:       app.Verifier,
		ResumesHandler: app.ResumesHandler,
		RateLimiter:    middleware.NewRateLimiter(nil),
		Health:         health.NewService(pinger(sqlDB), cfg.ObjectStoreType),
	})

	return app, nil
}

// pinger keeps a nil *sql.DB from becoming a non-nil interface.
func pinger(sqlDB *sql.DB) health.Pinger {
	if sqlDB == nil {
		return nil
	}
	return sqlDB
}

func buildExtractor(cfg config.Config) (*parse.Extractor, error) {
	path := strings.TrimSpace(cfg.ParserRulesFile)
	if path == "" {
		return parse.Default(), nil
	}
	rules, err := parse.LoadRules(path)
	if err != nil {
		return nil, fmt.Errorf("load parser rules: %w", err)
	}
	telemetry.Info("bootstrap.parser_rules.loaded", map[string]any{"path": path})
	return parse.New(rules)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.db.memory", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	role := db.RuntimeRole()
	opts := db.OptionsFromEnv(db.DefaultOptions(role))
	var (
		sqlDB *sql.DB
		err   error
	)
	if role == db.RoleLambda {
		sqlDB, err = db.Shared(ctx, cfg.DatabaseURL, opts)
	} else {
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
