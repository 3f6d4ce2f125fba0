package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/auth"
	"docqa-backend/internal/documents"
	"docqa-backend/internal/llm"
	openaillm "docqa-backend/internal/llm/openai"
	"docqa-backend/internal/qa"
	"docqa-backend/internal/shared/config"
	"docqa-backend/internal/shared/server"
	"docqa-backend/internal/shared/server/middleware"
	"docqa-backend/internal/shared/storage/db"
	"docqa-backend/internal/shared/storage/object"
	localstore "docqa-backend/internal/shared/storage/object/local"
	s3store "docqa-backend/internal/shared/storage/object/s3"
	"docqa-backend/internal/summaries"
	"docqa-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	LLM    llm.Client

	UsersRepo     users.Repo
	DocumentsRepo documents.DocumentsRepo
	SummariesRepo summaries.Repo
	QARepo        qa.Repo

	AuthService      *auth.Service
	UsersService     *users.Service
	DocumentsService *documents.Service
	SummariesService *summaries.Service
	QAService        *qa.Service
	Janitor          *documents.Janitor

	AuthHandler      *auth.Handler
	DocumentsHandler *documents.Handler
	SummariesHandler *summaries.Handler
	QAHandler        *qa.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		AuthHandler:      app.AuthHandler,
		DocumentsHandler: app.DocumentsHandler,
		SummariesHandler: app.SummariesHandler,
		QAHandler:        app.QAHandler,
		Resolver:         userResolver(app.UsersService),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var userRepo users.Repo
	var docRepo documents.DocumentsRepo
	var summaryRepo summaries.Repo
	var qaRepo qa.Repo

	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		docRepo = &documents.PGRepo{DB: app.DB}
		summaryRepo = &summaries.PGRepo{DB: app.DB}
		qaRepo = &qa.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		docRepo = documents.NewMemoryRepo()
		summaryRepo = summaries.NewMemoryRepo()
		qaRepo = qa.NewMemoryRepo()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" && strings.TrimSpace(os.Getenv("OPENAI_API_KEY")) != "" {
		client, err := openaillm.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel)
		if err != nil {
			return err
		}
		llmClient = client
	} else {
		log.Printf("bootstrap: LLM not configured; summarize and ask will be unavailable")
	}

	docSvc := documents.NewService(docRepo, app.Store, summaryRepo, qaRepo, app.Config.FileRetention)
	summarySvc := summaries.NewService(summaryRepo, docSvc, llmClient)
	qaSvc := qa.NewService(qaRepo, docSvc, llmClient)
	authSvc := auth.NewService(userRepo)

	app.LLM = llmClient
	app.UsersRepo = userRepo
	app.DocumentsRepo = docRepo
	app.SummariesRepo = summaryRepo
	app.QARepo = qaRepo
	app.AuthService = authSvc
	app.UsersService = users.NewService(userRepo)
	app.DocumentsService = docSvc
	app.SummariesService = summarySvc
	app.QAService = qaSvc
	app.Janitor = documents.NewJanitor(docRepo, app.Store, 0)
	app.AuthHandler = auth.NewHandler(authSvc)
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.SummariesHandler = summaries.NewHandler(summarySvc)
	app.QAHandler = qa.NewHandler(qaSvc)

	return nil
}

func userResolver(svc *users.Service) middleware.UserResolver {
	return func(ctx context.Context, userID string) (middleware.AuthedUser, bool, error) {
		user, err := svc.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				return middleware.AuthedUser{}, false, nil
			}
			return middleware.AuthedUser{}, false, err
		}
		return middleware.AuthedUser{ID: user.ID, Username: user.Username, Email: user.Email}, true, nil
	}
}
