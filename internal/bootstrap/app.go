// Package bootstrap builds the application object graph: config, storage,
// queue, model client, services, handlers and the HTTP router.
package bootstrap

import (
	"context"
	"database/sql"
	"strings"

	"github.com/gin-gonic/gin"

	"portal-backend/internal/classify"
	"portal-backend/internal/documents"
	"portal-backend/internal/llm"
	"portal-backend/internal/llm/ollama"
	"portal-backend/internal/query"
	"portal-backend/internal/queue"
	"portal-backend/internal/resumes"
	"portal-backend/internal/shared/config"
	"portal-backend/internal/shared/metrics"
	"portal-backend/internal/shared/server"
	"portal-backend/internal/shared/storage/db"
	"portal-backend/internal/shared/storage/object"
	localstore "portal-backend/internal/shared/storage/object/local"
	"portal-backend/internal/shared/telemetry"
	"portal-backend/internal/tickets"
	"portal-backend/internal/users"
	"portal-backend/internal/workflow"
)

// App holds shared dependencies.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Store   object.ObjectStore
	Queue   *queue.NATSQueue
	LLM     llm.Client
	Metrics *metrics.Metrics

	UsersRepo     users.Repo
	TicketsRepo   tickets.Repo
	DocumentsRepo documents.Repo
	ResumesRepo   resumes.Repo

	UsersService     *users.Service
	TicketsService   *tickets.Service
	DocumentsService *documents.Service
	ResumesService   *resumes.Service
	QueryService     *query.Service
}

// Build prepares shared dependencies and the router. Missing DATABASE_URL
// in a dev-like environment falls back to in-memory repositories; missing
// NATS_URL falls back to in-process enrichment goroutines.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	app := &App{
		Config:  cfg,
		Store:   localstore.New(cfg.LocalStoreDir),
		Metrics: metrics.New("api"),
	}

	if err := buildDB(ctx, cfg, app); err != nil {
		return nil, err
	}
	buildQueue(cfg, app)
	buildLLM(cfg, app)
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		Metrics:          app.Metrics,
		UsersHandler:     users.NewHandler(app.UsersService),
		TicketsHandler:   tickets.NewHandler(app.TicketsService),
		DocumentsHandler: documents.NewHandler(app.DocumentsService),
		ResumesHandler:   resumes.NewHandler(app.ResumesService),
		QueryHandler:     query.NewHandler(app.QueryService),
	})
	return app, nil
}

// Close releases connections held by the app.
func (a *App) Close() {
	if a.Queue != nil {
		a.Queue.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config, app *App) error {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db", map[string]any{
				"message": "DATABASE_URL empty; using in-memory repositories",
			})
			return nil
		}
		return errMissingDatabaseURL
	}

	conn, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultServerOptions())
	if err != nil {
		return err
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		conn.Close()
		return err
	}
	app.DB = conn
	return nil
}

func buildQueue(cfg config.Config, app *App) {
	if strings.TrimSpace(cfg.NATSURL) == "" {
		telemetry.Info("bootstrap.queue", map[string]any{
			"message": "NATS_URL empty; enrichment runs in-process",
		})
		return
	}
	q, err := queue.ConnectNATS(cfg.NATSURL)
	if err != nil {
		telemetry.Warn("bootstrap.queue", map[string]any{
			"message": "queue unavailable; enrichment runs in-process",
			"error":   err.Error(),
		})
		return
	}
	app.Queue = q
}

func buildLLM(cfg config.Config, app *App) {
	if strings.TrimSpace(cfg.LLMBaseURL) == "" {
		telemetry.Warn("bootstrap.llm", map[string]any{
			"message": "LLM_BASE_URL empty; summaries and matching degrade",
		})
		app.LLM = llm.Disabled{}
		return
	}
	app.LLM = llm.WithRetry(ollama.New(cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMTimeout))
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = users.NewPGRepo(app.DB)
		app.TicketsRepo = tickets.NewPGRepo(app.DB)
		app.DocumentsRepo = documents.NewPGRepo(app.DB)
		app.ResumesRepo = resumes.NewPGRepo(app.DB)
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.TicketsRepo = tickets.NewMemoryRepo()
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
	}

	var publisher queue.Publisher
	if app.Queue != nil {
		publisher = app.Queue
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.TicketsService = &tickets.Service{
		Repo:             app.TicketsRepo,
		Users:            app.UsersService,
		LLM:              app.LLM,
		SummarizeTimeout: app.Config.ClassifyTimeout,
		Metrics:          app.Metrics,
	}
	app.DocumentsService = &documents.Service{
		Store:           app.Store,
		Repo:            app.DocumentsRepo,
		Classifier:      &classify.KeywordClassifier{LLM: app.LLM},
		Engine:          workflow.Engine{ApprovalThreshold: app.Config.ApprovalThreshold},
		Queue:           publisher,
		ClassifyTimeout: app.Config.ClassifyTimeout,
		Metrics:         app.Metrics,
	}
	app.ResumesService = &resumes.Service{
		Store:          app.Store,
		Repo:           app.ResumesRepo,
		LLM:            app.LLM,
		Queue:          publisher,
		AnalyzeTimeout: app.Config.ClassifyTimeout,
		Metrics:        app.Metrics,
	}
	app.QueryService = &query.Service{
		Documents: app.DocumentsRepo,
		Tickets:   app.TicketsRepo,
		LLM:       app.LLM,
		Timeout:   app.Config.ClassifyTimeout,
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}
