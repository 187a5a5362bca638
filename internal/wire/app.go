package wire

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	goredis "github.com/redis/go-redis/v9"

	githubadapter "github.com/alanyang/folio/internal/adapter/github"
	"github.com/alanyang/folio/internal/adapter/memory"
	"github.com/alanyang/folio/internal/adapter/minio"
	pgdb "github.com/alanyang/folio/internal/adapter/postgres"
	pgeventbus "github.com/alanyang/folio/internal/adapter/postgres/eventbus"
	pgidempotency "github.com/alanyang/folio/internal/adapter/postgres/idempotency"
	pgproject "github.com/alanyang/folio/internal/adapter/postgres/project"
	redisadapter "github.com/alanyang/folio/internal/adapter/redis"
	"github.com/alanyang/folio/internal/config"
	portcache "github.com/alanyang/folio/internal/port/cache"

	gitsvc "github.com/alanyang/folio/internal/service/git"
	projectsvc "github.com/alanyang/folio/internal/service/project"

	"github.com/alanyang/folio/internal/transport"
	"github.com/alanyang/folio/internal/transport/health"
	mcptransport "github.com/alanyang/folio/internal/transport/mcp"
	wshandler "github.com/alanyang/folio/internal/transport/ws"
)

// App holds the top-level resources needed to run and gracefully stop the server.
type App struct {
	Server     *http.Server
	ProjectSvc *projectsvc.Service
	MCPServer  *mcptransport.Server

	db    *pgdb.Handle
	bus   *pgeventbus.EventBus
	redis *goredis.Client
}

// Build is the composition root: the only place concrete types are wired to their
// interface dependencies.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	// ── Database ─────────────────────────────────────────────────────────────
	if cfg.Database.MigrateOnStart {
		if err := pgdb.Migrate(cfg.Database.URL); err != nil {
			return nil, fmt.Errorf("migrating database: %w", err)
		}
	}
	db := pgdb.NewHandle(cfg.Database.URL, int32(cfg.Database.MaxConns))
	pool, err := db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	app := &App{db: db}

	// ── Adapters ─────────────────────────────────────────────────────────────
	projectRepo := pgproject.New(pool)
	idemRepo := pgidempotency.New(pool)
	app.bus = pgeventbus.New(pool)

	media, err := minio.New(minio.Config{
		Endpoint:        cfg.Media.Endpoint,
		AccessKeyID:     cfg.Media.AccessKey,
		SecretAccessKey: cfg.Media.SecretKey,
		UseSSL:          cfg.Media.UseSSL,
		Bucket:          cfg.Media.Bucket,
		PublicURL:       cfg.Media.PublicURL,
	})
	if err != nil {
		app.Close()
		return nil, err
	}
	if err := media.EnsureBucket(ctx); err != nil {
		app.Close()
		return nil, fmt.Errorf("preparing media bucket: %w", err)
	}

	var cache portcache.Cache
	if cfg.Cache.RedisURL != "" {
		client, err := redisadapter.Dial(ctx, cfg.Cache.RedisURL)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		app.redis = client
		cache = redisadapter.NewCache(client)
	} else {
		cache = memory.NewCache()
	}

	// ── Services ─────────────────────────────────────────────────────────────
	app.ProjectSvc = projectsvc.NewService(projectRepo, media, app.bus, cache, projectsvc.Config{
		BannerCollection:  cfg.Media.BannerCollection,
		GalleryCollection: cfg.Media.GalleryCollection,
		CacheTTL:          cfg.Cache.TTL,
	})

	var gitSvcInstance *gitsvc.Service
	if cfg.GitHub.Enabled {
		gitSvcInstance = gitsvc.NewService(githubadapter.NewClient(cfg.GitHub.Token), cache, cfg.Cache.TTL)
	}

	app.MCPServer = mcptransport.New(app.ProjectSvc, cfg.App.Version)

	// ── Transport ─────────────────────────────────────────────────────────────
	router := transport.NewRouter(ctx, transport.Deps{
		ProjectSvc:     app.ProjectSvc,
		GitSvc:         gitSvcInstance,
		MCP:            app.MCPServer,
		Hub:            wshandler.NewHub(cfg.Server.CORSOrigins...),
		EventBus:       app.bus,
		Idempotency:    idemRepo,
		Health:         health.NewHealthHandler("folio", cfg.App.Version, db, media),
		MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
		CORSOrigins:    cfg.Server.CORSOrigins,
	})

	app.Server = &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	slog.Info("application wired",
		"port", cfg.Server.Port,
		"env", cfg.App.Environment,
		"redis", app.redis != nil,
		"github_lookup", cfg.GitHub.Enabled,
	)
	return app, nil
}

// Close releases the event bus listeners, the cache client and the pool.
func (a *App) Close() {
	if a.bus != nil {
		a.bus.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			slog.Warn("redis close failed", "error", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}
