package transport

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alanyang/folio/internal/domain/event"
	porteventbus "github.com/alanyang/folio/internal/port/eventbus"
	portidempotency "github.com/alanyang/folio/internal/port/idempotency"
	gitsvc "github.com/alanyang/folio/internal/service/git"
	projectsvc "github.com/alanyang/folio/internal/service/project"

	githandler "github.com/alanyang/folio/internal/transport/git"
	"github.com/alanyang/folio/internal/transport/health"
	mcptransport "github.com/alanyang/folio/internal/transport/mcp"
	projecthandler "github.com/alanyang/folio/internal/transport/project"
	wshandler "github.com/alanyang/folio/internal/transport/ws"
)

// Deps lists what the router mounts. GitSvc, MCP, EventBus and Idempotency
// are optional.
type Deps struct {
	ProjectSvc     *projectsvc.Service
	GitSvc         *gitsvc.Service
	MCP            *mcptransport.Server
	Hub            *wshandler.Hub
	EventBus       porteventbus.EventBus
	Idempotency    portidempotency.Store
	Health         *health.HealthHandler
	MaxUploadBytes int64
	CORSOrigins    []string
}

func NewRouter(ctx context.Context, d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(Metrics())
	r.Use(CORSMiddleware(d.CORSOrigins))
	r.Use(IdempotencyMiddleware(d.Idempotency))

	// /projects is kept for clients of the original mount point.
	for _, g := range []*gin.RouterGroup{r.Group("/api/projects"), r.Group("/projects")} {
		projecthandler.Register(g, d.ProjectSvc, d.MaxUploadBytes)
		githandler.Register(g, d.ProjectSvc, d.GitSvc)
	}

	if d.Hub != nil {
		d.Hub.Register(r.Group("/api/ws"))
	}
	if d.MCP != nil {
		r.Any("/mcp", gin.WrapH(d.MCP.Handler()))
	}
	if d.Health != nil {
		d.Health.RegisterRoutes(r)
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if d.EventBus != nil {
		subscribeProjectEvents(ctx, d)
	}
	return r
}

// subscribeProjectEvents fans project events out to browsers and MCP watchers
// and drops cached reads, so writes made by other instances are seen here too.
func subscribeProjectEvents(ctx context.Context, d Deps) {
	_, err := d.EventBus.Subscribe(ctx, event.ChannelProject, func(ctx context.Context, e event.Event) {
		d.ProjectSvc.Forget(ctx, e.EntityID)
		if d.Hub != nil {
			d.Hub.Broadcast(e)
		}
		if d.MCP != nil {
			if err := d.MCP.Registry().NotifyProjectEvent(ctx, e); err != nil {
				slog.WarnContext(ctx, "mcp notify failed", "type", e.Type, "project_id", e.EntityID, "error", err)
			}
		}
	})
	if err != nil {
		slog.Error("failed to subscribe project channel", "error", err)
	}
}
