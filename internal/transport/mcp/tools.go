package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	projectsvc "github.com/alanyang/folio/internal/service/project"
)

// RegisterTools registers the read-only project tools on the server.
func RegisterTools(s *mcpserver.MCPServer, reg *SessionRegistry, projectSvc *projectsvc.Service) {
	s.AddTool(mcpmcp.NewTool("list_projects",
		mcpmcp.WithDescription("List every portfolio project, most recently updated first. Returns a JSON array."),
	), listProjectsHandler(projectSvc))

	s.AddTool(mcpmcp.NewTool("get_project",
		mcpmcp.WithDescription("Fetch one portfolio project by id. Returns null when no such project exists."),
		mcpmcp.WithString("project_id", mcpmcp.Required(), mcpmcp.Description("Project UUID")),
	), getProjectHandler(projectSvc))

	s.AddTool(mcpmcp.NewTool("watch_project",
		mcpmcp.WithDescription("Receive a notifications/message whenever a project is created, updated or deleted. Omit project_id to watch all projects."),
		mcpmcp.WithString("project_id", mcpmcp.Description("Project UUID (optional)")),
	), watchProjectHandler(reg))
}

// ── Tool handlers ─────────────────────────────────────────────────────────

func listProjectsHandler(projectSvc *projectsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, _ mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		projects, err := projectSvc.List(ctx)
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}
		data, err := json.Marshal(projects)
		if err != nil {
			return nil, fmt.Errorf("marshal projects: %w", err)
		}
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

func getProjectHandler(projectSvc *projectsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		id, err := uuid.Parse(mcpmcp.ParseString(req, "project_id", ""))
		if err != nil {
			return mcpmcp.NewToolResultText("error: invalid project_id"), nil
		}

		p, err := projectSvc.Get(ctx, id)
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}
		if p == nil {
			return mcpmcp.NewToolResultText("null"), nil
		}
		data, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("marshal project: %w", err)
		}
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

func watchProjectHandler(reg *SessionRegistry) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		projectID := allProjects
		if raw := mcpmcp.ParseString(req, "project_id", ""); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return mcpmcp.NewToolResultText("error: invalid project_id"), nil
			}
			projectID = id
		}

		session := mcpserver.ClientSessionFromContext(ctx)
		if session == nil {
			return mcpmcp.NewToolResultText("error: watching requires a session"), nil
		}
		reg.Watch(session.SessionID(), projectID)
		return mcpmcp.NewToolResultText(`{"ok":true}`), nil
	}
}
