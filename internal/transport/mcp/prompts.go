package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	domainproject "github.com/alanyang/folio/internal/domain/project"
	projectsvc "github.com/alanyang/folio/internal/service/project"
)

// RegisterPrompts registers the describe_project prompt.
func RegisterPrompts(s *mcpserver.MCPServer, projectSvc *projectsvc.Service) {
	s.AddPrompt(
		mcpmcp.NewPrompt("describe_project",
			mcpmcp.WithPromptDescription("Renders a portfolio project as text, ready to summarise or rewrite."),
			mcpmcp.WithArgument("project_id",
				mcpmcp.ArgumentDescription("Project UUID"),
				mcpmcp.RequiredArgument(),
			),
		),
		describeProjectHandler(projectSvc),
	)
}

func describeProjectHandler(projectSvc *projectsvc.Service) mcpserver.PromptHandlerFunc {
	return func(ctx context.Context, req mcpmcp.GetPromptRequest) (*mcpmcp.GetPromptResult, error) {
		projectID, err := uuid.Parse(req.Params.Arguments["project_id"])
		if err != nil {
			return nil, fmt.Errorf("invalid project_id: %w", err)
		}

		p, err := projectSvc.Get(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("get project %s: %w", projectID, err)
		}
		if p == nil {
			return nil, fmt.Errorf("project %s not found", projectID)
		}

		return mcpmcp.NewGetPromptResult(
			fmt.Sprintf("Portfolio project %q", p.Title),
			[]mcpmcp.PromptMessage{
				mcpmcp.NewPromptMessage(
					mcpmcp.RoleUser,
					mcpmcp.TextContent{
						Type: "text",
						Text: renderProject(*p),
					},
				),
			},
		), nil
	}
}

func renderProject(p domainproject.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", p.Title)
	fmt.Fprintf(&b, "Description: %s\n", p.Description)
	fmt.Fprintf(&b, "Stack: %s\n", p.Stack)
	fmt.Fprintf(&b, "Technologies: %s\n", p.Technologies)
	fmt.Fprintf(&b, "Deployed: %s\n", p.Deployed)
	fmt.Fprintf(&b, "Repository: %s\n", p.GitRepoLink)
	fmt.Fprintf(&b, "Live site: %s\n", p.ProjectLink)
	fmt.Fprintf(&b, "Banner: %s\n", p.Banner.URL)
	if len(p.Gallery) > 0 {
		b.WriteString("Gallery:\n")
		for _, img := range p.Gallery {
			fmt.Fprintf(&b, "- %s\n", img.URL)
		}
	}
	return b.String()
}
