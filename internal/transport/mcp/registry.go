package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/alanyang/folio/internal/domain/event"
)

// allProjects is the watch key for sessions following every project.
var allProjects = uuid.Nil

// SessionRegistry records which MCP sessions watch which projects and
// forwards project events to them as notifications.
type SessionRegistry struct {
	mu      sync.RWMutex
	watches map[string]map[uuid.UUID]struct{} // sessionID → watched project ids

	// mcpSrv is set after the MCP server is constructed (avoids circular init dependency).
	mcpMu  sync.RWMutex
	mcpSrv *mcpserver.MCPServer
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		watches: make(map[string]map[uuid.UUID]struct{}),
	}
}

// SetMCPServer injects the mcp-go server after construction.
func (r *SessionRegistry) SetMCPServer(s *mcpserver.MCPServer) {
	r.mcpMu.Lock()
	r.mcpSrv = s
	r.mcpMu.Unlock()
}

// Watch subscribes a session to one project, or to all when projectID is uuid.Nil.
func (r *SessionRegistry) Watch(sessionID string, projectID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.watches[sessionID]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		r.watches[sessionID] = set
	}
	set[projectID] = struct{}{}
}

// Unregister drops every watch held by a closed session. Reports whether it had any.
func (r *SessionRegistry) Unregister(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.watches[sessionID]
	delete(r.watches, sessionID)
	return ok
}

// Watching reports whether the session receives events for projectID.
func (r *SessionRegistry) Watching(sessionID string, projectID uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.watches[sessionID]
	_, one := set[projectID]
	_, all := set[allProjects]
	return one || all
}

// Targets returns the sessions interested in an event for projectID.
func (r *SessionRegistry) Targets(projectID uuid.UUID) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for sessionID, set := range r.watches {
		_, one := set[projectID]
		_, all := set[allProjects]
		if one || all {
			out = append(out, sessionID)
		}
	}
	return out
}

// NotifyProjectEvent sends e to every session watching its project.
func (r *SessionRegistry) NotifyProjectEvent(_ context.Context, e event.Event) error {
	targets := r.Targets(e.EntityID)
	if len(targets) == 0 {
		return nil
	}

	r.mcpMu.RLock()
	srv := r.mcpSrv
	r.mcpMu.RUnlock()

	if srv == nil {
		return fmt.Errorf("mcp server not initialized")
	}

	params, err := toParams(e)
	if err != nil {
		return fmt.Errorf("serialize notification: %w", err)
	}

	var lastErr error
	for _, sessionID := range targets {
		if err := srv.SendNotificationToSpecificClient(sessionID, "notifications/message", params); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func toParams(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var params map[string]any
	if err := json.Unmarshal(data, &params); err != nil {
		return map[string]any{"data": v}, nil
	}
	return params, nil
}
