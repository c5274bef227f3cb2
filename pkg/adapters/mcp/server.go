package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/depsnap"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Engine) *Server {
	s := &Server{
		engine: engine,
		mcpServer: server.NewMCPServer("depsnap-mcp", strings.TrimSpace(depsnap.Version),
			server.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	target := []mcp.ToolOption{
		mcp.WithString("project", mcp.Required(), mcp.Description("Project file path")),
		mcp.WithString("target_framework", mcp.Required(), mcp.Description("Target framework moniker, e.g. net8.0")),
	}

	// TOOL: apply_changes
	s.mcpServer.AddTool(mcp.NewTool("apply_changes", append([]mcp.ToolOption{
		mcp.WithDescription("Apply added and removed dependencies to a snapshot and return the result."),
		mcp.WithString("changes", mcp.Required(), mcp.Description(`JSON object {"added": [dependency...], "removed": [id...]}`)),
	}, target...)...), s.handleApply)

	// TOOL: get_snapshot
	s.mcpServer.AddTool(mcp.NewTool("get_snapshot", append([]mcp.ToolOption{
		mcp.WithDescription("Get the current snapshot of a project and target framework."),
	}, target...)...), s.handleSnapshot)

	// TOOL: forget_snapshot
	s.mcpServer.AddTool(mcp.NewTool("forget_snapshot", append([]mcp.ToolOption{
		mcp.WithDescription("Drop the snapshot of a project and target framework."),
	}, target...)...), s.handleForget)

	// TOOL: list_snapshots
	s.mcpServer.AddTool(mcp.NewTool("list_snapshots",
		mcp.WithDescription("List stored snapshot keys ({project}|{target_framework})."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keys, err := s.engine.Keys(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		return jsonResult(map[string][]string{"keys": keys})
	})

	// TOOL: list_filters
	s.mcpServer.AddTool(mcp.NewTool("list_filters",
		mcp.WithDescription("List the filters applied to every change, in order."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(map[string][]string{"filters": s.engine.Filters()})
	})
}

func targetArgs(request mcp.CallToolRequest) (string, domain.TargetFramework, error) {
	project, err := request.RequireString("project")
	if err != nil {
		return "", domain.TargetFramework{}, err
	}
	moniker, err := request.RequireString("target_framework")
	if err != nil {
		return "", domain.TargetFramework{}, err
	}
	return project, domain.NewTargetFramework(moniker), nil
}

func (s *Server) handleApply(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, tf, err := targetArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, err := request.RequireString("changes")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var changes domain.Changes
	if err := json.Unmarshal([]byte(raw), &changes); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid changes: %v", err)), nil
	}

	snap, err := s.engine.Apply(ctx, project, tf, changes)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("apply failed: %v", err)), nil
	}
	return jsonResult(snap.View())
}

func (s *Server) handleSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, tf, err := targetArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, err := s.engine.Snapshot(ctx, project, tf)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("no snapshot for %s %s", project, tf)), nil
	}
	if err != nil {
		return nil, err
	}
	return jsonResult(snap.View())
}

func (s *Server) handleForget(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, tf, err := targetArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.engine.Forget(ctx, project, tf); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("forget failed: %v", err)), nil
	}
	return mcp.NewToolResultText("ok"), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
