package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-logr/logr"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPServer wraps the MCP server and provides tool handling
type MCPServer struct {
	server *mcp.Server
	log    logr.Logger
}

// HTTPConfig holds HTTP transport configuration
type HTTPConfig struct {
	OAuthClientID string
	OAuthSecret   string
	OAuthTokenURL string
}

// NewMCPServer creates a new MCP server with all tools registered
func NewMCPServer(log logr.Logger) (*MCPServer, error) {
	s := &MCPServer{log: log}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "java-arch-analyzer-mcp",
			Version: "0.1.0",
		},
		nil,
	)

	if err := s.registerTools(mcpServer); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	s.server = mcpServer
	return s, nil
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools(server *mcp.Server) error {
	server.AddTool(
		&mcp.Tool{
			Name:        "analyze_repository",
			Description: "Analyze one or more Spring Boot repositories and return the extracted architecture graph (applications, controllers, services, repositories, Kafka listeners, endpoints, and the edges between them)",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"repo_paths": {"type": "array", "items": {"type": "string"}, "description": "Paths to the repositories to analyze"},
					"config_file": {"type": "string", "description": "Path to a classification config file (optional)"}
				},
				"required": ["repo_paths"]
			}`),
		},
		s.handleAnalyzeRepository,
	)

	server.AddTool(
		&mcp.Tool{
			Name:        "describe_schema",
			Description: "Describe the OpenAPI schema for the node/edge batch shape analyze_repository returns",
			InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
		},
		s.handleDescribeSchema,
	)

	return nil
}

// wrapError converts common errors to MCP protocol errors
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("file or directory not found: %w", err)
	case strings.Contains(err.Error(), "unable to parse"):
		return fmt.Errorf("parse error: %w", err)
	default:
		return fmt.Errorf("internal error: %w", err)
	}
}

func (s *MCPServer) handleAnalyzeRepository(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params AnalyzeRepositoryParams
	if err := json.Unmarshal(request.Params.Arguments, &params); err != nil {
		return nil, wrapError(fmt.Errorf("invalid parameters: %w", err))
	}

	result, err := analyzeRepository(ctx, s.log, params)
	if err != nil {
		return nil, wrapError(err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: result},
		},
	}, nil
}

func (s *MCPServer) handleDescribeSchema(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := describeSchema(ctx, s.log, struct{}{})
	if err != nil {
		return nil, wrapError(err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: result},
		},
	}, nil
}

// ServeStdio starts the MCP server using stdio transport
func (s *MCPServer) ServeStdio(ctx context.Context) error {
	s.log.Info("starting MCP server with stdio transport")

	transport := &mcp.StdioTransport{}
	session, err := s.server.Connect(ctx, transport, nil)
	if err != nil {
		s.log.Error(err, "failed to connect server to stdio transport")
		return err
	}
	defer session.Close()

	<-ctx.Done()
	s.log.Info("stdio server stopped")
	return nil
}

// ServeHTTP starts the MCP server using HTTP transport
func (s *MCPServer) ServeHTTP(ctx context.Context, port int, config HTTPConfig) error {
	return serveHTTP(ctx, s.server, s.log, port, config)
}
