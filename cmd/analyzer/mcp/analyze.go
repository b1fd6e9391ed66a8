package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-logr/logr"

	"github.com/konveyor/java-arch-analyzer/internal/classify"
	"github.com/konveyor/java-arch-analyzer/internal/graph"
	"github.com/konveyor/java-arch-analyzer/internal/orchestrator"
)

// AnalyzeRepositoryParams defines the parameters for the analyze_repository tool.
type AnalyzeRepositoryParams struct {
	RepoPaths  []string `json:"repo_paths"`
	ConfigFile string   `json:"config_file,omitempty"`
}

// applicationSummary is the per-application result an MCP caller sees: the
// full node/edge batch plus its derived outcome status.
type applicationSummary struct {
	AppKey string             `json:"appKey"`
	Status orchestrator.Status `json:"status"`
	Batch  graph.Batch        `json:"batch"`
}

// analyzeRepository runs the repository pipeline over the given paths and
// returns one applicationSummary per discovered application, JSON-encoded.
func analyzeRepository(ctx context.Context, log logr.Logger, params AnalyzeRepositoryParams) (string, error) {
	if len(params.RepoPaths) == 0 {
		return "", fmt.Errorf("repo_paths is required")
	}
	for _, p := range params.RepoPaths {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("repository path does not exist: %s", p)
		}
	}

	cfg := classify.NewDefaultConfigStore()
	if params.ConfigFile != "" {
		loaded, err := classify.LoadConfigStore(params.ConfigFile)
		if err != nil {
			return "", fmt.Errorf("loading classification config: %w", err)
		}
		cfg = loaded
	}

	results, err := orchestrator.AnalyzeRepositories(ctx, params.RepoPaths, cfg, log)
	if err != nil {
		return "", fmt.Errorf("analysis failed: %w", err)
	}

	var summaries []applicationSummary
	for _, r := range results {
		for _, app := range r.Applications {
			summaries = append(summaries, applicationSummary{
				AppKey: app.AppKey(),
				Status: r.Status[app.AppKey()],
				Batch:  graph.Emit(app),
			})
		}
	}

	out, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal results as JSON: %w", err)
	}
	return string(out), nil
}

// describeSchema returns the OpenAPI schema for the node/edge batch shape
// analyze_repository's results carry.
func describeSchema(context.Context, logr.Logger, struct{}) (string, error) {
	schema, err := graph.DescribeSchema()
	if err != nil {
		return "", fmt.Errorf("describing schema: %w", err)
	}
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema as JSON: %w", err)
	}
	return string(out), nil
}
