package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/flaggate/flaggate/internal/adapters/outbound/envcfg"
	"github.com/flaggate/flaggate/internal/adapters/outbound/gitdiff"
	"github.com/flaggate/flaggate/internal/adapters/outbound/policyfile"
	"github.com/flaggate/flaggate/internal/adapters/outbound/registry"
	"github.com/flaggate/flaggate/internal/application"
	"github.com/flaggate/flaggate/internal/domain"
	"github.com/flaggate/flaggate/internal/domain/extract"
)

// registerTools registers all flaggate MCP tools on the given server.
func registerTools(s *server.MCPServer) {
	s.AddTool(
		mcplib.NewTool("flaggate_check",
			mcplib.WithDescription("Run the governance gate against the configured commit range and return the full report as JSON"),
		),
		handleCheck(),
	)

	s.AddTool(
		mcplib.NewTool("flaggate_policy",
			mcplib.WithDescription("Return the effective governance policy (environment config merged with .flaggate.yaml) as JSON"),
		),
		handlePolicy(),
	)

	s.AddTool(
		mcplib.NewTool("flaggate_extract",
			mcplib.WithDescription("Extract candidate flag identifiers from one file's content using the language dispatch and fallback pipeline"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("File path; the extension selects the extractor"),
			),
			mcplib.WithString("content",
				mcplib.Required(),
				mcplib.Description("Full file content to analyze"),
			),
		),
		handleExtract(),
	)
}

func handleCheck() server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, pol, err := loadEffectiveConfig()
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var changes domain.ChangeSource
		if cfg.UseGitHub() {
			changes, err = gitdiff.NewGitHub(cfg.GitHubToken, cfg.GitHubRepo)
			if err != nil {
				return errorResult(err.Error()), nil
			}
		} else {
			changes = gitdiff.NewLocal(cfg.RepoPath)
		}
		reg := registry.NewClient(cfg.APIURL, cfg.APIToken, cfg.Account, cfg.Org, cfg.Project, pol.Environment)

		report, err := application.NewCheckService(changes, reg).Run(ctx, pol, cfg.CommitBefore, cfg.CommitAfter)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handlePolicy() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		_, pol, err := loadEffectiveConfig()
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(map[string]any{
			"environment":                pol.Environment,
			"removal_tags":               pol.RemovalTags,
			"permanent_tags":             pol.PermanentTags,
			"max_flags":                  pol.MaxFlags,
			"last_modified":              pol.LastModified.String(),
			"last_traffic":               pol.LastTraffic.String(),
			"full_rollout_last_modified": pol.FullRolloutLastModified.String(),
			"full_rollout_last_traffic":  pol.FullRolloutLastTraffic.String(),
		})
	}
}

func handleExtract() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		content, err := request.RequireString("content")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		usages, err := extract.File(domain.ChangedFile{
			Path:      path,
			Extension: filepath.Ext(path),
			Content:   content,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("extraction failed: %v", err)), nil
		}
		return jsonResult(usages)
	}
}

func loadEffectiveConfig() (*envcfg.Config, domain.PolicyConfig, error) {
	cfg, err := envcfg.Load()
	if err != nil {
		return nil, domain.PolicyConfig{}, err
	}
	pol, err := cfg.Policy()
	if err != nil {
		return nil, domain.PolicyConfig{}, err
	}
	pol, err = policyfile.New().Apply(cfg.RepoPath, pol)
	if err != nil {
		return nil, domain.PolicyConfig{}, err
	}
	return cfg, pol, nil
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
