package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/claude"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"
)

type LLMCfg struct {
	// Claude configuration
	claudeModel     string
	claudeProjectID string
	claudeLocation  string

	// Gemini configuration
	geminiModel     string
	geminiProjectID string
	geminiLocation  string
}

func (x *LLMCfg) Flags() []cli.Flag {
	return []cli.Flag{
		// Claude flags
		&cli.StringFlag{
			Name:        "claude-model",
			Usage:       "Claude model name",
			Sources:     cli.EnvVars("VIDTALK_CLAUDE_MODEL"),
			Value:       "claude-sonnet-4@20250514",
			Destination: &x.claudeModel,
			Category:    "Claude",
		},
		&cli.StringFlag{
			Name:        "claude-project-id",
			Usage:       "Google Cloud Project ID for Claude Vertex AI",
			Sources:     cli.EnvVars("VIDTALK_CLAUDE_PROJECT_ID"),
			Destination: &x.claudeProjectID,
			Category:    "Claude",
		},
		&cli.StringFlag{
			Name:        "claude-location",
			Usage:       "Google Cloud location for Claude Vertex AI",
			Sources:     cli.EnvVars("VIDTALK_CLAUDE_LOCATION"),
			Value:       "us-east5",
			Destination: &x.claudeLocation,
			Category:    "Claude",
		},
		// Gemini flags
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model",
			Sources:     cli.EnvVars("VIDTALK_GEMINI_MODEL"),
			Value:       "gemini-2.5-flash",
			Destination: &x.geminiModel,
			Category:    "Gemini",
		},
		&cli.StringFlag{
			Name:        "gemini-project-id",
			Usage:       "GCP Project ID for Vertex AI",
			Sources:     cli.EnvVars("VIDTALK_GEMINI_PROJECT_ID"),
			Destination: &x.geminiProjectID,
			Category:    "Gemini",
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "GCP Location for Vertex AI",
			Sources:     cli.EnvVars("VIDTALK_GEMINI_LOCATION"),
			Value:       "us-central1",
			Destination: &x.geminiLocation,
			Category:    "Gemini",
		},
	}
}

func (x LLMCfg) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", x.ActiveProvider()),
		slog.String("claude_model", x.claudeModel),
		slog.String("gemini_model", x.geminiModel),
	)
}

// Configure creates an LLM client, preferring Claude when configured and
// falling back to Gemini.
func (x *LLMCfg) Configure(ctx context.Context) (gollem.LLMClient, error) {
	if x.IsClaudeConfigured() {
		return x.configureClaude(ctx)
	}
	if x.IsGeminiConfigured() {
		return x.configureGemini(ctx)
	}
	return nil, goerr.New("no LLM provider configured, set either claude-project-id or gemini-project-id")
}

func (x *LLMCfg) configureClaude(ctx context.Context) (gollem.LLMClient, error) {
	options := []claude.VertexOption{
		claude.WithVertexModel(x.claudeModel),
	}

	client, err := claude.NewWithVertex(ctx, x.claudeLocation, x.claudeProjectID, options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Claude Vertex AI client",
			goerr.V("projectID", x.claudeProjectID),
			goerr.V("location", x.claudeLocation),
			goerr.V("model", x.claudeModel))
	}

	return client, nil
}

func (x *LLMCfg) configureGemini(ctx context.Context) (gollem.LLMClient, error) {
	options := []gemini.Option{
		gemini.WithModel(x.geminiModel),
	}

	client, err := gemini.New(ctx, x.geminiProjectID, x.geminiLocation, options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client",
			goerr.V("projectID", x.geminiProjectID),
			goerr.V("location", x.geminiLocation),
			goerr.V("model", x.geminiModel))
	}

	return client, nil
}

func (x *LLMCfg) IsClaudeConfigured() bool {
	return x.claudeProjectID != ""
}

func (x *LLMCfg) IsGeminiConfigured() bool {
	return x.geminiProjectID != ""
}

// ActiveProvider returns the name of the LLM provider that Configure
// would use.
func (x *LLMCfg) ActiveProvider() string {
	if x.IsClaudeConfigured() {
		return "claude"
	}
	if x.IsGeminiConfigured() {
		return "gemini"
	}
	return "none"
}
