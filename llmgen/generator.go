package llmgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/teilomillet/gollm"

	"github.com/martinemde/refinery/genloop"
)

// Generator implements genloop.Generator on top of a gollm LLM.
type Generator struct {
	provider  string
	model     string
	llm       gollm.LLM
	system    string
	transport TransportPolicy
}

// Option configures a Generator.
type Option func(*config)

type config struct {
	apiKey      string
	model       string
	system      string
	maxTokens   int
	temperature float64
	transport   *TransportPolicy
	extraOpts   []gollm.ConfigOption
}

// WithAPIKey sets the API key. If unset, gollm reads it from provider
// environment variables.
func WithAPIKey(key string) Option {
	return func(c *config) { c.apiKey = key }
}

// WithModel sets the model identifier; catalog aliases are accepted.
func WithModel(model string) Option {
	return func(c *config) { c.model = model }
}

// WithSystemPrompt sets a system prompt sent on every generation call.
func WithSystemPrompt(system string) Option {
	return func(c *config) { c.system = system }
}

// WithMaxTokens sets the generation token limit.
func WithMaxTokens(n int) Option {
	return func(c *config) { c.maxTokens = n }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *config) { c.temperature = t }
}

// WithTransportPolicy overrides the transport-level retry policy.
func WithTransportPolicy(p TransportPolicy) Option {
	return func(c *config) { c.transport = &p }
}

// WithGollmOptions adds extra gollm configuration options.
func WithGollmOptions(opts ...gollm.ConfigOption) Option {
	return func(c *config) { c.extraOpts = append(c.extraOpts, opts...) }
}

// New creates a Generator for the given provider. If no model is
// configured the newest catalog model for the provider is used.
func New(provider string, opts ...Option) (*Generator, error) {
	cfg := &config{
		maxTokens:   4096,
		temperature: 0.7,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	model := cfg.model
	if model == "" {
		model = DefaultModel(provider)
	} else if info := LookupModel(model); info != nil {
		model = info.ID
	}

	gollmOpts := []gollm.ConfigOption{
		gollm.SetProvider(provider),
		gollm.SetModel(model),
		gollm.SetMaxTokens(cfg.maxTokens),
		gollm.SetTemperature(cfg.temperature),
		gollm.SetMaxRetries(0), // transport retry is handled here
		gollm.SetLogLevel(gollm.LogLevelWarn),
	}
	if cfg.apiKey != "" {
		gollmOpts = append(gollmOpts, gollm.SetAPIKey(cfg.apiKey))
	}
	gollmOpts = append(gollmOpts, cfg.extraOpts...)

	llm, err := gollm.NewLLM(gollmOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gollm LLM for provider %s: %w", provider, err)
	}

	transport := DefaultTransportPolicy()
	if cfg.transport != nil {
		transport = *cfg.transport
	}

	return &Generator{
		provider:  provider,
		model:     model,
		llm:       llm,
		system:    cfg.system,
		transport: transport,
	}, nil
}

// NewFromLLM wraps an existing gollm.LLM instance.
func NewFromLLM(provider string, llm gollm.LLM, opts ...Option) *Generator {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	transport := DefaultTransportPolicy()
	if cfg.transport != nil {
		transport = *cfg.transport
	}
	return &Generator{
		provider:  provider,
		model:     cfg.model,
		llm:       llm,
		system:    cfg.system,
		transport: transport,
	}
}

// Provider returns the provider identifier.
func (g *Generator) Provider() string { return g.provider }

// Model returns the resolved model identifier.
func (g *Generator) Model() string { return g.model }

// Generate produces one candidate for the request, steering the model with
// feedback from the previous attempt when present.
func (g *Generator) Generate(ctx context.Context, req genloop.Request, feedback *genloop.Feedback) (*genloop.Candidate, error) {
	promptText := BuildPrompt(req, feedback)

	var promptOpts []gollm.PromptOption
	if g.system != "" {
		promptOpts = append(promptOpts, gollm.WithSystemPrompt(g.system, gollm.CacheTypeEphemeral))
	}
	prompt := gollm.NewPrompt(promptText, promptOpts...)

	text, err := retryTransport(ctx, g.transport, func(ctx context.Context) (string, error) {
		out, genErr := g.llm.Generate(ctx, prompt)
		if genErr != nil {
			return "", classifyError(g.provider, genErr)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	return genloop.NewCandidate(text), nil
}

// BuildPrompt renders the generation prompt: the task text, followed by a
// correction block when feedback from a failed attempt is present.
func BuildPrompt(req genloop.Request, feedback *genloop.Feedback) string {
	var sb strings.Builder
	sb.WriteString(req.Task)

	if feedback != nil {
		sb.WriteString("\n\n")
		sb.WriteString(feedback.Text)
		sb.WriteString("\n\nProduce a corrected version that fixes every error above. Output only the corrected artifact.")
	}

	return sb.String()
}
