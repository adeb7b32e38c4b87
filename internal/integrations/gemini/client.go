package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"saluz-foodbot/internal/domain"
	"saluz-foodbot/internal/usecase"
)

const (
	defaultModel    = "gemini-2.5-flash"
	defaultTimeout  = 240 * time.Second
	defaultAttempts = 4
)

// generator is the minimal model-invocation seam. The production
// implementation wraps the genai SDK; tests substitute fakes.
type generator interface {
	Generate(ctx context.Context, turns []domain.Turn) (string, error)
}

// Client invokes the Gemini completion capability with a fixed response
// schema and a bounded retry schedule: up to 4 attempts, sleeping
// 2^attempt seconds between transient failures. Failures surface as the
// usecase package's completion error contract.
type Client struct {
	gen      generator
	attempts int
	timeout  time.Duration
	sleep    func(time.Duration)
}

type Option func(*Client)

// WithTimeout bounds each individual model call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a Client backed by the real Gemini API.
func NewClient(ctx context.Context, apiKey, modelID string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = defaultModel
	}
	sdk, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	c := &Client{
		gen:      &sdkGenerator{client: sdk, modelID: modelID},
		attempts: defaultAttempts,
		timeout:  defaultTimeout,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// RetryBudget returns the worst-case wall time of one Complete call with
// the given per-attempt timeout: every attempt runs to its deadline and
// every inter-attempt sleep is taken. Servers size their response
// deadlines from this.
func RetryBudget(perCall time.Duration) time.Duration {
	if perCall <= 0 {
		perCall = defaultTimeout
	}
	total := time.Duration(defaultAttempts) * perCall
	for attempt := 1; attempt < defaultAttempts; attempt++ {
		total += time.Duration(1<<uint(attempt)) * time.Second
	}
	return total
}

// Complete sends the assembled conversation and returns the raw completion
// text, retrying transient API failures per the backoff schedule.
func (c *Client) Complete(ctx context.Context, turns []domain.Turn) (string, error) {
	if len(turns) == 0 {
		return "", &usecase.CompletionFatalError{Err: errors.New("gemini: empty conversation")}
	}

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		text, err := c.gen.Generate(callCtx, turns)
		cancel()
		if err == nil {
			return strings.TrimSpace(text), nil
		}
		if !isTransient(err) {
			return "", &usecase.CompletionFatalError{Err: err}
		}
		lastErr = err
		if attempt < c.attempts {
			c.sleep(time.Duration(1<<uint(attempt)) * time.Second)
		}
	}
	return "", fmt.Errorf("%w: %v", usecase.ErrCompletionOverloaded, lastErr)
}

// Close releases the underlying SDK client, if any.
func (c *Client) Close() error {
	if closer, ok := c.gen.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// isTransient treats API-level errors and per-call timeouts as retryable;
// anything else aborts the turn immediately.
func isTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// sdkGenerator adapts the genai SDK to the generator seam.
type sdkGenerator struct {
	client  *genai.Client
	modelID string
}

func (g *sdkGenerator) Generate(ctx context.Context, turns []domain.Turn) (string, error) {
	model := g.client.GenerativeModel(g.modelID)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = completionSchema()

	cs := model.StartChat()
	for _, t := range turns[:len(turns)-1] {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  t.Role,
			Parts: []genai.Part{genai.Text(t.Text)},
		})
	}

	last := turns[len(turns)-1]
	resp, err := cs.SendMessage(ctx, genai.Text(last.Text))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini: no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("gemini: empty candidate content")
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

func (g *sdkGenerator) Close() error {
	return g.client.Close()
}

// completionSchema constrains every response to the order-bot shape so the
// interpreter can decode it mechanically.
func completionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"action": {
				Type:        genai.TypeString,
				Description: "Ação: 'ORDER_PENDING', 'ORDER_READY', ou 'GENERAL_CHAT'.",
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "Resposta principal para o usuário. Confirmação de pedido, resposta a perguntas, etc.",
			},
			"items": {
				Type:        genai.TypeArray,
				Description: "Lista de itens do pedido atual, baseada estritamente no cardápio.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":     {Type: genai.TypeString},
						"quantity": {Type: genai.TypeInteger},
					},
				},
			},
			"total_price": {
				Type:        genai.TypeNumber,
				Description: "Preço total do pedido, calculado estritamente com base no cardápio.",
			},
		},
	}
}
