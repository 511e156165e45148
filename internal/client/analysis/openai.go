package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/archedata/internal/logging"
	"github.com/patrickmn/go-cache"
	"github.com/sashabaranov/go-openai"
	"github.com/zeebo/xxh3"
	"golang.org/x/time/rate"
)

const systemPrompt = `You are an expert archaeological assistant. Analyze the field notes and extract key information.
Respond with a JSON object with exactly these fields:
  "summary": a concise professional summary of the activities,
  "suggestedTags": a list of relevant academic tags (period, method, object type),
  "potentialMaterials": a list of materials mentioned (e.g. Bronze, Ceramic, Bone).`

var errNoChoices = errors.New("no choices in response")

// completer is the part of *openai.Client the analyzer needs.
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config configures the OpenAI-compatible analyzer.
type Config struct {
	Endpoint          string // base URL; empty means the public OpenAI API
	Model             string
	APIKey            string
	Timeout           time.Duration
	RequestsPerMinute int
	CacheTTL          time.Duration
}

// OpenAIAnalyzer calls an OpenAI-compatible chat completions endpoint.
// Results are memoized by note text.
type OpenAIAnalyzer struct {
	client  completer
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	cache   *cache.Cache
	logger  logging.Logger
}

// NewOpenAIAnalyzer builds an analyzer. Without an API key and a custom
// endpoint there is nobody to ask, and every call falls back.
func NewOpenAIAnalyzer(cfg Config, logger logging.Logger) *OpenAIAnalyzer {
	var client completer
	if cfg.APIKey != "" || cfg.Endpoint != "" {
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		if cfg.Endpoint != "" {
			clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")
		}
		client = openai.NewClientWithConfig(clientConfig)
	}
	return newAnalyzer(client, cfg, logger)
}

func newAnalyzer(client completer, cfg Config, logger logging.Logger) *OpenAIAnalyzer {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}

	return &OpenAIAnalyzer{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		limiter: rate.NewLimiter(limit, 1),
		cache:   cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		logger:  logger,
	}
}

// Analyze returns the model's analysis of notes, or Fallback() on any failure.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, notes string) Analysis {
	if a.client == nil {
		a.logger.Warn(ctx, "analyzer not configured, using fallback")
		return Fallback()
	}
	if strings.TrimSpace(notes) == "" {
		return Fallback()
	}

	key := a.cacheKey(notes)
	if x, found := a.cache.Get(key); found {
		return x.(Analysis)
	}

	res, err := a.analyze(ctx, notes)
	if err != nil {
		a.logger.Error(ctx, "field notes analysis failed", "model", a.model, "error", err)
		return Fallback()
	}

	a.cache.Set(key, res, cache.DefaultExpiration)
	return res
}

func (a *OpenAIAnalyzer) analyze(ctx context.Context, notes string) (Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.limiter.Wait(ctx); err != nil {
		return Analysis{}, fmt.Errorf("rate limit: %w", err)
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Field Notes:\n" + strconv.Quote(notes)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Analysis{}, errNoChoices
	}

	a.logger.Debug(ctx, "field notes analysed",
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"elapsed", time.Since(start))

	return parseAnalysis(resp.Choices[0].Message.Content)
}

func parseAnalysis(content string) (Analysis, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var res Analysis
	if err := json.Unmarshal([]byte(content), &res); err != nil {
		return Analysis{}, fmt.Errorf("decode analysis: %w", err)
	}
	if strings.TrimSpace(res.Summary) == "" {
		return Analysis{}, errors.New("analysis has no summary")
	}
	if res.SuggestedTags == nil {
		res.SuggestedTags = []string{}
	}
	if res.PotentialMaterials == nil {
		res.PotentialMaterials = []string{}
	}
	return res, nil
}

func (a *OpenAIAnalyzer) cacheKey(notes string) string {
	return strconv.FormatUint(xxh3.HashString(a.model+"\x00"+notes), 16)
}
