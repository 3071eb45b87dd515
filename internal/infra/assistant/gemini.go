// Package assistant implements the storefront chat responders: a hosted LLM
// client and a local keyword fallback.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"darkstore/internal/domain/entity"
	"darkstore/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultEndpoint        = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel           = "gemini-2.0-flash"
	defaultMaxOutputTokens = 512
)

// SourceModel labels answers produced by the hosted model.
const SourceModel = "model"

// geminiClient implements service.AssistantService against the hosted
// generateContent API. The catalog is embedded in the prompt so answers stay
// grounded in what the store actually sells.
type geminiClient struct {
	apiKey          string
	endpoint        string
	model           string
	maxOutputTokens int
	httpClient      *http.Client
	logger          *slog.Logger
}

// NewGeminiClient creates the hosted assistant client.
func NewGeminiClient(apiKey, endpoint, model string, maxOutputTokens int, logger *slog.Logger) service.AssistantService {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if model == "" {
		model = defaultModel
	}
	if maxOutputTokens <= 0 {
		maxOutputTokens = defaultMaxOutputTokens
	}

	return &geminiClient{
		apiKey:          apiKey,
		endpoint:        strings.TrimRight(endpoint, "/"),
		model:           model,
		maxOutputTokens: maxOutputTokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []contentPart `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Answer sends the question with the catalog context to the hosted model.
func (c *geminiClient) Answer(ctx context.Context, question string, products []*entity.Product) (*service.ChatAnswer, error) {
	reqBody := generateContentRequest{
		Contents: []content{
			{Parts: []contentPart{{Text: buildPrompt(question, products)}}},
		},
		GenerationConfig: generationConfig{MaxOutputTokens: c.maxOutputTokens},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "assistant request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("assistant returned %d", resp.StatusCode)
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.Wrap(err, "decode assistant response")
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("assistant returned no candidates")
	}

	answer := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if answer == "" {
		return nil, errors.New("assistant returned an empty answer")
	}

	return &service.ChatAnswer{Answer: answer, Source: SourceModel}, nil
}

// buildPrompt frames the question as a shopping-assistant task over the
// current catalog.
func buildPrompt(question string, products []*entity.Product) string {
	var b strings.Builder
	b.WriteString("You are a friendly shopping assistant for an online store. ")
	b.WriteString("Answer the customer's question using only the catalog below. ")
	b.WriteString("Keep answers short and helpful. If the catalog does not cover the question, say so politely.\n\nCatalog:\n")

	for _, p := range products {
		fmt.Fprintf(&b, "- %s (%s, %s): $%s", p.Name, p.Category, p.Brand, p.EffectivePrice().StringFixed(2))
		if p.Discount > 0 {
			fmt.Fprintf(&b, " (%d%% off $%s)", p.Discount, p.Price.StringFixed(2))
		}
		if p.Stock == 0 {
			b.WriteString(" [out of stock]")
		}
		if p.ShortDescription != "" {
			b.WriteString(" - " + p.ShortDescription)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nCustomer question: ")
	b.WriteString(question)

	return b.String()
}
