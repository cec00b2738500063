package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	appConfig "video-idea-api/internal/config"
	"video-idea-api/internal/domain"
	"video-idea-api/internal/metrics"
)

// ErrMalformedResponse indicates the model returned something that could not
// be parsed as the expected idea array.
var ErrMalformedResponse = errors.New("malformed generation response")

// GeneratedIdea is one idea as returned by the generation model. CommentIndex
// refers to the position of the source comment in the submitted batch.
type GeneratedIdea struct {
	CommentIndex int      `json:"commentIndex"`
	Score        int      `json:"score"`
	VideoTitle   string   `json:"videoTitle"`
	Description  string   `json:"description"`
	Research     []string `json:"research"`
}

// IdeaGenerator defines the interface for generating video ideas from comments
type IdeaGenerator interface {
	GenerateIdeas(ctx context.Context, comments []*domain.VideoComment) ([]GeneratedIdea, error)
}

const ideaPrompt = `You are a YouTube content strategist. Below is a numbered list of viewer comments collected from YouTube videos.

Pick the comments with the strongest potential for a new video and turn each into a concrete video idea. Return AT MOST 5 ideas as a JSON array.

For each idea return EXACTLY these fields: commentIndex, score, videoTitle, description, research.

### commentIndex
The number of the source comment from the list below. Each idea must come from exactly one comment, and no comment may be used twice.

### score
Rate the idea from 0 to 100 based on audience demand and feasibility. Be strict: reserve 80+ for ideas with clear, broad demand.

### videoTitle
A concise, compelling title for the new video.

### description
2-4 sentences describing what the video covers and why the comment suggests viewers want it.

### research
2-5 URLs or search queries useful for researching the topic. Plain strings, no markdown.

Skip comments that are spam, pure praise, or contain no actionable request. If fewer than 5 comments are worth turning into ideas, return fewer.

Comments:
`

// geminiClient implements IdeaGenerator using the Gemini API
type geminiClient struct {
	client    *genai.Client
	model     string
	genConfig *genai.GenerateContentConfig
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewGeminiClient creates a new Gemini-backed idea generator
func NewGeminiClient(ctx context.Context, cfg *appConfig.GeminiConfig, logger *zap.Logger, m *metrics.Metrics) (IdeaGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseJsonSchema: map[string]any{
			"type":     "array",
			"maxItems": 5,
			"items": map[string]any{
				"type":     "object",
				"required": []string{"commentIndex", "score", "videoTitle", "description", "research"},
				"properties": map[string]any{
					"commentIndex": map[string]any{
						"type":        "integer",
						"description": "1-based index of the source comment in the submitted list.",
					},
					"score": map[string]any{
						"type":        "integer",
						"description": "Quality score of the idea, from 0 to 100.",
					},
					"videoTitle": map[string]any{
						"type":        "string",
						"description": "Title for the suggested video.",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "What the video covers and why viewers want it.",
					},
					"research": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "URLs or search queries for researching the topic.",
					},
				},
			},
		},
	}

	return &geminiClient{
		client:    genaiClient,
		model:     cfg.Model,
		genConfig: genConfig,
		logger:    logger,
		metrics:   m,
	}, nil
}

// GenerateIdeas submits the comment batch to the model and parses the result
func (c *geminiClient) GenerateIdeas(ctx context.Context, comments []*domain.VideoComment) ([]GeneratedIdea, error) {
	prompt := buildPrompt(comments)

	startTime := time.Now()
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.genConfig)
	duration := time.Since(startTime)

	statusCode := 200
	if err != nil {
		statusCode = 0
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall("gemini:generateContent", "POST", statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("Gemini generation request failed",
			zap.Error(err),
			zap.String("model", c.model),
			zap.Int("comment_count", len(comments)),
		)
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	raw := result.Text()
	var ideas []GeneratedIdea
	if err := json.Unmarshal([]byte(raw), &ideas); err != nil {
		c.logger.Error("Failed to parse Gemini response",
			zap.Error(err),
			zap.String("model", c.model),
			zap.Int("response_length", len(raw)),
		)
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	c.logger.Info("Gemini generation completed",
		zap.String("model", c.model),
		zap.Int("comment_count", len(comments)),
		zap.Int("idea_count", len(ideas)),
		zap.Duration("duration", duration),
	)

	return ideas, nil
}

// buildPrompt renders the numbered comment list appended to the fixed prompt.
// Indexes are 1-based to match what the model is asked to return.
func buildPrompt(comments []*domain.VideoComment) string {
	var sb strings.Builder
	sb.WriteString(ideaPrompt)

	for i, comment := range comments {
		sb.WriteString(fmt.Sprintf("\n%d. [video: %s] %s", i+1, comment.Video.Title, comment.CommentText))
	}

	return sb.String()
}
