// Package llm summarizes article text with an OpenAI-compatible chat model
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/newsread/pkg/config"
)

// maxContentRunes limits article text sent to the model
const maxContentRunes = 8000

// Summarizer uses LLM to write short article summaries
type Summarizer struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewSummarizer creates a new LLM summarizer
func NewSummarizer(cfg config.LLMConfig) *Summarizer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &Summarizer{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

// default system prompt for article summaries
const defaultSystemPrompt = `You write short summaries of news articles.
The summary captures the main story and the key facts in 3-5 sentences (300-600 chars).
Write directly about the content itself. NEVER use phrases like "The article discusses", "The author explains", etc.
IMPORTANT: Write the summary in the same language as the article content.
Respond with the summary text only, no headings, quotes or markdown.`

// Summarize returns a summary of the article text. An empty answer from the model is retried,
// and after 3 empty answers the article is reported as impossible to summarize.
func (s *Summarizer) Summarize(ctx context.Context, title, content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("no content to summarize")
	}

	prompt := buildPrompt(title, content)
	for attempt := 0; attempt < 3; attempt++ {
		req := openai.ChatCompletionRequest{
			Model:       s.config.Model,
			Temperature: float32(s.config.Temperature),
			MaxTokens:   s.config.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: s.systemMsg,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		}

		resp, err := s.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", fmt.Errorf("llm request failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no response from llm")
		}

		if summary := cleanSummary(resp.Choices[0].Message.Content); summary != "" {
			return summary, nil
		}
	}

	return "", fmt.Errorf("unable to summarize news content, empty llm response after 3 attempts")
}

// buildPrompt creates the user message with the title and the article text cut to maxContentRunes
func buildPrompt(title, content string) string {
	if utf8.RuneCountInString(content) > maxContentRunes {
		content = string([]rune(content)[:maxContentRunes]) + "..."
	}

	var sb strings.Builder
	if title != "" {
		sb.WriteString(fmt.Sprintf("Title: %s\n\n", title))
	}
	sb.WriteString("Article:\n")
	sb.WriteString(content)
	sb.WriteString("\n\nSummarize this article.")
	return sb.String()
}

// cleanSummary drops whitespace and wrapping quotes some models add
func cleanSummary(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Summary:")
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
