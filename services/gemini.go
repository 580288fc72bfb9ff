package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// ErrNoText is returned when the model reply carries no text
var ErrNoText = errors.New("gemini returned no text")

// ModelProvider opens chat sessions against a generative model
type ModelProvider interface {
	NewSession(systemPrompt string, history []TranslatedEntry) ModelSession
}

// ModelSession is a single-use chat seeded with prior turns
type ModelSession interface {
	SendMessage(ctx context.Context, message string) (string, error)
}

// GeminiProvider creates Gemini chat sessions from one shared client
type GeminiProvider struct {
	client *genai.Client
	model  string
	log    *logrus.Entry
}

// NewGeminiProvider creates the Gemini client. Close must be called on shutdown.
func NewGeminiProvider(ctx context.Context, apiKey, model string, log *logrus.Entry) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: model, log: log}, nil
}

// Close releases the underlying client
func (g *GeminiProvider) Close() error {
	return g.client.Close()
}

// NewSession binds the system prompt and history to a fresh chat
func (g *GeminiProvider) NewSession(systemPrompt string, history []TranslatedEntry) ModelSession {
	model := g.client.GenerativeModel(g.model)
	if systemPrompt != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))
	}

	cs := model.StartChat()
	cs.History = toGeminiContent(history)

	return &geminiSession{cs: cs, model: g.model, log: g.log}
}

type geminiSession struct {
	cs    *genai.ChatSession
	model string
	log   *logrus.Entry
}

func (s *geminiSession) SendMessage(ctx context.Context, message string) (string, error) {
	s.log.WithFields(logrus.Fields{
		"model":   s.model,
		"history": len(s.cs.History),
	}).Debug("sending message to gemini")

	resp, err := s.cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", err
	}

	text := responseText(resp)
	if text == "" {
		return "", ErrNoText
	}

	s.log.WithFields(logrus.Fields{
		"model":  s.model,
		"length": len(text),
	}).Debug("gemini reply received")
	return text, nil
}

func toGeminiContent(history []TranslatedEntry) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, h := range history {
		parts := make([]genai.Part, 0, len(h.Parts))
		for _, p := range h.Parts {
			parts = append(parts, genai.Text(p))
		}
		contents = append(contents, &genai.Content{Role: h.Role, Parts: parts})
	}
	return contents
}

// responseText joins the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
