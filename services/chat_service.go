package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Lancelot03/Operion/models"
)

// ChatResult is the outcome of one chat call: either Reply or Err is set.
type ChatResult struct {
	Reply string
	Err   error
}

// OK reports whether the call produced a reply
func (r ChatResult) OK() bool {
	return r.Err == nil
}

// ChatService runs one stateless chat turn per request
type ChatService struct {
	provider ModelProvider
	tools    *ToolRegistry
	timeout  time.Duration
	log      *logrus.Entry
}

// NewChatService wires the model provider and tool registry. A zero timeout
// leaves model calls unbounded.
func NewChatService(provider ModelProvider, tools *ToolRegistry, timeout time.Duration, log *logrus.Entry) *ChatService {
	return &ChatService{
		provider: provider,
		tools:    tools,
		timeout:  timeout,
		log:      log,
	}
}

// Process translates history, lets a tool intercept, then asks the model.
// Model failures are logged and returned in the result; Process never panics.
func (s *ChatService) Process(ctx context.Context, req models.ChatRequest) ChatResult {
	agent := models.AgentConfig{}
	if req.AgentConfig != nil {
		agent = *req.AgentConfig
	}

	entry := s.log.WithFields(logrus.Fields{
		"agent":   agent.Name,
		"history": len(req.History),
		"tools":   agent.Tools,
	})
	if n := countDefaultedRoles(req.History); n > 0 {
		entry.WithField("count", n).Debug("history roles defaulted to user")
	}

	history := TranslateHistory(req.History)
	history, fired := s.tools.Dispatch(ctx, agent.Tools, req.Message, history)
	entry = entry.WithField("tool_fired", fired)

	reply, err := s.send(ctx, agent.SystemPrompt, history, req.Message)
	if err != nil {
		entry.WithError(err).Error("Error calling Gemini API")
		return ChatResult{Err: fmt.Errorf("An error occurred with the Google Gemini API: %w", err)}
	}

	entry.WithField("reply_length", len(reply)).Info("chat completed")
	return ChatResult{Reply: reply}
}

func (s *ChatService) send(ctx context.Context, systemPrompt string, history []TranslatedEntry, message string) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model call panicked: %v", r)
		}
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	session := s.provider.NewSession(systemPrompt, history)
	reply, err = session.SendMessage(ctx, message)
	if err != nil && s.timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("model call timed out after %s: %w", s.timeout, err)
	}
	return reply, err
}
