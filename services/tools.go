package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Tool is a capability that may intercept a message before the model sees it.
type Tool interface {
	// Name is the identifier agents enable the tool by.
	Name() string
	// Trigger reports whether the message should fire the tool and, if so,
	// the argument to invoke it with.
	Trigger(message string) (arg string, ok bool)
	// Invoke runs the tool and returns text for the synthetic model turn.
	Invoke(ctx context.Context, arg string) (string, error)
}

// ToolRegistry maps tool identifiers to tools. It is built once at startup
// and only read afterwards.
type ToolRegistry struct {
	tools []Tool
	log   *logrus.Entry
}

// NewToolRegistry creates a registry holding the given tools in order
func NewToolRegistry(log *logrus.Entry, tools ...Tool) *ToolRegistry {
	r := &ToolRegistry{log: log}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// Register adds a tool, replacing any tool with the same name
func (r *ToolRegistry) Register(tool Tool) {
	for i, t := range r.tools {
		if t.Name() == tool.Name() {
			r.tools[i] = tool
			return
		}
	}
	r.tools = append(r.tools, tool)
}

// Get returns the tool registered under name
func (r *ToolRegistry) Get(name string) (Tool, bool) {
	for _, t := range r.tools {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// Names returns the registered tool names in registration order
func (r *ToolRegistry) Names() []string {
	names := make([]string, len(r.tools))
	for i, t := range r.tools {
		names[i] = t.Name()
	}
	return names
}

// Dispatch lets at most one enabled tool intercept the message. The first
// registered tool that is enabled and whose trigger matches is invoked and
// its result appended to history as a model turn. A failing tool is logged
// and skipped; history is then returned unchanged.
func (r *ToolRegistry) Dispatch(ctx context.Context, enabled []string, message string, history []TranslatedEntry) ([]TranslatedEntry, bool) {
	set := make(map[string]struct{}, len(enabled))
	for _, name := range enabled {
		set[name] = struct{}{}
		if _, ok := r.Get(name); !ok {
			r.log.WithField("tool", name).Debug("enabled tool has no implementation, ignoring")
		}
	}

	for _, tool := range r.tools {
		if _, ok := set[tool.Name()]; !ok {
			continue
		}
		arg, ok := tool.Trigger(message)
		if !ok {
			continue
		}

		entry := r.log.WithFields(logrus.Fields{"tool": tool.Name(), "arg": arg})
		entry.Info("executing tool")

		result, err := tool.Invoke(ctx, arg)
		if err != nil {
			entry.WithError(err).Warn("tool failed, continuing without its result")
			return history, false
		}
		return append(history, TranslatedEntry{
			Role:  RoleModel,
			Parts: []string{result},
		}), true
	}
	return history, false
}

// WebSearchToolName is the identifier of the web search tool
const WebSearchToolName = "web_search"

const webSearchTrigger = "search the web for"

// WebSearchTool fires on "search the web for <query>" and asks a Searcher.
type WebSearchTool struct {
	searcher Searcher
}

// NewWebSearchTool creates the web_search tool backed by searcher
func NewWebSearchTool(searcher Searcher) *WebSearchTool {
	return &WebSearchTool{searcher: searcher}
}

func (w *WebSearchTool) Name() string { return WebSearchToolName }

// Trigger matches case-insensitively. The query is the lower-cased text
// after the last occurrence of the trigger phrase, trimmed.
func (w *WebSearchTool) Trigger(message string) (string, bool) {
	lower := strings.ToLower(message)
	idx := strings.LastIndex(lower, webSearchTrigger)
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(lower[idx+len(webSearchTrigger):]), true
}

func (w *WebSearchTool) Invoke(ctx context.Context, query string) (string, error) {
	result, err := w.searcher.Search(ctx, query)
	if err != nil {
		return "", fmt.Errorf("web search for %q: %w", query, err)
	}
	return fmt.Sprintf("I have performed a web search. The result is: %s", result), nil
}
