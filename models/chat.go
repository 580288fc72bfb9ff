package models

// AgentConfig describes the ad-hoc agent a single chat call runs as
type AgentConfig struct {
	Name         string   `json:"name"`
	SystemPrompt string   `json:"system_prompt"`
	Tools        []string `json:"tools"`
}

// HistoryEntry is one prior turn as supplied by the caller.
// Unknown JSON keys are ignored.
type HistoryEntry struct {
	Role    string `json:"role"` // user, assistant, anything else
	Content string `json:"content"`
}

// ChatRequest represents an incoming chat message
type ChatRequest struct {
	Message     string         `json:"message" binding:"required"`
	AgentConfig *AgentConfig   `json:"agent_config" binding:"required"`
	History     []HistoryEntry `json:"history" binding:"required"`
}

// StatusResponse is returned by the root and health endpoints
type StatusResponse struct {
	Status string `json:"status"`
	Time   string `json:"time,omitempty"`
}
