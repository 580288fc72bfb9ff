package services

import "github.com/Lancelot03/Operion/models"

// Roles understood by the Gemini chat API
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// TranslatedEntry is a history turn in Gemini's role vocabulary.
// Parts always holds exactly one string.
type TranslatedEntry struct {
	Role  string
	Parts []string
}

// Text returns the entry's content
func (e TranslatedEntry) Text() string {
	if len(e.Parts) == 0 {
		return ""
	}
	return e.Parts[0]
}

// TranslateHistory maps caller history onto user/model turns, preserving
// order and content. "assistant" becomes "model"; every other role,
// including "system" and unknown values, becomes "user".
func TranslateHistory(history []models.HistoryEntry) []TranslatedEntry {
	translated := make([]TranslatedEntry, 0, len(history)+1)
	for _, h := range history {
		translated = append(translated, TranslatedEntry{
			Role:  translateRole(h.Role),
			Parts: []string{h.Content},
		})
	}
	return translated
}

func translateRole(role string) string {
	if role == "assistant" {
		return RoleModel
	}
	return RoleUser
}

// countDefaultedRoles returns how many entries had a role that was neither
// "user" nor "assistant".
func countDefaultedRoles(history []models.HistoryEntry) int {
	n := 0
	for _, h := range history {
		if h.Role != "user" && h.Role != "assistant" {
			n++
		}
	}
	return n
}
