package models

import "time"

// AIModel is one LLM configuration a user can switch between. The data
// service interprets it; this process only stores it.
type AIModel struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"apiKey"`
	BaseURL  string `json:"baseUrl,omitempty"`
}

// Settings is the per-user preferences record.
type Settings struct {
	ID               string    `json:"id"`
	UserID           string    `json:"-"`
	AIModels         []AIModel `json:"aiModels"`
	ActiveModelIndex int       `json:"activeModelIndex"`
	TavilyAPIKey     string    `json:"tavilyApiKey"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

// SettingsPatch carries the fields of an update. Nil means keep.
type SettingsPatch struct {
	AIModels         *[]AIModel `json:"aiModels"`
	ActiveModelIndex *int       `json:"activeModelIndex"`
	TavilyAPIKey     *string    `json:"tavilyApiKey"`
}

// Apply copies the non-nil fields of p onto s.
func (p SettingsPatch) Apply(s *Settings) {
	if p.AIModels != nil {
		s.AIModels = append([]AIModel{}, (*p.AIModels)...)
	}
	if p.ActiveModelIndex != nil {
		s.ActiveModelIndex = *p.ActiveModelIndex
	}
	if p.TavilyAPIKey != nil {
		s.TavilyAPIKey = *p.TavilyAPIKey
	}
}
