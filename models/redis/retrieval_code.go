package redis

import (
	"Perkdraft/models"
	"time"
)

// RetrievalEntry is what a retrieval code resolves to. It outlives the session.
type RetrievalEntry struct {
	Code         string              `json:"code"`
	SessionCode  string              `json:"session_code"`
	PlayerID     string              `json:"player_id"`
	PlayerName   string              `json:"player_name"`
	SelectionURL string              `json:"selection_url,omitempty"`
	Config       models.BundleConfig `json:"config"`
	Rewards      []RewardDisplay     `json:"rewards"`
	CreatedAt    time.Time           `json:"created_at"`
}

type RewardDisplay struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      string `json:"rarity"`
}
