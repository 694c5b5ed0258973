package redis

import (
	"Perkdraft/models"
	"encoding/json"
	"time"
)

// Player represents a participant inside a Session
type Player struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Number        int                  `json:"number"`
	Rewards       []AssignedReward     `json:"rewards"`
	Luck          *LuckSummary         `json:"luck,omitempty"`
	Candidates    []json.RawMessage    `json:"candidates,omitempty"`
	Locked        bool                 `json:"locked"`
	Selection     *Selection           `json:"selection,omitempty"`
	Bundle        *models.BundleConfig `json:"bundle,omitempty"`
	RetrievalCode string               `json:"retrieval_code,omitempty"`
	Removed       bool                 `json:"removed"`
	JoinedAt      time.Time            `json:"joined_at"`
}

// AssignedReward is a catalog item as attached to a player
type AssignedReward struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Rarity      string               `json:"rarity"`
	Type        string               `json:"type"`
	Description string               `json:"description,omitempty"`
	PerkPhase   string               `json:"perk_phase,omitempty"`
	Effects     models.RewardEffects `json:"effects"`
}

// LuckSummary records how a player's roll compared to the expectation
type LuckSummary struct {
	Target        float64 `json:"target"`
	TotalValue    float64 `json:"total_value"`
	ExpectedValue float64 `json:"expected_value"`
	Accepted      bool    `json:"accepted"`
}

// Selection is the opaque choice a player locks in
type Selection struct {
	URL           string          `json:"selection_url,omitempty"`
	Data          json.RawMessage `json:"selection_data,omitempty"`
	SelectedIndex *int            `json:"selected_index,omitempty"`
	Default       bool            `json:"is_default,omitempty"`
}
