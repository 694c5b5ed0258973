package sync

import (
	"Perkdraft/models/postgres"
	redis_models "Perkdraft/models/redis"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SyncManager copies completed sessions from the KV store into PostgreSQL
type SyncManager struct {
	db *gorm.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(db *gorm.DB) *SyncManager {
	return &SyncManager{db: db}
}

// ArchiveSession writes one session_results row per active player of a
// completed session, in a single transaction.
func (sm *SyncManager) ArchiveSession(s *redis_models.Session) error {
	if s.Phase != redis_models.PhaseComplete {
		return fmt.Errorf("session %s is not complete (phase %s)", s.Code, s.Phase)
	}

	results, err := buildResults(s)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	err = sm.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&results).Error; err != nil {
			return fmt.Errorf("error inserting session results: %v", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// ResultsForSession returns the archived rows of a session ordered by player number
func (sm *SyncManager) ResultsForSession(sessionCode string) ([]postgres.SessionResult, error) {
	var results []postgres.SessionResult
	err := sm.db.Where("session_code = ?", sessionCode).Order("player_number").Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("error reading session results: %v", err)
	}
	return results, nil
}

func buildResults(s *redis_models.Session) ([]postgres.SessionResult, error) {
	results := make([]postgres.SessionResult, 0, len(s.Players))
	for _, p := range s.ActivePlayers() {
		rewards, err := json.Marshal(p.Rewards)
		if err != nil {
			return nil, fmt.Errorf("error encoding rewards of %s: %v", p.ID, err)
		}
		bundle, err := json.Marshal(p.Bundle)
		if err != nil {
			return nil, fmt.Errorf("error encoding bundle of %s: %v", p.ID, err)
		}
		result := postgres.SessionResult{
			SessionCode:      s.Code,
			PlayerID:         p.ID,
			PlayerName:       p.Name,
			PlayerNumber:     p.Number,
			IsHost:           p.ID == s.HostPlayerID,
			RetrievalCode:    p.RetrievalCode,
			RewardsPerPlayer: s.Settings.RewardsPerPlayer,
			Rewards:          datatypes.JSON(rewards),
			Bundle:           datatypes.JSON(bundle),
			CompletedAt:      s.UpdatedAt,
		}
		if p.Luck != nil {
			result.LuckTarget = p.Luck.Target
			result.TotalValue = p.Luck.TotalValue
		}
		results = append(results, result)
	}
	return results, nil
}
