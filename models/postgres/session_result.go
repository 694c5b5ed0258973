package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'SessionResult' is the archived outcome of one player in a completed
 * session: the rewards they got and the bundle that was generated.
 */
type SessionResult struct {
	ID               uint           `gorm:"primaryKey"`
	SessionCode      string         `gorm:"size:5;not null;index:idx_session_results_code"`
	PlayerID         string         `gorm:"size:64;not null"`
	PlayerName       string         `gorm:"size:50"`
	PlayerNumber     int            `gorm:"not null"`
	IsHost           bool           `gorm:"default:false"`
	RetrievalCode    string         `gorm:"size:8;uniqueIndex"`
	RewardsPerPlayer int            `gorm:"not null"`
	Rewards          datatypes.JSON `gorm:"type:jsonb"`
	Bundle           datatypes.JSON `gorm:"type:jsonb"`
	LuckTarget       float64
	TotalValue       float64
	CompletedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
