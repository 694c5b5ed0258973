package redis

import "time"

type Phase string

const (
	PhaseWaiting   Phase = "waiting"
	PhaseRolling   Phase = "rolling"
	PhaseSelecting Phase = "selecting"
	PhaseComplete  Phase = "complete"
)

var phaseOrder = map[Phase]int{
	PhaseWaiting:   0,
	PhaseRolling:   1,
	PhaseSelecting: 2,
	PhaseComplete:  3,
}

// Valid reports whether p is one of the known phases
func (p Phase) Valid() bool {
	_, ok := phaseOrder[p]
	return ok
}

// Before reports whether p comes strictly before other
func (p Phase) Before(other Phase) bool {
	return phaseOrder[p] < phaseOrder[other]
}

type SessionSettings struct {
	RewardsPerPlayer int               `json:"rewards_per_player"`
	Options          map[string]string `json:"options,omitempty"`
}

// Session represents a short-lived multiplayer session as stored in the KV
type Session struct {
	Code         string          `json:"code"`
	HostPlayerID string          `json:"host_player_id"`
	Players      []Player        `json:"players"`
	Phase        Phase           `json:"phase"`
	Settings     SessionSettings `json:"settings"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	LastActivity time.Time       `json:"last_activity"`
}

// FindPlayer returns a pointer into Players, or nil
func (s *Session) FindPlayer(playerID string) *Player {
	for i := range s.Players {
		if s.Players[i].ID == playerID {
			return &s.Players[i]
		}
	}
	return nil
}

// ActivePlayers returns the players that have not been removed
func (s *Session) ActivePlayers() []*Player {
	active := make([]*Player, 0, len(s.Players))
	for i := range s.Players {
		if !s.Players[i].Removed {
			active = append(active, &s.Players[i])
		}
	}
	return active
}

// AllLocked reports whether every active player has locked a selection.
// A session with no active players is never considered locked.
func (s *Session) AllLocked() bool {
	active := s.ActivePlayers()
	if len(active) == 0 {
		return false
	}
	for _, p := range active {
		if !p.Locked {
			return false
		}
	}
	return true
}

// Touch stamps the activity timestamps
func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now
	s.LastActivity = now
}
