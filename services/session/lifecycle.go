package session

import (
	session_constants "Perkdraft/constants/session"
	redis_models "Perkdraft/models/redis"
	"Perkdraft/services/store"
	"Perkdraft/utils/apperrors"
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"
)

type CreateResult struct {
	SessionCode  string                `json:"session_code"`
	HostPlayerID string                `json:"host_player_id"`
	Session      *redis_models.Session `json:"session"`
}

type JoinResult struct {
	PlayerID string                `json:"player_id"`
	Session  *redis_models.Session `json:"session"`
}

// ClampRewardsPerPlayer maps 0 to the default and clamps into [min, max]
func ClampRewardsPerPlayer(n int) int {
	if n == 0 {
		return session_constants.DefaultRewardsPerPlayer
	}
	return min(max(n, session_constants.MinRewardsPerPlayer), session_constants.MaxRewardsPerPlayer)
}

// NormalizeName trims and truncates a display name, falling back to "Player N"
func NormalizeName(name string, number int) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > session_constants.MaxPlayerNameLength {
		name = strings.TrimSpace(string([]rune(name)[:session_constants.MaxPlayerNameLength]))
	}
	if name == "" {
		return fmt.Sprintf("Player %d", number)
	}
	return name
}

func (m *Manager) newPlayer(name string, number int) redis_models.Player {
	return redis_models.Player{
		ID:       m.newPlayerID(),
		Name:     NormalizeName(name, number),
		Number:   number,
		Rewards:  []redis_models.AssignedReward{},
		JoinedAt: m.now(),
	}
}

// CreateSession opens a new session in the waiting phase with the caller as host
func (m *Manager) CreateSession(ctx context.Context, hostName string, rewardsPerPlayer int, options map[string]string) (*CreateResult, error) {
	code, err := m.mintCode(ctx, session_constants.SESSION_CODE_LENGTH, store.FormatSessionKey, nil)
	if err != nil {
		return nil, err
	}

	now := m.now()
	host := m.newPlayer(hostName, 1)
	s := &redis_models.Session{
		Code:         code,
		HostPlayerID: host.ID,
		Players:      []redis_models.Player{host},
		Phase:        redis_models.PhaseWaiting,
		Settings: redis_models.SessionSettings{
			RewardsPerPlayer: ClampRewardsPerPlayer(rewardsPerPlayer),
			Options:          options,
		},
		CreatedAt: now,
	}
	if err := m.save(ctx, s); err != nil {
		return nil, err
	}

	log.Printf("[SESSION] Created session %s (host %s, %d rewards per player)", code, host.Name, s.Settings.RewardsPerPlayer)
	return &CreateResult{SessionCode: code, HostPlayerID: host.ID, Session: s}, nil
}

// JoinSession adds a player. A known playerID rejoins (and is reactivated if
// it was kicked). Joining while selecting rolls the newcomer immediately.
func (m *Manager) JoinSession(ctx context.Context, code, playerName, playerID string) (*JoinResult, error) {
	s, err := m.load(ctx, code)
	if err != nil {
		return nil, err
	}
	if s.Phase == redis_models.PhaseComplete {
		return nil, phaseConflict(s, "join")
	}

	var p *redis_models.Player
	if playerID != "" {
		p = s.FindPlayer(playerID)
	}

	switch {
	case p != nil && !p.Removed:
		// already in; only refreshes activity
	case p != nil:
		if len(s.ActivePlayers()) >= session_constants.MaxPlayers {
			return nil, apperrors.Conflict("session %s is full", s.Code)
		}
		p.Removed = false
		log.Printf("[SESSION] Player %s rejoined session %s", p.Name, s.Code)
	default:
		if len(s.ActivePlayers()) >= session_constants.MaxPlayers {
			return nil, apperrors.Conflict("session %s is full", s.Code)
		}
		s.Players = append(s.Players, m.newPlayer(playerName, len(s.Players)+1))
		p = &s.Players[len(s.Players)-1]
		log.Printf("[SESSION] Player %s joined session %s", p.Name, s.Code)
	}

	if s.Phase == redis_models.PhaseSelecting && len(p.Rewards) == 0 {
		if err := m.rollPlayer(s, p); err != nil {
			return nil, err
		}
	}

	if err := m.save(ctx, s); err != nil {
		return nil, err
	}
	return &JoinResult{PlayerID: p.ID, Session: s}, nil
}

// UpdatePlayerName renames a player in any phase
func (m *Manager) UpdatePlayerName(ctx context.Context, code, playerID, name string) (*redis_models.Session, error) {
	s, err := m.load(ctx, code)
	if err != nil {
		return nil, err
	}
	p, err := m.requirePlayer(s, playerID)
	if err != nil {
		return nil, err
	}
	p.Name = NormalizeName(name, p.Number)
	if err := m.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// KickPlayer marks a player removed without deleting their slot. When the
// kicked player was the last one not locked in, the session completes.
func (m *Manager) KickPlayer(ctx context.Context, code, callerID, targetID string) (*redis_models.Session, error) {
	s, err := m.load(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := m.requireHost(s, callerID, "kick players"); err != nil {
		return nil, err
	}
	if callerID == targetID {
		return nil, apperrors.Conflict("the host cannot kick themselves")
	}
	if s.Phase == redis_models.PhaseComplete {
		return nil, phaseConflict(s, "kick players")
	}
	target, err := m.requirePlayer(s, targetID)
	if err != nil {
		return nil, err
	}
	if target.Removed {
		return nil, apperrors.Conflict("player %s was already removed", target.Name)
	}
	target.Removed = true
	log.Printf("[SESSION] Player %s kicked from session %s", target.Name, s.Code)

	completed := false
	if s.Phase == redis_models.PhaseSelecting && s.AllLocked() {
		if err := m.complete(ctx, s); err != nil {
			return nil, err
		}
		completed = true
	}
	if err := m.save(ctx, s); err != nil {
		return nil, err
	}
	if completed {
		m.archive(s)
	}
	return s, nil
}
