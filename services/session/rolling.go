package session

import (
	redis_models "Perkdraft/models/redis"
	"context"
	"fmt"
	"log"
)

// RollRewards allocates rewards to every active player and moves the session
// to selecting. Only the host may roll. The rolling phase is persisted first;
// if allocation fails the session stays there and the host may retry.
func (m *Manager) RollRewards(ctx context.Context, code, callerID string) (*redis_models.Session, error) {
	s, err := m.load(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := m.requireHost(s, callerID, "roll rewards"); err != nil {
		return nil, err
	}
	if s.Phase != redis_models.PhaseWaiting && s.Phase != redis_models.PhaseRolling {
		return nil, phaseConflict(s, "roll rewards")
	}

	if s.Phase == redis_models.PhaseWaiting {
		s.Phase = redis_models.PhaseRolling
		if err := m.save(ctx, s); err != nil {
			return nil, err
		}
	}

	for _, p := range s.ActivePlayers() {
		if err := m.rollPlayer(s, p); err != nil {
			log.Printf("[ROLL] Error rolling rewards for session %s: %v", s.Code, err)
			return nil, err
		}
	}

	s.Phase = redis_models.PhaseSelecting
	if err := m.save(ctx, s); err != nil {
		return nil, err
	}
	log.Printf("[ROLL] Session %s rolled %d rewards for %d players", s.Code, s.Settings.RewardsPerPlayer, len(s.ActivePlayers()))
	return s, nil
}

// rollPlayer runs the allocator for one player and attaches the result
func (m *Manager) rollPlayer(s *redis_models.Session, p *redis_models.Player) error {
	alloc, err := m.allocator.Allocate(s.Settings.RewardsPerPlayer)
	if err != nil {
		return fmt.Errorf("roll rewards for %s: %w", p.Name, err)
	}

	p.Rewards = make([]redis_models.AssignedReward, 0, len(alloc.Rewards))
	for _, item := range alloc.Rewards {
		p.Rewards = append(p.Rewards, redis_models.AssignedReward{
			ID:          item.ID,
			Name:        item.Name,
			Rarity:      item.Rarity,
			Type:        item.Type,
			Description: item.Description,
			PerkPhase:   item.PerkPhase,
			Effects:     item.Effects,
		})
	}
	p.Luck = &redis_models.LuckSummary{
		Target:        alloc.Target,
		TotalValue:    alloc.Total,
		ExpectedValue: alloc.Expected,
		Accepted:      alloc.Accepted,
	}
	return nil
}
