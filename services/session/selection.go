package session

import (
	session_constants "Perkdraft/constants/session"
	"Perkdraft/models"
	redis_models "Perkdraft/models/redis"
	"Perkdraft/services/effects"
	"Perkdraft/services/store"
	"Perkdraft/utils/apperrors"
	"context"
	"encoding/json"
	"log"
)

// SelectionInput is the payload a player locks in
type SelectionInput struct {
	URL           string          `json:"selection_url"`
	Data          json.RawMessage `json:"selection_data,omitempty"`
	SelectedIndex *int            `json:"selected_index,omitempty"`
}

// LockSelection records a player's one-shot choice. When every active player
// has locked, bundles and retrieval codes are produced and the session
// completes.
func (m *Manager) LockSelection(ctx context.Context, code, playerID string, input SelectionInput) (*redis_models.Session, error) {
	s, err := m.load(ctx, code)
	if err != nil {
		return nil, err
	}
	p, err := m.requirePlayer(s, playerID)
	if err != nil {
		return nil, err
	}
	if s.Phase != redis_models.PhaseSelecting {
		return nil, phaseConflict(s, "lock a selection")
	}
	if p.Removed {
		return nil, apperrors.Conflict("player %s was removed from the session", p.Name)
	}
	if p.Locked {
		return nil, apperrors.Conflict("player %s already locked a selection", p.Name)
	}

	p.Selection = &redis_models.Selection{
		URL:           input.URL,
		Data:          input.Data,
		SelectedIndex: input.SelectedIndex,
	}
	p.Locked = true
	log.Printf("[LOCK] Player %s locked in session %s", p.Name, s.Code)

	return m.saveAndMaybeComplete(ctx, s)
}

// UpdateCandidates stores the client-generated candidates a player picks from
func (m *Manager) UpdateCandidates(ctx context.Context, code, playerID string, candidates []json.RawMessage) (*redis_models.Session, error) {
	if len(candidates) > session_constants.MaxCandidatesPerPlayer {
		return nil, apperrors.Invalid("at most %d candidates are allowed", session_constants.MaxCandidatesPerPlayer)
	}
	s, err := m.load(ctx, code)
	if err != nil {
		return nil, err
	}
	p, err := m.requirePlayer(s, playerID)
	if err != nil {
		return nil, err
	}
	if s.Phase == redis_models.PhaseComplete {
		return nil, phaseConflict(s, "update candidates")
	}
	if p.Locked {
		return nil, apperrors.Conflict("player %s already locked a selection", p.Name)
	}
	p.Candidates = candidates
	if err := m.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ForceAdvance fills a default selection for every active player that has
// not locked yet and completes the session. Host only.
func (m *Manager) ForceAdvance(ctx context.Context, code, callerID string) (*redis_models.Session, error) {
	s, err := m.load(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := m.requireHost(s, callerID, "force advance"); err != nil {
		return nil, err
	}
	if s.Phase != redis_models.PhaseSelecting {
		return nil, phaseConflict(s, "force advance")
	}

	for _, p := range s.ActivePlayers() {
		if p.Locked {
			continue
		}
		p.Selection = defaultSelection(p)
		p.Locked = true
		log.Printf("[LOCK] Forced default selection for %s in session %s", p.Name, s.Code)
	}
	return m.saveAndMaybeComplete(ctx, s)
}

// defaultSelection picks the first candidate when there is one
func defaultSelection(p *redis_models.Player) *redis_models.Selection {
	sel := &redis_models.Selection{Default: true}
	if len(p.Candidates) > 0 {
		first := 0
		sel.SelectedIndex = &first
		sel.Data = p.Candidates[0]
		var candidate struct {
			URL string `json:"url"`
		}
		if json.Unmarshal(p.Candidates[0], &candidate) == nil {
			sel.URL = candidate.URL
		}
	}
	return sel
}

func (m *Manager) saveAndMaybeComplete(ctx context.Context, s *redis_models.Session) (*redis_models.Session, error) {
	completed := false
	if s.AllLocked() {
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

// complete aggregates every active player's rewards into a bundle, mints and
// persists a retrieval code per player and marks the session complete
func (m *Manager) complete(ctx context.Context, s *redis_models.Session) error {
	taken := make(map[string]bool)
	for _, p := range s.ActivePlayers() {
		effectList := make([]models.RewardEffects, 0, len(p.Rewards))
		display := make([]redis_models.RewardDisplay, 0, len(p.Rewards))
		for _, r := range p.Rewards {
			effectList = append(effectList, r.Effects)
			display = append(display, redis_models.RewardDisplay{
				Name:        r.Name,
				Description: r.Description,
				Rarity:      r.Rarity,
			})
		}
		bundle := effects.Aggregate(effectList)

		code, err := m.mintCode(ctx, session_constants.RETRIEVAL_CODE_LENGTH, store.FormatRetrievalKey, taken)
		if err != nil {
			return err
		}
		taken[code] = true

		entry := redis_models.RetrievalEntry{
			Code:        code,
			SessionCode: s.Code,
			PlayerID:    p.ID,
			PlayerName:  p.Name,
			Config:      bundle,
			Rewards:     display,
			CreatedAt:   m.now(),
		}
		if p.Selection != nil {
			entry.SelectionURL = p.Selection.URL
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return apperrors.Wrap(apperrors.KindInternal, err, "encode retrieval entry")
		}
		if err := m.store.Put(ctx, store.FormatRetrievalKey(code), data, m.retrievalTTL); err != nil {
			return apperrors.Wrap(apperrors.KindInternal, err, "save retrieval code %s", code)
		}

		p.Bundle = &bundle
		p.RetrievalCode = code
	}

	s.Phase = redis_models.PhaseComplete
	log.Printf("[LOCK] Session %s complete, %d retrieval codes minted", s.Code, len(taken))
	return nil
}

func (m *Manager) archive(s *redis_models.Session) {
	if m.archiver == nil {
		return
	}
	if err := m.archiver.ArchiveSession(s); err != nil {
		log.Printf("[ARCHIVE-ERROR] Session %s: %v", s.Code, err)
	}
}
