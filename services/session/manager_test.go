package session

import (
	"Perkdraft/models"
	redis_models "Perkdraft/models/redis"
	"Perkdraft/services/rewards"
	"Perkdraft/services/store"
	"Perkdraft/utils/apperrors"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu      sync.Mutex
	updates []redis_models.Phase
}

func (n *recordingNotifier) SessionUpdated(s *redis_models.Session) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updates = append(n.updates, s.Phase)
}

type recordingArchiver struct {
	archived []string
	err      error
}

func (a *recordingArchiver) ArchiveSession(s *redis_models.Session) error {
	a.archived = append(a.archived, s.Code)
	return a.err
}

type harness struct {
	manager  *Manager
	store    *store.MemoryStore
	notifier *recordingNotifier
	archiver *recordingArchiver
	clock    time.Time
}

func (h *harness) advance(d time.Duration) { h.clock = h.clock.Add(d) }

// sampleCatalog has five distinct types per tier plus one special pack
func sampleCatalog() models.CatalogDocument {
	doc := models.CatalogDocument{
		RarityWeights: map[string]int{"common": 44, "uncommon": 29, "rare": 17, "mythic": 8},
	}
	for _, tier := range []string{"common", "uncommon", "rare", "mythic"} {
		for i := 0; i < 5; i++ {
			doc.Perks = append(doc.Perks, models.RewardItem{
				ID:      fmt.Sprintf("%s_%d", tier, i),
				Name:    fmt.Sprintf("%s %d", tier, i),
				Rarity:  tier,
				Effects: models.RewardEffects{PackQuantity: 1},
			})
		}
	}
	doc.Perks[0].Effects = models.RewardEffects{SpecialPack: "gamechanger"}
	return doc
}

func newHarness(t *testing.T, doc models.CatalogDocument) *harness {
	t.Helper()
	catalog, err := rewards.NewCatalog(doc)
	require.NoError(t, err)
	allocator, err := rewards.NewAllocator(catalog, rewards.NewSeededRNG(17), rewards.DefaultLuckPolicy())
	require.NoError(t, err)

	h := &harness{
		store:    store.NewMemoryStore(),
		notifier: &recordingNotifier{},
		archiver: &recordingArchiver{},
		clock:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	h.store.SetClock(func() time.Time { return h.clock })

	ids := 0
	h.manager = NewManager(h.store, allocator, Options{
		SessionTTL:   time.Hour,
		RetrievalTTL: 48 * time.Hour,
		Notifier:     h.notifier,
		Archiver:     h.archiver,
		Now:          func() time.Time { return h.clock },
		CodeRNG:      rewards.NewSeededRNG(99),
		NewPlayerID: func() string {
			ids++
			return fmt.Sprintf("player-%d", ids)
		},
	})
	return h
}

var (
	sessionCodePattern   = regexp.MustCompile(`^[A-Z0-9]{5}$`)
	retrievalCodePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)
)

// setupSelecting creates a session with n players and rolls it
func setupSelecting(t *testing.T, h *harness, n int) (string, []string) {
	t.Helper()
	ctx := context.Background()
	created, err := h.manager.CreateSession(ctx, "Host", 3, nil)
	require.NoError(t, err)
	ids := []string{created.HostPlayerID}
	for i := 1; i < n; i++ {
		joined, err := h.manager.JoinSession(ctx, created.SessionCode, "", "")
		require.NoError(t, err)
		ids = append(ids, joined.PlayerID)
	}
	_, err = h.manager.RollRewards(ctx, created.SessionCode, created.HostPlayerID)
	require.NoError(t, err)
	return created.SessionCode, ids
}

func TestCreateSession(t *testing.T) {
	h := newHarness(t, sampleCatalog())
	ctx := context.Background()

	res, err := h.manager.CreateSession(ctx, "  Alice  ", 0, map[string]string{"mode": "casual"})
	require.NoError(t, err)
	assert.Regexp(t, sessionCodePattern, res.SessionCode)
	assert.Equal(t, "player-1", res.HostPlayerID)
	assert.Equal(t, redis_models.PhaseWaiting, res.Session.Phase)
	assert.Equal(t, 3, res.Session.Settings.RewardsPerPlayer)
	require.Len(t, res.Session.Players, 1)
	assert.Equal(t, "Alice", res.Session.Players[0].Name)
	assert.Equal(t, h.clock, res.Session.LastActivity)

	stored, err := h.manager.GetSession(ctx, res.SessionCode)
	require.NoError(t, err)
	assert.Equal(t, "casual", stored.Settings.Options["mode"])

	t.Run("lowercase code lookup", func(t *testing.T) {
		_, err := h.manager.GetSession(ctx, "  "+strings.ToLower(res.SessionCode)+" ")
		assert.NoError(t, err)
	})

	t.Run("session expires after ttl", func(t *testing.T) {
		h.advance(2 * time.Hour)
		_, err := h.manager.GetSession(ctx, res.SessionCode)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestSettingsNormalization(t *testing.T) {
	assert.Equal(t, 3, ClampRewardsPerPlayer(0))
	assert.Equal(t, 1, ClampRewardsPerPlayer(-4))
	assert.Equal(t, 10, ClampRewardsPerPlayer(15))
	assert.Equal(t, 6, ClampRewardsPerPlayer(6))

	assert.Equal(t, "Player 3", NormalizeName("   ", 3))
	assert.Equal(t, "abcdefghijklmnopqrst", NormalizeName("abcdefghijklmnopqrstuvwxyz", 1))
}

func TestJoinSession(t *testing.T) {
	h := newHarness(t, sampleCatalog())
	ctx := context.Background()
	created, err := h.manager.CreateSession(ctx, "Host", 3, nil)
	require.NoError(t, err)

	joined, err := h.manager.JoinSession(ctx, created.SessionCode, "", "")
	require.NoError(t, err)
	assert.Equal(t, "player-2", joined.PlayerID)
	assert.Equal(t, "Player 2", joined.Session.Players[1].Name)
	assert.Equal(t, 2, joined.Session.Players[1].Number)

	for i := 0; i < 2; i++ {
		_, err := h.manager.JoinSession(ctx, created.SessionCode, "Guest", "")
		require.NoError(t, err)
	}

	t.Run("cap reached", func(t *testing.T) {
		_, err := h.manager.JoinSession(ctx, created.SessionCode, "Late", "")
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("rejoin with known id does not add a player", func(t *testing.T) {
		res, err := h.manager.JoinSession(ctx, created.SessionCode, "", "player-2")
		require.NoError(t, err)
		assert.Equal(t, "player-2", res.PlayerID)
		assert.Len(t, res.Session.Players, 4)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := h.manager.JoinSession(ctx, "ZZZZZ", "x", "")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestRollRewards(t *testing.T) {
	h := newHarness(t, sampleCatalog())
	ctx := context.Background()
	created, err := h.manager.CreateSession(ctx, "Host", 3, nil)
	require.NoError(t, err)
	joined, err := h.manager.JoinSession(ctx, created.SessionCode, "Guest", "")
	require.NoError(t, err)

	t.Run("non host is forbidden", func(t *testing.T) {
		_, err := h.manager.RollRewards(ctx, created.SessionCode, joined.PlayerID)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	s, err := h.manager.RollRewards(ctx, created.SessionCode, created.HostPlayerID)
	require.NoError(t, err)
	assert.Equal(t, redis_models.PhaseSelecting, s.Phase)
	for _, p := range s.Players {
		require.Len(t, p.Rewards, 3)
		ids := map[string]bool{}
		types := map[string]bool{}
		for _, r := range p.Rewards {
			ids[r.ID] = true
			types[r.Type] = true
		}
		assert.Len(t, ids, 3)
		assert.Len(t, types, 3)
		require.NotNil(t, p.Luck)
		assert.InDelta(t, 3*176.0/98.0, p.Luck.ExpectedValue, 1e-9)
	}

	t.Run("second roll is a conflict", func(t *testing.T) {
		_, err := h.manager.RollRewards(ctx, created.SessionCode, created.HostPlayerID)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	assert.Contains(t, h.notifier.updates, redis_models.PhaseRolling)
	assert.Contains(t, h.notifier.updates, redis_models.PhaseSelecting)
}

func TestRollRewardsInsufficientCatalog(t *testing.T) {
	doc := models.CatalogDocument{Perks: []models.RewardItem{
		{ID: "a", Type: "same"},
		{ID: "b", Type: "same"},
	}}
	h := newHarness(t, doc)
	ctx := context.Background()
	created, err := h.manager.CreateSession(ctx, "Host", 2, nil)
	require.NoError(t, err)

	_, err = h.manager.RollRewards(ctx, created.SessionCode, created.HostPlayerID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCatalog)

	s, err := h.manager.GetSession(ctx, created.SessionCode)
	require.NoError(t, err)
	assert.Equal(t, redis_models.PhaseRolling, s.Phase)
	assert.Empty(t, s.Players[0].Rewards)
}

func TestLockSelectionCompletesSession(t *testing.T) {
	h := newHarness(t, sampleCatalog())
	ctx := context.Background()
	code, ids := setupSelecting(t, h, 2)

	idx := 1
	s, err := h.manager.LockSelection(ctx, code, ids[0], SelectionInput{URL: "https://example.com/c/1", SelectedIndex: &idx})
	require.NoError(t, err)
	assert.Equal(t, redis_models.PhaseSelecting, s.Phase)
	assert.True(t, s.Players[0].Locked)

	t.Run("second lock is a conflict", func(t *testing.T) {
		_, err := h.manager.LockSelection(ctx, code, ids[0], SelectionInput{URL: "other"})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("unknown player", func(t *testing.T) {
		_, err := h.manager.LockSelection(ctx, code, "ghost", SelectionInput{})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	s, err = h.manager.LockSelection(ctx, code, ids[1], SelectionInput{URL: "https://example.com/c/2"})
	require.NoError(t, err)
	assert.Equal(t, redis_models.PhaseComplete, s.Phase)
	assert.Equal(t, []string{code}, h.archiver.archived)

	codes := map[string]bool{}
	for _, p := range s.Players {
		assert.Regexp(t, retrievalCodePattern, p.RetrievalCode)
		require.NotNil(t, p.Bundle)
		codes[p.RetrievalCode] = true

		entry, err := h.manager.GetRetrievalCode(ctx, p.RetrievalCode)
		require.NoError(t, err)
		assert.Equal(t, *p.Bundle, entry.Config)
		assert.Equal(t, p.ID, entry.PlayerID)
		assert.Equal(t, code, entry.SessionCode)
		assert.Len(t, entry.Rewards, 3)
		assert.Equal(t, p.Selection.URL, entry.SelectionURL)
	}
	assert.Len(t, codes, 2)

	t.Run("phases never go back", func(t *testing.T) {
		_, err := h.manager.JoinSession(ctx, code, "Late", "")
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		_, err = h.manager.RollRewards(ctx, code, ids[0])
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		_, err = h.manager.ForceAdvance(ctx, code, ids[0])
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestLockSelectionOutsideSelecting(t *testing.T) {
	h := newHarness(t, sampleCatalog())
	ctx := context.Background()
	created, err := h.manager.CreateSession(ctx, "Host", 3, nil)
	require.NoError(t, err)

	_, err = h.manager.LockSelection(ctx, created.SessionCode, created.HostPlayerID, SelectionInput{})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestRetrievalCodeOutlivesSession(t *testing.T) {
	h := newHarness(t, sampleCatalog())
	ctx := context.Background()
	code, ids := setupSelecting(t, h, 1)

	s, err := h.manager.LockSelection(ctx, code, ids[0], SelectionInput{})
	require.NoError(t, err)
	retrieval := s.Players[0].RetrievalCode

	h.advance(2 * time.Hour)
	_, err = h.manager.GetSession(ctx, code)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	first, err := h.manager.GetRetrievalCode(ctx, retrieval)
	require.NoError(t, err)
	second, err := h.manager.GetRetrievalCode(ctx, retrieval)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	h.advance(48 * time.Hour)
	_, err = h.manager.GetRetrievalCode(ctx, retrieval)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestForceAdvance(t *testing.T) {
	h := newHarness(t, sampleCatalog())
	ctx := context.Background()
	code, ids := setupSelecting(t, h, 3)

	_, err := h.manager.UpdateCandidates(ctx, code, ids[2], []json.RawMessage{
		json.RawMessage(`{"url":"https://example.com/first"}`),
		json.RawMessage(`{"url":"https://example.com/second"}`),
	})
	require.NoError(t, err)
	_, err = h.manager.LockSelection(ctx, code, ids[0], SelectionInput{URL: "mine"})
	require.NoError(t, err)

	_, err = h.manager.ForceAdvance(ctx, code, ids[1])
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	s, err := h.manager.ForceAdvance(ctx, code, ids[0])
	require.NoError(t, err)
	assert.Equal(t, redis_models.PhaseComplete, s.Phase)

	assert.Equal(t, "mine", s.Players[0].Selection.URL)
	assert.False(t, s.Players[0].Selection.Default)
	assert.True(t, s.Players[1].Selection.Default)
	assert.Nil(t, s.Players[1].Selection.SelectedIndex)
	assert.Equal(t, "https://example.com/first", s.Players[2].Selection.URL)
	require.NotNil(t, s.Players[2].Selection.SelectedIndex)
	assert.Equal(t, 0, *s.Players[2].Selection.SelectedIndex)
	for _, p := range s.Players {
		assert.NotEmpty(t, p.RetrievalCode)
	}
}

func TestUpdateCandidatesAndName(t *testing.T) {
	h := newHarness(t, sampleCatalog())
	ctx := context.Background()
	code, ids := setupSelecting(t, h, 2)

	tooMany := make([]json.RawMessage, 11)
	for i := range tooMany {
		tooMany[i] = json.RawMessage(`{}`)
	}
	_, err := h.manager.UpdateCandidates(ctx, code, ids[1], tooMany)
	assert.ErrorIs(t, err, apperrors.ErrInvalid)

	s, err := h.manager.UpdatePlayerName(ctx, code, ids[1], "  Renamed  ")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", s.Players[1].Name)

	_, err = h.manager.LockSelection(ctx, code, ids[1], SelectionInput{})
	require.NoError(t, err)
	_, err = h.manager.UpdateCandidates(ctx, code, ids[1], tooMany[:2])
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestKickAndRejoin(t *testing.T) {
	h := newHarness(t, sampleCatalog())
	ctx := context.Background()
	code, ids := setupSelecting(t, h, 3)

	_, err := h.manager.KickPlayer(ctx, code, ids[1], ids[2])
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = h.manager.KickPlayer(ctx, code, ids[0], ids[0])
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	_, err = h.manager.KickPlayer(ctx, code, ids[0], "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	s, err := h.manager.KickPlayer(ctx, code, ids[0], ids[2])
	require.NoError(t, err)
	kicked := s.FindPlayer(ids[2])
	require.NotNil(t, kicked)
	assert.True(t, kicked.Removed)
	assert.Len(t, kicked.Rewards, 3)
	assert.Len(t, s.ActivePlayers(), 2)

	_, err = h.manager.LockSelection(ctx, code, ids[2], SelectionInput{})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	rejoined, err := h.manager.JoinSession(ctx, code, "", ids[2])
	require.NoError(t, err)
	assert.Equal(t, ids[2], rejoined.PlayerID)
	back := rejoined.Session.FindPlayer(ids[2])
	assert.False(t, back.Removed)
	assert.Equal(t, kicked.Rewards, back.Rewards)
}

func TestKickLastUnlockedPlayerCompletes(t *testing.T) {
	h := newHarness(t, sampleCatalog())
	ctx := context.Background()
	code, ids := setupSelecting(t, h, 2)

	_, err := h.manager.LockSelection(ctx, code, ids[0], SelectionInput{})
	require.NoError(t, err)

	s, err := h.manager.KickPlayer(ctx, code, ids[0], ids[1])
	require.NoError(t, err)
	assert.Equal(t, redis_models.PhaseComplete, s.Phase)
	assert.NotEmpty(t, s.Players[0].RetrievalCode)
	assert.Empty(t, s.Players[1].RetrievalCode)
}

func TestLateJoinWhileSelecting(t *testing.T) {
	h := newHarness(t, sampleCatalog())
	ctx := context.Background()
	code, _ := setupSelecting(t, h, 1)

	joined, err := h.manager.JoinSession(ctx, code, "Late", "")
	require.NoError(t, err)
	late := joined.Session.FindPlayer(joined.PlayerID)
	require.NotNil(t, late)
	assert.Len(t, late.Rewards, 3)
	assert.Equal(t, redis_models.PhaseSelecting, joined.Session.Phase)
}

func TestTwoPlayerScenario(t *testing.T) {
	h := newHarness(t, sampleCatalog())
	ctx := context.Background()
	code, ids := setupSelecting(t, h, 2)

	for _, id := range ids {
		_, err := h.manager.LockSelection(ctx, code, id, SelectionInput{})
		require.NoError(t, err)
	}
	s, err := h.manager.GetSession(ctx, code)
	require.NoError(t, err)
	require.Equal(t, redis_models.PhaseComplete, s.Phase)

	for _, p := range s.Players {
		require.Len(t, p.Rewards, 3)
		packs, specials := 0, 0
		for _, r := range p.Rewards {
			packs += r.Effects.PackQuantity
			if r.Effects.SpecialPack != "" {
				specials++
			}
		}
		assert.Equal(t, 5+packs, p.Bundle.PackTypes[0].Count)
		assert.Len(t, p.Bundle.PackTypes, 1+specials)
	}
}
