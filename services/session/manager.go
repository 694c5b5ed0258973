package session

import (
	redis_models "Perkdraft/models/redis"
	"Perkdraft/services/rewards"
	"Perkdraft/services/store"
	"Perkdraft/utils/apperrors"
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notifier is told about every persisted session change
type Notifier interface {
	SessionUpdated(session *redis_models.Session)
}

// Archiver receives sessions once they reach the complete phase
type Archiver interface {
	ArchiveSession(session *redis_models.Session) error
}

type Options struct {
	SessionTTL   time.Duration
	RetrievalTTL time.Duration

	// Optional collaborators
	Notifier Notifier
	Archiver Archiver

	// Overridable for tests
	Now         func() time.Time
	CodeRNG     rewards.RandomSource
	NewPlayerID func() string
}

// Manager is the session state machine. Every transition reads the whole
// session, mutates it and writes it back; concurrent writers are
// last-write-wins.
type Manager struct {
	store        store.SessionStore
	allocator    *rewards.Allocator
	sessionTTL   time.Duration
	retrievalTTL time.Duration
	notifier     Notifier
	archiver     Archiver
	now          func() time.Time
	codeRNG      rewards.RandomSource
	newPlayerID  func() string
}

func NewManager(st store.SessionStore, allocator *rewards.Allocator, opts Options) *Manager {
	m := &Manager{
		store:        st,
		allocator:    allocator,
		sessionTTL:   opts.SessionTTL,
		retrievalTTL: opts.RetrievalTTL,
		notifier:     opts.Notifier,
		archiver:     opts.Archiver,
		now:          opts.Now,
		codeRNG:      opts.CodeRNG,
		newPlayerID:  opts.NewPlayerID,
	}
	if m.sessionTTL <= 0 {
		m.sessionTTL = 24 * time.Hour
	}
	if m.retrievalTTL <= 0 {
		m.retrievalTTL = 30 * 24 * time.Hour
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.codeRNG == nil {
		m.codeRNG = rewards.DefaultRNG()
	}
	if m.newPlayerID == nil {
		m.newPlayerID = uuid.NewString
	}
	return m
}

// SetNotifier attaches a notifier after construction (the socket server
// needs the manager first)
func (m *Manager) SetNotifier(n Notifier) {
	m.notifier = n
}

// GetSession returns the current state of a session
func (m *Manager) GetSession(ctx context.Context, code string) (*redis_models.Session, error) {
	return m.load(ctx, code)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (m *Manager) load(ctx context.Context, code string) (*redis_models.Session, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, apperrors.Invalid("session code is required")
	}
	data, err := m.store.Get(ctx, store.FormatSessionKey(code))
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("session %s not found", code)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "load session %s", code)
	}
	var s redis_models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "decode session %s", code)
	}
	return &s, nil
}

// save stamps the activity time, persists with the session TTL and notifies
func (m *Manager) save(ctx context.Context, s *redis_models.Session) error {
	s.Touch(m.now())
	data, err := json.Marshal(s)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, err, "encode session %s", s.Code)
	}
	if err := m.store.Put(ctx, store.FormatSessionKey(s.Code), data, m.sessionTTL); err != nil {
		log.Printf("[STORE] Error saving session %s: %v", s.Code, err)
		return apperrors.Wrap(apperrors.KindInternal, err, "save session %s", s.Code)
	}
	if m.notifier != nil {
		m.notifier.SessionUpdated(s)
	}
	return nil
}

func (m *Manager) requireHost(s *redis_models.Session, callerID, action string) error {
	if callerID == "" || callerID != s.HostPlayerID {
		return apperrors.Forbidden("only the host can %s", action)
	}
	return nil
}

func (m *Manager) requirePlayer(s *redis_models.Session, playerID string) (*redis_models.Player, error) {
	p := s.FindPlayer(playerID)
	if p == nil {
		return nil, apperrors.NotFound("player %s not found in session %s", playerID, s.Code)
	}
	return p, nil
}

func phaseConflict(s *redis_models.Session, action string) error {
	return apperrors.Conflict("cannot %s while session %s is %s", action, s.Code, s.Phase)
}
