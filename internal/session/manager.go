package session

import (
	"context"
	"sync"

	"pokedex-companion/internal/config"
	"pokedex-companion/internal/domain"
	"pokedex-companion/internal/service"
	"pokedex-companion/internal/spawn"

	"github.com/rs/zerolog"
)

// Manager owns every live session. Sessions exist from sign-in to
// sign-out; sign-out discards all in-memory state unconditionally.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	sim      *spawn.Simulator
	profiles *service.ProfileService
	count    int
	logger   zerolog.Logger
}

func NewManager(cfg *config.Config, profiles *service.ProfileService, logger zerolog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		sim:      spawn.NewSimulator(cfg.SpawnJitter, nil),
		profiles: profiles,
		count:    cfg.SpawnCount,
		logger:   logger,
	}
}

// Begin installs a fresh session for uid after a successful sign-in or
// sign-up and moves it straight into the catalog-loading phase. A
// previous session for the same uid is replaced wholesale.
func (m *Manager) Begin(uid string) *Session {
	s := &Session{uid: uid, phase: PhaseAuthenticating}
	s.dispatch(setPhase{phase: PhaseCatalogLoading})

	m.mu.Lock()
	m.sessions[uid] = s
	m.mu.Unlock()

	m.logger.Info().Str("uid", uid).Str("phase", s.Phase().String()).Msg("session started")
	return s
}

// End drops the session unconditionally; an unknown uid is a no-op.
func (m *Manager) End(uid string) {
	m.mu.Lock()
	delete(m.sessions, uid)
	m.mu.Unlock()
	m.logger.Info().Str("uid", uid).Msg("session ended")
}

func (m *Manager) get(uid string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[uid]
	m.mu.RUnlock()
	return s, ok
}

// MarkReady records that the catalog finished loading for this session.
// A ready session stays ready (a warm cache hit has no visible loading).
func (m *Manager) MarkReady(uid string) {
	if s, ok := m.get(uid); ok {
		s.dispatch(setPhase{phase: PhaseReady})
	}
}

func (m *Manager) Phase(uid string) Phase {
	if s, ok := m.get(uid); ok {
		return s.Phase()
	}
	return PhaseUnauthenticated
}

// Scan generates a fresh spawn set around origin, replacing any previous
// set. The session must be past catalog loading.
func (m *Manager) Scan(uid string, origin domain.Coordinate) ([]domain.WildSpawn, error) {
	s, ok := m.get(uid)
	if !ok || s.Phase() != PhaseReady {
		return nil, domain.ErrNotReady
	}

	spawns := m.sim.Generate(origin, m.count)
	s.dispatch(setSpawns{spawns: spawns})

	m.logger.Info().
		Str("uid", uid).
		Int("count", len(spawns)).
		Float64("lat", origin.Lat).
		Float64("lon", origin.Lon).
		Msg("spawns generated")
	return spawns, nil
}

func (m *Manager) Spawns(uid string) ([]domain.WildSpawn, error) {
	s, ok := m.get(uid)
	if !ok {
		return nil, domain.ErrNotReady
	}
	return s.Spawns(), nil
}

// CaptureResult reports a completed capture. Persisted is false when the
// discovered append failed; the spawn is consumed either way and there is
// no reconciliation afterwards.
type CaptureResult struct {
	Spawn     domain.WildSpawn `json:"spawn"`
	Persisted bool             `json:"persisted"`
}

// Capture consumes exactly one spawn by key, then appends its catalog id
// to the profile's discovered set. The local removal is never rolled
// back on a failed append.
func (m *Manager) Capture(ctx context.Context, uid, key string) (*CaptureResult, error) {
	s, ok := m.get(uid)
	if !ok || s.Phase() != PhaseReady {
		return nil, domain.ErrNotReady
	}

	var removed domain.WildSpawn
	var found bool
	s.dispatch(takeSpawn{key: key, removed: &removed, ok: &found})
	if !found {
		return nil, domain.ErrSpawnNotFound
	}

	result := &CaptureResult{Spawn: removed, Persisted: true}
	if err := m.profiles.AppendDiscovered(ctx, uid, removed.CatalogID); err != nil {
		m.logger.Warn().
			Err(err).
			Str("uid", uid).
			Str("spawn_key", key).
			Int("catalog_id", removed.CatalogID).
			Msg("capture kept locally but discovered append failed")
		result.Persisted = false
	}

	m.logger.Info().
		Str("uid", uid).
		Str("spawn_key", key).
		Int("catalog_id", removed.CatalogID).
		Bool("persisted", result.Persisted).
		Msg("spawn captured")
	return result, nil
}
