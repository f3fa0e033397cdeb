package session

import (
	"sync"

	"pokedex-companion/internal/domain"
)

type Phase int

const (
	PhaseUnauthenticated Phase = iota
	PhaseAuthenticating
	PhaseCatalogLoading
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseCatalogLoading:
		return "catalog_loading"
	case PhaseReady:
		return "ready"
	default:
		return "unauthenticated"
	}
}

// Session is the per-user in-memory state: the phase of the login →
// catalog → capture cycle plus the active spawn list. All mutation goes
// through typed updates applied one at a time under the session lock.
type Session struct {
	mu     sync.Mutex
	uid    string
	phase  Phase
	spawns []domain.WildSpawn
}

type update interface {
	apply(*Session)
}

func (s *Session) dispatch(u update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.apply(s)
}

type setPhase struct {
	phase Phase
}

func (u setPhase) apply(s *Session) {
	s.phase = u.phase
}

type setSpawns struct {
	spawns []domain.WildSpawn
}

func (u setSpawns) apply(s *Session) {
	s.spawns = u.spawns
}

// takeSpawn removes exactly one spawn matched by key and reports it back
// through the pointers; a miss leaves the list untouched.
type takeSpawn struct {
	key     string
	removed *domain.WildSpawn
	ok      *bool
}

func (u takeSpawn) apply(s *Session) {
	for i, sp := range s.spawns {
		if sp.Key == u.key {
			*u.removed = sp
			*u.ok = true
			s.spawns = append(s.spawns[:i], s.spawns[i+1:]...)
			return
		}
	}
	*u.ok = false
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) Spawns() []domain.WildSpawn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.WildSpawn, len(s.spawns))
	copy(out, s.spawns)
	return out
}
