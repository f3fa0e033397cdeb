package spawn

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand"
	"sync"
	"time"

	"pokedex-companion/internal/constants"
	"pokedex-companion/internal/domain"
	"pokedex-companion/internal/pokeapi"
)

// Simulator places randomized catalog entries around a coordinate. Pure
// apart from the random draws and the clock read; it does no I/O and
// holds no spawn state itself.
type Simulator struct {
	mu     sync.Mutex
	rng    *mrand.Rand
	jitter float64
}

// NewSimulator builds a simulator with the given jitter scale. A nil rng
// gets a crypto-seeded source; tests pass a fixed-seed one.
func NewSimulator(jitter float64, rng *mrand.Rand) *Simulator {
	if rng == nil {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			rng = mrand.New(mrand.NewSource(time.Now().UnixNano()))
		} else {
			rng = mrand.New(mrand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
		}
	}
	if jitter <= 0 {
		jitter = constants.DefaultSpawnJitter
	}
	return &Simulator{rng: rng, jitter: jitter}
}

func (s *Simulator) Jitter() float64 {
	return s.jitter
}

// Generate returns count spawns around origin. Catalog ids are drawn
// uniformly from [1, CatalogLimit]; each coordinate axis gets an
// independent uniform offset in ±jitter/2. The key combines the id, a
// wall-clock read and the loop index, which guarantees uniqueness within
// the batch; cross-batch collisions are accepted, not eliminated.
func (s *Simulator) Generate(origin domain.Coordinate, count int) []domain.WildSpawn {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	spawns := make([]domain.WildSpawn, 0, count)
	for i := 0; i < count; i++ {
		id := s.rng.Intn(constants.CatalogLimit) + 1
		spawns = append(spawns, domain.WildSpawn{
			Key:       fmt.Sprintf("%d-%d-%d", id, now.UnixNano(), i),
			CatalogID: id,
			SpriteURL: pokeapi.SpriteURL(id),
			Position: domain.Coordinate{
				Lat: origin.Lat + (s.rng.Float64()-0.5)*s.jitter,
				Lon: origin.Lon + (s.rng.Float64()-0.5)*s.jitter,
			},
			SpawnedAt: now,
		})
	}
	return spawns
}
