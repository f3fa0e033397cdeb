package spawn_test

import (
	"math/rand"
	"testing"

	"pokedex-companion/internal/constants"
	"pokedex-companion/internal/domain"
	"pokedex-companion/internal/spawn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCountAndUniqueness(t *testing.T) {
	sim := spawn.NewSimulator(0.002, rand.New(rand.NewSource(1)))
	origin := domain.Coordinate{Lat: 37.0, Lon: -122.0}

	spawns := sim.Generate(origin, 10)
	require.Len(t, spawns, 10)

	seen := map[string]bool{}
	for _, sp := range spawns {
		assert.False(t, seen[sp.Key], "duplicate key %s", sp.Key)
		seen[sp.Key] = true

		assert.GreaterOrEqual(t, sp.CatalogID, 1)
		assert.LessOrEqual(t, sp.CatalogID, constants.CatalogLimit)
		assert.NotEmpty(t, sp.SpriteURL)
	}
}

func TestGenerateJitterBounds(t *testing.T) {
	const jitter = 0.002
	sim := spawn.NewSimulator(jitter, rand.New(rand.NewSource(7)))
	origin := domain.Coordinate{Lat: 37.0, Lon: -122.0}

	spawns := sim.Generate(origin, 3)
	require.Len(t, spawns, 3)

	for _, sp := range spawns {
		assert.InDelta(t, origin.Lat, sp.Position.Lat, jitter/2,
			"latitude must fall within [36.999, 37.001]")
		assert.InDelta(t, origin.Lon, sp.Position.Lon, jitter/2,
			"longitude must fall within [-122.001, -121.999]")
	}
}

func TestGenerateJitterCoversRange(t *testing.T) {
	sim := spawn.NewSimulator(0.002, rand.New(rand.NewSource(42)))
	origin := domain.Coordinate{}

	var below, above bool
	for _, sp := range sim.Generate(origin, 200) {
		if sp.Position.Lat < 0 {
			below = true
		}
		if sp.Position.Lat > 0 {
			above = true
		}
	}
	assert.True(t, below && above, "offsets must be centered on the origin, not one-sided")
}

func TestGenerateZeroCount(t *testing.T) {
	sim := spawn.NewSimulator(0.002, rand.New(rand.NewSource(1)))
	assert.Empty(t, sim.Generate(domain.Coordinate{}, 0))
}

func TestNewSimulatorDefaults(t *testing.T) {
	sim := spawn.NewSimulator(0, nil)
	assert.Equal(t, constants.DefaultSpawnJitter, sim.Jitter())
	assert.Len(t, sim.Generate(domain.Coordinate{}, 3), 3)
}
