package catalog_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"pokedex-companion/internal/cache"
	"pokedex-companion/internal/catalog"
	"pokedex-companion/internal/config"
	"pokedex-companion/internal/database"
	"pokedex-companion/internal/domain"
	"pokedex-companion/internal/pokeapi"
	"pokedex-companion/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	names    []string
	requests atomic.Int64
	server   *httptest.Server
}

func newFakeAPI(t *testing.T, names []string) *fakeAPI {
	t.Helper()
	f := &fakeAPI{names: names}

	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon", func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		results := make([]map[string]string, len(f.names))
		for i, name := range f.names {
			results[i] = map[string]string{
				"name": name,
				"url":  fmt.Sprintf("%s/pokemon/%d", f.server.URL, i+1),
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count":   len(results),
			"results": results,
		})
	})
	mux.HandleFunc("/pokemon/", func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		idStr := strings.TrimPrefix(r.URL.Path, "/pokemon/")
		id, err := strconv.Atoi(idStr)
		if err != nil || id < 1 || id > len(f.names) {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(detailBody(id, f.names[id-1]))
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func detailBody(id int, name string) map[string]any {
	return map[string]any{
		"id":     id,
		"name":   name,
		"height": 7,
		"weight": 69,
		"sprites": map[string]any{
			"front_default": fmt.Sprintf("https://sprites.example/%d.png", id),
			"front_shiny":   fmt.Sprintf("https://sprites.example/shiny/%d.png", id),
			"other": map[string]any{
				"official-artwork": map[string]any{
					"front_default": fmt.Sprintf("https://art.example/%d.png", id),
				},
			},
		},
		"types":     []map[string]any{{"slot": 1, "type": map[string]string{"name": "grass"}}},
		"abilities": []map[string]any{{"ability": map[string]string{"name": "overgrow"}}},
		"stats":     []map[string]any{{"base_stat": 45, "stat": map[string]string{"name": "hp"}}},
	}
}

func newTestService(t *testing.T, baseURL string) *catalog.Service {
	t.Helper()

	cfg := &config.Config{
		DBPath:         filepath.Join(t.TempDir(), "test.db"),
		PokeAPIBaseURL: baseURL,
	}
	db, err := database.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	c := cache.New(repository.NewCacheRepository(db, zerolog.Nop()), zerolog.Nop())
	return catalog.NewService(pokeapi.NewClient(cfg), c, zerolog.Nop())
}

func TestGetCatalogColdCache(t *testing.T) {
	api := newFakeAPI(t, []string{"bulbasaur", "charmander", "squirtle"})
	svc := newTestService(t, api.server.URL)

	records, err := svc.GetCatalog(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 3, "result length must equal summary list length")
	assert.Equal(t, []string{"bulbasaur", "charmander", "squirtle"},
		[]string{records[0].Name, records[1].Name, records[2].Name},
		"result order must match summary order")
	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, []string{"grass"}, records[0].Types)
	assert.Equal(t, []string{"overgrow"}, records[0].Abilities)
	assert.Equal(t, "hp", records[0].Stats[0].Name)
	assert.Equal(t, 45, records[0].Stats[0].Base)
	assert.Equal(t, "https://art.example/1.png", records[0].Sprites.Artwork)

	// One list request plus one detail request per item.
	assert.EqualValues(t, 1+3, api.requests.Load())
}

func TestGetCatalogWarmCache(t *testing.T) {
	api := newFakeAPI(t, []string{"bulbasaur", "charmander", "squirtle"})
	svc := newTestService(t, api.server.URL)
	ctx := context.Background()

	first, err := svc.GetCatalog(ctx)
	require.NoError(t, err)
	cold := api.requests.Load()

	second, err := svc.GetCatalog(ctx)
	require.NoError(t, err)
	third, err := svc.GetCatalog(ctx)
	require.NoError(t, err)

	assert.Equal(t, cold, api.requests.Load(), "warm cache must make zero remote requests")
	assert.Equal(t, first, second)
	assert.Equal(t, second, third, "repeated warm reads must be identical")
}

func TestGetCatalogListFailurePropagates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	svc := newTestService(t, ts.URL)
	_, err := svc.GetCatalog(context.Background())
	require.Error(t, err)
}

func TestGetCatalogDetailFailurePropagates(t *testing.T) {
	var broken *httptest.Server
	broken = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pokemon" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"count": 1,
				"results": []map[string]string{
					{"name": "bulbasaur", "url": broken.URL + "/pokemon/99"},
				},
			})
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(broken.Close)

	svc := newTestService(t, broken.URL)
	_, err := svc.GetCatalog(context.Background())
	require.Error(t, err, "a failed detail fetch must fail the whole call, no partial results")
}

func TestSearch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon/bulbasaur", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(detailBody(1, "bulbasaur"))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	svc := newTestService(t, ts.URL)

	rec, err := svc.Search(context.Background(), "Bulbasaur")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ID)
	assert.Equal(t, "bulbasaur", rec.Name)

	_, err = svc.Search(context.Background(), "nothere")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
