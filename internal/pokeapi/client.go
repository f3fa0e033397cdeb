package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pokedex-companion/internal/config"
	"pokedex-companion/internal/domain"

	"github.com/valyala/fasthttp"
)

// Client talks to the remote catalog API (PokeAPI-compatible). The base URL
// is configurable so tests can point it at a local server.
type Client struct {
	baseURL string
	client  *fasthttp.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.PokeAPIBaseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *Client) ListPokemon(ctx context.Context, offset, limit int) (*ListResponse, error) {
	url := fmt.Sprintf("%s/pokemon?offset=%d&limit=%d", c.baseURL, offset, limit)
	return doRequest[ListResponse](ctx, c, url)
}

// GetPokemonByURL follows a summary item's detail URL verbatim, as the
// list response hands them out.
func (c *Client) GetPokemonByURL(ctx context.Context, url string) (*PokemonResponse, error) {
	return doRequest[PokemonResponse](ctx, c, url)
}

func (c *Client) GetPokemonByID(ctx context.Context, id int) (*PokemonResponse, error) {
	url := fmt.Sprintf("%s/pokemon/%d", c.baseURL, id)
	return doRequest[PokemonResponse](ctx, c, url)
}

func (c *Client) GetPokemonByName(ctx context.Context, name string) (*PokemonResponse, error) {
	url := fmt.Sprintf("%s/pokemon/%s", c.baseURL, strings.ToLower(strings.TrimSpace(name)))
	return doRequest[PokemonResponse](ctx, c, url)
}

func doRequest[T any](ctx context.Context, client *Client, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() == fasthttp.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type ListResponse struct {
	Count   int           `json:"count"`
	Results []SummaryItem `json:"results"`
}

type SummaryItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type PokemonResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Height  int    `json:"height"`
	Weight  int    `json:"weight"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		FrontShiny   string `json:"front_shiny"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
	Types []struct {
		Slot int `json:"slot"`
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Abilities []struct {
		Ability struct {
			Name string `json:"name"`
		} `json:"ability"`
	} `json:"abilities"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
}

// Record maps the wire shape onto the domain record. This is the single
// place where absent-field defaults are applied.
func (p *PokemonResponse) Record() domain.CatalogRecord {
	rec := domain.CatalogRecord{
		ID:     p.ID,
		Name:   p.Name,
		Height: p.Height,
		Weight: p.Weight,
		Sprites: domain.SpriteSet{
			FrontDefault: p.Sprites.FrontDefault,
			FrontShiny:   p.Sprites.FrontShiny,
			Artwork:      p.Sprites.Other.OfficialArtwork.FrontDefault,
		},
	}
	for _, t := range p.Types {
		rec.Types = append(rec.Types, t.Type.Name)
	}
	for _, a := range p.Abilities {
		rec.Abilities = append(rec.Abilities, a.Ability.Name)
	}
	for _, s := range p.Stats {
		rec.Stats = append(rec.Stats, domain.StatValue{Name: s.Stat.Name, Base: s.BaseStat})
	}
	return rec
}

// SpriteURL builds the canonical sprite location for a catalog id without a
// detail fetch; spawns use it so scanning never touches the network.
func SpriteURL(id int) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png", id)
}
