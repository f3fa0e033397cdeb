package domain

import (
	"time"
)

// CatalogRecord is one fully hydrated catalog entry. Immutable once
// fetched; sourced wholesale from the remote API.
type CatalogRecord struct {
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	Sprites   SpriteSet   `json:"sprites"`
	Types     []string    `json:"types"`
	Abilities []string    `json:"abilities"`
	Stats     []StatValue `json:"stats"`
	Height    int         `json:"height"`
	Weight    int         `json:"weight"`
}

type SpriteSet struct {
	FrontDefault string `json:"front_default"`
	FrontShiny   string `json:"front_shiny"`
	Artwork      string `json:"artwork"`
}

type StatValue struct {
	Name string `json:"name"`
	Base int    `json:"base"`
}

type UserProfile struct {
	UID        string    `json:"uid"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Gender     string    `json:"gender"`
	Discovered []int     `json:"discovered"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProfileUpdate carries the merge-only fields of UpdateProfile; nil means
// leave the field untouched.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	Gender   *string `json:"gender,omitempty"`
}

type FeedPost struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Gender    string    `json:"gender"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WildSpawn is a simulated map placement of a catalog entry, capturable
// exactly once. Key doubles as the ownership token for capture.
type WildSpawn struct {
	Key       string     `json:"key"`
	CatalogID int        `json:"catalog_id"`
	SpriteURL string     `json:"sprite_url"`
	Position  Coordinate `json:"position"`
	SpawnedAt time.Time  `json:"spawned_at"`
}
