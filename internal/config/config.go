package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"pokedex-companion/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath         string
	ServerPort     string
	LogLevel       string
	PokeAPIBaseURL string
	JWTSecret      string
	TokenTTL       time.Duration
	SpawnCount     int
	SpawnJitter    float64
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:         getEnv("DB_PATH", "pokedex.db"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		PokeAPIBaseURL: getEnv("POKEAPI_BASE_URL", "https://pokeapi.co/api/v2"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenTTL:       24 * time.Hour,
		SpawnCount:     getEnvInt("SPAWN_COUNT", constants.DefaultSpawnCount),
		SpawnJitter:    getEnvFloat("SPAWN_JITTER", constants.DefaultSpawnJitter),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.SpawnCount < 1 || cfg.SpawnCount > constants.MaxSpawnCount {
		return nil, fmt.Errorf("SPAWN_COUNT must be in [1, %d]", constants.MaxSpawnCount)
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("pokeapi_base_url", cfg.PokeAPIBaseURL).
		Int("spawn_count", cfg.SpawnCount).
		Float64("spawn_jitter", cfg.SpawnJitter).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
