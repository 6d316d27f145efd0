package tiertest

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/tiertest/internal/database"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// OpenInput selects and configures a backend
type OpenInput struct {
	// Location is a SQLite file path or a redis:// (rediss://) URL
	Location string

	Logger zerolog.Logger
}

// IsRedisLocation reports whether location selects the Redis backend
func IsRedisLocation(location string) bool {
	return strings.HasPrefix(location, "redis://") || strings.HasPrefix(location, "rediss://")
}

// Open connects to the configured backend and initializes it
func Open(ctx context.Context, input *OpenInput) (Repository, error) {
	if input == nil || strings.TrimSpace(input.Location) == "" {
		return nil, ErrEmptyLocation
	}

	var (
		repo Repository
		err  error
	)

	if IsRedisLocation(input.Location) {
		repo, err = openRedis(input)
	} else {
		repo, err = openSQLite(input)
	}
	if err != nil {
		return nil, err
	}

	if err := repo.Initialize(ctx); err != nil {
		_ = repo.Close()
		return nil, err
	}

	return repo, nil
}

func openRedis(input *OpenInput) (Repository, error) {
	opts, err := redis.ParseURL(input.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid redis location: %w", err)
	}

	input.Logger.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("using redis record store")
	return NewRedis(&RedisConfig{
		RedisClient: redis.NewClient(opts),
		Logger:      input.Logger,
	})
}

func openSQLite(input *OpenInput) (Repository, error) {
	db, err := database.Open(input.Location, input.Logger)
	if err != nil {
		return nil, storageError("open", err)
	}

	return NewSQLite(&SQLiteConfig{
		DB:     db,
		Logger: input.Logger,
	})
}
