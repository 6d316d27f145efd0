package tiertest

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/KirkDiggler/tiertest/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// Key layout for Redis
	nextIDKey              = "tiertest:next_id"
	recordKeyPrefix        = "tiertest:record:"
	gamemodeIndexKeyPrefix = "tiertest:gamemode:"
)

// RedisConfig holds configuration for the Redis record store
type RedisConfig struct {
	RedisClient *redis.Client
	Logger      zerolog.Logger
}

// redisRepository stores each record as JSON and keeps one ID list per gamemode
type redisRepository struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedis creates a Redis-backed record store
func NewRedis(cfg *RedisConfig) (*redisRepository, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.RedisClient == nil {
		return nil, ErrNilRedisClient
	}

	return &redisRepository{
		client: cfg.RedisClient,
		logger: cfg.Logger,
	}, nil
}

func recordKey(id int64) string {
	return recordKeyPrefix + strconv.FormatInt(id, 10)
}

func gamemodeIndexKey(gamemode string) string {
	return gamemodeIndexKeyPrefix + gamemode
}

// Initialize checks connectivity; Redis needs no schema
func (r *redisRepository) Initialize(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return storageError("initialize", fmt.Errorf("failed to connect to Redis: %w", err))
	}
	return nil
}

// Insert allocates an ID with INCR, then writes the record and its index
// entry in one MULTI/EXEC.
func (r *redisRepository) Insert(ctx context.Context, input *InsertInput) (*InsertOutput, error) {
	if input == nil || input.Record == nil {
		return nil, ErrNilInput
	}
	rec := *input.Record

	id, err := r.client.Incr(ctx, nextIDKey).Result()
	if err != nil {
		return nil, storageError("insert", fmt.Errorf("failed to allocate record id: %w", err))
	}
	rec.ID = id

	recordJSON, err := json.Marshal(&rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, recordKey(id), recordJSON, 0)
		pipe.RPush(ctx, gamemodeIndexKey(rec.Gamemode), id)
		return nil
	})
	if err != nil {
		return nil, storageError("insert", fmt.Errorf("failed to save record: %w", err))
	}

	r.logger.Debug().
		Int64("id", id).
		Str("gamemode", rec.Gamemode).
		Str("tier", rec.Tier).
		Msg("tier test recorded")

	return &InsertOutput{Record: &rec}, nil
}

// QueryByGamemode reads the gamemode's ID list and fetches the records in one pipeline
func (r *redisRepository) QueryByGamemode(ctx context.Context, input *QueryByGamemodeInput) (*QueryByGamemodeOutput, error) {
	if input == nil || input.Gamemode == "" {
		return nil, ErrEmptyGamemode
	}

	ids, err := r.client.LRange(ctx, gamemodeIndexKey(input.Gamemode), 0, -1).Result()
	if err != nil {
		return nil, storageError("query", fmt.Errorf("failed to get record ids: %w", err))
	}

	records := make([]*models.TierTestRecord, 0, len(ids))
	if len(ids) == 0 {
		return &QueryByGamemodeOutput{Records: records}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, recordKeyPrefix+id)
	}

	// redis.Nil from a missing record surfaces per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, storageError("query", fmt.Errorf("failed to get records: %w", err))
	}

	for i, cmd := range cmds {
		recordJSON, err := cmd.Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				r.logger.Warn().Str("id", ids[i]).Msg("indexed record is missing")
				continue
			}
			return nil, storageError("query", fmt.Errorf("failed to get record %s: %w", ids[i], err))
		}

		var rec models.TierTestRecord
		if err := json.Unmarshal(recordJSON, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record %s: %w", ids[i], err)
		}
		records = append(records, &rec)
	}

	// concurrent writers can RPUSH out of INCR order
	slices.SortFunc(records, func(a, b *models.TierTestRecord) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return &QueryByGamemodeOutput{Records: records}, nil
}

// Close closes the Redis client
func (r *redisRepository) Close() error {
	return r.client.Close()
}
