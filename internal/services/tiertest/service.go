package tiertest

import (
	"context"
	"strings"

	"github.com/KirkDiggler/tiertest/internal/common/uuid"
	"github.com/KirkDiggler/tiertest/internal/metrics"
	"github.com/KirkDiggler/tiertest/internal/models"
	tiertestRepo "github.com/KirkDiggler/tiertest/internal/repositories/tiertest"
	"github.com/KirkDiggler/tiertest/internal/services/leaderboard"
	"github.com/KirkDiggler/tiertest/internal/services/rolesync"
	"github.com/rs/zerolog"
)

// service implements the Service interface
type service struct {
	repo     tiertestRepo.Repository
	roleSync rolesync.Service
	settings SettingsProvider
	uuidGen  uuid.UUID
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

// New creates a new tier test service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Repository == nil {
		return nil, ErrNilRepository
	}
	if cfg.RoleSync == nil {
		return nil, ErrNilRoleSync
	}
	if cfg.Settings == nil {
		return nil, ErrNilSettings
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		repo:     cfg.Repository,
		roleSync: cfg.RoleSync,
		settings: cfg.Settings,
		uuidGen:  cfg.UUIDGenerator,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}, nil
}

// Submit records a tier test result
func (s *service) Submit(ctx context.Context, input *SubmitInput) (*SubmitOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	// stored as typed; blank only selects the default
	comments := input.Comments
	if strings.TrimSpace(comments) == "" {
		comments = models.DefaultComments
	}

	out, err := s.repo.Insert(ctx, &tiertestRepo.InsertInput{
		Record: &models.TierTestRecord{
			IGN:      input.IGN,
			PlayerID: input.PlayerID,
			Gamemode: input.Gamemode,
			Score:    input.Score,
			Tier:     input.Tier,
			Comments: comments,
			TesterID: input.TesterID,
		},
	})
	s.metrics.ObserveSubmission(input.Gamemode, err)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("gamemode", input.Gamemode).
			Str("tier", input.Tier).
			Msg("failed to record tier test")
		return nil, err
	}

	s.logger.Info().
		Int64("id", out.Record.ID).
		Str("ign", out.Record.IGN).
		Str("gamemode", out.Record.Gamemode).
		Str("tier", out.Record.Tier).
		Str("tester_id", out.Record.TesterID).
		Msg("tier test recorded")

	return &SubmitOutput{Record: out.Record}, nil
}

// GetLeaderboard builds the leaderboard and syncs roles
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Gamemode == "" {
		return nil, ErrEmptyGamemode
	}

	out, err := s.repo.QueryByGamemode(ctx, &tiertestRepo.QueryByGamemodeInput{
		Gamemode: input.Gamemode,
	})
	if err != nil {
		s.metrics.ObserveLeaderboard(input.Gamemode, "error")
		return nil, err
	}

	// records whose tier is no longer configured are not shown
	groups := leaderboard.Build(out.Records, s.settings.Current().Tiers)
	if len(groups) == 0 {
		s.metrics.ObserveLeaderboard(input.Gamemode, "empty")
		return nil, ErrNoRecords
	}
	s.metrics.ObserveLeaderboard(input.Gamemode, "ok")

	result := &GetLeaderboardOutput{
		Gamemode: input.Gamemode,
		Tiers:    groups,
	}

	if input.Guild != nil {
		syncLogger := s.logger.With().
			Str("sync_id", s.uuidGen.NewUUID()).
			Str("gamemode", input.Gamemode).
			Logger()

		syncResult, err := s.roleSync.Sync(syncLogger.WithContext(ctx), &rolesync.SyncInput{
			Gamemode: input.Gamemode,
			Groups:   groups,
			Guild:    input.Guild,
		})
		if err != nil {
			// the leaderboard is still worth showing
			syncLogger.Error().Err(err).Msg("role sync did not run")
		}
		result.Sync = syncResult
	}

	return result, nil
}
