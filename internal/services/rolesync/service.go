package rolesync

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/tiertest/internal/metrics"
	"github.com/KirkDiggler/tiertest/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type outcome int

const (
	outcomeGranted outcome = iota
	outcomeAlreadyHeld
	outcomeMemberMissing
	outcomeRoleMissing
	outcomeFailed
)

var outcomeLabels = map[outcome]string{
	outcomeGranted:       metrics.OutcomeGranted,
	outcomeAlreadyHeld:   metrics.OutcomeAlreadyHeld,
	outcomeMemberMissing: metrics.OutcomeMemberMissing,
	outcomeRoleMissing:   metrics.OutcomeRoleMissing,
	outcomeFailed:        metrics.OutcomeFailed,
}

type pair struct {
	playerID string
	roleName string
}

type service struct {
	concurrency int
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// New creates a role synchronizer
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &service{
		concurrency: concurrency,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
	}, nil
}

// log prefers a logger carried on ctx, e.g. one tagged with a sync run ID
func (s *service) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.logger
}

// RoleName is the Discord role mirroring a tier, e.g. "Uhc S"
func RoleName(gamemode, tier string) string {
	return models.GamemodeTitle(gamemode) + " " + tier
}

// pairs derives the distinct member/role pairs in leaderboard order
func pairs(gamemode string, groups []*models.TierGroup) []pair {
	seen := make(map[pair]bool)
	var out []pair
	for _, group := range groups {
		if group == nil {
			continue
		}
		roleName := RoleName(gamemode, group.Tier)
		for _, entry := range group.Entries {
			if entry == nil || entry.PlayerID == "" {
				continue
			}
			p := pair{playerID: entry.PlayerID, roleName: roleName}
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// Sync grants missing tier roles. Pairs are independent: a crash or failure
// part way leaves some roles granted, and re-running finishes the rest.
func (s *service) Sync(ctx context.Context, input *SyncInput) (*SyncResult, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Guild == nil {
		return nil, ErrNilGuild
	}

	logger := s.log(ctx)
	work := pairs(input.Gamemode, input.Groups)
	outcomes := make([]outcome, len(work))
	errs := make([]error, len(work))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, p := range work {
		g.Go(func() error {
			outcomes[i], errs[i] = s.syncPair(ctx, logger, input.Guild, p)
			return nil
		})
	}
	_ = g.Wait()

	result := &SyncResult{Pairs: len(work)}
	for i, o := range outcomes {
		s.metrics.ObserveRoleSync(outcomeLabels[o])

		switch o {
		case outcomeGranted:
			result.Granted++
		case outcomeAlreadyHeld:
			result.AlreadyHeld++
		case outcomeMemberMissing:
			result.MemberMissing++
		case outcomeRoleMissing:
			result.RoleMissing++
		case outcomeFailed:
			syncErr := &RoleSyncError{PlayerID: work[i].playerID, RoleName: work[i].roleName, Err: errs[i]}
			result.Failures = append(result.Failures, syncErr)
			logger.Error().
				Err(errs[i]).
				Str("player_id", work[i].playerID).
				Str("role", work[i].roleName).
				Msg("failed to sync role")
		}
	}

	logger.Info().
		Str("gamemode", input.Gamemode).
		Int("pairs", result.Pairs).
		Int("granted", result.Granted).
		Int("already_held", result.AlreadyHeld).
		Int("member_missing", result.MemberMissing).
		Int("role_missing", result.RoleMissing).
		Int("failed", len(result.Failures)).
		Msg("role sync complete")

	return result, nil
}

func (s *service) syncPair(ctx context.Context, logger *zerolog.Logger, guild Guild, p pair) (o outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			o, err = outcomeFailed, fmt.Errorf("panic: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return outcomeFailed, err
	}

	member, err := guild.ResolveMember(ctx, p.playerID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			logger.Debug().Str("player_id", p.playerID).Msg("member not in guild, skipping")
			return outcomeMemberMissing, nil
		}
		return outcomeFailed, fmt.Errorf("failed to resolve member: %w", err)
	}

	role, err := guild.ResolveRole(ctx, p.roleName)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			logger.Debug().Str("role", p.roleName).Msg("role does not exist, skipping")
			return outcomeRoleMissing, nil
		}
		return outcomeFailed, fmt.Errorf("failed to resolve role: %w", err)
	}

	if guild.MemberHasRole(member, role) {
		return outcomeAlreadyHeld, nil
	}

	if err := guild.GrantRole(ctx, member, role); err != nil {
		return outcomeFailed, fmt.Errorf("failed to grant role: %w", err)
	}

	logger.Info().Str("player_id", p.playerID).Str("role", p.roleName).Msg("granted role")
	return outcomeGranted, nil
}
