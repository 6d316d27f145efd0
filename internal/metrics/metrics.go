// Package metrics exposes the bot's prometheus counters.
//
// All methods are safe on a nil *Metrics so components can run without a
// registry in tests.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const namespace = "tiertest"

// Role grant outcomes
const (
	OutcomeGranted       = "granted"
	OutcomeAlreadyHeld   = "already_held"
	OutcomeMemberMissing = "member_missing"
	OutcomeRoleMissing   = "role_missing"
	OutcomeFailed        = "failed"
)

// Metrics holds the counters registered on a private registry
type Metrics struct {
	registry *prometheus.Registry

	submissions         *prometheus.CounterVec
	leaderboardRequests *prometheus.CounterVec
	roleGrants          *prometheus.CounterVec
	configReloads       *prometheus.CounterVec
}

// New registers all counters on registry
func New(registry *prometheus.Registry) (*Metrics, error) {
	if registry == nil {
		return nil, errors.New("registry cannot be nil")
	}

	m := &Metrics{
		registry: registry,
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Tier test results submitted, by gamemode and result.",
		}, []string{"gamemode", "result"}),
		leaderboardRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leaderboard_requests_total",
			Help:      "Leaderboard requests, by gamemode and result.",
		}, []string{"gamemode", "result"}),
		roleGrants: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "role_sync_pairs_total",
			Help:      "Member/role pairs processed by role sync, by outcome.",
		}, []string{"outcome"}),
		configReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_reloads_total",
			Help:      "Configuration reload attempts, by result.",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{m.submissions, m.leaderboardRequests, m.roleGrants, m.configReloads} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveSubmission counts a submit attempt
func (m *Metrics) ObserveSubmission(gamemode string, err error) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(gamemode, result(err)).Inc()
}

// ObserveLeaderboard counts a leaderboard request; result is "ok", "empty" or "error"
func (m *Metrics) ObserveLeaderboard(gamemode, result string) {
	if m == nil {
		return
	}
	m.leaderboardRequests.WithLabelValues(gamemode, result).Inc()
}

// ObserveRoleSync counts one processed member/role pair
func (m *Metrics) ObserveRoleSync(outcome string) {
	if m == nil {
		return
	}
	m.roleGrants.WithLabelValues(outcome).Inc()
}

// ObserveReload counts a configuration reload attempt
func (m *Metrics) ObserveReload(err error) {
	if m == nil {
		return
	}
	m.configReloads.WithLabelValues(result(err)).Inc()
}

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Server serves /metrics on an address
type Server struct {
	srv    *http.Server
	logger zerolog.Logger
}

// NewServer builds a metrics server; it does not listen until Start
func NewServer(addr string, m *Metrics, logger zerolog.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start listens in the background
func (s *Server) Start() {
	go func() {
		s.logger.Info().Str("addr", s.srv.Addr).Msg("metrics server starting")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

// Stop shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
