package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/tiertest/internal/config"
	"github.com/KirkDiggler/tiertest/internal/metrics"
	"github.com/KirkDiggler/tiertest/internal/services/tiertest"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// DefaultCommandTimeout bounds the work done for one interaction
const DefaultCommandTimeout = 2 * time.Minute

// SettingsStore supplies and reloads the active configuration
type SettingsStore interface {
	Current() *config.Settings
	Reload() (*config.Settings, error)
}

// Bot represents the Discord bot instance
type Bot struct {
	session *discordgo.Session
	config  *Config
	logger  zerolog.Logger

	// handlers is fixed at construction; only registered IDs change
	handlers map[string]CommandHandler
	order    []string

	mu         sync.Mutex
	commandIDs map[string]string
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot; defaults to the logged in user
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Settings is the live configuration
	Settings SettingsStore

	// TierTestService records and lists tier tests
	TierTestService tiertest.Service

	// CommandTimeout defaults to DefaultCommandTimeout
	CommandTimeout time.Duration

	Logger zerolog.Logger

	// Metrics is optional
	Metrics *metrics.Metrics
}

// New creates a new Discord bot. No connection is made until Start.
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Token == "" {
		return nil, ErrEmptyToken
	}
	if cfg.Settings == nil {
		return nil, ErrNilSettings
	}
	if cfg.TierTestService == nil {
		return nil, ErrNilTierTestService
	}
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = DefaultCommandTimeout
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	bot := &Bot{
		session:    session,
		config:     cfg,
		logger:     cfg.Logger,
		handlers:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
	}

	for _, h := range []CommandHandler{
		NewTierTestCommand(cfg.Settings, cfg.TierTestService),
		NewTierListCommand(cfg.Settings, cfg.TierTestService),
		NewReloadConfigCommand(cfg.Settings, cfg.Metrics, bot.reloaded),
	} {
		bot.handlers[h.GetName()] = h
		bot.order = append(bot.order, h.GetName())
	}

	session.AddHandler(bot.handleReady)
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the gateway connection and registers commands
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.SyncCommands(ctx); err != nil {
		_ = b.session.Close()
		return err
	}

	b.logger.Info().Msg("bot is now running")
	return nil
}

// Stop closes the gateway connection. Registered commands are left in place.
func (b *Bot) Stop() error {
	return b.session.Close()
}

// SyncCommands replaces the registered command set with definitions built
// from the current settings
func (b *Bot) SyncCommands(ctx context.Context) error {
	appID := b.applicationID()
	if appID == "" {
		return ErrNotConnected
	}

	settings := b.config.Settings.Current()
	cmds := make([]*discordgo.ApplicationCommand, 0, len(b.order))
	for _, name := range b.order {
		cmds = append(cmds, b.handlers[name].GetCommand(settings))
	}

	created, err := b.session.ApplicationCommandBulkOverwrite(appID, b.config.GuildID, cmds, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.commandIDs)
	for _, cmd := range created {
		b.commandIDs[cmd.Name] = cmd.ID
		b.logger.Info().
			Str("command", cmd.Name).
			Str("command_id", cmd.ID).
			Str("guild_id", b.config.GuildID).
			Msg("registered command")
	}

	return nil
}

func (b *Bot) applicationID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	if b.session.State != nil && b.session.State.User != nil {
		return b.session.State.User.ID
	}
	return ""
}

// reloaded re-registers commands and refreshes the presence after /reloadconfig
func (b *Bot) reloaded(ctx context.Context) error {
	b.updateStatus()
	return b.SyncCommands(ctx)
}

func (b *Bot) updateStatus() {
	status := b.config.Settings.Current().BotStatus
	if status == "" {
		return
	}
	if err := b.session.UpdateWatchStatus(0, status); err != nil {
		b.logger.Warn().Err(err).Msg("failed to update presence")
	}
}

// handleReady runs on every gateway (re)connect
func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info().
		Str("user", r.User.String()).
		Int("guilds", len(r.Guilds)).
		Msg("logged in")
	b.updateStatus()
}

// handleInteraction dispatches slash commands to their handlers
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	h, ok := b.handlers[name]
	if !ok {
		return
	}

	logger := b.logger.With().
		Str("interaction_id", i.ID).
		Str("command", name).
		Str("guild_id", i.GuildID).
		Logger()

	ctx, cancel := context.WithTimeout(logger.WithContext(context.Background()), b.config.CommandTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("command handler panicked")
		}
	}()

	start := time.Now()
	if err := h.Handle(ctx, s, i); err != nil {
		logger.Error().Err(err).Msg("error handling command")
		return
	}
	logger.Debug().Dur("elapsed", time.Since(start)).Msg("command handled")
}
