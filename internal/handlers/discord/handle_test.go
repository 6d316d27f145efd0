package discord

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/KirkDiggler/tiertest/internal/config"
	"github.com/KirkDiggler/tiertest/internal/models"
	"github.com/KirkDiggler/tiertest/internal/services/tiertest"
	"github.com/KirkDiggler/tiertest/internal/services/tiertest/mocks"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const adminPermissions = int64(discordgo.PermissionAdministrator)

// reloadStore is a settings store whose Reload result is scripted
type reloadStore struct {
	settings  *config.Settings
	reloadErr error
	reloads   int
}

func (s *reloadStore) Current() *config.Settings {
	return s.settings
}

func (s *reloadStore) Reload() (*config.Settings, error) {
	s.reloads++
	if s.reloadErr != nil {
		return nil, s.reloadErr
	}
	return s.settings, nil
}

type HandleTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockService *mocks.MockService
	store       *reloadStore
	api         *fakeAPI
	session     *discordgo.Session
	ctx         context.Context
}

func (s *HandleTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockService = mocks.NewMockService(s.mockCtrl)
	s.store = &reloadStore{settings: testSettings(s.T())}
	s.api, s.session = newFakeAPI(s.T())
	s.ctx = context.Background()
}

func (s *HandleTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *HandleTestSuite) TestReloadFailureRepliesWithError() {
	s.store.reloadErr = &config.ConfigError{Path: "config.json", Reason: "missing required config key: tiers"}
	reloaded := false
	cmd := NewReloadConfigCommand(s.store, nil, func(context.Context) error {
		reloaded = true
		return nil
	})

	err := cmd.Handle(s.ctx, s.session, commandInteraction("reloadconfig", adminPermissions))

	s.Require().NoError(err)
	calls := s.api.Calls()
	s.Require().Len(calls, 1)
	data := callbackData(s.T(), calls[0])
	s.Equal("❌ Error loading config: config config.json: missing required config key: tiers", data["content"])
	s.False(reloaded)
}

func (s *HandleTestSuite) TestReloadSuccessRepliesAndResyncs() {
	reloaded := false
	cmd := NewReloadConfigCommand(s.store, nil, func(context.Context) error {
		reloaded = true
		return nil
	})

	err := cmd.Handle(s.ctx, s.session, commandInteraction("reloadconfig", adminPermissions))

	s.Require().NoError(err)
	calls := s.api.Calls()
	s.Require().Len(calls, 1)
	s.Equal("✅ Configuration reloaded successfully!", callbackData(s.T(), calls[0])["content"])
	s.True(reloaded)
	s.Equal(1, s.store.reloads)
}

func (s *HandleTestSuite) TestReloadRequiresAdministrator() {
	cmd := NewReloadConfigCommand(s.store, nil, nil)

	err := cmd.Handle(s.ctx, s.session, commandInteraction("reloadconfig", discordgo.PermissionSendMessages))

	s.Require().NoError(err)
	calls := s.api.Calls()
	s.Require().Len(calls, 1)
	s.True(isEphemeral(callbackData(s.T(), calls[0])))
	s.Equal(0, s.store.reloads)
}

func (s *HandleTestSuite) TestTierListNoRecordsEditsDeferredReply() {
	s.mockService.EXPECT().
		GetLeaderboard(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *tiertest.GetLeaderboardInput) (*tiertest.GetLeaderboardOutput, error) {
			s.Equal("sky wars", input.Gamemode)
			s.NotNil(input.Guild)
			return nil, tiertest.ErrNoRecords
		})
	cmd := NewTierListCommand(s.store, s.mockService)

	err := cmd.Handle(s.ctx, s.session, commandInteraction("tierlist", 0, gamemodeOption("sky wars")))

	s.Require().NoError(err)
	calls := s.api.Calls()
	s.Require().Len(calls, 2)

	s.Equal(float64(discordgo.InteractionResponseDeferredChannelMessageWithSource), calls[0].Body["type"])

	s.Equal("PATCH", calls[1].Method)
	s.True(strings.HasSuffix(calls[1].Path, "/webhooks/app-1/interaction-token/messages/@original"), calls[1].Path)
	s.Equal("No records found for **Sky Wars**", calls[1].Body["content"])
}

func (s *HandleTestSuite) TestTierListRendersLeaderboard() {
	s.mockService.EXPECT().
		GetLeaderboard(gomock.Any(), gomock.Any()).
		Return(&tiertest.GetLeaderboardOutput{
			Gamemode: "uhc",
			Tiers: []*models.TierGroup{
				{Tier: "S", Entries: []*models.LeaderboardEntry{{RecordID: 1, IGN: "Foo", PlayerID: "1001"}}},
			},
		}, nil)
	cmd := NewTierListCommand(s.store, s.mockService)

	err := cmd.Handle(s.ctx, s.session, commandInteraction("tierlist", 0, gamemodeOption("uhc")))

	s.Require().NoError(err)
	calls := s.api.Calls()
	s.Require().Len(calls, 2)

	embeds, ok := calls[1].Body["embeds"].([]any)
	s.Require().True(ok)
	s.Require().Len(embeds, 1)
	embed := embeds[0].(map[string]any)
	s.Equal("🏆 Uhc Tier List", embed["title"])
}

func (s *HandleTestSuite) TestTierListStorageErrorEditsDeferredReply() {
	s.mockService.EXPECT().
		GetLeaderboard(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("database is locked"))
	cmd := NewTierListCommand(s.store, s.mockService)

	err := cmd.Handle(s.ctx, s.session, commandInteraction("tierlist", 0, gamemodeOption("uhc")))

	s.Require().NoError(err)
	calls := s.api.Calls()
	s.Require().Len(calls, 2)
	s.Equal("❌ Failed to load the tier list. Please try again.", calls[1].Body["content"])
}

func (s *HandleTestSuite) TestTierListUnknownGamemodeIsEphemeral() {
	cmd := NewTierListCommand(s.store, s.mockService)

	err := cmd.Handle(s.ctx, s.session, commandInteraction("tierlist", 0, gamemodeOption("bedwars")))

	s.Require().NoError(err)
	calls := s.api.Calls()
	s.Require().Len(calls, 1)
	data := callbackData(s.T(), calls[0])
	s.True(isEphemeral(data))
	s.Equal("❌ Unknown gamemode: bedwars", data["content"])
}

func TestHandleTestSuite(t *testing.T) {
	suite.Run(t, new(HandleTestSuite))
}
