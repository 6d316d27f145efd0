package discord

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

// apiCall is one REST request the session made
type apiCall struct {
	Method string
	Path   string
	Body   map[string]any
}

// fakeAPI records interaction callbacks and webhook edits
type fakeAPI struct {
	server *httptest.Server

	mu    sync.Mutex
	calls []apiCall
}

// redirectTransport sends every request to the fake API, whatever the endpoint host
type redirectTransport struct {
	target *url.URL
}

func (t *redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	req.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newFakeAPI(t *testing.T) (*fakeAPI, *discordgo.Session) {
	t.Helper()

	api := &fakeAPI{}
	api.server = httptest.NewServer(http.HandlerFunc(api.handle))
	t.Cleanup(api.server.Close)

	target, err := url.Parse(api.server.URL)
	require.NoError(t, err)

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	session.Client = &http.Client{Transport: &redirectTransport{target: target}}

	return api, session
}

func (a *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	call := apiCall{Method: r.Method, Path: r.URL.Path}
	if data, err := io.ReadAll(r.Body); err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, &call.Body)
	}

	a.mu.Lock()
	a.calls = append(a.calls, call)
	a.mu.Unlock()

	if strings.HasSuffix(r.URL.Path, "/callback") {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"id":"message-1"}`))
}

func (a *fakeAPI) Calls() []apiCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]apiCall(nil), a.calls...)
}

// callbackData returns the data object of an interaction callback
func callbackData(t *testing.T, call apiCall) map[string]any {
	t.Helper()
	require.True(t, strings.HasSuffix(call.Path, "/callback"), "not a callback: %s", call.Path)
	data, ok := call.Body["data"].(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return data
}

func isEphemeral(data map[string]any) bool {
	flags, ok := data["flags"].(float64)
	return ok && int(flags)&int(discordgo.MessageFlagsEphemeral) != 0
}

// commandInteraction builds a slash command interaction from a guild member
func commandInteraction(name string, permissions int64, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:      "interaction-1",
		AppID:   "app-1",
		Token:   "interaction-token",
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: "guild-1",
		Member: &discordgo.Member{
			User:        &discordgo.User{ID: "tester-1"},
			Permissions: permissions,
		},
		Data: discordgo.ApplicationCommandInteractionData{
			Name:    name,
			Options: options,
		},
	}}
}

func gamemodeOption(value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  "gamemode",
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}
