package bot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"warden/domain/entities"
	"warden/domain/events"
	"warden/domain/testhelpers"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubModerationLog struct {
	entries []*entities.ModerationLogEntry
	limit   int
}

func (s *stubModerationLog) RecordAction(ctx context.Context, event events.ModerationActionEvent) (*entities.ModerationLogEntry, error) {
	return nil, errors.New("not implemented")
}

func (s *stubModerationLog) Recent(ctx context.Context, guildID int64, limit int) ([]*entities.ModerationLogEntry, error) {
	s.limit = limit
	return s.entries, nil
}

func newDebugBot(t *testing.T, services Services) *Bot {
	t.Helper()
	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	require.NoError(t, session.State.GuildAdd(&discordgo.Guild{ID: "100", Name: "Test Guild", MemberCount: 3}))
	return &Bot{session: session, services: services}
}

func get(t *testing.T, handler http.Handler, target string) (*httptest.ResponseRecorder, DebugResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body DebugResponse
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestDebugAPI_Health(t *testing.T) {
	handler := newDebugBot(t, Services{}).debugHandler()

	rec, _ := get(t, handler, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestDebugAPI_Guilds(t *testing.T) {
	b := newDebugBot(t, Services{})

	rec, body := get(t, b.debugHandler(), "/debug/guilds")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, []GuildInfo{{ID: "100", Name: "Test Guild", MemberCount: 3}}, b.GetGuilds())

	rec = httptest.NewRecorder()
	b.debugHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/debug/guilds", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDebugAPI_Config(t *testing.T) {
	configs := new(testhelpers.MockGuildConfigService)
	channelID := int64(555)
	configs.On("GetConfig", mock.Anything, int64(100)).Return(&entities.GuildConfig{GuildID: 100, LogChannelID: &channelID}, nil)
	configs.On("GetConfig", mock.Anything, int64(101)).Return(nil, errors.New("database error"))
	handler := newDebugBot(t, Services{GuildConfig: configs}).debugHandler()

	rec, body := get(t, handler, "/debug/config?guild_id=100")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)

	rec, body = get(t, handler, "/debug/config?guild_id=101")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, body.Error, "database error")

	rec, _ = get(t, handler, "/debug/config?guild_id=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDebugAPI_Moderation(t *testing.T) {
	t.Run("without a database", func(t *testing.T) {
		handler := newDebugBot(t, Services{}).debugHandler()
		rec, body := get(t, handler, "/debug/moderation?guild_id=100")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, body.Success)
	})

	t.Run("lists recent entries", func(t *testing.T) {
		log := &stubModerationLog{entries: []*entities.ModerationLogEntry{{ID: 1, GuildID: 100, Action: entities.ActionKick}}}
		handler := newDebugBot(t, Services{ModerationLog: log}).debugHandler()

		rec, body := get(t, handler, "/debug/moderation?guild_id=100&limit=5")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, body.Success)
		assert.Equal(t, 5, log.limit)
	})

	t.Run("invalid limit", func(t *testing.T) {
		handler := newDebugBot(t, Services{ModerationLog: &stubModerationLog{}}).debugHandler()
		rec, _ := get(t, handler, "/debug/moderation?guild_id=100&limit=many")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
