package infrastructure

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"warden/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession records calls and serves messages from a fixed history, newest first
type fakeSession struct {
	DiscordSession

	history     []*discordgo.Message
	bulkDeleted [][]string
	deleted     []string
	sent        map[string][]string
	unbanErr    error
	created     discordgo.GuildChannelCreateData
	movedTo     *string
}

func (f *fakeSession) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	start := 0
	if beforeID != "" {
		for i, m := range f.history {
			if m.ID == beforeID {
				start = i + 1
				break
			}
		}
	}
	end := min(start+limit, len(f.history))
	return f.history[start:end], nil
}

func (f *fakeSession) ChannelMessagesBulkDelete(channelID string, messages []string, options ...discordgo.RequestOption) error {
	f.bulkDeleted = append(f.bulkDeleted, messages)
	return nil
}

func (f *fakeSession) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeSession) GuildBanDelete(guildID, userID string, options ...discordgo.RequestOption) error {
	return f.unbanErr
}

func (f *fakeSession) UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return &discordgo.Channel{ID: "dm-" + recipientID}, nil
}

func (f *fakeSession) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.sent == nil {
		f.sent = make(map[string][]string)
	}
	f.sent[channelID] = append(f.sent[channelID], content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (f *fakeSession) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.created = data
	return &discordgo.Channel{ID: "4242", GuildID: guildID, Name: data.Name}, nil
}

func (f *fakeSession) GuildMemberMove(guildID, userID string, channelID *string, options ...discordgo.RequestOption) error {
	f.movedTo = channelID
	return nil
}

// snowflakeAt builds a message id created at t
func snowflakeAt(t time.Time, seq int64) string {
	ms := t.UnixMilli() - 1420070400000
	return strconv.FormatInt(ms<<22|seq, 10)
}

func historyAt(now time.Time, ages ...time.Duration) []*discordgo.Message {
	messages := make([]*discordgo.Message, len(ages))
	for i, age := range ages {
		messages[i] = &discordgo.Message{ID: snowflakeAt(now.Add(-age), int64(i))}
	}
	return messages
}

func TestDiscordGateway_PurgeMessages(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("recent messages are bulk deleted", func(t *testing.T) {
		session := &fakeSession{history: historyAt(now, time.Minute, 2*time.Minute, 3*time.Minute)}
		gateway := NewDiscordGateway(session)
		gateway.now = func() time.Time { return now }

		deleted, err := gateway.PurgeMessages(ctx, 1, 10, "")
		require.NoError(t, err)
		assert.Equal(t, 3, deleted)
		require.Len(t, session.bulkDeleted, 1)
		assert.Len(t, session.bulkDeleted[0], 3)
		assert.Empty(t, session.deleted)
	})

	t.Run("old messages are deleted singly", func(t *testing.T) {
		session := &fakeSession{history: historyAt(now, time.Minute, time.Hour, 20*24*time.Hour, 30*24*time.Hour)}
		gateway := NewDiscordGateway(session)
		gateway.now = func() time.Time { return now }

		deleted, err := gateway.PurgeMessages(ctx, 1, 10, "cleanup")
		require.NoError(t, err)
		assert.Equal(t, 4, deleted)
		require.Len(t, session.bulkDeleted, 1)
		assert.Len(t, session.bulkDeleted[0], 2)
		assert.Len(t, session.deleted, 2)
	})

	t.Run("single recent message uses single delete", func(t *testing.T) {
		session := &fakeSession{history: historyAt(now, time.Minute)}
		gateway := NewDiscordGateway(session)
		gateway.now = func() time.Time { return now }

		deleted, err := gateway.PurgeMessages(ctx, 1, 5, "")
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)
		assert.Empty(t, session.bulkDeleted)
		assert.Len(t, session.deleted, 1)
	})

	t.Run("limit spans pages", func(t *testing.T) {
		ages := make([]time.Duration, 250)
		for i := range ages {
			ages[i] = time.Duration(i+1) * time.Second
		}
		session := &fakeSession{history: historyAt(now, ages...)}
		gateway := NewDiscordGateway(session)
		gateway.now = func() time.Time { return now }

		deleted, err := gateway.PurgeMessages(ctx, 1, 150, "")
		require.NoError(t, err)
		assert.Equal(t, 150, deleted)
		require.Len(t, session.bulkDeleted, 2)
		assert.Len(t, session.bulkDeleted[0], 100)
		assert.Len(t, session.bulkDeleted[1], 50)
	})
}

func TestDiscordGateway_UnbanUser(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown ban maps to not banned", func(t *testing.T) {
		session := &fakeSession{unbanErr: &discordgo.RESTError{
			Response: &http.Response{StatusCode: http.StatusNotFound},
			Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownBan, Message: "Unknown Ban"},
		}}

		err := NewDiscordGateway(session).UnbanUser(ctx, 1, 2, "")
		assert.True(t, errors.Is(err, domain.ErrNotBanned))
	})

	t.Run("other errors pass through", func(t *testing.T) {
		session := &fakeSession{unbanErr: &discordgo.RESTError{
			Response: &http.Response{StatusCode: http.StatusForbidden},
			Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions},
		}}

		err := NewDiscordGateway(session).UnbanUser(ctx, 1, 2, "")
		require.Error(t, err)
		assert.False(t, errors.Is(err, domain.ErrNotBanned))
	})

	t.Run("success", func(t *testing.T) {
		assert.NoError(t, NewDiscordGateway(&fakeSession{}).UnbanUser(ctx, 1, 2, "appeal"))
	})
}

func TestDiscordGateway_SendDirectMessage(t *testing.T) {
	session := &fakeSession{}
	require.NoError(t, NewDiscordGateway(session).SendDirectMessage(context.Background(), 77, "hello"))
	assert.Equal(t, []string{"hello"}, session.sent["dm-77"])
}

func TestDiscordGateway_VoiceChannels(t *testing.T) {
	ctx := context.Background()
	session := &fakeSession{}
	gateway := NewDiscordGateway(session)

	id, err := gateway.CreateVoiceChannel(ctx, 1, "Created by someone", 50)
	require.NoError(t, err)
	assert.Equal(t, int64(4242), id)
	assert.Equal(t, discordgo.ChannelTypeGuildVoice, session.created.Type)
	assert.Equal(t, "50", session.created.ParentID)

	_, err = gateway.CreateVoiceChannel(ctx, 1, "Create channel", 0)
	require.NoError(t, err)
	assert.Empty(t, session.created.ParentID)

	require.NoError(t, gateway.MoveMember(ctx, 1, 2, id))
	require.NotNil(t, session.movedTo)
	assert.Equal(t, "4242", *session.movedTo)
}
