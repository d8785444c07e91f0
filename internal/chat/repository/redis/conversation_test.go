package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conversational-task-assistant/internal/chat/repository"
	"conversational-task-assistant/internal/model"
	pkgLog "conversational-task-assistant/pkg/log"
)

func setup(t *testing.T, maxTurns int) (*miniredis.Miniredis, repository.Repository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, New(client, pkgLog.NewNop(), time.Hour, maxTurns)
}

func TestAppendAndRecent(t *testing.T) {
	ctx := context.Background()
	_, r := setup(t, 6)

	turns, err := r.RecentTurns(ctx, "c1", 5)
	require.NoError(t, err)
	assert.Empty(t, turns)

	for i := 0; i < 4; i++ {
		require.NoError(t, r.AppendTurn(ctx, "c1", model.Turn{Role: model.RoleUser, Text: fmt.Sprintf("q%d", i)}))
		require.NoError(t, r.AppendTurn(ctx, "c1", model.Turn{Role: model.RoleAssistant, Text: fmt.Sprintf("a%d", i)}))
	}

	turns, err = r.RecentTurns(ctx, "c1", 1)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "q3", turns[0].Text)
	assert.Equal(t, "a3", turns[1].Text)

	// Trimmed to the last 6 turns.
	turns, err = r.RecentTurns(ctx, "c1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 6)
	assert.Equal(t, "q1", turns[0].Text)
}

func TestMentionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, r := setup(t, 10)

	in := model.Turn{
		Role: model.RoleAssistant,
		Text: "Which task would you like to delete?",
		Mentions: &model.Mentions{
			Action: model.MentionActionDelete,
			Kind:   model.EntityTask,
			Tasks:  []string{"Write report", "Call bank"},
			Prompt: true,
		},
	}
	require.NoError(t, r.AppendTurn(ctx, "c1", in))

	turns, err := r.RecentTurns(ctx, "c1", 1)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	require.NotNil(t, turns[0].Mentions)
	assert.Equal(t, in.Mentions.Tasks, turns[0].Mentions.Tasks)
	assert.True(t, turns[0].Mentions.Prompt)
}

func TestConversationExpires(t *testing.T) {
	ctx := context.Background()
	mr, r := setup(t, 10)

	require.NoError(t, r.AppendTurn(ctx, "c1", model.Turn{Role: model.RoleUser, Text: "hi"}))
	assert.True(t, mr.Exists("conversation:c1"))

	mr.FastForward(2 * time.Hour)
	turns, err := r.RecentTurns(ctx, "c1", 5)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestCorruptEntrySkipped(t *testing.T) {
	ctx := context.Background()
	mr, r := setup(t, 10)

	_, err := mr.RPush("conversation:c1", "not json")
	require.NoError(t, err)
	require.NoError(t, r.AppendTurn(ctx, "c1", model.Turn{Role: model.RoleUser, Text: "ok"}))

	turns, err := r.RecentTurns(ctx, "c1", 5)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "ok", turns[0].Text)
}

func TestEmptyConversationID(t *testing.T) {
	_, r := setup(t, 10)
	_, err := r.RecentTurns(context.Background(), "", 1)
	assert.ErrorIs(t, err, repository.ErrEmptyConversationID)
	assert.ErrorIs(t, r.AppendTurn(context.Background(), "", model.Turn{}), repository.ErrEmptyConversationID)
}
