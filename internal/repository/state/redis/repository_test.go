package redis

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sharetube/player-api/internal/repository/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*repo, *miniredis.Miniredis) {
	t.Helper()

	s := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { rc.Close() })

	return NewRepo(rc, time.Hour), s
}

func TestSetAndGetState(t *testing.T) {
	repo, s := newTestRepo(t)
	ctx := context.Background()

	controls := true
	err := repo.SetState(ctx, &state.SetStateParams{
		PlayerID:    "f1",
		Ready:       true,
		CurrentTime: 12.5,
		Duration:    math.NaN(),
		Volume:      0.5,
		Paused:      false,
		Controls:    &controls,
		Qualities:   []string{"240", "720"},
		Subtitle:    "fr",
		ErrorCode:   "DM007",
		LastEvent:   "seeked",
		UpdatedAt:   1700000000,
	})
	require.NoError(t, err)

	got, err := repo.GetState(ctx, "f1")
	require.NoError(t, err)
	assert.True(t, got.Ready)
	assert.Equal(t, 12.5, got.CurrentTime)
	assert.True(t, math.IsNaN(got.Duration))
	assert.Equal(t, 0.5, got.Volume)
	assert.False(t, got.Paused)
	assert.Equal(t, "true", got.Controls)
	assert.Equal(t, []string{"240", "720"}, got.Qualities)
	assert.Empty(t, got.Subtitles)
	assert.Equal(t, "fr", got.Subtitle)
	assert.Equal(t, "DM007", got.ErrorCode)
	assert.Equal(t, "seeked", got.LastEvent)
	assert.Equal(t, int64(1700000000), got.UpdatedAt)

	assert.Equal(t, time.Hour, s.TTL("player:f1:state"))
}

func TestSetStateReplacesLists(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetState(ctx, &state.SetStateParams{PlayerID: "f1", Subtitles: []string{"en", "fr"}}))
	require.NoError(t, repo.SetState(ctx, &state.SetStateParams{PlayerID: "f1", Subtitles: []string{"de"}}))

	got, err := repo.GetState(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, []string{"de"}, got.Subtitles)
	assert.Equal(t, "", got.Controls)
}

func TestRemoveState(t *testing.T) {
	repo, s := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetState(ctx, &state.SetStateParams{PlayerID: "f1", Qualities: []string{"auto"}}))
	require.NoError(t, repo.RemoveState(ctx, "f1"))

	assert.False(t, s.Exists("player:f1:state"))
	assert.False(t, s.Exists("player:f1:qualities"))

	_, err := repo.GetState(ctx, "f1")
	assert.ErrorIs(t, err, state.ErrStateNotFound)
	assert.ErrorIs(t, repo.RemoveState(ctx, "f1"), state.ErrStateNotFound)
}
