package inmemory

import (
	"log/slog"
	"testing"

	"github.com/sharetube/player-api/internal/repository/instance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct{ name string }

func TestRepo(t *testing.T) {
	repo := NewRepo[*fakePlayer](slog.Default())

	a := &fakePlayer{name: "a"}
	repo.Add("f1", a)

	got, err := repo.Get("f1")
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = repo.Get("missing")
	assert.ErrorIs(t, err, instance.ErrNotFound)

	b := &fakePlayer{name: "b"}
	repo.Add("f1", b)
	got, err = repo.Get("f1")
	require.NoError(t, err)
	assert.Same(t, b, got, "add must overwrite an existing id")

	repo.Add("f2", a)
	assert.ElementsMatch(t, []string{"f1", "f2"}, repo.IDs())

	require.NoError(t, repo.Remove("f1"))
	_, err = repo.Get("f1")
	assert.ErrorIs(t, err, instance.ErrNotFound)
	assert.ErrorIs(t, repo.Remove("f1"), instance.ErrNotFound)
}
