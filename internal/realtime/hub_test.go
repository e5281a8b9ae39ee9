package realtime

import (
	"context"
	"testing"
	"time"

	"studyPlanner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDelivers(t *testing.T) {
	t.Parallel()

	hub := NewHub(4)
	sub := hub.Subscribe(1)
	other := hub.Subscribe(2)
	defer other.Close()

	d := models.VoteDelta{ID: "x", EventID: 1, EntityID: 9, Kind: models.OptionTime, Delta: 1, ActingUserID: "alice", Seq: 1}
	require.NoError(t, hub.Publish(context.Background(), d))

	select {
	case got := <-sub.C:
		assert.Equal(t, d, got)
	case <-time.After(time.Second):
		t.Fatal("delta not delivered")
	}

	select {
	case got := <-other.C:
		t.Fatalf("delta for another event delivered: %v", got)
	default:
	}

	sub.Close()
	sub.Close()
	_, open := <-sub.C
	assert.False(t, open)
	assert.Equal(t, 0, hub.Subscribers(1))
	assert.Equal(t, 1, hub.Subscribers(2))
}

func TestHubClosesSlowSubscriber(t *testing.T) {
	t.Parallel()

	hub := NewHub(1)
	sub := hub.Subscribe(1)

	ctx := context.Background()
	require.NoError(t, hub.Publish(ctx, models.VoteDelta{EventID: 1, Seq: 1}))
	require.NoError(t, hub.Publish(ctx, models.VoteDelta{EventID: 1, Seq: 2}))

	got, open := <-sub.C
	require.True(t, open)
	assert.Equal(t, int64(1), got.Seq)

	_, open = <-sub.C
	assert.False(t, open)
	assert.Equal(t, 0, hub.Subscribers(1))

	sub.Close()
}

func TestNewDelta(t *testing.T) {
	t.Parallel()

	d := NewDelta(3, models.OptionLocation, 8, "bob", -1, 12)
	e := NewDelta(3, models.OptionLocation, 8, "bob", -1, 12)

	assert.NotEmpty(t, d.ID)
	assert.NotEqual(t, d.ID, e.ID)
	assert.Equal(t, int64(3), d.EventID)
	assert.Equal(t, int64(8), d.EntityID)
	assert.Equal(t, models.OptionLocation, d.Kind)
	assert.Equal(t, -1, d.Delta)
	assert.Equal(t, "bob", d.ActingUserID)
	assert.Equal(t, int64(12), d.Seq)
}
