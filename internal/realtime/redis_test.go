package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"studyPlanner/internal/lib/logger/handlers/slogdiscard"
	"studyPlanner/internal/models"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBridgePublish(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	bridge := NewRedisBridge(db, "sp", NewHub(0), slogdiscard.NewDiscardLogger())

	d := models.VoteDelta{ID: "id-1", EventID: 42, EntityID: 7, Kind: models.OptionTime, Delta: 1, ActingUserID: "alice", Seq: 5}
	payload, err := json.Marshal(d)
	require.NoError(t, err)

	mock.ExpectPublish("sp:votes:42", string(payload)).SetVal(1)
	require.NoError(t, bridge.Publish(context.Background(), d))

	mock.ExpectPublish("sp:votes:42", string(payload)).SetErr(errors.New("connection refused"))
	assert.Error(t, bridge.Publish(context.Background(), d))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisBridgeRelay(t *testing.T) {
	t.Parallel()

	db, _ := redismock.NewClientMock()
	hub := NewHub(4)
	bridge := NewRedisBridge(db, "sp", hub, slogdiscard.NewDiscardLogger())

	sub := hub.Subscribe(42)
	defer sub.Close()

	d := models.VoteDelta{ID: "id-1", EventID: 42, EntityID: 7, Kind: models.OptionTime, Delta: -1, ActingUserID: "alice", Seq: 9}
	payload, err := json.Marshal(d)
	require.NoError(t, err)

	bridge.relay(context.Background(), &redis.Message{Channel: "sp:votes:42", Payload: string(payload)})
	assert.Equal(t, d, <-sub.C)

	// mismatched channel and garbage payloads are dropped
	bridge.relay(context.Background(), &redis.Message{Channel: "sp:votes:41", Payload: string(payload)})
	bridge.relay(context.Background(), &redis.Message{Channel: "sp:votes:42", Payload: "{"})

	select {
	case got := <-sub.C:
		t.Fatalf("unexpected delta %v", got)
	default:
	}
}

func TestRedisBridgeChannel(t *testing.T) {
	t.Parallel()

	db, _ := redismock.NewClientMock()
	bridge := NewRedisBridge(db, "study-planner", NewHub(0), slogdiscard.NewDiscardLogger())

	assert.Equal(t, "study-planner:votes:5", bridge.Channel(5))
}
