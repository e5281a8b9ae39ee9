package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"studyPlanner/internal/lib/logger/sl"
	"studyPlanner/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisBridge publishes deltas on a per-event Redis channel and relays every
// delta seen on those channels into the local hub, so websocket subscribers
// on any instance receive votes cast on any other.
type RedisBridge struct {
	client *redis.Client
	prefix string
	hub    *Hub
	log    *slog.Logger
}

func NewRedisBridge(client *redis.Client, prefix string, hub *Hub, log *slog.Logger) *RedisBridge {
	return &RedisBridge{
		client: client,
		prefix: prefix,
		hub:    hub,
		log:    log.With(slog.String("component", "realtime/redis")),
	}
}

func (b *RedisBridge) Channel(eventID int64) string {
	return fmt.Sprintf("%s:votes:%d", b.prefix, eventID)
}

func (b *RedisBridge) Publish(ctx context.Context, d models.VoteDelta) error {
	const op = "realtime.RedisBridge.Publish"

	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = b.client.Publish(ctx, b.Channel(d.EventID), string(payload)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Run relays messages until ctx is done.
func (b *RedisBridge) Run(ctx context.Context) error {
	pubsub := b.client.PSubscribe(ctx, b.prefix+":votes:*")
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("realtime.RedisBridge.Run: subscribe: %w", err)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errors.New("realtime.RedisBridge.Run: subscription closed")
			}
			b.relay(ctx, msg)
		}
	}
}

func (b *RedisBridge) relay(ctx context.Context, msg *redis.Message) {
	d, err := b.decode(msg)
	if err != nil {
		b.log.Warn("dropping malformed delta", sl.Err(err), slog.String("channel", msg.Channel))
		return
	}

	_ = b.hub.Publish(ctx, d)
}

func (b *RedisBridge) decode(msg *redis.Message) (models.VoteDelta, error) {
	var d models.VoteDelta
	if err := json.Unmarshal([]byte(msg.Payload), &d); err != nil {
		return d, err
	}

	idStr := strings.TrimPrefix(msg.Channel, b.prefix+":votes:")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return d, fmt.Errorf("bad channel %q: %w", msg.Channel, err)
	}
	if id != d.EventID {
		return d, fmt.Errorf("delta for event %d on channel of event %d", d.EventID, id)
	}

	return d, nil
}

// Ping checks the Redis connection.
func (b *RedisBridge) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
