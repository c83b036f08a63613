// Package publisher mirrors session lifecycle changes to Redis so other
// processes can watch the pairing state without polling the HTTP API.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"numcheck/internal/lifecycle"
)

// LatestKey holds the most recent snapshot.
const LatestKey = "numcheck:session:latest"

const defaultTimeout = 2 * time.Second

// Message is the payload published for each transition.
type Message struct {
	From     string             `json:"from"`
	To       string             `json:"to"`
	Event    string             `json:"event"`
	Snapshot lifecycle.Snapshot `json:"snapshot"`
}

// Redis publishes every transition on a channel and keeps the latest
// snapshot under LatestKey.
type Redis struct {
	client  redis.UniversalClient
	channel string
	timeout time.Duration
}

// NewRedis returns a lifecycle observer backed by client.
func NewRedis(client redis.UniversalClient, channel string) *Redis {
	return &Redis{client: client, channel: channel, timeout: defaultTimeout}
}

func (p *Redis) Name() string { return "redis" }

// Observe implements lifecycle.Observer.
func (p *Redis) Observe(ctx context.Context, change lifecycle.Change) error {
	payload, err := json.Marshal(Message{
		From:     change.From.String(),
		To:       change.To.String(),
		Event:    string(change.Event.Kind),
		Snapshot: change.Snapshot,
	})
	if err != nil {
		return fmt.Errorf("marshal lifecycle change: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	pipe := p.client.TxPipeline()
	pipe.Set(ctx, LatestKey, payload, 0)
	pipe.Publish(ctx, p.channel, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish lifecycle change: %w", err)
	}
	return nil
}

// Latest reads the most recently published snapshot.
func (p *Redis) Latest(ctx context.Context) (*Message, error) {
	raw, err := p.client.Get(ctx, LatestKey).Bytes()
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("decode lifecycle snapshot: %w", err)
	}
	return &msg, nil
}

var _ lifecycle.Observer = (*Redis)(nil)
