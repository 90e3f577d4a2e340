// Package events announces project changes so other open editor sessions of
// the same user can refresh instead of silently overwriting each other.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "site:projects:" // Pub/Sub channel per owner: site:projects:{user_id}

type Type string

const (
	ProjectCreated       Type = "project.created"
	ProjectUpdated       Type = "project.updated"
	ProjectConfigPatched Type = "project.config_patched"
	ProjectDeleted       Type = "project.deleted"
)

// Event is the JSON payload published for every project change.
type Event struct {
	Type      Type      `json:"type"`
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	At        time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Channel returns the Pub/Sub channel carrying userID's project events.
func Channel(userID string) string {
	return channelPrefix + userID
}

// RedisPublisher publishes events through Redis Pub/Sub.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, Channel(e.UserID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s: %w", e.Type, err)
	}
	return nil
}

// Noop drops every event. Used when Redis is not configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
