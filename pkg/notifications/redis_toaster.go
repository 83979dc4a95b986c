package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/lodgekit/pkg/logger"
)

// DefaultToastChannel is the Redis pub/sub channel toasts travel on.
const DefaultToastChannel = "lodge:toasts"

func encodeToast(t Toast) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, errors.Join(ErrFailedToEncodeToast, err)
	}
	return data, nil
}

func decodeToast(payload []byte) (Toast, error) {
	var t Toast
	if err := json.Unmarshal(payload, &t); err != nil {
		return Toast{}, errors.Join(ErrFailedToDecodeToast, err)
	}
	if t.SessionID == "" {
		return Toast{}, errors.Join(ErrFailedToDecodeToast, ErrEmptySessionID)
	}
	return t, nil
}

// RedisToaster publishes toasts to a Redis channel so that every application
// instance can present them to members connected to it.
type RedisToaster struct {
	client  redis.UniversalClient
	channel string
}

// RedisOption configures RedisToaster and RedisRelay.
type RedisOption func(*redisOptions)

type redisOptions struct {
	channel string
	logger  *slog.Logger
}

// WithChannel overrides the pub/sub channel. Default is DefaultToastChannel.
func WithChannel(channel string) RedisOption {
	return func(o *redisOptions) {
		if channel != "" {
			o.channel = channel
		}
	}
}

// WithRedisLogger sets the logger used by RedisRelay.
func WithRedisLogger(l *slog.Logger) RedisOption {
	return func(o *redisOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func newRedisOptions(opts []RedisOption) redisOptions {
	o := redisOptions{
		channel: DefaultToastChannel,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewRedisToaster creates a toaster publishing through client.
func NewRedisToaster(client redis.UniversalClient, opts ...RedisOption) *RedisToaster {
	o := newRedisOptions(opts)
	return &RedisToaster{client: client, channel: o.channel}
}

// Toast publishes t.
func (r *RedisToaster) Toast(ctx context.Context, t Toast) error {
	payload, err := encodeToast(t)
	if err != nil {
		return err
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return errors.Join(ErrFailedToPublishToast, err)
	}
	return nil
}

// RedisRelay receives toasts published by RedisToaster and hands them to a
// local toaster, usually a Feed serving this instance's streams.
type RedisRelay struct {
	client  redis.UniversalClient
	channel string
	target  Toaster
	logger  *slog.Logger
}

// NewRedisRelay creates a relay forwarding toasts from client into target.
func NewRedisRelay(client redis.UniversalClient, target Toaster, opts ...RedisOption) *RedisRelay {
	o := newRedisOptions(opts)
	return &RedisRelay{
		client:  client,
		channel: o.channel,
		target:  target,
		logger:  o.logger,
	}
}

// Run subscribes to the toast channel and blocks until ctx is cancelled or
// the subscription channel closes. Undecodable payloads are logged and skipped.
func (r *RedisRelay) Run(ctx context.Context) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer func() { _ = pubsub.Close() }()

	// Wait for the subscription to be confirmed before reporting readiness.
	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}

	r.logger.LogAttrs(ctx, slog.LevelInfo, "Toast relay subscribed",
		logger.Component("notifications"),
		slog.String("channel", r.channel),
	)

	msgs := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			r.forward(ctx, msg.Payload)
		}
	}
}

func (r *RedisRelay) forward(ctx context.Context, payload string) {
	t, err := decodeToast([]byte(payload))
	if err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "Dropped malformed toast",
			logger.Component("notifications"),
			logger.Error(err),
		)
		return
	}

	if err := r.target.Toast(ctx, t); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelError, "Failed to relay toast",
			logger.SessionID(t.SessionID),
			logger.NotificationID(t.NotificationID),
			logger.Error(err),
		)
	}
}
