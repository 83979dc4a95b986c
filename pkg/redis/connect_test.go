package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/lodgekit/pkg/redis"
)

func TestConnect_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  redis.Config
		want error
	}{
		{name: "empty url", cfg: redis.Config{}, want: redis.ErrEmptyConnectionURL},
		{name: "bad scheme", cfg: redis.Config{ConnectionURL: "http://localhost:6379"}, want: redis.ErrInvalidConnectionURL},
		{
			name: "unreachable",
			cfg: redis.Config{
				ConnectionURL:  "redis://127.0.0.1:1/0",
				RetryAttempts:  2,
				RetryInterval:  10 * time.Millisecond,
				ConnectTimeout: time.Second,
			},
			want: redis.ErrNotReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, err := redis.Connect(context.Background(), tt.cfg)
			assert.Nil(t, client)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
