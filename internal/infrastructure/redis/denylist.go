// Package redis implementa la denylist de tokens revocados sobre Redis (compartida entre réplicas).
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultPrefix = "teams-api:revoked:"

// Config conexión a Redis.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Denylist implementa auth.TokenDenylist. Cada jti revocado es una clave con TTL hasta la expiración del token.
type Denylist struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewDenylist construye la denylist sobre client.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client, prefix: defaultPrefix, now: time.Now}
}

func (d *Denylist) key(tokenID string) string {
	return d.prefix + tokenID
}

// Revoke marca el token como revocado hasta until. Un token ya vencido no se guarda.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis: revocar token: %w", err)
	}
	return nil
}

// IsRevoked informa si el token está en la denylist.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := d.client.Get(ctx, d.key(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis: consultar token: %w", err)
	}
	return true, nil
}
