package health

import (
	"context"
	"errors"
	"fmt"

	"github.com/piresc/fleetwatch/internal/pkg/circuitbreaker"
	"github.com/piresc/fleetwatch/internal/pkg/database"
	"github.com/piresc/fleetwatch/internal/pkg/nats"
)

// HealthChecker defines the interface for health checking dependencies
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// CheckFunc adapts a function to HealthChecker
type CheckFunc func(ctx context.Context) error

// CheckHealth calls f
func (f CheckFunc) CheckHealth(ctx context.Context) error {
	return f(ctx)
}

// PostgresHealthChecker checks PostgreSQL connection health
type PostgresHealthChecker struct {
	client *database.PostgresClient
}

// NewPostgresHealthChecker creates a new PostgreSQL health checker
func NewPostgresHealthChecker(client *database.PostgresClient) *PostgresHealthChecker {
	return &PostgresHealthChecker{client: client}
}

// CheckHealth checks if PostgreSQL is healthy
func (p *PostgresHealthChecker) CheckHealth(ctx context.Context) error {
	if p.client == nil {
		return nil
	}
	return p.client.Ping(ctx)
}

// RedisHealthChecker checks Redis connection health
type RedisHealthChecker struct {
	client *database.RedisClient
}

// NewRedisHealthChecker creates a new Redis health checker
func NewRedisHealthChecker(client *database.RedisClient) *RedisHealthChecker {
	return &RedisHealthChecker{client: client}
}

// CheckHealth checks if Redis is healthy
func (r *RedisHealthChecker) CheckHealth(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Ping(ctx)
}

// NATSHealthChecker checks NATS connection and JetStream stream health
type NATSHealthChecker struct {
	client  *nats.Client
	streams []string
}

// NewNATSHealthChecker creates a checker that also verifies the given streams exist
func NewNATSHealthChecker(client *nats.Client, streams ...string) *NATSHealthChecker {
	return &NATSHealthChecker{client: client, streams: streams}
}

// CheckHealth checks if NATS and JetStream are healthy
func (n *NATSHealthChecker) CheckHealth(ctx context.Context) error {
	if n.client == nil {
		return nil
	}
	if !n.client.IsConnected() {
		return errors.New("NATS not connected")
	}
	for _, stream := range n.streams {
		if _, err := n.client.GetStreamInfo(stream); err != nil {
			return fmt.Errorf("JetStream stream not accessible: %w", err)
		}
	}
	return nil
}

// BreakerHealthChecker reports unhealthy while a circuit breaker is open
type BreakerHealthChecker struct {
	breaker *circuitbreaker.CircuitBreaker
}

// NewBreakerHealthChecker creates a checker for cb
func NewBreakerHealthChecker(cb *circuitbreaker.CircuitBreaker) *BreakerHealthChecker {
	return &BreakerHealthChecker{breaker: cb}
}

// CheckHealth fails when the breaker is open
func (b *BreakerHealthChecker) CheckHealth(ctx context.Context) error {
	if b.breaker == nil {
		return nil
	}
	if state := b.breaker.State(); state == circuitbreaker.StateOpen {
		return fmt.Errorf("circuit breaker %s is %s", b.breaker.Name(), state)
	}
	return nil
}
