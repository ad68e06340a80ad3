package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/storefront-labs/storefront-api/internal/config"
)

// Pinger is satisfied by the Stripe client and the RabbitMQ publisher.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Endpoints struct {
	Stripe Pinger
	Broker Pinger
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:    "database",
			Timeout: 3 * time.Second,
			Check:   postgres.New(postgres.Config{DSN: cfg.Database.GetDSN()}),
		},
		{
			Name:    "redis",
			Timeout: 2 * time.Second,
			Check:   healthRedis.New(healthRedis.Config{DSN: cfg.RedisConnect.GetDSN()}),
		},
	}

	if endpoints != nil && endpoints.Stripe != nil {
		checks = append(checks, health.Config{
			Name:      "stripe",
			Timeout:   5 * time.Second,
			SkipOnErr: true,
			Check:     pingCheck("stripe", endpoints.Stripe),
		})
	}

	if endpoints != nil && endpoints.Broker != nil {
		checks = append(checks, health.Config{
			Name:      "rabbitmq",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check:     pingCheck("rabbitmq", endpoints.Broker),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.Otel.ServiceName,
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func pingCheck(name string, p Pinger) health.CheckFunc {
	return func(ctx context.Context) error {
		if p == nil {
			return errors.New(name + " client is not initialized")
		}

		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("failed to reach %s: %w", name, err)
		}

		return nil
	}
}
