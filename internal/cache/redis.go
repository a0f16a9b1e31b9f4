// Package cache provides Redis caching for recommendation results. The
// application treats the cache as optional: with no reachable Redis every
// call in this package is a no-op and requests are served uncached.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"mesa/internal/observability"
)

var client *redis.Client

type metricsHook struct{}

func (metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			observability.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			observability.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// InitRedis connects to the address in REDIS_URL form ("redis://host:port")
// or plain "host:port". Any failure, parse or ping, leaves the client nil.
func InitRedis(addr string) {
	opts, err := parseAddr(addr)
	if err != nil {
		observability.GlobalLogger.Warn("redis disabled",
			slog.String("addr", addr), slog.String("error", err.Error()))
		client = nil
		return
	}

	c := redis.NewClient(opts)
	c.AddHook(metricsHook{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		observability.GlobalLogger.Warn("redis unreachable, running uncached",
			slog.String("addr", addr), slog.String("error", err.Error()))
		client = nil
		return
	}

	observability.GlobalLogger.Info("redis connected", slog.String("addr", opts.Addr))
	client = c
}

func parseAddr(addr string) (*redis.Options, error) {
	if addr == "" {
		return nil, errors.New("empty redis address")
	}
	if opts, err := redis.ParseURL(addr); err == nil {
		return opts, nil
	}
	return &redis.Options{Addr: addr}, nil
}

// GetClient returns the active client, nil when the cache is disabled.
func GetClient() *redis.Client {
	return client
}

// SetClient overrides the client. Used by tests with miniredis.
func SetClient(c *redis.Client) {
	client = c
}
