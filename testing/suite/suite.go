package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	containerTTL = 2 * time.Minute
	maxWait      = 2 * time.Minute
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite - a throwaway redis container plus a client connected to it.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
}

// New starts an empty redis in docker for the calling test. Tests are skipped in -short mode or when docker is unreachable.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping redis-backed test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxWait)
	t.Cleanup(cancel)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).
		With("component", "test_suite", "test", t.Name())

	pool := newPool(t)
	resource := runRedis(t, pool)
	client := connect(ctx, t, pool, resource)

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush redis: %v", err)
	}

	logger.Info("redis is ready", "addr", client.Options().Addr)

	return ctx, &Suite{
		T:       t,
		Logger:  logger,
		Storage: client,
	}
}

func newPool(t *testing.T) *dockertest.Pool {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not reachable: %v", err)
	}

	pool.MaxWait = maxWait

	return pool
}

// runRedis - the container removes itself once stopped and is killed after containerTTL at the latest.
func runRedis(t *testing.T, pool *dockertest.Pool) *dockertest.Resource {
	t.Helper()

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis container: %v", err)
	}

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis container: %v", err)
		}
	})

	// never returns error
	_ = resource.Expire(uint(containerTTL.Seconds()))

	return resource
}

// connect - retries until redis accepts connections.
func connect(ctx context.Context, t *testing.T, pool *dockertest.Pool, resource *dockertest.Resource) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: resource.GetHostPort(redisPort),
	})
	t.Cleanup(func() { _ = client.Close() })

	if err := pool.Retry(func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		t.Fatalf("could not connect to redis: %v", err)
	}

	return client
}
