package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	containerTTL = 120 // seconds
	readyTimeout = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "7-alpine"
)

// Suite is a throwaway redis for repository tests that store game sessions.
type Suite struct {
	*testing.T

	Redis *redis.Client
}

// New - starts a redis container for t and returns an empty database.
// The container is purged when t finishes.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), readyTimeout)
	t.Cleanup(cancel)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}
	pool.MaxWait = readyTimeout

	resource := startRedis(t, pool)

	client, err := connect(ctx, pool, resource.GetHostPort(redisPort))
	if err != nil {
		_ = pool.Purge(resource)
		t.Fatalf("could not connect to redis: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()

		if err = pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis container: %v", err)
		}
	})

	if err = client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	return ctx, &Suite{
		T:     t,
		Redis: client,
	}
}

func startRedis(t *testing.T, pool *dockertest.Pool) *dockertest.Resource {
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

	// hard kill in case Purge never runs
	_ = resource.Expire(containerTTL)

	return resource
}

// connect - retries with backoff until redis answers PING.
func connect(ctx context.Context, pool *dockertest.Pool, addr string) (*redis.Client, error) {
	var client *redis.Client

	err := pool.Retry(func() error {
		if client != nil {
			_ = client.Close()
		}

		client = redis.NewClient(&redis.Options{Addr: addr})

		return client.Ping(ctx).Err()
	})
	if err != nil {
		return nil, err
	}

	return client, nil
}
