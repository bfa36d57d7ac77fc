// Package testutil provides shared helpers for console tests: a throwaway
// Redis connection, a stub of the remote REST API and fixture builders.
package testutil

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultTestRedisDB keeps test data away from a developer's DB 0.
const defaultTestRedisDB = 15

// TestingTB is the subset of testing.TB the helpers need.
type TestingTB interface {
	Helper()
	Skip(args ...any)
	Skipf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
}

func envTrue(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// redisCandidates lists where a test Redis may live: REDIS_ADDR when set,
// otherwise the compose service and the usual local ports.
func redisCandidates() []string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return []string{addr}
	}
	return []string{"redis:6379", "localhost:6379", "localhost:56379"}
}

func testRedisDB(t TestingTB) int {
	raw := os.Getenv("TEST_REDIS_DB")
	if raw == "" {
		return defaultTestRedisDB
	}
	db, err := strconv.Atoi(raw)
	if err != nil || db < 0 {
		t.Logf("ignoring TEST_REDIS_DB=%q", raw)
		return defaultTestRedisDB
	}
	return db
}

// SetupTestRedis returns a client on an emptied test DB. The test is skipped
// when no Redis answers, or fails if TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()
	db := testRedisDB(t)

	for _, addr := range redisCandidates() {
		client := redis.NewClient(&redis.Options{Addr: addr, DB: db, DialTimeout: 2 * time.Second})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := client.Ping(ctx).Err()
		if err == nil {
			err = client.FlushDB(ctx).Err()
		}
		cancel()
		if err == nil {
			t.Logf("using redis %s db=%d", addr, db)
			return client
		}
		t.Logf("redis not available at %s: %v", addr, err)
		_ = client.Close()
	}

	if envTrue("TEST_REQUIRE_REDIS") {
		t.Fatal("redis required but not available")
	}
	t.Skip("redis not available")
	return nil
}
