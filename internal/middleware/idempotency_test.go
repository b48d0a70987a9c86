package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/brandonscollins/familymoney/internal/logging"
)

func setupTestApp(t *testing.T) (*fiber.App, *int64, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	logger := logging.Discard()
	app.Use(Idempotency(cache, time.Minute, logger))

	var calls int64
	app.Post("/resource", func(c *fiber.Ctx) error {
		n := atomic.AddInt64(&calls, 1)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"call": n})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}

	return app, &calls, cleanup
}

func postResource(t *testing.T, app *fiber.App, key string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/resource", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if key != "" {
		req.Header.Set(idempotencyKeyHeader, key)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode, string(body)
}

func TestIdempotencyHeaderIsOptional(t *testing.T) {
	app, calls, cleanup := setupTestApp(t)
	defer cleanup()

	status1, _ := postResource(t, app, "")
	status2, _ := postResource(t, app, "")

	if status1 != fiber.StatusCreated || status2 != fiber.StatusCreated {
		t.Fatalf("expected both requests to succeed, got %d and %d", status1, status2)
	}
	if got := atomic.LoadInt64(calls); got != 2 {
		t.Fatalf("expected handler invoked twice without a key, got %d", got)
	}
}

func TestIdempotencyReturnsCachedResponse(t *testing.T) {
	app, calls, cleanup := setupTestApp(t)
	defer cleanup()

	status1, body1 := postResource(t, app, "abc123")
	if status1 != fiber.StatusCreated {
		t.Fatalf("expected status %d got %d", fiber.StatusCreated, status1)
	}

	status2, body2 := postResource(t, app, "abc123")
	if status2 != fiber.StatusCreated {
		t.Fatalf("expected cached status %d got %d", fiber.StatusCreated, status2)
	}
	if body1 != body2 {
		t.Fatalf("expected cached payload %s got %s", body1, body2)
	}
	if got := atomic.LoadInt64(calls); got != 1 {
		t.Fatalf("expected handler invoked once for repeated key, got %d", got)
	}
}

func TestIdempotencyDistinctKeysAreIndependent(t *testing.T) {
	app, calls, cleanup := setupTestApp(t)
	defer cleanup()

	postResource(t, app, "key-a")
	postResource(t, app, "key-b")

	if got := atomic.LoadInt64(calls); got != 2 {
		t.Fatalf("expected both keys to reach the handler, got %d", got)
	}
}
