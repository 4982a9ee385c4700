package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/boddenberg/citadel-bfa-go/internal/config"
	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/handler"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/cache"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if strings.TrimSpace(out) != "citadel dev" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("SESSION_JWT_SECRET", "test-secret")
	t.Setenv("SESSION_ISSUER", "citadel-test")

	out, err := execute(t, "token", "--user", "user_2abc", "--email", "kari@nordvik.no", "--ttl", "5m")
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}

	sess, err := handler.NewSessionVerifier("test-secret", "citadel-test").Verify(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if sess.UserID != "user_2abc" || sess.Email != "kari@nordvik.no" {
		t.Errorf("unexpected session %+v", sess)
	}
}

func TestTokenCmd_RequiresUser(t *testing.T) {
	if _, err := execute(t, "token"); err == nil {
		t.Fatal("expected an error without --user")
	}
}

func TestCardCmd_RejectsNonUUID(t *testing.T) {
	_, err := execute(t, "card", "acme")
	if err == nil || !strings.Contains(err.Error(), "uuid") {
		t.Fatalf("expected uuid error, got %v", err)
	}
}

func TestCardCmd_RequiresUser(t *testing.T) {
	t.Setenv("CITADEL_USER_ID", "")
	_, err := execute(t, "card", "6f1c9e0a-7d55-4f0a-a3c4-6b0f3c1d2e42")
	if err == nil || !strings.Contains(err.Error(), "no user") {
		t.Fatalf("expected missing user error, got %v", err)
	}
}

func TestNewUserCache_MemoryWithoutRedis(t *testing.T) {
	c, err := newUserCache(context.Background(), &config.Config{UserCacheTTL: time.Minute}, zap.NewNop())
	if err != nil {
		t.Fatalf("newUserCache: %v", err)
	}
	defer c.Close()
	if _, ok := c.(*cache.InMemory[domain.User]); !ok {
		t.Errorf("expected in-memory cache, got %T", c)
	}
}

func TestNewUserCache_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{UserCacheTTL: time.Minute, RedisURL: "redis://" + mr.Addr()}

	c, err := newUserCache(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("newUserCache: %v", err)
	}
	defer c.Close()
	if _, ok := c.(*cache.Redis[domain.User]); !ok {
		t.Fatalf("expected redis cache, got %T", c)
	}

	ctx := context.Background()
	c.Set(ctx, "user_2abc", domain.User{ID: 7, FirstName: "Kari"})
	got, ok := c.Get(ctx, "user_2abc")
	if !ok || got.FirstName != "Kari" {
		t.Errorf("cache round trip failed: %+v %v", got, ok)
	}
}

func TestNewUserCache_UnreachableRedisFallsBack(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	c, err := newUserCache(context.Background(), &config.Config{UserCacheTTL: time.Minute, RedisURL: "redis://" + addr}, zap.NewNop())
	if err != nil {
		t.Fatalf("newUserCache: %v", err)
	}
	defer c.Close()
	if _, ok := c.(*cache.InMemory[domain.User]); !ok {
		t.Errorf("expected in-memory fallback, got %T", c)
	}
}

func TestNewUserCache_BadURL(t *testing.T) {
	if _, err := newUserCache(context.Background(), &config.Config{RedisURL: "://nope"}, zap.NewNop()); err == nil {
		t.Fatal("expected parse error")
	}
}
