package redisclient

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

type redisCfg struct{ url string }

func (c redisCfg) GetRedisURL() string       { return c.url }
func (c redisCfg) GetRedisTLSInsecure() bool { return false }

func TestNewConnects(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := New(context.Background(), redisCfg{url: "redis://" + mr.Addr() + "/0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got, _ := mr.Get("k"); got != "v" {
		t.Fatalf("expected v, got %q", got)
	}
}

func TestOptionsRequiresURL(t *testing.T) {
	if _, err := Options("", false); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestOptionsInsecureTLS(t *testing.T) {
	opt, err := Options("redis://localhost:6379", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.TLSConfig == nil || !opt.TLSConfig.InsecureSkipVerify {
		t.Fatal("expected insecure TLS config")
	}
}
