package redis

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"trivia-party-service/internal/app"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)

	session := store.GetOrCreate("client-1", func() *app.Session {
		return app.NewSession("client-1", app.SessionDeps{})
	})
	if !mr.Exists("trivia:session:client-1") {
		t.Fatalf("expected redis key to be set")
	}

	mr.FastForward(30 * time.Second)
	got, ok := store.Get("client-1")
	if !ok || got != session {
		t.Fatalf("expected stored session back")
	}
	if ttl := mr.TTL("trivia:session:client-1"); ttl != time.Minute {
		t.Fatalf("expected ttl refreshed on access, got %v", ttl)
	}

	store.Delete("client-1")
	if mr.Exists("trivia:session:client-1") {
		t.Fatalf("expected redis key to be removed")
	}
	if _, ok := store.Get("client-1"); ok {
		t.Fatalf("expected session removed")
	}
}
