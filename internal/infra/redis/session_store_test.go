package redis

import (
	"testing"
	"time"

	"movie-quiz/internal/app"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client, time.Minute)

	engine, isNew := store.GetOrCreate("chat-1", func() *app.QuizEngine { return newIdleEngine(t) })
	if engine == nil || !isNew {
		t.Fatalf("expected new session")
	}
	if !mr.Exists("movie_quiz:session:chat-1") {
		t.Fatalf("expected redis key to be set")
	}
	if store.Count() != 1 {
		t.Fatalf("expected one session, got %d", store.Count())
	}

	again, isNew := store.GetOrCreate("chat-1", func() *app.QuizEngine {
		t.Fatalf("create must not be called for an existing session")
		return nil
	})
	if again != engine || isNew {
		t.Fatalf("expected existing session to be reused")
	}

	store.Delete("chat-1")
	if mr.Exists("movie_quiz:session:chat-1") {
		t.Fatalf("expected redis key to be removed")
	}
	if _, ok := store.Get("chat-1"); ok {
		t.Fatalf("expected session removed")
	}
}
