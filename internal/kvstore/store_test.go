package kvstore

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing err = %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, "ai_chat_messages_u1", `{"messages":[]}`); err != nil {
		t.Fatalf("Set err: %v", err)
	}
	if err := s.Set(ctx, "ai_chat_messages_u2", "b"); err != nil {
		t.Fatalf("Set err: %v", err)
	}
	if err := s.Set(ctx, "aiXchat_messages_u3", "c"); err != nil {
		t.Fatalf("Set err: %v", err)
	}
	if err := s.Set(ctx, "ai_chat_messages_u2", "b2"); err != nil {
		t.Fatalf("overwrite err: %v", err)
	}

	got, err := s.Get(ctx, "ai_chat_messages_u2")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got != "b2" {
		t.Fatalf("Get = %q, want b2", got)
	}

	keys, err := s.Keys(ctx, "ai_chat_messages_")
	if err != nil {
		t.Fatalf("Keys err: %v", err)
	}
	want := []string{"ai_chat_messages_u1", "ai_chat_messages_u2"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("Keys = %v, want %v", keys, want)
	}

	if err := s.Delete(ctx, "ai_chat_messages_u1"); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	if _, err := s.Get(ctx, "ai_chat_messages_u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("Delete missing key err: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "local.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore err: %v", err)
	}
	defer s.Close()

	exerciseStore(t, s)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore err: %v", err)
	}
	if err := s.Set(ctx, "horoscope_cache_u1_2024-01-01", "x"); err != nil {
		t.Fatalf("Set err: %v", err)
	}
	s.Close()

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen err: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "horoscope_cache_u1_2024-01-01")
	if err != nil || got != "x" {
		t.Fatalf("Get after reopen = %q, %v", got, err)
	}
}
