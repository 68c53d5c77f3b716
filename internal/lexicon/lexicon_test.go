package lexicon

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client), mr
}

func TestStoreAddRemove(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	if err := s.Add(ctx, "Whom", " thus ", "whom"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if want := []string{"thus", "whom"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("All = %v, want %v", got, want)
	}
	if ok, _ := mr.SIsMember("function_words", "thus"); !ok {
		t.Fatal("word not stored under function_words")
	}

	if err := s.Remove(ctx, "THUS"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s.Remove(ctx, "absent"); err != nil {
		t.Fatalf("Remove absent: %v", err)
	}
	got, _ = s.All(ctx)
	if want := []string{"whom"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("All = %v, want %v", got, want)
	}
}

func TestStoreRejectsEmpty(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	if err := s.Add(ctx, "ok", "  "); !errors.Is(err, ErrEmptyWord) {
		t.Fatalf("Add: err = %v, want ErrEmptyWord", err)
	}
	if err := s.Remove(ctx, ""); !errors.Is(err, ErrEmptyWord) {
		t.Fatalf("Remove: err = %v, want ErrEmptyWord", err)
	}
	if err := s.Add(ctx); err != nil {
		t.Fatalf("Add(): %v", err)
	}
}

func TestStoreSnapshot(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	if err := s.Add(ctx, "ta"); err != nil {
		t.Fatal(err)
	}
	set, err := s.Snapshot(ctx, "Gonna")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !set.Contains("TA") || !set.Contains("gonna") || set.Contains("cat") {
		t.Fatalf("snapshot = %v", set)
	}
}

func TestStoreUnavailable(t *testing.T) {
	s, mr := newStore(t)
	mr.Close()
	if _, err := s.All(context.Background()); err == nil {
		t.Fatal("expected error from closed server")
	}
}
