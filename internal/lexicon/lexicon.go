package lexicon

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"m2align/internal/align"
)

// ErrEmptyWord is returned when a blank word is added or removed.
var ErrEmptyWord = errors.New("lexicon: empty word")

// Store wraps a Redis client to keep user-supplied function words that the
// merge rules treat like closed-class tokens.
type Store struct {
	client *redis.Client
	key    string
}

// New creates a Store with the provided Redis client.
func New(client *redis.Client) *Store {
	return &Store{client: client, key: "function_words"}
}

func normalize(word string) (string, error) {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return "", ErrEmptyWord
	}
	return w, nil
}

// Add inserts words into the set.
func (s *Store) Add(ctx context.Context, words ...string) error {
	members := make([]any, 0, len(words))
	for _, w := range words {
		n, err := normalize(w)
		if err != nil {
			return err
		}
		members = append(members, n)
	}
	if len(members) == 0 {
		return nil
	}
	return s.client.SAdd(ctx, s.key, members...).Err()
}

// Remove deletes a word from the set. Removing an absent word is not an error.
func (s *Store) Remove(ctx context.Context, word string) error {
	n, err := normalize(word)
	if err != nil {
		return err
	}
	return s.client.SRem(ctx, s.key, n).Err()
}

// All returns every stored word in lexical order.
func (s *Store) All(ctx context.Context) ([]string, error) {
	words, err := s.client.SMembers(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(words)
	return words, nil
}

// Snapshot loads the set into an immutable align.WordSet, merged with extra.
func (s *Store) Snapshot(ctx context.Context, extra ...string) (align.WordSet, error) {
	words, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return align.NewWordSet(append(words, extra...)...), nil
}
