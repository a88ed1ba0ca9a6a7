// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/TalentBridge/internal/repository"
)

// New returns a fresh set of repositories backed by process memory.
func New() *repository.Repositories {
	return &repository.Repositories{
		Users:        NewUsers(),
		Companies:    NewCompanies(),
		Jobs:         NewJobs(),
		Applications: NewApplications(),
		Evaluations:  NewEvaluations(),
		Courses:      NewCourses(),
		Messages:     NewMessages(),
		Tx:           Transactor{},
	}
}

// Transactor runs fn directly. Set Unsupported to exercise the
// non-transactional fallback paths.
type Transactor struct {
	Unsupported bool
}

func (t Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if t.Unsupported {
		return repository.ErrTxUnsupported
	}
	return fn(ctx)
}

// store keeps documents in insertion order.
type store[T any] struct {
	mu   sync.RWMutex
	docs []*T
	id   func(*T) primitive.ObjectID
}

func newStore[T any](id func(*T) primitive.ObjectID) *store[T] {
	return &store[T]{id: id}
}

func (s *store[T]) insert(doc *T) {
	cp := *doc
	s.docs = append(s.docs, &cp)
}

func (s *store[T]) get(id primitive.ObjectID) (*T, bool) {
	for _, d := range s.docs {
		if s.id(d) == id {
			return d, true
		}
	}
	return nil, false
}

func (s *store[T]) first(match func(*T) bool) (*T, bool) {
	for _, d := range s.docs {
		if match(d) {
			return d, true
		}
	}
	return nil, false
}

// all returns copies of the matching documents, newest first.
func (s *store[T]) all(match func(*T) bool) []T {
	out := []T{}
	for i := len(s.docs) - 1; i >= 0; i-- {
		if match == nil || match(s.docs[i]) {
			out = append(out, *s.docs[i])
		}
	}
	return out
}

func (s *store[T]) count(match func(*T) bool) int64 {
	var n int64
	for _, d := range s.docs {
		if match == nil || match(d) {
			n++
		}
	}
	return n
}

func (s *store[T]) remove(match func(*T) bool) int64 {
	kept := s.docs[:0]
	var n int64
	for _, d := range s.docs {
		if match(d) {
			n++
			continue
		}
		kept = append(kept, d)
	}
	s.docs = kept
	return n
}

func (s *store[T]) findByID(id primitive.ObjectID, what string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.get(id)
	if !ok {
		return nil, notFound(what, id)
	}
	cp := *d
	return &cp, nil
}

// updateFields merges fields into the stored document the way $set would.
func (s *store[T]) updateFields(id primitive.ObjectID, fields bson.M, what string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.get(id)
	if !ok {
		return nil, notFound(what, id)
	}
	if err := applySet(d, fields); err != nil {
		return nil, err
	}
	cp := *d
	return &cp, nil
}

func applySet[T any](doc *T, fields bson.M) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	var merged bson.M
	if err := bson.Unmarshal(raw, &merged); err != nil {
		return err
	}
	for k, v := range fields {
		merged[k] = v
	}
	merged["updated_at"] = time.Now().UTC()

	if raw, err = bson.Marshal(merged); err != nil {
		return err
	}
	var out T
	if err := bson.Unmarshal(raw, &out); err != nil {
		return err
	}
	*doc = out
	return nil
}

func notFound(what string, id primitive.ObjectID) error {
	return fmt.Errorf("%s %s: %w", what, id.Hex(), repository.ErrNotFound)
}

func duplicate(what string) error {
	return fmt.Errorf("%s: %w", what, repository.ErrDuplicate)
}

func stamp(id *primitive.ObjectID, created, updated *time.Time) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	*created = now
	if updated != nil {
		*updated = now
	}
}

func contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func without(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func idSet(ids []primitive.ObjectID) map[primitive.ObjectID]bool {
	set := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
