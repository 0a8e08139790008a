package session

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"ads-rule-builder/internal/observability"
	"ads-rule-builder/internal/rule"
)

var (
	ErrNotFound         = errors.New("session not found")
	ErrIncompleteAction = errors.New("action requires a type")
)

// Registry owns every live editing session. Sessions idle past the TTL are
// evicted by the background sweep.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create opens a session seeded with the conventional initial group. Existing
// groups and actions may be supplied when resuming work on a saved rule.
func (r *Registry) Create(groups []rule.ConditionGroup, actions []rule.Action) *Session {
	s := &Session{
		id:        uuid.NewString(),
		store:     rule.Restore(groups),
		actions:   append([]rule.Action(nil), actions...),
		updatedAt: time.Now(),
	}

	r.mu.Lock()
	r.sessions[s.id] = s
	n := len(r.sessions)
	r.mu.Unlock()

	observability.SessionsActive.Set(float64(n))
	return s
}

// Get looks up a live session.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete closes a session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, id)
	observability.SessionsActive.Set(float64(len(r.sessions)))
	return nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep evicts expired sessions until ctx is done. The interval is jittered
// so replicas don't sweep in lockstep.
func (r *Registry) Sweep(ctx context.Context, every time.Duration) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("session sweeper stopped")
			return
		case <-time.After(jitter(every)):
			if n := r.evictExpired(); n > 0 {
				log.Info().Int("evicted", n).Msg("expired sessions removed")
			}
		}
	}
}

func (r *Registry) evictExpired() int {
	now := time.Now()

	r.mu.RLock()
	var expired []string
	for id, s := range r.sessions {
		if s.expired(now, r.ttl) {
			expired = append(expired, id)
		}
	}
	r.mu.RUnlock()

	if len(expired) == 0 {
		return 0
	}

	r.mu.Lock()
	for _, id := range expired {
		delete(r.sessions, id)
	}
	observability.SessionsActive.Set(float64(len(r.sessions)))
	r.mu.Unlock()
	return len(expired)
}

func jitter(base time.Duration) time.Duration {
	if base <= 0 {
		base = time.Minute
	}
	factor := 0.5 + rand.Float64() // 0.5x-1.5x
	return time.Duration(float64(base) * factor)
}
