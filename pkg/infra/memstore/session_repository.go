package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/glowlabs-ai/promptgate/pkg/domain"
	"github.com/glowlabs-ai/promptgate/pkg/domain/conversation"
	"github.com/glowlabs-ai/promptgate/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const sweepInterval = time.Minute

// SessionRepository is the in-memory implementation of
// conversation.Repository. State is owned by this struct and guarded by a
// single mutex; nothing escapes except snapshots.
type SessionRepository struct {
	mu         sync.RWMutex
	sessions   map[string]*conversation.Session
	maxHistory int
	ttl        time.Duration
	logger     *logrus.Logger
	now        func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewSessionRepository(logger *logrus.Logger, maxHistory int, ttl time.Duration) *SessionRepository {
	r := &SessionRepository{
		sessions:   make(map[string]*conversation.Session),
		maxHistory: maxHistory,
		ttl:        ttl,
		logger:     logger,
		now:        time.Now,
		stopCh:     make(chan struct{}),
	}
	if ttl > 0 {
		go r.janitor()
	}
	return r
}

func (r *SessionRepository) Create(ctx context.Context) (*conversation.Session, error) {
	sess := conversation.NewSession()

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	prometheus.SessionsActive.Set(float64(len(r.sessions)))
	r.mu.Unlock()

	return snapshot(sess), nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*conversation.Session, error) {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return nil, domain.NewNotFoundError("session", id)
	}
	// Reads count as activity: a session whose history is being fetched
	// must not be swept as idle.
	sess.LastActive = r.now()
	snap := snapshot(sess)
	r.mu.Unlock()

	return snap, nil
}

func (r *SessionRepository) Append(ctx context.Context, id string, user, assistant conversation.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[id]
	if !ok {
		return domain.NewNotFoundError("session", id)
	}
	sess.AppendExchange(user, assistant, r.maxHistory)
	sess.LastActive = r.now()
	return nil
}

// Stop terminates the eviction janitor, if one is running.
func (r *SessionRepository) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

func (r *SessionRepository) janitor() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.stopCh:
			return
		}
	}
}

func (r *SessionRepository) sweep() {
	if r.ttl <= 0 {
		return
	}
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	evicted := 0
	for id, sess := range r.sessions {
		if sess.LastActive.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	prometheus.SessionsActive.Set(float64(len(r.sessions)))
	r.mu.Unlock()

	if evicted > 0 {
		r.logger.WithField("evicted", evicted).Debug("evicted idle sessions")
	}
}

func (r *SessionRepository) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// snapshot copies a session so callers cannot mutate stored state.
func snapshot(sess *conversation.Session) *conversation.Session {
	messages := make([]conversation.Message, len(sess.Messages))
	copy(messages, sess.Messages)
	return &conversation.Session{
		ID:         sess.ID,
		Messages:   messages,
		CreatedAt:  sess.CreatedAt,
		LastActive: sess.LastActive,
	}
}
