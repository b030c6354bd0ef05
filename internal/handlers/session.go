package handlers

import (
	"net/http"
	"regexp"
	"sync"
	"time"

	"storefront-orders/internal/interfaces"

	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	sessionCookie = "checkout_session"

	defaultSessionTTL = 30 * time.Minute
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// checkoutSession - состояние одной сессии оформления заказа
type checkoutSession struct {
	submitter interfaces.Submitter
	pending   sync.Mutex
	lastSeen  time.Time
}

// sessionStore keeps one submitter per checkout session, so a retry only ever
// re-sends that session's own last order. Idle sessions are swept lazily.
type sessionStore struct {
	newSubmitter func() interfaces.Submitter
	ttl          time.Duration
	now          func() time.Time

	mu        sync.Mutex
	sessions  map[string]*checkoutSession
	lastSweep time.Time
}

func newSessionStore(newSubmitter func() interfaces.Submitter, ttl time.Duration) *sessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &sessionStore{
		newSubmitter: newSubmitter,
		ttl:          ttl,
		now:          time.Now,
		sessions:     make(map[string]*checkoutSession),
	}
}

func (s *sessionStore) get(id string) *checkoutSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) > s.ttl {
		s.sweep(now)
	}

	sess, ok := s.sessions[id]
	if !ok {
		sess = &checkoutSession{submitter: s.newSubmitter()}
		s.sessions[id] = sess
	}
	sess.lastSeen = now
	return sess
}

func (s *sessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// сессию с идущей отправкой не трогаем
func (s *sessionStore) sweep(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl && sess.pending.TryLock() {
			delete(s.sessions, id)
			sess.pending.Unlock()
		}
	}
	s.lastSweep = now
}

// sessionID reads the caller's session from the header or the cookie and
// issues a new one when neither carries a usable ID. The ID is echoed back.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(SessionHeader)
	if !sessionIDPattern.MatchString(id) {
		id = ""
		if c, err := r.Cookie(sessionCookie); err == nil && sessionIDPattern.MatchString(c.Value) {
			id = c.Value
		}
	}
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	w.Header().Set(SessionHeader, id)
	return id
}
