package admin

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/crm-console/internal/core/usertable"
	"github.com/louisbranch/crm-console/internal/platform/timeouts"
)

const (
	// viewSessionCookieName stores the browser's view session ID.
	viewSessionCookieName = "crm-view-session"
	// viewSessionCleanupInterval controls how often expired sessions are purged.
	viewSessionCleanupInterval = 5 * time.Minute
)

// viewSession is one mounted users table.
type viewSession struct {
	mu       sync.Mutex
	snapshot usertable.Snapshot
	// inflight counts loads in progress; the table shows the spinner while
	// it is positive.
	inflight  int
	mounted   bool
	disposed  bool
	expiresAt time.Time
}

func newViewSession() *viewSession {
	return &viewSession{snapshot: usertable.New()}
}

// SetLoading implements usertable.LoadingSignal.
func (s *viewSession) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if loading {
		s.inflight++
		return
	}
	if s.inflight > 0 {
		s.inflight--
	}
}

// state returns the current snapshot and loading flag.
func (s *viewSession) state() (usertable.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot, s.inflight > 0
}

// update applies fn to the snapshot unless the session was disposed.
func (s *viewSession) update(fn func(usertable.Snapshot) usertable.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return false
	}
	s.snapshot = fn(s.snapshot)
	return true
}

// claimMount reports whether the caller is the first to mount the table and
// must run the initial load.
func (s *viewSession) claimMount() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mounted {
		return false
	}
	s.mounted = true
	return true
}

// unmount lets the next visit retry the initial load.
func (s *viewSession) unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.snapshot.Loaded() {
		s.mounted = false
	}
}

func (s *viewSession) dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
}

// viewSessionStore keeps view sessions keyed by cookie value.
type viewSessionStore struct {
	mu          sync.Mutex
	ttl         time.Duration
	sessions    map[string]*viewSession
	lastCleanup time.Time
	now         func() time.Time
}

func newViewSessionStore(ttl time.Duration) *viewSessionStore {
	if ttl <= 0 {
		ttl = timeouts.ViewSession
	}
	return &viewSessionStore{
		ttl:      ttl,
		sessions: make(map[string]*viewSession),
		now:      time.Now,
	}
}

// Get returns a live session and extends its expiry.
func (s *viewSessionStore) Get(sessionID string) (*viewSession, bool) {
	if s == nil || sessionID == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.cleanupLocked(now)
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	if now.After(session.expiresAt) {
		s.deleteLocked(sessionID)
		return nil, false
	}
	session.expiresAt = now.Add(s.ttl)
	return session, true
}

// Create registers a fresh session under a new random ID.
func (s *viewSessionStore) Create() (string, *viewSession) {
	session := newViewSession()
	sessionID := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.cleanupLocked(now)
	session.expiresAt = now.Add(s.ttl)
	s.sessions[sessionID] = session
	return sessionID, session
}

// Delete disposes a session. Loads still running for it are discarded.
func (s *viewSessionStore) Delete(sessionID string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(sessionID)
}

// Len returns the number of sessions held, expired or not.
func (s *viewSessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *viewSessionStore) deleteLocked(sessionID string) {
	if session, ok := s.sessions[sessionID]; ok {
		session.dispose()
		delete(s.sessions, sessionID)
	}
}

func (s *viewSessionStore) cleanupLocked(now time.Time) {
	if now.Sub(s.lastCleanup) < viewSessionCleanupInterval {
		return
	}
	for key, session := range s.sessions {
		if now.After(session.expiresAt) {
			s.deleteLocked(key)
		}
	}
	s.lastCleanup = now
}

func viewSessionID(r *http.Request) string {
	if r == nil {
		return ""
	}
	cookie, err := r.Cookie(viewSessionCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

// session returns the request's view session, creating one and setting the
// cookie when none is live.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *viewSession {
	if session, ok := h.sessions.Get(viewSessionID(r)); ok {
		return session
	}
	sessionID, session := h.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     viewSessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
	return session
}
