package session

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/MrEthical07/goGuard/storage"
)

// Storage-boundary keys. The session record and the raw access token are
// persisted separately so the token can be read without decoding the record.
const (
	// KeySession is an exported constant or variable used by the session store.
	KeySession = "currentUser"
	// KeyToken is an exported constant or variable used by the session store.
	KeyToken = "token"
)

// Observer receives session change notifications. The value is the new
// current session, or nil when the session was cleared.
type Observer func(*Session)

type subscription struct {
	observer  Observer
	cancelled bool
}

// Store owns the current authenticated session value, persists it on the
// storage boundary, and notifies subscribers of changes.
//
// Change notifications are delivered synchronously inside [Store.Set] and
// [Store.Clear], in subscription order, after the new value is fully
// published — an observer that reads back through [Store.Get] sees the
// updated state. Observers must not call Set, Clear, or Subscribe from
// inside the callback.
type Store struct {
	backend storage.Backend

	stateMu sync.RWMutex
	current *Session

	notifyMu sync.Mutex
	subs     []*subscription
}

// NewStore creates a session [Store] over the given storage boundary and
// restores any previously persisted session. A nil backend degrades to
// [storage.Discard] (memory-only, non-interactive contexts).
//
// Restoration never fails: an unreadable boundary degrades to an absent
// session, and a stored record that does not parse is discarded and the
// boundary cleared.
func NewStore(backend storage.Backend) *Store {
	if backend == nil {
		backend = storage.Discard{}
	}

	s := &Store{backend: backend}
	s.current = s.restore()
	return s
}

func (s *Store) restore() *Session {
	data, err := s.backend.Load(KeySession)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// An orphaned token without a record violates the
			// all-or-nothing session invariant.
			if _, tokenErr := s.backend.Load(KeyToken); tokenErr == nil {
				s.clearBoundary()
			}
			return nil
		}
		log.Print("goGuard: session restore skipped, storage unavailable")
		return nil
	}

	var sess Session
	if unmarshalErr := json.Unmarshal(data, &sess); unmarshalErr != nil {
		log.Print("goGuard: discarding unparseable stored session")
		s.clearBoundary()
		return nil
	}
	if sess.Token == "" || sess.Username == "" {
		log.Print("goGuard: discarding incomplete stored session")
		s.clearBoundary()
		return nil
	}

	// The raw token key wins when it diverges from the record: a refresh
	// may have rewritten it more recently.
	if raw, tokenErr := s.backend.Load(KeyToken); tokenErr == nil && len(raw) > 0 {
		sess.Token = string(raw)
	}

	return &sess
}

// Get returns the current session without side effects, or nil when absent.
// The returned value must be treated as read-only.
func (s *Store) Get() *Session {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.current
}

// Token returns the current access token, or the empty string when no
// session is present.
func (s *Store) Token() string {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Set replaces the current session, persists it on the storage boundary,
// and notifies subscribers with the new value. A nil session behaves like
// [Store.Clear]. Storage failures degrade to memory-only operation and are
// never surfaced to the caller.
func (s *Store) Set(sess *Session) {
	if sess == nil {
		s.Clear()
		return
	}

	sess = sess.Clone()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.stateMu.Lock()
	s.current = sess
	s.stateMu.Unlock()

	s.persist(sess)
	s.deliverLocked(sess)
}

// Clear removes the current session and its persisted record, then notifies
// subscribers with nil. Clearing an absent session is a no-op apart from
// the notification.
func (s *Store) Clear() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.stateMu.Lock()
	s.current = nil
	s.stateMu.Unlock()

	s.clearBoundary()
	s.deliverLocked(nil)
}

// Subscribe registers an observer for session changes. The observer is
// immediately invoked with the current value (replay-one), then once per
// subsequent change, in subscription order. The returned function cancels
// the subscription; calling it more than once is harmless and other
// subscriptions are unaffected.
func (s *Store) Subscribe(observer Observer) func() {
	if observer == nil {
		return func() {}
	}

	sub := &subscription{observer: observer}

	s.notifyMu.Lock()
	s.subs = append(s.subs, sub)
	current := s.Get()
	observer(current)
	s.notifyMu.Unlock()

	return func() {
		s.notifyMu.Lock()
		defer s.notifyMu.Unlock()

		if sub.cancelled {
			return
		}
		sub.cancelled = true
		for i, candidate := range s.subs {
			if candidate == sub {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
	}
}

func (s *Store) deliverLocked(sess *Session) {
	for _, sub := range s.subs {
		if sub.cancelled {
			continue
		}
		sub.observer(sess)
	}
}

func (s *Store) persist(sess *Session) {
	data, err := json.Marshal(sess)
	if err != nil {
		log.Print("goGuard: session record marshal failed")
		return
	}

	if err := s.backend.Store(KeySession, data); err != nil {
		log.Print("goGuard: session persist failed, continuing in memory")
		return
	}
	if err := s.backend.Store(KeyToken, []byte(sess.Token)); err != nil {
		log.Print("goGuard: token persist failed, continuing in memory")
	}
}

func (s *Store) clearBoundary() {
	if err := s.backend.Delete(KeySession); err != nil {
		log.Print("goGuard: session record delete failed")
	}
	if err := s.backend.Delete(KeyToken); err != nil {
		log.Print("goGuard: token delete failed")
	}
}
