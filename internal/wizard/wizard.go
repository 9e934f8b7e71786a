// Package wizard holds the transient sessions behind the multi-step asset
// creation flow: create the asset, attach nominees, upload a supporting
// document. Sessions live only in process memory and are destroyed when the
// flow closes, whatever the reason. Server-side records created along the
// way are never rolled back on cancel.
package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "heirloom/internal/errors"
	"heirloom/internal/models"
)

// Step is a wizard state.
type Step string

const (
	StepEntityDetails Step = "entity_details"
	StepNominees      Step = "nominees"
	StepDocument      Step = "document"
	StepClosed        Step = "closed"
)

// DefaultTTL is how long an untouched session survives before the store
// reclaims it.
const DefaultTTL = 30 * time.Minute

// Session tracks one open wizard. AssetID stays zero until the entity
// creation call of step one succeeds.
type Session struct {
	ID        string           `json:"id"`
	UserID    uint             `json:"-"`
	Kind      models.AssetKind `json:"kind"`
	Step      Step             `json:"step"`
	AssetID   uint             `json:"asset_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	// submitting marks a step-one mutation in flight, see BeginSubmit.
	submitting bool
}

// Store owns all live wizard sessions. Expired sessions are purged lazily
// on access.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a session store with the given TTL. A zero ttl uses
// DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Open starts a new wizard session in the entity-details step.
func (s *Store) Open(userID uint, kind models.AssetKind) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()

	now := s.now()
	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      kind,
		Step:      StepEntityDetails,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[sess.ID] = sess
	return *sess
}

// Get returns a snapshot of the session, scoped to its owning user.
func (s *Store) Get(userID uint, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupLocked(userID, id)
	if err != nil {
		return Session{}, err
	}
	return *sess, nil
}

// BeginSubmit reserves the session for one step-one mutation. The entity
// create (or update) runs outside the store lock, so without the
// reservation two concurrent submissions would both pass the step check and
// double-create the asset; the second caller is rejected here instead,
// before it touches any service. Released by EndSubmit.
func (s *Store) BeginSubmit(userID uint, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupLocked(userID, id)
	if err != nil {
		return Session{}, err
	}
	if sess.Step != StepEntityDetails || sess.submitting {
		return Session{}, apperrors.ErrWizardStep
	}
	sess.submitting = true
	return *sess, nil
}

// EndSubmit releases the reservation taken by BeginSubmit. Safe to call
// after the session advanced or closed.
func (s *Store) EndSubmit(userID uint, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok && sess.UserID == userID {
		sess.submitting = false
	}
}

// BindAsset records the server-assigned asset ID after a successful entity
// creation (or update on re-entry) and advances to the nominees step. Only
// valid while the session is in the entity-details step.
func (s *Store) BindAsset(userID uint, id string, assetID uint) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupLocked(userID, id)
	if err != nil {
		return Session{}, err
	}
	if sess.Step != StepEntityDetails {
		return Session{}, apperrors.ErrWizardStep
	}
	sess.AssetID = assetID
	sess.Step = StepNominees
	sess.submitting = false
	sess.UpdatedAt = s.now()
	return *sess, nil
}

// Advance moves the session forward one step. Advancing (or skipping) is
// always permitted from the nominees and document steps; leaving the
// document step closes the session. From the entity-details step there is
// nothing to advance to without a created asset.
func (s *Store) Advance(userID uint, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupLocked(userID, id)
	if err != nil {
		return Session{}, err
	}
	switch sess.Step {
	case StepNominees:
		sess.Step = StepDocument
		sess.UpdatedAt = s.now()
		return *sess, nil
	case StepDocument:
		snapshot := *sess
		snapshot.Step = StepClosed
		delete(s.sessions, id)
		return snapshot, nil
	default:
		return Session{}, apperrors.ErrWizardStep
	}
}

// Skip is an explicit skip of the current optional step. It is identical to
// Advance; both are always permitted from the optional steps.
func (s *Store) Skip(userID uint, id string) (Session, error) {
	return s.Advance(userID, id)
}

// Back re-enters the previous step without discarding any server-side data
// already created.
func (s *Store) Back(userID uint, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupLocked(userID, id)
	if err != nil {
		return Session{}, err
	}
	switch sess.Step {
	case StepNominees:
		sess.Step = StepEntityDetails
	case StepDocument:
		sess.Step = StepNominees
	default:
		return Session{}, apperrors.ErrWizardStep
	}
	sess.UpdatedAt = s.now()
	return *sess, nil
}

// Cancel closes the session from any step and discards its transient state.
// Assets and nominees already persisted stay untouched.
func (s *Store) Cancel(userID uint, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupLocked(userID, id)
	if err != nil {
		return Session{}, err
	}
	snapshot := *sess
	snapshot.Step = StepClosed
	delete(s.sessions, id)
	return snapshot, nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	return len(s.sessions)
}

func (s *Store) lookupLocked(userID uint, id string) (*Session, error) {
	s.purgeLocked()
	sess, ok := s.sessions[id]
	if !ok || sess.UserID != userID {
		return nil, apperrors.ErrWizardNotFound
	}
	return sess, nil
}

func (s *Store) purgeLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
