// Package conversation implements the Conversation Session Manager (spec
// §4.D): per-owner bounded multiplexing of concurrent dialogs, each with an
// isolated append-only message log, a foreground pointer, and switch/inbound
// notifications.
package conversation

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/vic"
)

// DefaultMaxConcurrent is the default per-owner cap on Active sessions.
const DefaultMaxConcurrent = 5

// Status is a Session's lifecycle state.
type Status int

const (
	StatusActive Status = iota
	StatusCompleted
	StatusAbandoned
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	case StatusAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// ErrNotFound is returned when a session ID is unknown to, or not owned by,
// the caller.
var ErrNotFound = errors.New("conversation: session not found")

// ErrNoForeground is returned by Append when the owner has no foreground
// session set.
var ErrNoForeground = errors.New("conversation: no foreground session")

// ErrInactiveSession is returned when an operation targets a session that is
// no longer Active.
var ErrInactiveSession = errors.New("conversation: session is not active")

// ErrAlreadyTerminal is returned by EndSession when attempting to move a
// session from one terminal status to a different terminal status.
var ErrAlreadyTerminal = errors.New("conversation: session already in a different terminal status")

// Message is one append-only entry in a Session's log.
type Message struct {
	ID         string
	SessionID  string
	SenderID   string
	Text       string
	Language   string
	ReceivedAt time.Time
}

// Session is a conversation handle owned by one user, referencing a fixed
// set of participants.
type Session struct {
	ID           string
	Owner        string
	Participants []string
	Commodity    string
	Status       Status
	OpenedAt     time.Time
	ClosedAt     time.Time

	messages []Message
}

// SwitchEvent describes a foreground-pointer change for an owner.
type SwitchEvent struct {
	Owner               string
	PreviousSessionID   string
	NewSessionID        string
	CounterpartyDisplay string
	Commodity           string
	MessageCount        int
}

// InactiveAlert fires when an inbound message lands in a session that is not
// its owner's foreground session.
type InactiveAlert struct {
	Owner        string
	SessionID    string
	Counterparty string
}

// EventSink receives best-effort Manager notifications. A nil sink is
// valid; events are dropped.
type EventSink interface {
	EmitSwitch(SwitchEvent)
	EmitInactiveAlert(InactiveAlert)
}

type ownerState struct {
	mu         sync.Mutex
	sessions   map[string]*Session
	foreground string
}

// Manager is the Conversation Session Manager. Safe for concurrent use:
// operations for distinct owners never contend, per spec §5.
type Manager struct {
	maxConcurrent int
	sink          EventSink

	ownersMu sync.RWMutex
	owners   map[string]*ownerState
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxConcurrent overrides DefaultMaxConcurrent.
func WithMaxConcurrent(n int) Option {
	return func(m *Manager) { m.maxConcurrent = n }
}

// WithEventSink sets the sink that receives SwitchEvent/InactiveAlert
// notifications.
func WithEventSink(sink EventSink) Option {
	return func(m *Manager) { m.sink = sink }
}

// New creates a Manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		maxConcurrent: DefaultMaxConcurrent,
		owners:        make(map[string]*ownerState),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) stateFor(owner string) *ownerState {
	m.ownersMu.RLock()
	st, ok := m.owners[owner]
	m.ownersMu.RUnlock()
	if ok {
		return st
	}

	m.ownersMu.Lock()
	defer m.ownersMu.Unlock()
	if st, ok := m.owners[owner]; ok {
		return st
	}
	st = &ownerState{sessions: make(map[string]*Session)}
	m.owners[owner] = st
	return st
}

func (st *ownerState) activeCount() int {
	n := 0
	for _, s := range st.sessions {
		if s.Status == StatusActive {
			n++
		}
	}
	return n
}

// OpenSession creates a new Active session for owner, failing with
// vic.ErrCapacityExceeded if the owner already has maxConcurrent Active
// sessions.
func (m *Manager) OpenSession(owner string, participants []string, commodity string) (string, error) {
	st := m.stateFor(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.activeCount() >= m.maxConcurrent {
		return "", fmt.Errorf("%w: owner %q already has %d active sessions", vic.ErrCapacityExceeded, owner, m.maxConcurrent)
	}

	id := uuid.NewString()
	st.sessions[id] = &Session{
		ID:           id,
		Owner:        owner,
		Participants: participants,
		Commodity:    commodity,
		Status:       StatusActive,
		OpenedAt:     time.Now(),
	}
	slog.Info("conversation: session opened", "owner", owner, "session_id", id)
	return id, nil
}

// SwitchTo updates owner's foreground pointer to sessionID and emits a
// SwitchEvent. Returns ErrNotFound if sessionID is not a session owned by
// owner.
func (m *Manager) SwitchTo(owner, sessionID string) (SwitchEvent, error) {
	st := m.stateFor(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[sessionID]
	if !ok {
		return SwitchEvent{}, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}

	prev := st.foreground
	st.foreground = sessionID

	counterparty := ""
	for _, p := range sess.Participants {
		if p != owner {
			counterparty = p
			break
		}
	}

	ev := SwitchEvent{
		Owner:               owner,
		PreviousSessionID:   prev,
		NewSessionID:        sessionID,
		CounterpartyDisplay: counterparty,
		Commodity:           sess.Commodity,
		MessageCount:        len(sess.messages),
	}
	if m.sink != nil {
		m.sink.EmitSwitch(ev)
	}
	return ev, nil
}

// Append adds a message to owner's foreground session. Fails with
// ErrNoForeground if no foreground session is set, or ErrInactiveSession if
// the foreground session is not Active.
func (m *Manager) Append(owner, text, language string) (Message, error) {
	st := m.stateFor(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.foreground == "" {
		return Message{}, ErrNoForeground
	}
	sess, ok := st.sessions[st.foreground]
	if !ok {
		return Message{}, ErrNoForeground
	}
	if sess.Status != StatusActive {
		return Message{}, fmt.Errorf("%w: session %s", ErrInactiveSession, sess.ID)
	}

	msg := Message{
		ID:         uuid.NewString(),
		SessionID:  sess.ID,
		SenderID:   owner,
		Text:       text,
		Language:   language,
		ReceivedAt: time.Now(),
	}
	sess.messages = append(sess.messages, msg)
	return msg, nil
}

// AppendInbound appends a message to sessionID regardless of which session
// is foreground, under the owner lock for that session's owner. If
// sessionID is not the owner's current foreground session, one
// InactiveAlert is emitted.
func (m *Manager) AppendInbound(owner, sessionID, sender, text, language string) (Message, error) {
	st := m.stateFor(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[sessionID]
	if !ok {
		return Message{}, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}

	msg := Message{
		ID:         uuid.NewString(),
		SessionID:  sess.ID,
		SenderID:   sender,
		Text:       text,
		Language:   language,
		ReceivedAt: time.Now(),
	}
	sess.messages = append(sess.messages, msg)

	if st.foreground != sessionID && m.sink != nil {
		m.sink.EmitInactiveAlert(InactiveAlert{
			Owner:        owner,
			SessionID:    sessionID,
			Counterparty: sender,
		})
	}
	return msg, nil
}

// EndSession transitions sessionID to finalStatus. Idempotent: ending an
// already-terminal session in the same status returns nil without a state
// change; ending it in a *different* terminal status returns
// ErrAlreadyTerminal.
func (m *Manager) EndSession(owner, sessionID string, finalStatus Status) error {
	if finalStatus != StatusCompleted && finalStatus != StatusAbandoned {
		return fmt.Errorf("conversation: %v is not a terminal status", finalStatus)
	}

	st := m.stateFor(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}

	if sess.Status == finalStatus {
		return nil
	}
	if sess.Status != StatusActive {
		return fmt.Errorf("%w: session %s is %s, requested %s", ErrAlreadyTerminal, sessionID, sess.Status, finalStatus)
	}

	sess.Status = finalStatus
	sess.ClosedAt = time.Now()
	if st.foreground == sessionID {
		st.foreground = ""
	}
	return nil
}

// Context returns the messages appended to sessionID, in insertion order,
// and no others — the isolation property of spec §8.
func (m *Manager) Context(owner, sessionID string) ([]Message, error) {
	st := m.stateFor(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}

	out := make([]Message, len(sess.messages))
	copy(out, sess.messages)
	return out, nil
}

// ActiveCount reports the number of Active sessions for owner.
func (m *Manager) ActiveCount(owner string) int {
	st := m.stateFor(owner)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.activeCount()
}
