// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package bridge mirrors a bearer-token login into client-side storage.

A [Bridge] is an explicit object owned by one client context. It starts in
[StateLoading], settles on [Bridge.Init], and afterwards changes only through
[Bridge.SetSession]. It never merges with the native provider session: a
guard treats either one as sufficient.
*/
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/taibuivan/uniportal/internal/platform/sec"
)

// # States

// State is the observable authentication state of a client context.
type State string

const (
	StateLoading         State = "loading"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// # Session Record

// User is the identity returned by the role-qualified login.
type User struct {
	FirstName string       `json:"firstName"`
	Email     string       `json:"email"`
	Token     string       `json:"token"`
	Role      sec.UserRole `json:"role"`
}

// Session is the persisted mirror of a login response.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ErrMalformedSession rejects a session without a token, an email or a partition role.
var ErrMalformedSession = errors.New("bridge: malformed session")

// wellFormed reports whether a decoded record can back an authenticated state.
func (s *Session) wellFormed() bool {
	return s.Token != "" && s.User.Email != "" && s.User.Role.IsPartition()
}

// # Bridge

// Bridge holds the bridged session of one client context.
type Bridge struct {
	storage Storage

	mu        sync.RWMutex
	state     State
	session   *Session
	observers []func(State)
}

// New creates a bridge over storage in the loading state.
func New(storage Storage) *Bridge {
	return &Bridge{storage: storage, state: StateLoading}
}

/*
Init reads the persisted record and settles the state.

A well-formed record yields [StateAuthenticated]. An absent, unreadable or
malformed record yields [StateUnauthenticated]. Init never fails.
*/
func (b *Bridge) Init() State {
	session := b.load()

	b.mu.Lock()
	b.session = session
	if session != nil {
		b.state = StateAuthenticated
	} else {
		b.state = StateUnauthenticated
	}
	state := b.state
	b.mu.Unlock()

	b.notify(state)
	return state
}

func (b *Bridge) load() *Session {
	raw, err := b.storage.Load()
	if err != nil || len(raw) == 0 {
		return nil
	}

	session := &Session{}
	if err := json.Unmarshal(raw, session); err != nil || !session.wellFormed() {
		return nil
	}
	return session
}

/*
SetSession persists session and marks the bridge authenticated.
A nil session removes the persisted record and marks it unauthenticated.

On a storage failure the state is left unchanged.
*/
func (b *Bridge) SetSession(session *Session) error {
	if session == nil {
		if err := b.storage.Remove(); err != nil {
			return fmt.Errorf("bridge_remove_failed: %w", err)
		}
		b.transition(StateUnauthenticated, nil)
		return nil
	}

	if !session.wellFormed() {
		return ErrMalformedSession
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("bridge_encode_failed: %w", err)
	}
	if err := b.storage.Save(raw); err != nil {
		return fmt.Errorf("bridge_save_failed: %w", err)
	}

	clone := *session
	b.transition(StateAuthenticated, &clone)
	return nil
}

func (b *Bridge) transition(state State, session *Session) {
	b.mu.Lock()
	b.state = state
	b.session = session
	b.mu.Unlock()

	b.notify(state)
}

// State returns the current state.
func (b *Bridge) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Session returns a copy of the current session, or nil unless authenticated.
func (b *Bridge) Session() *Session {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.session == nil {
		return nil
	}
	clone := *b.session
	return &clone
}

// Token returns the bridged bearer token, or "".
func (b *Bridge) Token() string {
	if session := b.Session(); session != nil {
		return session.Token
	}
	return ""
}

// Observe registers fn to be called after every state settlement.
func (b *Bridge) Observe(fn func(State)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, fn)
}

func (b *Bridge) notify(state State) {
	b.mu.RLock()
	observers := append([]func(State){}, b.observers...)
	b.mu.RUnlock()

	for _, fn := range observers {
		fn(state)
	}
}
