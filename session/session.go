// Copyright 2016 The Gocad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package session maps opaque session ids to per-session engines
package session

import (
	"sync"
	"time"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gocad/engine"
)

// Options holds session manager configuration
type Options struct {
	Engine  engine.Options `json:"engine"`  // options for new engines
	Timeout time.Duration  `json:"timeout"` // inactivity eviction timeout; 0 selects 30 min, negative disables
}

// SetDefaults fills unset options
func (o *Options) SetDefaults() {
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Minute
	}
	o.Engine.SetDefaults()
}

// Manager owns one engine per session. Lookup, insert and eviction run under
// a short-lived lock; the engines serialize their own operations
type Manager struct {
	Opts Options

	// Now supplies the eviction clock; replaced in tests
	Now func() time.Time

	mu      sync.Mutex
	engines map[string]*engine.Engine
}

// NewManager creates a session manager
func NewManager(opts Options) (o *Manager) {
	opts.SetDefaults()
	return &Manager{
		Opts:    opts,
		Now:     time.Now,
		engines: make(map[string]*engine.Engine),
	}
}

// GetOrCreate returns the engine of a session, creating it lazily
func (o *Manager) GetOrCreate(sessionId string) (e *engine.Engine, err error) {
	if sessionId == "" {
		err = chk.Err("session id must not be empty")
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	e, ok := o.engines[sessionId]
	if !ok {
		e = engine.New(o.Opts.Engine)
		o.engines[sessionId] = e
	}
	return
}

// Get returns the engine of a session without creating one
func (o *Manager) Get(sessionId string) (e *engine.Engine, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	e, ok = o.engines[sessionId]
	return
}

// Close drops the engine of a session
func (o *Manager) Close(sessionId string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.engines, sessionId)
}

// NumSessions returns the number of live engines
func (o *Manager) NumSessions() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.engines)
}

// Evict drops engines idle for longer than the timeout and returns their
// session ids. A subsequent operation on an evicted session creates a fresh
// engine
func (o *Manager) Evict() (evicted []string) {
	if o.Opts.Timeout <= 0 {
		return
	}
	now := o.Now()
	o.mu.Lock()
	defer o.mu.Unlock()
	for id, e := range o.engines {
		if now.Sub(e.LastUsed()) > o.Opts.Timeout {
			evicted = append(evicted, id)
			delete(o.engines, id)
		}
	}
	return
}
