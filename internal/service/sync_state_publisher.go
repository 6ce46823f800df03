// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-journal-backup/internal/logger"
	"github.com/MKhiriev/go-journal-backup/models"
)

const eventBufferSize = 16

type statePublisher struct {
	name string

	mu          sync.Mutex
	current     models.SyncState
	subscribers map[int]chan models.SyncState
	nextID      int

	events chan models.SyncEvent
}

// NewStatePublisher returns a publisher starting at Idle. name identifies
// the publisher in logs.
func NewStatePublisher(name string) StatePublisher {
	return &statePublisher{
		name:        name,
		current:     models.IdleState(),
		subscribers: make(map[int]chan models.SyncState),
		events:      make(chan models.SyncEvent, eventBufferSize),
	}
}

func (p *statePublisher) Current() models.SyncState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *statePublisher) Publish(state models.SyncState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = state
	for _, ch := range p.subscribers {
		offerLatest(ch, state)
	}
}

// offerLatest replaces whatever is pending in the 1-slot channel with state.
// Callers hold the publisher lock, so they are the only sender.
func offerLatest(ch chan models.SyncState, state models.SyncState) {
	select {
	case ch <- state:
		return
	default:
	}

	select {
	case <-ch:
	default:
	}
	ch <- state
}

func (p *statePublisher) Subscribe() (<-chan models.SyncState, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++

	ch := make(chan models.SyncState, 1)
	ch <- p.current
	p.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			delete(p.subscribers, id)
			close(ch)
		})
	}

	return ch, cancel
}

func (p *statePublisher) Emit(ctx context.Context, event models.SyncEvent) {
	select {
	case p.events <- event:
	default:
		logger.FromContext(ctx).Warn().
			Str("func", "statePublisher.Emit").
			Str("publisher", p.name).
			Str("event", event.Kind.String()).
			Msg("event buffer full, dropping event")
	}
}

func (p *statePublisher) Events() <-chan models.SyncEvent {
	return p.events
}
