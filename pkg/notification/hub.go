// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package notification keeps the bounded per-player notification feeds and fans new
// notifications out to subscribers.
package notification

import (
	"sync"

	"github.com/dinkside/rally-core/pkg/envelope"
	"github.com/dinkside/rally-core/pkg/models"
)

const defaultSubscriberBuffer = 16

type subscriber struct {
	playerID string
	mu       sync.Mutex
	closed   bool
	ch       chan models.Notification
}

// offer never blocks. It reports false when the notification was dropped.
func (s *subscriber) offer(n models.Notification) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.ch <- n:
		return true
	default:
		return false
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// Hub owns one Feed per player. Subscribers receive every published notification for their
// player; a subscriber that is not keeping up misses notifications but they stay in the feed.
type Hub struct {
	mu          sync.RWMutex
	capacity    int
	feeds       map[string]*Feed
	subscribers map[string]map[*subscriber]struct{}
	closed      bool
}

func NewHub(capacity int) *Hub {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Hub{
		capacity:    capacity,
		feeds:       map[string]*Feed{},
		subscribers: map[string]map[*subscriber]struct{}{},
	}
}

func (h *Hub) Publish(rootScope *envelope.Scope, notifications ...models.Notification) {
	for _, n := range notifications {
		h.publish(rootScope, n)
	}
}

func (h *Hub) publish(scope *envelope.Scope, n models.Notification) {
	targets := borrowSubscribers()
	defer func() { returnSubscribers(targets) }()

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	feed, ok := h.feeds[n.PlayerID]
	if !ok {
		feed = NewFeed(h.capacity)
		h.feeds[n.PlayerID] = feed
	}
	if evicted := feed.Push(n); evicted != nil {
		scope.Log.Debugf("notification %s evicted from feed of player %s", evicted.ID, n.PlayerID)
	}
	for sub := range h.subscribers[n.PlayerID] {
		targets = append(targets, sub)
	}
	h.mu.Unlock()

	for _, sub := range targets {
		if !sub.offer(n) {
			scope.Log.Warnf("subscriber of player %s is full, dropped notification %s", n.PlayerID, n.ID)
		}
	}
}

// Notifications returns the player's feed newest first.
func (h *Hub) Notifications(playerID string) []models.Notification {
	h.mu.RLock()
	defer h.mu.RUnlock()
	feed, ok := h.feeds[playerID]
	if !ok {
		return []models.Notification{}
	}
	return feed.List()
}

// Subscribe returns a channel receiving the player's future notifications and a function
// that cancels the subscription and closes the channel.
func (h *Hub) Subscribe(playerID string, buffer int) (<-chan models.Notification, func()) {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	sub := &subscriber{playerID: playerID, ch: make(chan models.Notification, buffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		sub.close()
		return sub.ch, func() {}
	}
	if h.subscribers[playerID] == nil {
		h.subscribers[playerID] = map[*subscriber]struct{}{}
	}
	h.subscribers[playerID][sub] = struct{}{}

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() { h.unsubscribe(sub) })
	}
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.subscribers[sub.playerID]
	if !ok {
		return
	}
	if _, ok = subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.subscribers, sub.playerID)
	}
	sub.close()
}

// Close closes every subscriber channel. Later publishes are dropped.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for playerID, subs := range h.subscribers {
		for sub := range subs {
			sub.close()
		}
		delete(h.subscribers, playerID)
	}
}
