// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package notification

import (
	"github.com/dinkside/rally-core/pkg/models"
)

const DefaultCapacity = 20

// Feed is a bounded most-recent-first list of notifications. It is not safe for concurrent use.
type Feed struct {
	capacity int
	// ring buffer, head is the next write position
	items []models.Notification
	head  int
	size  int
}

func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{capacity: capacity, items: make([]models.Notification, capacity)}
}

// Push adds n as the newest entry. When the feed is full the oldest entry is evicted and returned.
func (f *Feed) Push(n models.Notification) (evicted *models.Notification) {
	if f.size == f.capacity {
		oldest := f.items[f.head]
		evicted = &oldest
	} else {
		f.size++
	}
	f.items[f.head] = n
	f.head = (f.head + 1) % f.capacity
	return evicted
}

// List returns the entries newest first.
func (f *Feed) List() []models.Notification {
	result := make([]models.Notification, 0, f.size)
	for i := 1; i <= f.size; i++ {
		result = append(result, f.items[(f.head-i+f.capacity)%f.capacity])
	}
	return result
}

func (f *Feed) Len() int {
	return f.size
}

func (f *Feed) Capacity() int {
	return f.capacity
}
