// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package matchmaker

import (
	"gopkg.in/typ.v4/slices"

	"github.com/dinkside/rally-core/pkg/models"
)

// waitingList keeps the waiting entries of a lane sorted by enqueue time, oldest first.
// Entries enqueued at the same instant keep the order they were first inserted in.
type waitingList struct {
	entries []*models.QueueEntry
	// join sequence per entry id, kept while the entry is in the lane
	sequence map[string]uint64
	next     uint64
}

func (w *waitingList) queuedBefore(a, b *models.QueueEntry) bool {
	if a.EnqueuedAt.Equal(b.EnqueuedAt) {
		return w.sequence[a.ID] < w.sequence[b.ID]
	}
	return a.EnqueuedAt.Before(b.EnqueuedAt)
}

// insert places entry at its FIFO position. A reverted entry goes back ahead of later joiners.
func (w *waitingList) insert(entry *models.QueueEntry) {
	if w.sequence == nil {
		w.sequence = make(map[string]uint64)
	}
	if _, ok := w.sequence[entry.ID]; !ok {
		w.next++
		w.sequence[entry.ID] = w.next
	}

	i, j := 0, len(w.entries)
	for i < j {
		mid := (i + j) / 2
		if w.queuedBefore(w.entries[mid], entry) {
			i = mid + 1
		} else {
			j = mid
		}
	}

	w.entries = append(w.entries, nil)
	copy(w.entries[i+1:], w.entries[i:])
	w.entries[i] = entry
}

// forget drops the join sequence of an entry that left the lane for good.
func (w *waitingList) forget(entryID string) {
	w.remove(entryID)
	delete(w.sequence, entryID)
}

func (w *waitingList) remove(entryID string) bool {
	idx := slices.IndexFunc(w.entries, func(e *models.QueueEntry) bool { return e.ID == entryID })
	if idx < 0 {
		return false
	}
	w.entries = append(w.entries[:idx], w.entries[idx+1:]...)
	return true
}

// oldestCompatible returns the longest-waiting entry other than candidate accepted by compatible.
func (w *waitingList) oldestCompatible(candidate *models.QueueEntry, compatible func(a, b *models.QueueEntry) bool) *models.QueueEntry {
	idx := slices.IndexFunc(w.entries, func(e *models.QueueEntry) bool {
		return e.ID != candidate.ID && e.PlayerID != candidate.PlayerID && compatible(e, candidate)
	})
	if idx < 0 {
		return nil
	}
	return w.entries[idx]
}

// position is the 1-based rank of the entry, 0 when it is not waiting.
func (w *waitingList) position(entryID string) int {
	return slices.IndexFunc(w.entries, func(e *models.QueueEntry) bool { return e.ID == entryID }) + 1
}

func (w *waitingList) len() int {
	return len(w.entries)
}

func (w *waitingList) copies() []models.QueueEntry {
	result := make([]models.QueueEntry, 0, len(w.entries))
	for _, e := range w.entries {
		result = append(result, *e)
	}
	return result
}
