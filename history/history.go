// Package history implements snapshot-based undo/redo over the serialized
// visual tree.
//
// The log is a bounded ordered sequence of snapshots with a single cursor.
// Committing while the cursor is behind the latest entry discards the
// redo-only tail; exceeding capacity evicts the oldest entries while keeping
// the cursor on the same logical state.
package history

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity bounds the snapshot log when no capacity is configured.
const DefaultCapacity = 50

// Snapshot is an immutable serialized copy of the visual tree plus the
// active template identifier. Interactive bindings are not serialized; the
// caller re-establishes them after restoring a snapshot.
type Snapshot struct {
	ID       uuid.UUID
	Template string
	Tree     []byte
	TakenAt  time.Time
}

// Log is a bounded undo/redo log. It is not safe for concurrent use; the
// editor session owns it exclusively.
type Log struct {
	entries  []Snapshot
	cursor   int // index of the current snapshot, -1 when empty
	capacity int
}

// New creates a Log holding at most capacity snapshots. A capacity of zero
// or less uses DefaultCapacity.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{cursor: -1, capacity: capacity}
}

// Commit truncates any redo-only tail after the cursor, appends s, and
// advances the cursor to it. Oldest entries are evicted once the log exceeds
// its capacity.
func (l *Log) Commit(s Snapshot) {
	l.entries = append(l.entries[:l.cursor+1], s)
	l.cursor = len(l.entries) - 1

	if over := len(l.entries) - l.capacity; over > 0 {
		l.entries = append(l.entries[:0], l.entries[over:]...)
		l.cursor -= over
	}
}

// Undo moves the cursor back one snapshot and returns it. The second return
// is false when there is nothing to undo (cursor at the oldest entry or
// empty log); the log is unchanged in that case.
func (l *Log) Undo() (Snapshot, bool) {
	if l.cursor <= 0 {
		return Snapshot{}, false
	}
	l.cursor--
	return l.entries[l.cursor], true
}

// Redo moves the cursor forward one snapshot and returns it. The second
// return is false when the cursor is already at the latest entry.
func (l *Log) Redo() (Snapshot, bool) {
	if l.cursor < 0 || l.cursor >= len(l.entries)-1 {
		return Snapshot{}, false
	}
	l.cursor++
	return l.entries[l.cursor], true
}

// Current returns the snapshot at the cursor without moving it.
func (l *Log) Current() (Snapshot, bool) {
	if l.cursor < 0 {
		return Snapshot{}, false
	}
	return l.entries[l.cursor], true
}

// Len returns the number of stored snapshots.
func (l *Log) Len() int { return len(l.entries) }

// CanUndo reports whether Undo would succeed.
func (l *Log) CanUndo() bool { return l.cursor > 0 }

// CanRedo reports whether Redo would succeed.
func (l *Log) CanRedo() bool { return l.cursor >= 0 && l.cursor < len(l.entries)-1 }
