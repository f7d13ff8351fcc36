package pending

import (
	"sync"

	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
)

// Log is an ordered buffer of accepted but uncommitted actions.
//
// Positions are absolute: the first action ever appended is at position 0 and
// positions are never reused after a trim. A snapshot reports the position right
// after its last action, so trimming to that position removes exactly the
// snapshotted actions even when more were appended in the meantime.
type Log struct {
	lock    sync.RWMutex
	base    uint64
	actions []types.PendingAction
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{
		actions: make([]types.PendingAction, 0),
	}
}

// Append adds an action to the end of the log and returns its position.
func (l *Log) Append(action types.PendingAction) uint64 {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.actions = append(l.actions, action)
	return l.base + uint64(len(l.actions)) - 1
}

// Snapshot returns a copy of the pending actions and the position right after the last one.
func (l *Log) Snapshot() ([]types.PendingAction, uint64) {
	l.lock.RLock()
	defer l.lock.RUnlock()
	actions := make([]types.PendingAction, len(l.actions))
	copy(actions, l.actions)
	return actions, l.base + uint64(len(l.actions))
}

// CommitThrough removes every action positioned before through and returns how
// many were removed. Positions already trimmed are ignored and positions beyond
// the end of the log are clamped.
func (l *Log) CommitThrough(through uint64) int {
	l.lock.Lock()
	defer l.lock.Unlock()

	if through <= l.base {
		return 0
	}
	count := through - l.base
	if count > uint64(len(l.actions)) {
		count = uint64(len(l.actions))
	}
	return l.commitPrefixLocked(int(count))
}

// CommitPrefix removes the first count actions.
func (l *Log) CommitPrefix(count int) int {
	l.lock.Lock()
	defer l.lock.Unlock()
	if count <= 0 {
		return 0
	}
	if count > len(l.actions) {
		count = len(l.actions)
	}
	return l.commitPrefixLocked(count)
}

func (l *Log) commitPrefixLocked(count int) int {
	remaining := make([]types.PendingAction, len(l.actions)-count)
	copy(remaining, l.actions[count:])
	l.actions = remaining
	l.base += uint64(count)
	return count
}

// Len returns the number of pending actions.
func (l *Log) Len() int {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return len(l.actions)
}

// End returns the position right after the last pending action.
func (l *Log) End() uint64 {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.base + uint64(len(l.actions))
}
