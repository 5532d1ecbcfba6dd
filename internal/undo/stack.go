// Package undo keeps the per-session swipe history backing the undo
// button: a bounded LIFO stack, held in memory, never persisted.
package undo

import (
	"sync"

	"github.com/swipeup-app/swipeup/internal/models"
)

// MaxDepth bounds how far back a user can un-swipe.
const MaxDepth = 5

type Entry struct {
	StartupID uint
	Kind      models.VoteKind
}

type Stack struct {
	mu     sync.Mutex
	byUser map[uint][]Entry
}

func NewStack() *Stack {
	return &Stack{byUser: make(map[uint][]Entry)}
}

// Push records a swipe. When the stack is full the oldest entry falls
// off.
func (s *Stack) Push(userID uint, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(s.byUser[userID], e)
	if len(entries) > MaxDepth {
		entries = entries[len(entries)-MaxDepth:]
	}
	s.byUser[userID] = entries
}

// Pop returns the most recent swipe, or ok=false when there is nothing
// to undo.
func (s *Stack) Pop(userID uint) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.byUser[userID]
	if len(entries) == 0 {
		return Entry{}, false
	}

	e := entries[len(entries)-1]
	s.byUser[userID] = entries[:len(entries)-1]
	return e, true
}

// Clear drops a user's history, e.g. on logout.
func (s *Stack) Clear(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
}
