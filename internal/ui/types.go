// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package ui

import (
	"context"
	"strings"
	"sync"

	"github.com/derailed/tview"
	"github.com/fvbommel/sortorder"
)

// MenuHint is one key hint shown in the header menu.
type MenuHint struct {
	Mnemonic    string
	Description string
	Visible     bool
}

// IsBlank checks if menu hint is a placeholder.
func (m MenuHint) IsBlank() bool {
	return m.Mnemonic == "" && m.Description == "" && !m.Visible
}

// MenuHints orders single key hints first, then named keys, each in natural
// order of their mnemonic.
type MenuHints []MenuHint

func (h MenuHints) Len() int      { return len(h) }
func (h MenuHints) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h MenuHints) Less(i, j int) bool {
	a, b := h[i].Mnemonic, h[j].Mnemonic
	if sa, sb := isRuneKey(a), isRuneKey(b); sa != sb {
		return sa
	}
	if !strings.EqualFold(a, b) {
		return sortorder.NaturalLess(strings.ToLower(a), strings.ToLower(b))
	}
	if a != b {
		return a > b
	}
	return h[i].Description < h[j].Description
}

func isRuneKey(m string) bool {
	return len([]rune(m)) == 1
}

// Hinter provides menu hints.
type Hinter interface {
	Hints() MenuHints
}

// Primitive is a named tview primitive.
type Primitive interface {
	tview.Primitive

	Name() string
}

// Igniter is a view with a lifetime.
type Igniter interface {
	// Init builds the view once, before it is pushed.
	Init(ctx context.Context) error

	// Start runs each time the view reaches the top of the stack.
	Start()

	// Stop runs each time the view leaves the top of the stack.
	Stop()
}

// Component is a view that lives on the page stack.
type Component interface {
	Primitive
	Igniter
	Hinter
}

// StackListener is notified of page stack changes.
type StackListener interface {
	StackPushed(Component)

	// StackPopped carries the removed component and the new top, if any.
	StackPopped(old, top Component)

	StackTop(Component)
}

// Stack is the navigation stack of views.
type Stack struct {
	components []Component
	listeners  []StackListener
	mx         sync.RWMutex
}

// NewStack returns a new initialized stack.
func NewStack() *Stack {
	return &Stack{}
}

// Flatten returns the names of the stacked components, bottom first.
func (s *Stack) Flatten() []string {
	s.mx.RLock()
	defer s.mx.RUnlock()

	ss := make([]string, len(s.components))
	for i, c := range s.components {
		ss[i] = c.Name()
	}
	return ss
}

// Len returns the stack depth.
func (s *Stack) Len() int {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return len(s.components)
}

// AddListener registers a stack listener and hands it the current top.
func (s *Stack) AddListener(l StackListener) {
	s.mx.Lock()
	s.listeners = append(s.listeners, l)
	s.mx.Unlock()

	if top := s.Top(); top != nil {
		l.StackTop(top)
	}
}

// RemoveListener unregisters a stack listener.
func (s *Stack) RemoveListener(l StackListener) {
	s.mx.Lock()
	defer s.mx.Unlock()

	for i, lis := range s.listeners {
		if lis == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Push stops the current top and stacks c on it.
func (s *Stack) Push(c Component) {
	if top := s.Top(); top != nil {
		top.Stop()
	}

	s.mx.Lock()
	s.components = append(s.components, c)
	s.mx.Unlock()

	for _, l := range s.snapshot() {
		l.StackPushed(c)
	}
}

// Pop stops and removes the top component.
func (s *Stack) Pop() (Component, bool) {
	s.mx.Lock()
	if len(s.components) == 0 {
		s.mx.Unlock()
		return nil, false
	}
	c := s.components[len(s.components)-1]
	s.components = s.components[:len(s.components)-1]
	s.mx.Unlock()

	c.Stop()
	top := s.Top()
	for _, l := range s.snapshot() {
		l.StackPopped(c, top)
	}

	return c, true
}

// Replace empties the stack and pushes c. Listeners see every removal with
// no new top, then the push, so nothing underneath gets restarted.
func (s *Stack) Replace(c Component) {
	s.mx.Lock()
	old := s.components
	s.components = nil
	s.mx.Unlock()

	ll := s.snapshot()
	for i := len(old) - 1; i >= 0; i-- {
		if i == len(old)-1 {
			old[i].Stop()
		}
		for _, l := range ll {
			l.StackPopped(old[i], nil)
		}
	}
	s.Push(c)
}

// Empty returns true if the stack is empty.
func (s *Stack) Empty() bool {
	return s.Len() == 0
}

// Top returns the top most item or nil if the stack is empty.
func (s *Stack) Top() Component {
	s.mx.RLock()
	defer s.mx.RUnlock()

	if len(s.components) == 0 {
		return nil
	}
	return s.components[len(s.components)-1]
}

func (s *Stack) snapshot() []StackListener {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return append([]StackListener(nil), s.listeners...)
}
