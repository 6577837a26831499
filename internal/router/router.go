// Package router keeps the stack of open screens. The home menu sits at the
// bottom and is never popped.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/italiano/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// Open returns a command that pushes s.
func Open(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Back returns a command that pops the current screen.
func Back() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen, calling Close when it is a screen.Closer.
// It reports false at the root.
func (r *Router) Pop() bool {
	n := len(r.stack)
	if n == 1 {
		return false
	}
	if c, ok := r.stack[n-1].(screen.Closer); ok {
		c.Close()
	}
	r.stack[n-1] = nil
	r.stack = r.stack[:n-1]
	return true
}

// PopToRoot closes every screen above the root, newest first.
func (r *Router) PopToRoot() {
	for r.Pop() {
	}
}

func (r *Router) Active() screen.Screen { return r.stack[len(r.stack)-1] }

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		r.Pop()
		return nil
	}
	top := len(r.stack) - 1
	next, cmd := r.stack[top].Update(msg)
	r.stack[top] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
