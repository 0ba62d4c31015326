// Package router keeps the stack of screens the app draws from. Only the
// top screen receives input; screens navigate by returning the message
// types below as commands.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindcheck/internal/screen"
)

// PushScreenMsg opens Screen above the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the top screen. The root screen is never closed.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen for Screen, as when the splash
// hands over to the assessment.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen unless it is the root.
func (r *Router) Pop() tea.Cmd {
	if r.top() > 0 {
		r.stack[r.top()] = nil
		r.stack = r.stack[:r.top()]
	}
	return nil
}

// Replace swaps the top screen for s and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if r.top() < 0 {
		return r.Push(s)
	}
	r.stack[r.top()] = s
	return s.Init()
}

// Active is the screen currently receiving input, or nil.
func (r *Router) Active() screen.Screen {
	if r.top() < 0 {
		return nil
	}
	return r.stack[r.top()]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if cmd, ok := r.navigate(msg); ok {
		return cmd
	}
	if r.top() < 0 {
		return nil
	}
	next, cmd := r.stack[r.top()].Update(msg)
	r.stack[r.top()] = next
	return cmd
}

func (r *Router) navigate(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen), true
	case PopScreenMsg:
		return r.Pop(), true
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen), true
	}
	return nil, false
}

// View draws the active screen into a width x height body.
func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}
