package editor

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/sirupsen/logrus"
)

// Stack is a linear undo history. Doing a new command discards everything that could have been
// redone.
type Stack struct {
	mu       *sync.Mutex
	ctx      *SceneContext
	commands []Command
	// top is the number of commands currently executed; commands[top:] can be redone.
	top   int
	limit int
	log   *logrus.Entry
}

// NewStack creates an empty history over ctx.
//
// Parameters:
//   - ctx: the scene the commands operate on
//   - options: variadic list of StackBuilderOption functions
//
// Returns:
//   - *Stack: the history
func NewStack(ctx *SceneContext, options ...StackBuilderOption) *Stack {
	if ctx == nil || ctx.Graph == nil {
		panic("editor: NewStack requires a scene context with a graph")
	}
	s := &Stack{
		mu:  &sync.Mutex{},
		ctx: ctx,
		log: common.Logger("editor"),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Do executes cmd and records it.
//
// Parameters:
//   - cmd: the command to execute
func (s *Stack) Do(cmd Command) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd.Execute(s.ctx)
	s.commands = append(s.commands[:s.top], cmd)
	s.top++
	if s.limit > 0 && len(s.commands) > s.limit {
		drop := len(s.commands) - s.limit
		s.commands = s.commands[drop:]
		s.top -= drop
	}
	s.log.WithField("command", cmd.Name(s.ctx)).Debug("executed")
}

// Undo reverts the most recently executed command.
//
// Returns:
//   - bool: false when there is nothing to undo
func (s *Stack) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.top == 0 {
		return false
	}
	s.top--
	cmd := s.commands[s.top]
	cmd.Revert(s.ctx)
	s.log.WithField("command", cmd.Name(s.ctx)).Debug("reverted")
	return true
}

// Redo re-executes the most recently undone command.
//
// Returns:
//   - bool: false when there is nothing to redo
func (s *Stack) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.top == len(s.commands) {
		return false
	}
	cmd := s.commands[s.top]
	cmd.Execute(s.ctx)
	s.top++
	s.log.WithField("command", cmd.Name(s.ctx)).Debug("redone")
	return true
}

func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.top > 0
}

func (s *Stack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.top < len(s.commands)
}

// UndoName returns the name of the command Undo would revert.
func (s *Stack) UndoName() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.top == 0 {
		return "", false
	}
	return s.commands[s.top-1].Name(s.ctx), true
}

// RedoName returns the name of the command Redo would execute.
func (s *Stack) RedoName() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.top == len(s.commands) {
		return "", false
	}
	return s.commands[s.top].Name(s.ctx), true
}

// Len returns the number of recorded commands, executed or not.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.commands)
}

// Clear forgets the whole history without touching the scene.
func (s *Stack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = nil
	s.top = 0
}
