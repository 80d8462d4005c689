// Package editor implements undoable editing commands over a scene graph and the linear undo stack
// that drives them.
package editor

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/Carmen-Shannon/oxy-scene/engine/terrain"
)

// SceneContext is what a command operates on: the edited graph and the factory used to create
// the resources a command needs.
type SceneContext struct {
	Graph     scene.Graph
	Materials material.Factory
}

// Command is an undoable edit. Execute and Revert must be called in strict alternation, starting
// with Execute; anything else is a programming error and panics.
type Command interface {
	// Name returns the label shown for the command in undo history.
	//
	// Parameters:
	//   - ctx: the scene the command belongs to
	//
	// Returns:
	//   - string: the label, independent of the command's state
	Name(ctx *SceneContext) string

	// Execute applies the edit.
	Execute(ctx *SceneContext)

	// Revert undoes the edit.
	Revert(ctx *SceneContext)
}

// CommandState tracks where a command is in its Execute/Revert cycle.
type CommandState uint8

const (
	Unexecuted CommandState = iota
	Executed
	Reverted
)

func (s CommandState) String() string {
	switch s {
	case Unexecuted:
		return "Unexecuted"
	case Executed:
		return "Executed"
	case Reverted:
		return "Reverted"
	default:
		return fmt.Sprintf("CommandState(%d)", uint8(s))
	}
}

// stateGuard enforces strict Execute/Revert alternation. Commands embed it.
type stateGuard struct {
	state CommandState
}

// State returns the current state of the command.
func (g *stateGuard) State() CommandState {
	return g.state
}

func (g *stateGuard) beginExecute(name string) {
	if g.state == Executed {
		panic(fmt.Sprintf("editor: %q executed twice without a revert", name))
	}
	g.state = Executed
}

func (g *stateGuard) beginRevert(name string) {
	if g.state != Executed {
		panic(fmt.Sprintf("editor: %q reverted while %s", name, g.state))
	}
	g.state = Reverted
}

// withTerrain runs fn on the terrain stored under h while the graph holds the node exclusively.
// A missing node or a node of another kind is a programming error and panics.
func withTerrain(ctx *SceneContext, h node.Handle, fn func(t *terrain.Terrain)) {
	found := ctx.Graph.Modify(h, func(n *node.Node) {
		fn(node.MustCast[*terrain.Terrain](n))
	})
	if !found {
		panic(fmt.Sprintf("editor: terrain node %d does not exist", h))
	}
}
