package editor

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/terrain"
)

var (
	_ Command = &AddTerrainLayerCommand{}
	_ Command = &DeleteTerrainLayerCommand{}
	_ Command = &ModifyTerrainHeightCommand{}
	_ Command = &ModifyTerrainLayerMaskCommand{}
)

// AddTerrainLayerCommand appends a new layer to a terrain. The layer and its masks are owned by
// the command while it is not executed and by the terrain while it is.
type AddTerrainLayerCommand struct {
	stateGuard
	terrain node.Handle
	layer   *terrain.Layer
	masks   []*material.Texture
}

// NewAddTerrainLayerCommand creates a command adding a layer drawn with a fresh terrain layer
// material from ctx.Materials, bound to the terrain's mask property. Blank masks are created on
// the first execute. Panics when h is not a terrain in ctx.Graph.
//
// Parameters:
//   - ctx: the scene the terrain lives in
//   - h: the terrain node
//
// Returns:
//   - *AddTerrainLayerCommand: the command
func NewAddTerrainLayerCommand(ctx *SceneContext, h node.Handle) *AddTerrainLayerCommand {
	c := &AddTerrainLayerCommand{terrain: h}
	withTerrain(ctx, h, func(t *terrain.Terrain) {
		c.layer = t.NewLayer(ctx.Materials.TerrainLayerMaterial())
	})
	return c
}

func (c *AddTerrainLayerCommand) Name(*SceneContext) string {
	return "Add Terrain Layer"
}

func (c *AddTerrainLayerCommand) Execute(ctx *SceneContext) {
	c.beginExecute(c.Name(ctx))
	withTerrain(ctx, c.terrain, func(t *terrain.Terrain) {
		t.AddLayer(c.layer, c.masks)
	})
	c.layer, c.masks = nil, nil
}

func (c *AddTerrainLayerCommand) Revert(ctx *SceneContext) {
	c.beginRevert(c.Name(ctx))
	withTerrain(ctx, c.terrain, func(t *terrain.Terrain) {
		layer, masks, ok := t.PopLayer()
		if !ok {
			panic("editor: terrain has no layer to remove")
		}
		c.layer, c.masks = layer, masks
	})
}

// DeleteTerrainLayerCommand removes the layer at a fixed index and puts it back on revert.
// The index is not re-validated on revert; commands must be undone in reverse order.
type DeleteTerrainLayerCommand struct {
	stateGuard
	terrain node.Handle
	index   int
	layer   *terrain.Layer
	masks   []*material.Texture
}

// NewDeleteTerrainLayerCommand creates a command deleting the layer at index.
//
// Parameters:
//   - h: the terrain node
//   - index: the layer to delete
//
// Returns:
//   - *DeleteTerrainLayerCommand: the command
func NewDeleteTerrainLayerCommand(h node.Handle, index int) *DeleteTerrainLayerCommand {
	return &DeleteTerrainLayerCommand{terrain: h, index: index}
}

func (c *DeleteTerrainLayerCommand) Name(*SceneContext) string {
	return "Delete Terrain Layer"
}

func (c *DeleteTerrainLayerCommand) Execute(ctx *SceneContext) {
	c.beginExecute(c.Name(ctx))
	withTerrain(ctx, c.terrain, func(t *terrain.Terrain) {
		c.layer, c.masks = t.RemoveLayer(c.index)
	})
}

func (c *DeleteTerrainLayerCommand) Revert(ctx *SceneContext) {
	c.beginRevert(c.Name(ctx))
	withTerrain(ctx, c.terrain, func(t *terrain.Terrain) {
		t.InsertLayer(c.layer, c.masks, c.index)
	})
	c.layer, c.masks = nil, nil
}

// ModifyTerrainHeightCommand replaces every chunk heightmap. Execute and Revert share one swap, so
// the command can be replayed in either direction.
type ModifyTerrainHeightCommand struct {
	stateGuard
	terrain node.Handle
	old     [][]float32
	new     [][]float32
}

// NewModifyTerrainHeightCommand creates a command installing newHeights, with oldHeights as the
// state to return to. Both hold one heightmap per chunk, in chunk order.
//
// Parameters:
//   - h: the terrain node
//   - oldHeights: the heightmaps before the edit
//   - newHeights: the heightmaps after the edit
//
// Returns:
//   - *ModifyTerrainHeightCommand: the command
func NewModifyTerrainHeightCommand(h node.Handle, oldHeights, newHeights [][]float32) *ModifyTerrainHeightCommand {
	return &ModifyTerrainHeightCommand{terrain: h, old: oldHeights, new: newHeights}
}

func (c *ModifyTerrainHeightCommand) Name(*SceneContext) string {
	return "Modify Terrain Height"
}

func (c *ModifyTerrainHeightCommand) Execute(ctx *SceneContext) {
	c.beginExecute(c.Name(ctx))
	c.swap(ctx)
}

func (c *ModifyTerrainHeightCommand) Revert(ctx *SceneContext) {
	c.beginRevert(c.Name(ctx))
	c.swap(ctx)
}

// swap installs the "new" slot of every chunk, then exchanges the slots.
func (c *ModifyTerrainHeightCommand) swap(ctx *SceneContext) {
	withTerrain(ctx, c.terrain, func(t *terrain.Terrain) {
		mustMatchChunks(len(t.Chunks), len(c.old), len(c.new))
		for i, chunk := range t.Chunks {
			chunk.SetHeightmap(slices.Clone(c.new[i]))
			c.old[i], c.new[i] = c.new[i], c.old[i]
		}
	})
}

// ModifyTerrainLayerMaskCommand rewrites one layer's mask in every chunk. Pixels are written into
// the live mask texture in place, so references to the texture stay valid.
type ModifyTerrainLayerMaskCommand struct {
	stateGuard
	terrain node.Handle
	layer   int
	old     [][]byte
	new     [][]byte
}

// NewModifyTerrainLayerMaskCommand creates a command installing newMasks into layer, with
// oldMasks as the state to return to. Both hold one mask per chunk, in chunk order.
//
// Parameters:
//   - h: the terrain node
//   - oldMasks: the mask pixels before the edit
//   - newMasks: the mask pixels after the edit
//   - layer: the layer whose masks are edited
//
// Returns:
//   - *ModifyTerrainLayerMaskCommand: the command
func NewModifyTerrainLayerMaskCommand(h node.Handle, oldMasks, newMasks [][]byte, layer int) *ModifyTerrainLayerMaskCommand {
	return &ModifyTerrainLayerMaskCommand{terrain: h, layer: layer, old: oldMasks, new: newMasks}
}

func (c *ModifyTerrainLayerMaskCommand) Name(*SceneContext) string {
	return "Modify Terrain Layer Mask"
}

func (c *ModifyTerrainLayerMaskCommand) Execute(ctx *SceneContext) {
	c.beginExecute(c.Name(ctx))
	c.swap(ctx)
}

func (c *ModifyTerrainLayerMaskCommand) Revert(ctx *SceneContext) {
	c.beginRevert(c.Name(ctx))
	c.swap(ctx)
}

func (c *ModifyTerrainLayerMaskCommand) swap(ctx *SceneContext) {
	withTerrain(ctx, c.terrain, func(t *terrain.Terrain) {
		mustMatchChunks(len(t.Chunks), len(c.old), len(c.new))
		for i, chunk := range t.Chunks {
			pixels := c.new[i]
			chunk.LayerMasks[c.layer].Modify(func(live []byte) {
				copy(live, pixels)
			})

			c.old[i], c.new[i] = c.new[i], c.old[i]
		}
	})
}

func mustMatchChunks(chunks, oldCount, newCount int) {
	if oldCount != chunks || newCount != chunks {
		panic(fmt.Sprintf("editor: snapshots cover %d/%d chunks, terrain has %d", oldCount, newCount, chunks))
	}
}
