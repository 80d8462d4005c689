package editor

import (
	"slices"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/Carmen-Shannon/oxy-scene/engine/terrain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFactory records how many layer materials it has produced.
type countingFactory struct {
	material.DefaultFactory
	made int
}

func (f *countingFactory) TerrainLayerMaterial() *material.SharedMaterial {
	f.made++
	return f.DefaultFactory.TerrainLayerMaterial()
}

// newTerrainScene builds a graph holding one terrain made of two chunks with 2x2 heightmaps and
// 2x2 masks.
func newTerrainScene(t *testing.T) (*SceneContext, node.Handle, *terrain.Terrain) {
	t.Helper()
	tr := terrain.NewTerrain(
		terrain.WithSize(32, 16),
		terrain.WithChunkSize(16),
		terrain.WithHeightmapResolution(2),
		terrain.WithMaskResolution(2),
	)
	require.Len(t, tr.Chunks, 2)
	g := scene.NewGraph("editor", scene.WithApplyWorkers(1))
	h := g.Add(node.New(tr), node.None)
	return &SceneContext{Graph: g, Materials: &countingFactory{}}, h, tr
}

func layerMaterials(tr *terrain.Terrain) []*material.SharedMaterial {
	out := make([]*material.SharedMaterial, len(tr.Layers))
	for i, l := range tr.Layers {
		out[i] = l.Material
	}
	return out
}

func TestCommandNames(t *testing.T) {
	ctx, h, _ := newTerrainScene(t)
	cases := map[string]Command{
		"Add Terrain Layer":         NewAddTerrainLayerCommand(ctx, h),
		"Delete Terrain Layer":      NewDeleteTerrainLayerCommand(h, 0),
		"Modify Terrain Height":     NewModifyTerrainHeightCommand(h, nil, nil),
		"Modify Terrain Layer Mask": NewModifyTerrainLayerMaskCommand(h, nil, nil, 0),
	}
	for want, cmd := range cases {
		assert.Equal(t, want, cmd.Name(ctx))
	}
}

func TestModifyHeightRoundTrip(t *testing.T) {
	ctx, h, tr := newTerrainScene(t)
	tr.Chunks[0].SetHeightmap([]float32{1, 2, 1, 2})
	tr.Chunks[1].SetHeightmap([]float32{3, 4, 3, 4})

	before := tr.HeightmapSnapshots()
	after := [][]float32{{9, 9, 9, 9}, {8, 8, 8, 8}}
	cmd := NewModifyTerrainHeightCommand(h, before, after)

	cmd.Execute(ctx)
	assert.Equal(t, [][]float32{{9, 9, 9, 9}, {8, 8, 8, 8}}, tr.HeightmapSnapshots())
	assert.Equal(t, Executed, cmd.State())

	cmd.Revert(ctx)
	assert.Equal(t, [][]float32{{1, 2, 1, 2}, {3, 4, 3, 4}}, tr.HeightmapSnapshots())
	assert.Equal(t, Reverted, cmd.State())

	cmd.Execute(ctx)
	assert.Equal(t, [][]float32{{9, 9, 9, 9}, {8, 8, 8, 8}}, tr.HeightmapSnapshots())
}

func TestModifyHeightDoesNotAliasSnapshots(t *testing.T) {
	ctx, h, tr := newTerrainScene(t)
	after := [][]float32{{9, 9, 9, 9}, {8, 8, 8, 8}}
	cmd := NewModifyTerrainHeightCommand(h, tr.HeightmapSnapshots(), after)
	cmd.Execute(ctx)

	// after now sits in the command's "old" slot; mutating it must not reach the terrain.
	cmd.old[0][0] = -1
	assert.Equal(t, float32(9), tr.Chunks[0].Heightmap()[0])
}

func TestModifyLayerMaskRoundTrip(t *testing.T) {
	ctx, h, tr := newTerrainScene(t)
	tr.AddLayer(terrain.NewLayer(ctx.Materials.TerrainLayerMaterial()), nil)
	live := tr.Chunks[1].LayerMasks[0]
	revision := live.Revision()

	before := tr.MaskSnapshots(0)
	after := [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}}
	cmd := NewModifyTerrainLayerMaskCommand(h, before, after, 0)

	cmd.Execute(ctx)
	assert.Equal(t, [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}}, tr.MaskSnapshots(0))
	assert.Same(t, live, tr.Chunks[1].LayerMasks[0], "mask texture is edited in place")
	assert.Greater(t, live.Revision(), revision)

	cmd.Revert(ctx)
	assert.Equal(t, [][]byte{{255, 255, 255, 255}, {255, 255, 255, 255}}, tr.MaskSnapshots(0))

	cmd.Execute(ctx)
	assert.Equal(t, [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}}, tr.MaskSnapshots(0))
}

func TestModifyLayerMaskHoldsTextureLock(t *testing.T) {
	ctx, h, tr := newTerrainScene(t)
	tr.AddLayer(terrain.NewLayer(ctx.Materials.TerrainLayerMaterial()), nil)
	cmd := NewModifyTerrainLayerMaskCommand(h, tr.MaskSnapshots(0), [][]byte{{0, 0, 0, 0}, {0, 0, 0, 0}}, 0)

	// A concurrent reader sees either the old or the new mask, never a mix.
	var wg sync.WaitGroup
	stop := make(chan struct{})
	mask := tr.Chunks[0].LayerMasks[0]
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			mask.Read(func(px []byte) {
				first := px[0]
				for _, p := range px {
					if p != first {
						t.Errorf("torn mask read: %v", px)
						return
					}
				}
			})
		}
	}()

	cmd.Execute(ctx)
	cmd.Revert(ctx)
	close(stop)
	wg.Wait()
}

func TestSnapshotChunkMismatchPanics(t *testing.T) {
	ctx, h, _ := newTerrainScene(t)
	short := [][]float32{{0, 0, 0, 0}}
	assert.Panics(t, func() {
		NewModifyTerrainHeightCommand(h, short, short).Execute(ctx)
	})
	assert.Panics(t, func() {
		NewModifyTerrainLayerMaskCommand(h, [][]byte{{0}}, [][]byte{{0}}, 0).Execute(ctx)
	})
}

func TestAddLayerOwnershipAlternates(t *testing.T) {
	ctx, h, tr := newTerrainScene(t)
	cmd := NewAddTerrainLayerCommand(ctx, h)
	assert.Equal(t, 1, ctx.Materials.(*countingFactory).made)
	layer := cmd.layer

	cmd.Execute(ctx)
	require.Len(t, tr.Layers, 1)
	assert.Same(t, layer, tr.Layers[0])
	assert.Nil(t, cmd.layer)
	assert.Nil(t, cmd.masks)
	masks := []*material.Texture{tr.Chunks[0].LayerMasks[0], tr.Chunks[1].LayerMasks[0]}

	cmd.Revert(ctx)
	assert.Empty(t, tr.Layers)
	assert.Same(t, layer, cmd.layer)
	assert.Equal(t, masks, cmd.masks)

	cmd.Execute(ctx)
	assert.Same(t, masks[1], tr.Chunks[1].LayerMasks[0], "masks are handed back, not recreated")
	assert.Empty(t, tr.Validate(nil))
}

func TestAddLayerUsesTerrainMaskProperty(t *testing.T) {
	g := scene.NewGraph("editor", scene.WithApplyWorkers(1))
	tr := terrain.NewTerrain(
		terrain.WithSize(16, 16),
		terrain.WithHeightmapResolution(2),
		terrain.WithMaskResolution(2),
		terrain.WithMaskPropertyName("splatMap"),
	)
	h := g.Add(node.New(tr), node.None)
	ctx := &SceneContext{Graph: g, Materials: material.DefaultFactory{}}

	NewAddTerrainLayerCommand(ctx, h).Execute(ctx)

	require.Len(t, tr.Layers, 1)
	assert.Equal(t, "splatMap", tr.Layers[0].MaskPropertyName)
	assert.Panics(t, func() { NewAddTerrainLayerCommand(ctx, 999) })
}

func TestAddThenDeleteRoundTrip(t *testing.T) {
	ctx, h, tr := newTerrainScene(t)
	tr.AddLayer(terrain.NewLayer(ctx.Materials.TerrainLayerMaterial()), nil)
	original := layerMaterials(tr)

	add := NewAddTerrainLayerCommand(ctx, h)
	add.Execute(ctx)
	require.Len(t, tr.Layers, 2)

	del := NewDeleteTerrainLayerCommand(h, 1)
	del.Execute(ctx)
	require.Len(t, tr.Layers, 1)

	del.Revert(ctx)
	require.Len(t, tr.Layers, 2)
	add.Revert(ctx)

	assert.Equal(t, original, layerMaterials(tr))
	assert.Empty(t, tr.Validate(nil))
}

func TestDeleteMiddleLayerReinsertsAtIndex(t *testing.T) {
	ctx, h, tr := newTerrainScene(t)
	for range 3 {
		tr.AddLayer(terrain.NewLayer(ctx.Materials.TerrainLayerMaterial()), nil)
	}
	original := layerMaterials(tr)
	middleMask := tr.Chunks[0].LayerMasks[1]

	del := NewDeleteTerrainLayerCommand(h, 1)
	del.Execute(ctx)
	assert.Equal(t, []*material.SharedMaterial{original[0], original[2]}, layerMaterials(tr))

	del.Revert(ctx)
	assert.Equal(t, original, layerMaterials(tr))
	assert.Same(t, middleMask, tr.Chunks[0].LayerMasks[1])
}

func TestDeleteOutOfRangePanics(t *testing.T) {
	ctx, h, _ := newTerrainScene(t)
	assert.Panics(t, func() { NewDeleteTerrainLayerCommand(h, 0).Execute(ctx) })
}

func TestStateGuard(t *testing.T) {
	ctx, h, tr := newTerrainScene(t)
	cmd := NewModifyTerrainHeightCommand(h, tr.HeightmapSnapshots(), tr.HeightmapSnapshots())
	assert.Equal(t, Unexecuted, cmd.State())
	assert.Panics(t, func() { cmd.Revert(ctx) }, "revert before execute")

	cmd = NewModifyTerrainHeightCommand(h, tr.HeightmapSnapshots(), tr.HeightmapSnapshots())
	cmd.Execute(ctx)
	assert.Panics(t, func() { cmd.Execute(ctx) }, "two executes in a row")

	cmd.Revert(ctx)
	assert.Panics(t, func() { cmd.Revert(ctx) }, "two reverts in a row")
}

func TestCommandOnWrongNodePanics(t *testing.T) {
	ctx, _, _ := newTerrainScene(t)
	other := ctx.Graph.Add(node.New(camera.NewCamera()), node.None)
	assert.Panics(t, func() { NewDeleteTerrainLayerCommand(other, 0).Execute(ctx) })
	assert.Panics(t, func() { NewDeleteTerrainLayerCommand(999, 0).Execute(ctx) })
}

func TestStack(t *testing.T) {
	ctx, h, tr := newTerrainScene(t)
	s := NewStack(ctx)

	assert.False(t, s.CanUndo())
	assert.False(t, s.Undo())
	assert.False(t, s.Redo())

	s.Do(NewAddTerrainLayerCommand(ctx, h))
	raised := terrain.RaiseHeightmaps(tr, common.Vec2{X: 16, Y: 8}, 32, 2)
	// The command swaps its snapshot slots in place, so keep an independent copy to compare with.
	want := make([][]float32, len(raised))
	for i, hm := range raised {
		want[i] = slices.Clone(hm)
	}
	s.Do(NewModifyTerrainHeightCommand(h, tr.HeightmapSnapshots(), raised))

	name, ok := s.UndoName()
	require.True(t, ok)
	assert.Equal(t, "Modify Terrain Height", name)
	assert.Equal(t, want, tr.HeightmapSnapshots())

	require.True(t, s.Undo())
	assert.Equal(t, [][]float32{{0, 0, 0, 0}, {0, 0, 0, 0}}, tr.HeightmapSnapshots())
	name, ok = s.RedoName()
	require.True(t, ok)
	assert.Equal(t, "Modify Terrain Height", name)

	require.True(t, s.Redo())
	assert.Equal(t, want, tr.HeightmapSnapshots())

	require.True(t, s.Undo())
	require.True(t, s.Undo())
	assert.Empty(t, tr.Layers)
	assert.False(t, s.CanUndo())
	assert.True(t, s.CanRedo())

	// A new command discards the redo history.
	s.Do(NewAddTerrainLayerCommand(ctx, h))
	assert.False(t, s.CanRedo())
	assert.Equal(t, 1, s.Len())

	s.Clear()
	assert.False(t, s.CanUndo())
	_, ok = s.RedoName()
	assert.False(t, ok)
	assert.Len(t, tr.Layers, 1, "clearing the history leaves the scene alone")
}

func TestStackLimit(t *testing.T) {
	ctx, h, _ := newTerrainScene(t)
	s := NewStack(ctx, WithLimit(2))
	for range 3 {
		s.Do(NewAddTerrainLayerCommand(ctx, h))
	}
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Undo())
	assert.True(t, s.Undo())
	assert.False(t, s.Undo())
}

func TestNewStackRequiresGraph(t *testing.T) {
	assert.Panics(t, func() { NewStack(&SceneContext{}) })
}
