package material

// Factory manufactures the materials engine code creates on its own, such as the material of a
// freshly added terrain layer.
type Factory interface {
	// TerrainLayerMaterial returns a new material for a terrain layer.
	//
	// Returns:
	//   - *SharedMaterial: a material with a "maskTexture" sampler property
	TerrainLayerMaterial() *SharedMaterial
}

// DefaultFactory builds the standard materials.
type DefaultFactory struct{}

var _ Factory = DefaultFactory{}

// TerrainLayerMaterial returns a new StandardTerrainLayer material.
func (DefaultFactory) TerrainLayerMaterial() *SharedMaterial {
	return NewSharedMaterial(StandardTerrainLayer())
}
