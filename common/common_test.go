package common

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func TestNlerpQuatEndpoints(t *testing.T) {
	a := IdentityQuat()
	b := QuatFromAxisAngle(NewVec3(0, 1, 0), 1.2)

	start := NlerpQuat(a, b, 0)
	end := NlerpQuat(a, b, 1)

	assert.InDelta(t, a.W, start.W, eps)
	assert.InDelta(t, b.Y, end.Y, eps)
	assert.InDelta(t, b.W, end.W, eps)
	assert.InDelta(t, 1, QuatLength(NlerpQuat(a, b, 0.37)), eps)
}

func TestNlerpQuatKeepsOperandSigns(t *testing.T) {
	a := IdentityQuat()
	b := Quat{Z: 0.8, W: -0.6}

	mid := NlerpQuat(a, b, 0.5)

	// normalize((0, 0, 0.4, 0.2))
	assert.InDelta(t, 0, mid.X, eps)
	assert.InDelta(t, 0, mid.Y, eps)
	assert.InDelta(t, 0.894427, mid.Z, 1e-5)
	assert.InDelta(t, 0.447214, mid.W, 1e-5)
}

func TestNormalizeZeroQuatIsIdentity(t *testing.T) {
	assert.Equal(t, IdentityQuat(), NormalizeQuat(Quat{}))
}

func TestComposeTRSTransformsPoint(t *testing.T) {
	m := make([]float32, 16)
	rot := QuatFromAxisAngle(NewVec3(0, 0, 1), 3.14159265/2)
	ComposeTRS(m, NewVec3(10, 0, 0), rot, NewVec3(2, 2, 2))

	p := TransformPoint(m, NewVec3(1, 0, 0))

	assert.InDelta(t, 10, p.X, 1e-4)
	assert.InDelta(t, 2, p.Y, 1e-4)
	assert.InDelta(t, 0, p.Z, 1e-4)
}

func TestInvert4RoundTrip(t *testing.T) {
	m := make([]float32, 16)
	ComposeTRS(m, NewVec3(1, 2, 3), QuatFromAxisAngle(NewVec3(1, 1, 0), 0.7), NewVec3(1, 3, 2))
	inv := make([]float32, 16)
	require.True(t, Invert4(inv, m))

	out := make([]float32, 16)
	Mul4(out, m, inv)
	id := IdentityMatrix()
	for i := range out {
		assert.InDelta(t, id[i], out[i], 1e-4)
	}
}

func TestAABB(t *testing.T) {
	box := EmptyAABB()
	assert.False(t, box.IsValid())

	box.AddPoint(NewVec3(-1, 0, 2))
	box.AddPoint(NewVec3(3, -2, 1))
	assert.True(t, box.IsValid())
	assert.Equal(t, NewVec3(-1, -2, 1), box.Min)
	assert.Equal(t, NewVec3(3, 0, 2), box.Max)

	merged := box.Union(EmptyAABB())
	assert.Equal(t, box, merged)
	assert.Equal(t, box, EmptyAABB().Union(box))

	m := make([]float32, 16)
	ComposeTRS(m, NewVec3(10, 0, 0), IdentityQuat(), NewVec3(1, 1, 1))
	moved := box.Transform(m)
	assert.InDelta(t, 9, moved.Min.X, eps)
	assert.InDelta(t, 13, moved.Max.X, eps)
}

func TestFrustumIntersectsAABB(t *testing.T) {
	proj := make([]float32, 16)
	Perspective(proj, 1.0, 1.0, 0.1, 100)
	f := ExtractFrustumFromMatrix(proj)

	inFront := AABB{Min: NewVec3(-1, -1, -11), Max: NewVec3(1, 1, -9)}
	behind := AABB{Min: NewVec3(-1, -1, 9), Max: NewVec3(1, 1, 11)}

	assert.True(t, f.IntersectsAABB(inFront))
	assert.False(t, f.IntersectsAABB(behind))
	assert.False(t, f.IntersectsAABB(EmptyAABB()))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 3, 4))
	assert.Equal(t, "", Coalesce("", ""))
}

func TestConfigureLogger(t *testing.T) {
	l, hook := test.NewNullLogger()
	SetLogger(l)
	defer SetLogger(nil)

	require.NoError(t, ConfigureLogger("warn", "json"))
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())

	Logger("test").Info("dropped")
	Logger("test").Warn("kept")
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "test", hook.LastEntry().Data["component"])

	assert.Error(t, ConfigureLogger("loud", ""))
	assert.Error(t, ConfigureLogger("", "xml"))
}
