package stack

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakfindr/peakfindr/internal/model"
)

func items(n int) []model.FeedItem {
	out := make([]model.FeedItem, n)
	for i := range out {
		out[i] = model.FeedItem{Key: model.NewKey()}
	}
	return out
}

func TestPolicy_IdleStack(t *testing.T) {
	p := NewPolicy(DefaultConfig())
	prefix := items(5)

	got := p.Compute(prefix, model.GestureState{})
	require.Len(t, got, 3, "only N cards are drawn")

	expected := []model.VisibleTransform{
		{Key: prefix[0].Key, Scale: 1.0, ZOrder: 3},
		{Key: prefix[1].Key, VerticalOffset: 8, Scale: 0.96, ZOrder: 2},
		{Key: prefix[2].Key, VerticalOffset: 16, Scale: 0.92, ZOrder: 1},
	}
	for i := range expected {
		assert.Equal(t, expected[i].Key, got[i].Key)
		assert.InDelta(t, expected[i].VerticalOffset, got[i].VerticalOffset, 1e-9)
		assert.InDelta(t, expected[i].Scale, got[i].Scale, 1e-9)
		assert.Equal(t, expected[i].ZOrder, got[i].ZOrder)
		assert.Zero(t, got[i].HorizontalOffset)
		assert.Zero(t, got[i].Rotation)
	}
}

func TestPolicy_ScaleCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Visible = 6
	p := NewPolicy(cfg)

	got := p.Compute(items(6), model.GestureState{})
	for i, tr := range got[1:] {
		assert.GreaterOrEqual(t, tr.Scale, 1.0-cfg.ScaleCap-1e-9, "card %d", i+1)
	}
	assert.InDelta(t, 0.92, got[5].Scale, 1e-9)
}

func TestPolicy_TopFollowsGesture(t *testing.T) {
	p := NewPolicy(DefaultConfig())
	prefix := items(3)
	g := model.GestureState{
		Key:         prefix[0].Key,
		Active:      true,
		Translation: model.Vector{X: 150, Y: -12},
	}

	got := p.Compute(prefix, g)
	assert.Equal(t, 150.0, got[0].HorizontalOffset)
	assert.Equal(t, -12.0, got[0].VerticalOffset)
	assert.InDelta(t, 10.0, got[0].Rotation, 1e-9)
	assert.Equal(t, 1.0, got[0].Scale)

	for _, tr := range got[1:] {
		assert.Zero(t, tr.HorizontalOffset, "lower cards never follow the pointer")
		assert.Zero(t, tr.Rotation)
	}
}

func TestPolicy_GestureBoundToOtherKeyIgnored(t *testing.T) {
	p := NewPolicy(DefaultConfig())
	prefix := items(2)
	g := model.GestureState{Key: model.NewKey(), Active: true, Translation: model.Vector{X: 90}}

	got := p.Compute(prefix, g)
	assert.Zero(t, got[0].HorizontalOffset)
}

func TestPolicy_ShortFeed(t *testing.T) {
	p := NewPolicy(DefaultConfig())
	assert.Empty(t, p.Compute(nil, model.GestureState{}))

	got := p.Compute(items(1), model.GestureState{})
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ZOrder, "top is always frontmost at N")
}

func TestPolicy_Deterministic(t *testing.T) {
	p := NewPolicy(DefaultConfig())
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		prefix := items(1 + rng.Intn(5))
		g := model.GestureState{
			Key:         prefix[0].Key,
			Active:      rng.Intn(2) == 0,
			Translation: model.Vector{X: rng.Float64()*600 - 300, Y: rng.Float64()*200 - 100},
		}
		first := p.Compute(prefix, g)
		second := p.Compute(prefix, g)
		require.Equal(t, first, second)
	}
}

func TestPolicy_Ordered(t *testing.T) {
	p := NewPolicy(DefaultConfig())
	prefix := items(3)

	got := p.Ordered(prefix, model.GestureState{})
	require.Len(t, got, 3)
	assert.Equal(t, prefix[2].Key, got[0].Key)
	assert.Equal(t, prefix[0].Key, got[2].Key)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	bad := []Config{
		{Visible: 0, RotationDivisor: 15},
		{Visible: 3, RotationDivisor: 0},
		{Visible: 3, RotationDivisor: 15, ScaleCap: 1},
		{Visible: 3, RotationDivisor: 15, OffsetStep: -1},
		{Visible: 3, RotationDivisor: 15, OffsetStep: math.NaN()},
		{Visible: 3, RotationDivisor: 15, OffsetStep: math.Inf(1)},
		{Visible: 3, RotationDivisor: 15, ScaleStep: math.NaN()},
		{Visible: 3, RotationDivisor: 15, ScaleStep: math.Inf(1)},
		{Visible: 3, RotationDivisor: 15, ScaleCap: math.NaN()},
		{Visible: 3, RotationDivisor: 15, ScaleCap: math.Inf(-1)},
		{Visible: 3, RotationDivisor: math.NaN()},
		{Visible: 3, RotationDivisor: math.Inf(1)},
	}
	for _, cfg := range bad {
		assert.Error(t, cfg.Validate(), "%+v", cfg)
	}

	assert.Equal(t, DefaultConfig(), NewPolicy(Config{}).Config())
}
