package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func held(keys ...string) InputState {
	var s InputState
	for _, k := range keys {
		s.OnKeyDown(k)
	}
	return s
}

func TestIntegrate(t *testing.T) {
	f := DefaultField()
	center := f.Center()
	assert.Equal(t, 375.0, center)

	tests := []struct {
		name string
		prev float64
		in   InputState
		want float64
	}{
		{"无按键保持不动", center, held(), center},
		{"只按左", center, held(KeyIDLeft), center - f.Step},
		{"只按右", center, held(KeyIDRight), center + f.Step},
		{"左右同时按住相互抵消", center, held(KeyIDLeft, KeyIDRight), center},
		{"左边界继续向左", 0, held(KeyIDLeft), 0},
		{"右边界继续向右", f.MaxX(), held(KeyIDRight), f.MaxX()},
		{"靠近左边界被裁剪", 3, held(KeyIDLeft), 0},
		{"靠近右边界被裁剪", f.MaxX() - 4, held(KeyIDRight), f.MaxX()},
		{"边界上同时按住", 0, held(KeyIDLeft, KeyIDRight), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Integrate(tt.prev, tt.in, f))
		})
	}
}

func TestIntegrate_StaysInBounds(t *testing.T) {
	f := Field{Width: 120, ActorWidth: 20, Step: 7}
	combos := []InputState{
		held(), held(KeyIDLeft), held(KeyIDRight), held(KeyIDLeft, KeyIDRight),
	}
	for p := 0.0; p <= f.MaxX(); p += 0.5 {
		for _, in := range combos {
			got := Integrate(p, in, f)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, f.MaxX())
		}
	}
}

func TestIntegrate_Scenario(t *testing.T) {
	f := Field{Width: 800, ActorWidth: 50, Step: 10}
	x := 375.0

	var in InputState
	in.OnKeyDown(KeyIDRight)
	for i := 0; i < 5; i++ {
		x = Integrate(x, in, f)
	}
	assert.Equal(t, 425.0, x)

	in.OnKeyUp(KeyIDRight)
	in.OnKeyDown(KeyIDLeft)
	for i := 0; i < 3; i++ {
		x = Integrate(x, in, f)
	}
	assert.Equal(t, 395.0, x)
}

func TestField_Validate(t *testing.T) {
	assert.NoError(t, DefaultField().Validate())
	assert.Error(t, Field{Width: 0, ActorWidth: 1}.Validate())
	assert.Error(t, Field{Width: 10, ActorWidth: 0}.Validate())
	assert.Error(t, Field{Width: 10, ActorWidth: 11}.Validate())
	assert.Error(t, Field{Width: 10, ActorWidth: 5, Step: -1}.Validate())
	// 角色与场地等宽：唯一合法位置是 0
	f := Field{Width: 10, ActorWidth: 10, Step: 1}
	assert.NoError(t, f.Validate())
	assert.Equal(t, 0.0, Integrate(0, held(KeyIDRight), f))
}
