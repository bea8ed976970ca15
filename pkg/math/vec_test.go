package math

import (
	"testing"
)

func TestVec2Aspect(t *testing.T) {
	tests := []struct {
		v    Vec2
		want float32
	}{
		{Vec2{1, 4}, 0.25},
		{Vec2{-3, 1}, 3},
		{Vec2{0, 0}, 1},
	}
	for _, tt := range tests {
		if got := tt.v.Aspect(); got != tt.want {
			t.Errorf("Vec2%v.Aspect() = %v, want %v", tt.v, got, tt.want)
		}
	}

	if got := (Vec2{2, 0}).Aspect(); got < 1e30 {
		t.Errorf("Vec2{2,0}.Aspect() = %v, want +Inf", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Midpoint(t *testing.T) {
	got := Vec3{0, 2, -4}.Midpoint(Vec3{4, 0, 0})
	want := Vec3{2, 1, -2}
	if got != want {
		t.Errorf("Vec3.Midpoint() = %v, want %v", got, want)
	}
}
