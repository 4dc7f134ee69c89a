package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestIntegrate(t *testing.T) {
	tests := []struct {
		name    string
		body    Body
		wantPos mgl64.Vec2
		wantVel mgl64.Vec2
	}{
		{"free_flight", movingBody(100, 100, 2, 3, 10, 1), mgl64.Vec2{102, 103}, mgl64.Vec2{2, 3}},
		{"left_wall", movingBody(11, 100, -3, 0, 10, 1), mgl64.Vec2{10, 100}, mgl64.Vec2{3, 0}},
		{"right_wall", movingBody(788, 100, 5, 0, 10, 1), mgl64.Vec2{790, 100}, mgl64.Vec2{-5, 0}},
		{"top_wall", movingBody(100, 12, 0, -4, 10, 1), mgl64.Vec2{100, 10}, mgl64.Vec2{0, 4}},
		{"bottom_wall", movingBody(100, 789, 1, 2, 10, 1), mgl64.Vec2{101, 790}, mgl64.Vec2{1, -2}},
		{"corner", movingBody(795, 795, 3, 3, 10, 1), mgl64.Vec2{790, 790}, mgl64.Vec2{-3, -3}},
		{"inward_left_untouched", movingBody(5, 100, 1, 0, 10, 1), mgl64.Vec2{10, 100}, mgl64.Vec2{1, 0}},
		{"inward_bottom_untouched", movingBody(100, 799, 0, -2, 10, 1), mgl64.Vec2{100, 790}, mgl64.Vec2{0, -2}},
		{"resting_on_wall", movingBody(10, 100, 0, 0, 10, 1), mgl64.Vec2{10, 100}, mgl64.Vec2{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodies := []Body{tt.body}
			Integrate(bodies, world)
			if bodies[0].Pos != tt.wantPos {
				t.Errorf("Pos = %v, expected %v", bodies[0].Pos, tt.wantPos)
			}
			if bodies[0].Vel != tt.wantVel {
				t.Errorf("Vel = %v, expected %v", bodies[0].Vel, tt.wantVel)
			}
		})
	}
}

func TestIntegrate_OffsetBounds(t *testing.T) {
	bounds := Region{X: 100, Y: 50, Width: 200, Height: 100}
	bodies := []Body{movingBody(105, 55, -1, -1, 4, 1)}

	Integrate(bodies, bounds)

	if bodies[0].Pos != (mgl64.Vec2{104, 54}) {
		t.Errorf("Pos = %v, expected (104, 54)", bodies[0].Pos)
	}
	if bodies[0].Vel != (mgl64.Vec2{1, 1}) {
		t.Errorf("Vel = %v, expected (1, 1)", bodies[0].Vel)
	}
}

func TestIntegrate_NeverAddsEnergy(t *testing.T) {
	bodies := randomBodies(200, 11)
	for i := range bodies {
		bodies[i].Vel = bodies[i].Vel.Mul(20)
	}

	for step := 0; step < 100; step++ {
		before := make([]float64, len(bodies))
		for i := range bodies {
			before[i] = bodies[i].Vel.Dot(bodies[i].Vel)
		}
		Integrate(bodies, world)
		for i := range bodies {
			if after := bodies[i].Vel.Dot(bodies[i].Vel); after > before[i]+tolerance {
				t.Fatalf("step %d body %d: speed² grew from %v to %v", step, i, before[i], after)
			}
		}
	}
}

func TestContain(t *testing.T) {
	bodies := []Body{
		movingBody(-3, 400, -1, 0, 10, 1),
		movingBody(400, 805, 0, 1, 10, 1),
		movingBody(400, 400, 7, 7, 10, 1),
	}

	Contain(bodies, world)

	expected := []mgl64.Vec2{{10, 400}, {400, 790}, {400, 400}}
	vels := []mgl64.Vec2{{-1, 0}, {0, 1}, {7, 7}}
	for i := range bodies {
		if bodies[i].Pos != expected[i] {
			t.Errorf("body %d Pos = %v, expected %v", i, bodies[i].Pos, expected[i])
		}
		if bodies[i].Vel != vels[i] {
			t.Errorf("body %d Vel changed to %v", i, bodies[i].Vel)
		}
	}
}
