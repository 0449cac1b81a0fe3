package geometry

import (
	"math"
	"testing"
)

func TestRelativeDistanceSymmetric(t *testing.T) {
	cases := []struct {
		a, b Pose
	}{
		{
			a: NewFromEuler(0, 0, 0, Euler{}),
			b: NewFromEuler(1000, 0, 0, Euler{}),
		},
		{
			a: NewFromEuler(-500, 200, 300, Euler{Yaw: 45}),
			b: NewFromEuler(1000, -1000, 500, Euler{Yaw: -30, Pitch: 10, Roll: 5}),
		},
		{
			a: NewFromEuler(0, 0, 0, Euler{Yaw: 90}),
			b: NewFromEuler(0, 0, 0, Euler{}),
		},
	}

	for i, c := range cases {
		dab, _, _ := c.a.Relative(c.b)
		dba, _, _ := c.b.Relative(c.a)
		if dab != dba {
			t.Errorf("case %d: distance not symmetric: a->b=%d b->a=%d", i, dab, dba)
		}
	}
}

func TestRelativeAxisAligned(t *testing.T) {
	a := NewFromEuler(0, 0, 0, Euler{})
	b := NewFromEuler(1000, 0, 0, Euler{})

	dist, az, el := a.Relative(b)
	if dist != 1000 {
		t.Errorf("expected distance 1000, got %d", dist)
	}
	if az != 0 {
		t.Errorf("expected azimuth 0, got %d", az)
	}
	if el != 0 {
		t.Errorf("expected elevation 0, got %d", el)
	}
}

func TestRelativeYawRotatesAzimuth(t *testing.T) {
	// self faces +90 degrees yaw; other is directly "east" of self in
	// world coordinates, which lies off to one side in self's body frame.
	a := NewFromEuler(0, 0, 0, Euler{Yaw: 90})
	b := NewFromEuler(1000, 0, 0, Euler{})

	_, az, _ := a.Relative(b)
	if az != -90 && az != 90 {
		t.Errorf("expected azimuth near +/-90 after 90 degree yaw, got %d", az)
	}
}

func TestDistanceSaturatesAtU16Max(t *testing.T) {
	a := NewFromEuler(-32000, -32000, -32000, Euler{})
	b := NewFromEuler(32000, 32000, 32000, Euler{})

	dist, _, _ := a.Relative(b)
	if dist != math.MaxUint16 {
		t.Errorf("expected saturated distance %d, got %d", math.MaxUint16, dist)
	}
}

func TestEulerQuaternionRoundTrip(t *testing.T) {
	cases := []Euler{
		{},
		{Yaw: 45},
		{Yaw: -90, Pitch: 30, Roll: -10},
		{Yaw: 179, Pitch: -89, Roll: 1},
	}

	for _, e := range cases {
		q := QuaternionFromEuler(e)
		back := q.Euler()

		if math.Abs(angleDiff(e.Yaw, back.Yaw)) > 1.0 {
			t.Errorf("yaw round trip: want %.2f got %.2f", e.Yaw, back.Yaw)
		}
		if math.Abs(angleDiff(e.Pitch, back.Pitch)) > 1.0 {
			t.Errorf("pitch round trip: want %.2f got %.2f", e.Pitch, back.Pitch)
		}
		if math.Abs(angleDiff(e.Roll, back.Roll)) > 1.0 {
			t.Errorf("roll round trip: want %.2f got %.2f", e.Roll, back.Roll)
		}
	}
}

func angleDiff(a, b float64) float64 {
	d := a - b
	for d > 180 {
		d -= 360
	}
	for d < -180 {
		d += 360
	}
	return d
}

func TestElevationClamped(t *testing.T) {
	a := NewFromEuler(0, 0, 0, Euler{})
	b := NewFromEuler(0, 0, 30000, Euler{})

	_, _, el := a.Relative(b)
	if el != 90 {
		t.Errorf("expected elevation clamped to 90, got %d", el)
	}
}
