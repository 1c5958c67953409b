package math3d

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const eps = 1e-9

// dense converts m to a gonum matrix, keeping the row/column meaning.
func dense(m Mat4) *mat.Dense {
	d := mat.NewDense(4, 4, nil)
	for row := range 4 {
		for col := range 4 {
			d.Set(row, col, m.Get(row, col))
		}
	}
	return d
}

func testAngles() []float64 {
	return []float64{0, 0.1, math.Pi / 6, math.Pi / 2, 2, math.Pi, -1.3, 7.5}
}

func TestRotationOrthonormal(t *testing.T) {
	builders := map[string]func(float64) Mat4{
		"x": RotateX,
		"y": RotateY,
		"z": RotateZ,
	}

	for name, build := range builders {
		for _, theta := range testAngles() {
			r := build(theta)

			if got := r.Mul(r.Transpose()); !got.ApproxEqual(Identity(), eps) {
				t.Errorf("R%s(%v)·R^T = %v, want identity", name, theta, got)
			}
			if det := r.Determinant(); math.Abs(det-1) > eps {
				t.Errorf("det(R%s(%v)) = %v, want 1", name, theta, det)
			}
			if det := mat.Det(dense(r)); math.Abs(det-1) > eps {
				t.Errorf("gonum det(R%s(%v)) = %v, want 1", name, theta, det)
			}

			var prod mat.Dense
			prod.Mul(dense(r), dense(r).T())
			if !mat.EqualApprox(&prod, mat.NewDiagDense(4, []float64{1, 1, 1, 1}), eps) {
				t.Errorf("gonum R%s(%v)·R^T is not identity", name, theta)
			}
		}
	}
}

func TestRotationRightHanded(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"x turns y into z", RotateX(math.Pi / 2), V3(0, 1, 0), V3(0, 0, 1)},
		{"y turns z into x", RotateY(math.Pi / 2), V3(0, 0, 1), V3(1, 0, 0)},
		{"z turns x into y", RotateZ(math.Pi / 2), V3(1, 0, 0), V3(0, 1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.m.MulVec3(tc.in)
			if got.Distance(tc.want) > eps {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRotationRoundTrip(t *testing.T) {
	points := []Vec3{V3(1, 2, 3), V3(-4, 0.5, 9), V3(0, 0, 0), V3(100, -100, 0.001)}

	for _, theta := range testAngles() {
		r := RotateX(theta).Mul(RotateY(theta * 0.7)).Mul(RotateZ(-theta * 1.3))
		inv := RotateZ(theta * 1.3).Mul(RotateY(-theta * 0.7)).Mul(RotateX(-theta))

		for _, p := range points {
			got := inv.MulVec3(r.MulVec3(p))
			if got.Distance(p) > 1e-9*math.Max(1, p.Len()) {
				t.Errorf("theta=%v: round trip of %v gave %v", theta, p, got)
			}
		}

		if !r.Mul(inv).ApproxEqual(Identity(), eps) {
			t.Errorf("theta=%v: R·R^-1 is not identity", theta)
		}
	}
}

func TestApplyNormalizesW(t *testing.T) {
	proj := Perspective(0.1, 100, 60, 1.5)
	points := []Vec4{
		V4(1, 2, 3, 1),
		V4(-5, 0.25, 42, 1),
		V4(0, 0, 0.1, 1),
		V4(3, 3, 3, 2),
	}

	for _, p := range points {
		got, ok := proj.Apply(p)
		if !ok {
			t.Fatalf("Apply(%v) reported no projection", p)
		}
		if got.W != 1 {
			t.Errorf("Apply(%v).W = %v, want exactly 1", p, got.W)
		}
	}

	shear := Identity()
	shear[15] = 3
	got, ok := shear.Apply(V4(3, 6, 9, 1))
	if !ok || got.W != 1 || got.X != 1 || got.Y != 2 || got.Z != 3 {
		t.Errorf("divide by w=3 gave %v, %v", got, ok)
	}
}

func TestApplyZeroW(t *testing.T) {
	proj := Perspective(0.1, 100, 60, 1)

	// A point on the camera plane projects to w=0.
	got, ok := proj.Apply(V4(1, 1, 0, 1))
	if ok {
		t.Fatalf("expected no valid projection, got %v", got)
	}
	if got.W != 0 {
		t.Errorf("unnormalized W = %v, want 0", got.W)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	near, far := 0.5, 50.0
	proj := Perspective(near, far, 90, 1)

	tests := []struct {
		name string
		z    float64
		want float64
	}{
		{"near plane", near, 0},
		{"far plane", far, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := proj.Apply(V4(0, 0, tc.z, 1))
			if !ok {
				t.Fatal("no projection")
			}
			if math.Abs(p.Z-tc.want) > eps {
				t.Errorf("z=%v maps to %v, want %v", tc.z, p.Z, tc.want)
			}
		})
	}

	// w before the divide is the view-space depth.
	clip := proj.MulVec4(V4(0, 0, 7, 1))
	if clip.W != 7 {
		t.Errorf("clip.W = %v, want 7", clip.W)
	}

	// 90 degrees vertical: a point at 45 degrees lands on the top edge.
	edge, _ := proj.Apply(V4(0, 10, 10, 1))
	if math.Abs(edge.Y-1) > eps {
		t.Errorf("edge.Y = %v, want 1", edge.Y)
	}
}

func TestOrthographicDepthRange(t *testing.T) {
	proj := Orthographic(-2, 2, -1, 1, 1, 11)

	p, _ := proj.Apply(V4(2, -1, 6, 1))
	want := V4(1, -1, 0.5, 1)
	if math.Abs(p.X-want.X) > eps || math.Abs(p.Y-want.Y) > eps || math.Abs(p.Z-want.Z) > eps {
		t.Errorf("got %v, want %v", p, want)
	}
}

func TestCross(t *testing.T) {
	tests := []struct {
		a, b, want Vec3
	}{
		{V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)},
		{V3(0, 1, 0), V3(0, 0, 1), V3(1, 0, 0)},
		{V3(0, 0, 1), V3(1, 0, 0), V3(0, 1, 0)},
		{V3(2, 3, 4), V3(5, 6, 7), V3(-3, 6, -3)},
	}

	for _, tc := range tests {
		if got := tc.a.Cross(tc.b); got != tc.want {
			t.Errorf("%v × %v = %v, want %v", tc.a, tc.b, got, tc.want)
		}
		if got := tc.b.Cross(tc.a); got != tc.want.Negate() {
			t.Errorf("%v × %v = %v, want %v", tc.b, tc.a, got, tc.want.Negate())
		}
	}
}

func TestUnitDegenerate(t *testing.T) {
	if _, ok := V3(0, 0, 0).Unit(); ok {
		t.Error("zero vector should not normalize")
	}
	u, ok := V3(0, 3, 4).Unit()
	if !ok || math.Abs(u.Len()-1) > eps {
		t.Errorf("Unit() = %v, %v", u, ok)
	}
}
