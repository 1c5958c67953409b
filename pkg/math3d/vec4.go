package math3d

// Vec4 is a homogeneous point (x, y, z, w).
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Point lifts a Vec3 into homogeneous space with w=1.
func Point(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// Vec3 returns the Vec3 portion (ignoring W).
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Divide performs the perspective divide. After a successful divide W is
// exactly 1. When W is zero the point is returned untouched with ok=false.
func (v Vec4) Divide() (Vec4, bool) {
	if v.W == 0 {
		return v, false
	}
	w := v.W
	return Vec4{v.X / w, v.Y / w, v.Z / w, 1}, true
}
