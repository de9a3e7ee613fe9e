package p384

// affinePoint is a point on P-384 in affine coordinates. The point at
// infinity is represented as (0, 0), which is not on the curve.
type affinePoint struct {
	x, y vli
}

// Generator point G for P-384
// G = (0xAA87CA22BE8B05378EB1C71EF320AD746E1D3B628BA79B9859F741E082542A385502F25DBF55296C3A545E3872760AB7,
//
//	0x3617DE4A96262C6F5D9E98BF9292DC29F8F41DBD289A147CE9DA3113B5F0B8C00A60B1CE1D7E819D7A431D7C90EA0E5F)
var curveG = affinePoint{
	x: vli{
		0x3A545E3872760AB7, 0x5502F25DBF55296C, 0x59F741E082542A38,
		0x6E1D3B628BA79B98, 0x8EB1C71EF320AD74, 0xAA87CA22BE8B0537,
	},
	y: vli{
		0x7A431D7C90EA0E5F, 0x0A60B1CE1D7E819D, 0xE9DA3113B5F0B8C0,
		0xF8F41DBD289A147C, 0x5D9E98BF9292DC29, 0x3617DE4A96262C6F,
	},
}

// isInfinity returns true if r is the point at infinity
func (r *affinePoint) isInfinity() bool {
	return r.x.isZero() && r.y.isZero()
}

// setInfinity sets r to the point at infinity
func (r *affinePoint) setInfinity() {
	r.x.clear()
	r.y.clear()
}

// isValid checks that r is a finite point with canonical coordinates that
// satisfies y^2 = x^3 - 3x + b
func (r *affinePoint) isValid() bool {
	if r.isInfinity() {
		return false
	}
	if r.x.cmp(&curveP) >= 0 || r.y.cmp(&curveP) >= 0 {
		return false
	}
	var lhs, rhs vli
	lhs.fieldSqr(&r.y)
	rhs.curveRHS(&r.x)
	return lhs.cmp(&rhs) == 0
}

// equal returns true if r and a are the same point
func (r *affinePoint) equal(a *affinePoint) bool {
	return r.x.cmp(&a.x) == 0 && r.y.cmp(&a.y) == 0
}

// negate sets r = -a
func (r *affinePoint) negate(a *affinePoint) {
	r.x.set(&a.x)
	r.y.modSub(&vli{}, &a.y, &curveP)
}

// clear zeroes both coordinates
func (r *affinePoint) clear() {
	r.setInfinity()
}

// doubleJacobian doubles the Jacobian point (x1, y1, z1) in place. It does
// nothing for the point at infinity (z1 = 0).
func doubleJacobian(x1, y1, z1 *vli) {
	if z1.isZero() {
		return
	}

	var t4, t5 vli
	t4.fieldSqr(y1)     // t4 = y1^2
	t5.fieldMul(x1, &t4) // t5 = x1*y1^2 = A
	t4.fieldSqr(&t4)     // t4 = y1^4
	y1.fieldMul(y1, z1)  // t2 = y1*z1 = z3
	z1.fieldSqr(z1)      // t3 = z1^2

	x1.modAdd(x1, z1, &curveP) // t1 = x1 + z1^2
	z1.modAdd(z1, z1, &curveP) // t3 = 2*z1^2
	z1.modSub(x1, z1, &curveP) // t3 = x1 - z1^2
	x1.fieldMul(x1, z1)        // t1 = x1^2 - z1^4

	z1.modAdd(x1, x1, &curveP) // t3 = 2*(x1^2 - z1^4)
	x1.modAdd(x1, z1, &curveP) // t1 = 3*(x1^2 - z1^4)
	x1.halve(&curveP)          // t1 = 3/2*(x1^2 - z1^4) = B

	z1.fieldSqr(x1)             // t3 = B^2
	z1.modSub(z1, &t5, &curveP) // t3 = B^2 - A
	z1.modSub(z1, &t5, &curveP) // t3 = B^2 - 2A = x3
	t5.modSub(&t5, z1, &curveP) // t5 = A - x3
	x1.fieldMul(x1, &t5)        // t1 = B*(A - x3)
	t4.modSub(x1, &t4, &curveP) // t4 = B*(A - x3) - y1^4 = y3

	x1.set(z1)
	z1.set(y1)
	y1.set(&t4)
}

// applyZ sets (x1, y1) = (x1*z^2, y1*z^3)
func applyZ(x1, y1, z *vli) {
	var t1 vli
	t1.fieldSqr(z)
	x1.fieldMul(x1, &t1)
	t1.fieldMul(&t1, z)
	y1.fieldMul(y1, &t1)
}

// toAffine converts the Jacobian point (x1, y1, z) to affine coordinates in
// place. A zero z yields the point at infinity.
func toAffine(x1, y1, z *vli) {
	var zInv vli
	zInv.modInv(z, &curveP)
	applyZ(x1, y1, &zInv)
}

// xyczInitialDouble takes P = (x1, y1) and produces 2P in (x1, y1) and P in
// (x2, y2), both sharing the same Z. initialZ, when non-nil, is used as the
// starting Z to randomise the projective representation.
func xyczInitialDouble(x1, y1, x2, y2, initialZ *vli) {
	z := vliOne
	if initialZ != nil {
		z.set(initialZ)
	}

	x2.set(x1)
	y2.set(y1)

	applyZ(x1, y1, &z)
	doubleJacobian(x1, y1, &z)
	applyZ(x2, y2, &z)
}

// xyczAdd takes P = (x1, y1) and Q = (x2, y2) sharing a Z coordinate and sets
// (x2, y2) = P + Q and (x1, y1) = P re-expressed under the new common Z.
func xyczAdd(x1, y1, x2, y2 *vli) {
	var t5 vli
	t5.modSub(x2, x1, &curveP) // t5 = x2 - x1
	t5.fieldSqr(&t5)           // t5 = (x2 - x1)^2 = A
	x1.fieldMul(x1, &t5)       // t1 = x1*A = B
	x2.fieldMul(x2, &t5)       // t3 = x2*A = C
	y2.modSub(y2, y1, &curveP) // t4 = y2 - y1
	t5.fieldSqr(y2)            // t5 = (y2 - y1)^2 = D

	t5.modSub(&t5, x1, &curveP) // t5 = D - B
	t5.modSub(&t5, x2, &curveP) // t5 = D - B - C = x3
	x2.modSub(x2, x1, &curveP)  // t3 = C - B
	y1.fieldMul(y1, x2)         // t2 = y1*(C - B)
	x2.modSub(x1, &t5, &curveP) // t3 = B - x3
	y2.fieldMul(y2, x2)         // t4 = (y2 - y1)*(B - x3)
	y2.modSub(y2, y1, &curveP)  // t4 = y3

	x2.set(&t5)
}

// xyczAddC takes P = (x1, y1) and Q = (x2, y2) sharing a Z coordinate and sets
// (x2, y2) = P + Q and (x1, y1) = P - Q under a new common Z.
func xyczAddC(x1, y1, x2, y2 *vli) {
	var t5, t6, t7 vli
	t5.modSub(x2, x1, &curveP) // t5 = x2 - x1
	t5.fieldSqr(&t5)           // t5 = (x2 - x1)^2 = A
	x1.fieldMul(x1, &t5)       // t1 = x1*A = B
	x2.fieldMul(x2, &t5)       // t3 = x2*A = C
	t5.modAdd(y2, y1, &curveP) // t5 = y2 + y1
	y2.modSub(y2, y1, &curveP) // t4 = y2 - y1

	t6.modSub(x2, x1, &curveP) // t6 = C - B
	y1.fieldMul(y1, &t6)       // t2 = y1*(C - B)
	t6.modAdd(x1, x2, &curveP) // t6 = B + C
	x2.fieldSqr(y2)            // t3 = (y2 - y1)^2
	x2.modSub(x2, &t6, &curveP) // t3 = x3

	t7.modSub(x1, x2, &curveP) // t7 = B - x3
	y2.fieldMul(y2, &t7)       // t4 = (y2 - y1)*(B - x3)
	y2.modSub(y2, y1, &curveP) // t4 = y3

	t7.fieldSqr(&t5)            // t7 = (y2 + y1)^2 = F
	t7.modSub(&t7, &t6, &curveP) // t7 = x3'
	t6.modSub(&t7, x1, &curveP)  // t6 = x3' - B
	t6.fieldMul(&t6, &t5)        // t6 = (y2 + y1)*(x3' - B)
	y1.modSub(&t6, y1, &curveP)  // t2 = y3'

	x1.set(&t7)
}
