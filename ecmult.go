package p384

// ladderBits is the bit length of a regularised scalar. Every scalar in
// [1, n-1] is lifted to k+n or k+2n, whichever has bit 384 set, so the ladder
// always runs the same number of steps.
const ladderBits = vliWords*64 + 1

// regularizeScalar sets r to the low 384 bits of k+n or k+2n so that the full
// 385-bit value has its top bit set. Both represent the same multiple of any
// point of order n.
func regularizeScalar(r, k *vli) {
	var k0, k1 vli
	carry := k0.add(k, &curveN)
	k1.add(&k0, &curveN)
	if carry != 0 {
		r.set(&k0)
	} else {
		r.set(&k1)
	}
	k0.clear()
	k1.clear()
}

// ecmult sets r = k*a using a co-Z Montgomery ladder. R0 and R1 always
// differ by a, and each step performs one conjugate addition and one
// addition. When initialZ is non-nil it randomises the projective
// representation without changing the affine result.
//
// The result is the point at infinity when a is infinity or k is zero. The
// scalars 1, n-2 and n-1 would pass through infinity inside the ladder and are
// answered directly instead. A point with x = 0 falls back to double-and-add.
func ecmult(r *affinePoint, a *affinePoint, k *vli, initialZ *vli) {
	if a.isInfinity() || k.isZero() {
		r.setInfinity()
		return
	}

	var nm1, nm2 vli
	nm1.sub(&curveN, &vliOne)
	nm2.sub(&nm1, &vliOne)
	switch {
	case k.cmp(&vliOne) == 0:
		*r = *a
		return
	case k.cmp(&nm1) == 0:
		r.negate(a)
		return
	case k.cmp(&nm2) == 0:
		var twice affinePoint
		pointSum(&twice, a, a)
		r.negate(&twice)
		return
	}

	// The 1/Z recovery at the end of the ladder divides by a.x
	if a.x.isZero() {
		ecmultShamir(r, &vli{}, a, k)
		return
	}

	var scalar vli
	regularizeScalar(&scalar, k)

	var rx, ry [2]vli
	var z vli
	rx[1].set(&a.x)
	ry[1].set(&a.y)

	// R1 = 2a, R0 = a, accounting for the implicit top bit
	xyczInitialDouble(&rx[1], &ry[1], &rx[0], &ry[0], initialZ)

	for i := uint(ladderBits - 2); i > 0; i-- {
		nb := 1
		if scalar.testBit(i) {
			nb = 0
		}
		xyczAddC(&rx[1-nb], &ry[1-nb], &rx[nb], &ry[nb])
		xyczAdd(&rx[nb], &ry[nb], &rx[1-nb], &ry[1-nb])
	}

	nb := 1
	if scalar.testBit(0) {
		nb = 0
	}
	xyczAddC(&rx[1-nb], &ry[1-nb], &rx[nb], &ry[nb])

	// Recover 1/Z from the ladder state and the affine input
	z.modSub(&rx[1], &rx[0], &curveP) // X1 - X0
	z.fieldMul(&z, &ry[1-nb])         // Yb * (X1 - X0)
	z.fieldMul(&z, &a.x)              // xP * Yb * (X1 - X0)
	z.modInv(&z, &curveP)             // 1 / (xP * Yb * (X1 - X0))
	z.fieldMul(&z, &a.y)              // yP / (xP * Yb * (X1 - X0))
	z.fieldMul(&z, &rx[1-nb])         // Xb * yP / (xP * Yb * (X1 - X0))

	xyczAdd(&rx[nb], &ry[nb], &rx[1-nb], &ry[1-nb])
	applyZ(&rx[0], &ry[0], &z)

	r.x.set(&rx[0])
	r.y.set(&ry[0])

	scalar.clear()
	for i := range rx {
		rx[i].clear()
		ry[i].clear()
	}
}

// ecmultGen sets r = k*G
func ecmultGen(r *affinePoint, k *vli) {
	ecmult(r, &curveG, k, nil)
}

// pointSum sets r = a + b for two finite affine points. It handles a = b by
// doubling and returns the point at infinity when a = -b.
func pointSum(r, a, b *affinePoint) {
	if a.x.cmp(&b.x) == 0 {
		if a.y.cmp(&b.y) != 0 {
			r.setInfinity()
			return
		}
		x, y, z := a.x, a.y, vliOne
		doubleJacobian(&x, &y, &z)
		toAffine(&x, &y, &z)
		r.x, r.y = x, y
		return
	}

	var z vli
	tx, ty := a.x, a.y
	sx, sy := b.x, b.y
	z.modSub(&sx, &tx, &curveP)
	xyczAdd(&tx, &ty, &sx, &sy)
	toAffine(&sx, &sy, &z)
	r.x, r.y = sx, sy
}

// ecmultShamir sets r = u1*G + u2*q by walking both scalars at once with a
// four entry table {O, G, q, G+q} indexed by the current bit pair. The result
// is variable time and intended for verification only.
func ecmultShamir(r *affinePoint, u1 *vli, q *affinePoint, u2 *vli) {
	var sum affinePoint
	pointSum(&sum, &curveG, q)

	table := [4]*affinePoint{nil, &curveG, q, &sum}
	if sum.isInfinity() {
		table[3] = nil
	}

	numBits := u1.numBits()
	if n := u2.numBits(); n > numBits {
		numBits = n
	}
	if numBits == 0 {
		r.setInfinity()
		return
	}

	index := func(i uint) int {
		idx := 0
		if u1.testBit(i) {
			idx |= 1
		}
		if u2.testBit(i) {
			idx |= 2
		}
		return idx
	}

	var rx, ry, z vli
	var tx, ty, tz vli
	infinity := true
	if p := table[index(numBits-1)]; p != nil {
		rx.set(&p.x)
		ry.set(&p.y)
		z.set(&vliOne)
		infinity = false
	}

	for i := int(numBits) - 2; i >= 0; i-- {
		doubleJacobian(&rx, &ry, &z)

		p := table[index(uint(i))]
		if p == nil {
			continue
		}
		if infinity {
			rx.set(&p.x)
			ry.set(&p.y)
			z.set(&vliOne)
			infinity = false
			continue
		}
		tx.set(&p.x)
		ty.set(&p.y)
		applyZ(&tx, &ty, &z)
		tz.modSub(&rx, &tx, &curveP) // Z = x1' - x2
		xyczAdd(&tx, &ty, &rx, &ry)
		z.fieldMul(&z, &tz)
	}

	if infinity {
		r.setInfinity()
		return
	}
	toAffine(&rx, &ry, &z)
	r.x.set(&rx)
	r.y.set(&ry)
}
