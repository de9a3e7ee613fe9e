package p384

// Field and group order constants for P-384, least significant word first.
var (
	// curveP is the field prime p = 2^384 - 2^128 - 2^96 + 2^32 - 1
	curveP = vli{
		0x00000000FFFFFFFF, 0xFFFFFFFF00000000, 0xFFFFFFFFFFFFFFFE,
		0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF,
	}

	// curveB is the curve coefficient b in y^2 = x^3 - 3x + b
	curveB = vli{
		0x2A85C8EDD3EC2AEF, 0xC656398D8A2ED19D, 0x0314088F5013875A,
		0x181D9C6EFE814112, 0x988E056BE3F82D19, 0xB3312FA7E23EE7E4,
	}

	// curveN is the order of the generator
	curveN = vli{
		0xECEC196ACCC52973, 0x581A0DB248B0A77A, 0xC7634D81F4372DDF,
		0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF,
	}

	vliOne   = vli{1}
	vliThree = vli{3}
)

// modAdd sets r = (a + b) mod m. Both operands must already be below m.
func (r *vli) modAdd(a, b, m *vli) {
	carry := r.add(a, b)
	if carry != 0 || r.cmp(m) >= 0 {
		r.sub(r, m)
	}
}

// modSub sets r = (a - b) mod m. Both operands must already be below m.
func (r *vli) modSub(a, b, m *vli) {
	if r.sub(a, b) != 0 {
		r.add(r, m)
	}
}

// omegaMult sets r = c * (2^128 + 2^96 - 2^32 + 1), the multiplier that folds
// 2^384 back below the prime since 2^384 = 2^128 + 2^96 - 2^32 + 1 (mod p).
func (r *wide) omegaMult(c *vli) {
	var shifted vli
	var s [vliWords + 1]uint64
	s[vliWords] = shifted.lshift(c, 32)
	copy(s[:vliWords], shifted[:])

	*r = wide{}
	copy(r[:vliWords], c[:]) // c
	r.addAt(s[:], 1)         // c * 2^96 + c
	r.addAt(c[:], 2)         // c * 2^128 + c * 2^96 + c
	r.subAt(s[:], 0)         // c * 2^128 + c * 2^96 - c * 2^32 + c
}

// fastReduce sets r = product mod p using only additions and shifts. The high
// half is folded into the low half until it is empty, then p is subtracted
// until the result is canonical.
func (r *vli) fastReduce(product *wide) {
	t := *product
	for !t.hi().isZero() {
		var tmp wide
		tmp.omegaMult(t.hi())
		t.hi().clear()
		t.addAt(tmp[:], 0)
	}
	for t.lo().cmp(&curveP) >= 0 {
		t.lo().sub(t.lo(), &curveP)
	}
	*r = *t.lo()
}

// fieldMul sets r = a * b mod p
func (r *vli) fieldMul(a, b *vli) {
	var product wide
	product.mult(a, b)
	r.fastReduce(&product)
}

// fieldSqr sets r = a * a mod p
func (r *vli) fieldSqr(a *vli) {
	var product wide
	product.square(a)
	r.fastReduce(&product)
}

// modMult sets r = a * b mod m for an arbitrary modulus by shift-and-subtract
// long division of the full product. Used for arithmetic modulo the group
// order where no special form is available.
func (r *vli) modMult(a, b, m *vli) {
	var product, multiple wide
	product.mult(a, b)

	modBits := m.numBits()
	productBits := product.hi().numBits()
	if productBits != 0 {
		productBits += vliWords * 64
	} else {
		productBits = product.lo().numBits()
	}
	if productBits < modBits {
		*r = *product.lo()
		return
	}

	// multiple = m shifted up to the largest power of two that keeps it at or
	// below the product
	shift := productBits - modBits
	digitShift, bitShift := int(shift/64), shift%64
	var shifted vli
	carry := shifted.lshift(m, bitShift)
	copy(multiple[digitShift:], shifted[:])
	if digitShift+vliWords < len(multiple) {
		multiple[digitShift+vliWords] = carry
	}

	for productBits > vliWords*64 || multiple.lo().cmp(m) >= 0 {
		c := multiple.hi().cmp(product.hi())
		if c < 0 || (c == 0 && multiple.lo().cmp(product.lo()) <= 0) {
			if product.lo().sub(product.lo(), multiple.lo()) != 0 {
				product.hi().sub(product.hi(), &vliOne)
			}
			product.hi().sub(product.hi(), multiple.hi())
		}
		top := (multiple[vliWords] & 1) << 63
		multiple.hi().rshift1()
		multiple.lo().rshift1()
		multiple[vliWords-1] |= top
		productBits--
	}
	*r = *product.lo()
}

// halve sets r = r / 2 mod m for odd m, adding m first when r is odd so the
// shift is exact. The carry of that addition becomes the new top bit.
func (r *vli) halve(m *vli) {
	var carry uint64
	if r[0]&1 != 0 {
		carry = r.add(r, m)
	}
	r.rshift1()
	r[vliWords-1] |= carry << 63
}

// modInv sets r = a^-1 mod m using the binary extended Euclidean algorithm.
// The loop keeps a*u = b*v (mod m) with a and b shrinking until they meet.
// r is set to zero when a is zero.
func (r *vli) modInv(a, m *vli) {
	if a.isZero() {
		r.clear()
		return
	}

	var x, y, u, v vli
	x.set(a)
	y.set(m)
	u.set(&vliOne)

	for {
		c := x.cmp(&y)
		if c == 0 {
			break
		}
		switch {
		case x[0]&1 == 0:
			x.rshift1()
			u.halve(m)
		case y[0]&1 == 0:
			y.rshift1()
			v.halve(m)
		case c > 0:
			x.sub(&x, &y)
			x.rshift1()
			if u.cmp(&v) < 0 {
				u.add(&u, m)
			}
			u.sub(&u, &v)
			u.halve(m)
		default:
			y.sub(&y, &x)
			y.rshift1()
			if v.cmp(&u) < 0 {
				v.add(&v, m)
			}
			v.sub(&v, &u)
			v.halve(m)
		}
	}
	r.set(&u)
}

// fieldSqrt sets r = a^((p+1)/4) mod p, which is a square root of a whenever
// one exists since p = 3 mod 4
func (r *vli) fieldSqrt(a *vli) {
	var exp vli
	exp.add(&curveP, &vliOne)

	result := vliOne
	for i := exp.numBits() - 1; i > 1; i-- {
		result.fieldSqr(&result)
		if exp.testBit(i) {
			result.fieldMul(&result, a)
		}
	}
	r.set(&result)
}

// curveRHS sets r = x^3 - 3x + b mod p
func (r *vli) curveRHS(x *vli) {
	var t vli
	t.fieldSqr(x)
	t.modSub(&t, &vliThree, &curveP)
	t.fieldMul(&t, x)
	r.modAdd(&t, &curveB, &curveP)
}
