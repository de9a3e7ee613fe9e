package p384

import "math/bits"

// vliWords is the number of 64-bit words in a 384-bit integer
const vliWords = 6

// vli is an unsigned 384-bit integer stored as six 64-bit words, least
// significant word first.
type vli [vliWords]uint64

// wide is a double-width (768-bit) intermediate used for products before
// reduction.
type wide [2 * vliWords]uint64

// lo returns the lower half of a double-width value
func (r *wide) lo() *vli {
	return (*vli)(r[:vliWords])
}

// hi returns the upper half of a double-width value
func (r *wide) hi() *vli {
	return (*vli)(r[vliWords:])
}

// clear sets r to zero
func (r *vli) clear() {
	*r = vli{}
}

// isZero returns true if every word of r is zero
func (r *vli) isZero() bool {
	var acc uint64
	for i := 0; i < vliWords; i++ {
		acc |= r[i]
	}
	return acc == 0
}

// testBit returns true if bit i of r is set
func (r *vli) testBit(i uint) bool {
	return r[i/64]&(1<<(i%64)) != 0
}

// numBits returns the position of the highest set bit plus one, or zero when
// r is zero
func (r *vli) numBits() uint {
	i := vliWords - 1
	for i >= 0 && r[i] == 0 {
		i--
	}
	if i < 0 {
		return 0
	}
	return uint(i)*64 + uint(bits.Len64(r[i]))
}

// cmp compares r with a and returns -1, 0 or 1
func (r *vli) cmp(a *vli) int {
	for i := vliWords - 1; i >= 0; i-- {
		if r[i] > a[i] {
			return 1
		}
		if r[i] < a[i] {
			return -1
		}
	}
	return 0
}

// set copies a into r
func (r *vli) set(a *vli) {
	*r = *a
}

// lshift sets r = a << shift for shift in [0, 63] and returns the bits
// shifted out of the top word
func (r *vli) lshift(a *vli, shift uint) uint64 {
	var carry uint64
	for i := 0; i < vliWords; i++ {
		t := a[i]
		r[i] = t<<shift | carry
		carry = t >> (64 - shift)
	}
	return carry
}

// rshift1 shifts r right by one bit in place
func (r *vli) rshift1() {
	var carry uint64
	for i := vliWords - 1; i >= 0; i-- {
		t := r[i]
		r[i] = t>>1 | carry
		carry = t << 63
	}
}

// add sets r = a + b and returns the carry out of the top word
func (r *vli) add(a, b *vli) uint64 {
	var carry uint64
	for i := 0; i < vliWords; i++ {
		r[i], carry = bits.Add64(a[i], b[i], carry)
	}
	return carry
}

// sub sets r = a - b and returns the borrow out of the top word
func (r *vli) sub(a, b *vli) uint64 {
	var borrow uint64
	for i := 0; i < vliWords; i++ {
		r[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
	return borrow
}

// mult sets r = a * b using column-wise schoolbook multiplication. Each column
// accumulates 128-bit word products into (r0, r1) with r2 holding the
// overflow.
func (r *wide) mult(a, b *vli) {
	var r0, r1, r2 uint64
	for k := 0; k < 2*vliWords-1; k++ {
		start := 0
		if k >= vliWords {
			start = k - vliWords + 1
		}
		for i := start; i <= k && i < vliWords; i++ {
			hi, lo := bits.Mul64(a[i], b[k-i])
			var c uint64
			r0, c = bits.Add64(r0, lo, 0)
			r1, c = bits.Add64(r1, hi, c)
			r2 += c
		}
		r[k] = r0
		r0, r1, r2 = r1, r2, 0
	}
	r[2*vliWords-1] = r0
}

// square sets r = a * a, computing each off-diagonal product once and
// doubling it
func (r *wide) square(a *vli) {
	var r0, r1, r2 uint64
	for k := 0; k < 2*vliWords-1; k++ {
		start := 0
		if k >= vliWords {
			start = k - vliWords + 1
		}
		for i := start; i <= k && i <= k-i; i++ {
			hi, lo := bits.Mul64(a[i], a[k-i])
			if i < k-i {
				r2 += hi >> 63
				hi = hi<<1 | lo>>63
				lo <<= 1
			}
			var c uint64
			r0, c = bits.Add64(r0, lo, 0)
			r1, c = bits.Add64(r1, hi, c)
			r2 += c
		}
		r[k] = r0
		r0, r1, r2 = r1, r2, 0
	}
	r[2*vliWords-1] = r0
}

// addAt adds v into r starting at word offset off, propagating the carry
// through the remaining words
func (r *wide) addAt(v []uint64, off int) {
	var carry uint64
	i := 0
	for ; i < len(v); i++ {
		r[off+i], carry = bits.Add64(r[off+i], v[i], carry)
	}
	for j := off + i; carry != 0 && j < len(r); j++ {
		r[j], carry = bits.Add64(r[j], 0, carry)
	}
}

// subAt subtracts v from r starting at word offset off, propagating the
// borrow through the remaining words
func (r *wide) subAt(v []uint64, off int) {
	var borrow uint64
	i := 0
	for ; i < len(v); i++ {
		r[off+i], borrow = bits.Sub64(r[off+i], v[i], borrow)
	}
	for j := off + i; borrow != 0 && j < len(r); j++ {
		r[j], borrow = bits.Sub64(r[j], 0, borrow)
	}
}
