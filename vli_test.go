package p384

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var two384 = new(big.Int).Lsh(big.NewInt(1), 384)

func edgeValues() []vli {
	return []vli{
		{},
		vliOne,
		{0xffffffffffffffff},
		{0, 0, 0, 0, 0, 0x8000000000000000},
		{0xffffffffffffffff, 0xffffffffffffffff, 0xffffffffffffffff,
			0xffffffffffffffff, 0xffffffffffffffff, 0xffffffffffffffff},
		curveP,
		curveN,
	}
}

func TestVliBasics(t *testing.T) {
	var zero vli
	assert.True(t, zero.isZero())
	assert.Equal(t, uint(0), zero.numBits())
	assert.False(t, vliOne.isZero())
	assert.Equal(t, uint(1), vliOne.numBits())
	assert.Equal(t, uint(384), curveP.numBits())
	assert.Equal(t, uint(384), curveN.numBits())

	v := vli{0, 0, 1 << 7}
	assert.True(t, v.testBit(135))
	assert.False(t, v.testBit(134))
	assert.Equal(t, uint(136), v.numBits())

	assert.Equal(t, 0, curveP.cmp(&curveP))
	assert.Equal(t, 1, curveP.cmp(&curveN))
	assert.Equal(t, -1, curveN.cmp(&curveP))

	v.clear()
	assert.True(t, v.isZero())
}

func TestVliAddSub(t *testing.T) {
	rng := testRand(10)
	values := edgeValues()
	for i := 0; i < 50; i++ {
		values = append(values, randomBelowBig(rng, two384))
	}

	for _, a := range values {
		for _, b := range values {
			want := new(big.Int).Add(toBig(&a), toBig(&b))
			var r vli
			carry := r.add(&a, &b)
			assert.Equal(t, want.Rsh(want, 384).Uint64(), carry)
			assert.Equal(t, 0, toBig(&r).Cmp(new(big.Int).Mod(new(big.Int).Add(toBig(&a), toBig(&b)), two384)))

			diff := new(big.Int).Sub(toBig(&a), toBig(&b))
			borrow := r.sub(&a, &b)
			if diff.Sign() < 0 {
				assert.Equal(t, uint64(1), borrow)
				diff.Add(diff, two384)
			} else {
				assert.Equal(t, uint64(0), borrow)
			}
			assert.Equal(t, 0, toBig(&r).Cmp(diff))
		}
	}
}

func TestVliShift(t *testing.T) {
	rng := testRand(11)
	for i := 0; i < 100; i++ {
		a := randomBelowBig(rng, two384)
		shift := uint(i % 64)

		var r vli
		out := r.lshift(&a, shift)
		want := new(big.Int).Lsh(toBig(&a), shift)
		assert.Equal(t, new(big.Int).Rsh(want, 384).Uint64(), out)
		assert.Equal(t, 0, toBig(&r).Cmp(want.Mod(want, two384)))

		r.set(&a)
		r.rshift1()
		assert.Equal(t, 0, toBig(&r).Cmp(new(big.Int).Rsh(toBig(&a), 1)))
	}
}

func TestVliMultSquare(t *testing.T) {
	rng := testRand(12)
	values := edgeValues()
	for i := 0; i < 50; i++ {
		values = append(values, randomBelowBig(rng, two384))
	}

	for _, a := range values {
		var sq wide
		sq.square(&a)
		want := new(big.Int).Mul(toBig(&a), toBig(&a))
		require.Equal(t, 0, wideToBig(&sq).Cmp(want), "square %x", toBig(&a))

		for _, b := range values {
			var prod wide
			prod.mult(&a, &b)
			want := new(big.Int).Mul(toBig(&a), toBig(&b))
			require.Equal(t, 0, wideToBig(&prod).Cmp(want), "mult %x * %x", toBig(&a), toBig(&b))
		}
	}
}

func TestWideAddSubAt(t *testing.T) {
	var w wide
	w.lo().set(&vli{0xffffffffffffffff, 0xffffffffffffffff})
	w.addAt([]uint64{1}, 0)
	assert.Equal(t, uint64(0), w[0])
	assert.Equal(t, uint64(0), w[1])
	assert.Equal(t, uint64(1), w[2])

	w.subAt([]uint64{1}, 0)
	assert.Equal(t, uint64(0xffffffffffffffff), w[0])
	assert.Equal(t, uint64(0xffffffffffffffff), w[1])
	assert.Equal(t, uint64(0), w[2])

	w.addAt([]uint64{5, 6}, 10)
	assert.Equal(t, uint64(5), w[10])
	assert.Equal(t, uint64(6), w[11])
	assert.Equal(t, uint64(6), w.hi()[5])
}

func wideToBig(w *wide) *big.Int {
	return new(big.Int).Add(new(big.Int).Lsh(toBig(w.hi()), 384), toBig(w.lo()))
}
