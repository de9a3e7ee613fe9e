package p384

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveConstants(t *testing.T) {
	params := curveParams()
	assert.Equal(t, 0, toBig(&curveP).Cmp(params.P))
	assert.Equal(t, 0, toBig(&curveN).Cmp(params.N))
	assert.Equal(t, 0, toBig(&curveB).Cmp(params.B))
	assert.Equal(t, 0, toBig(&curveG.x).Cmp(params.Gx))
	assert.Equal(t, 0, toBig(&curveG.y).Cmp(params.Gy))

	// 2^384 - p is the folding multiplier used by the fast reduction
	omega := new(big.Int).Sub(two384, params.P)
	var w wide
	w.omegaMult(&vliOne)
	assert.Equal(t, 0, wideToBig(&w).Cmp(omega))
}

func TestFastReduce(t *testing.T) {
	rng := testRand(20)
	values := edgeValues()
	for i := 0; i < 100; i++ {
		values = append(values, randomBelowBig(rng, two384))
	}

	for i, a := range values {
		b := values[(i*7+3)%len(values)]
		var prod wide
		prod.mult(&a, &b)

		var r vli
		r.fastReduce(&prod)
		want := new(big.Int).Mul(toBig(&a), toBig(&b))
		want.Mod(want, bigP)
		require.Equal(t, 0, toBig(&r).Cmp(want), "%x * %x", toBig(&a), toBig(&b))
	}

	// p itself reduces to zero
	var prod wide
	prod.lo().set(&curveP)
	var r vli
	r.fastReduce(&prod)
	assert.True(t, r.isZero())
}

func TestFieldLaws(t *testing.T) {
	rng := testRand(21)
	for i := 0; i < 200; i++ {
		a := randomBelowBig(rng, bigP)
		b := randomBelowBig(rng, bigP)
		c := randomBelowBig(rng, bigP)

		var ab, ba vli
		ab.modAdd(&a, &b, &curveP)
		ba.modAdd(&b, &a, &curveP)
		require.Equal(t, ab, ba)
		require.Equal(t, -1, ab.cmp(&curveP))

		var diff, back vli
		diff.modSub(&a, &b, &curveP)
		back.modAdd(&diff, &b, &curveP)
		require.Equal(t, a, back)

		// (a + b) * c == a*c + b*c
		var lhs, ac, bc, rhs vli
		lhs.fieldMul(&ab, &c)
		ac.fieldMul(&a, &c)
		bc.fieldMul(&b, &c)
		rhs.modAdd(&ac, &bc, &curveP)
		require.Equal(t, lhs, rhs)

		var sq, mul vli
		sq.fieldSqr(&a)
		mul.fieldMul(&a, &a)
		require.Equal(t, mul, sq)

		if !a.isZero() {
			var inv, one vli
			inv.modInv(&a, &curveP)
			one.fieldMul(&a, &inv)
			require.Equal(t, vliOne, one)
		}
	}
}

func TestModInv(t *testing.T) {
	var zero, r vli
	r.modInv(&zero, &curveP)
	assert.True(t, r.isZero())

	r.modInv(&vliOne, &curveN)
	assert.Equal(t, vliOne, r)

	rng := testRand(22)
	for _, m := range []*vli{&curveP, &curveN} {
		bm := toBig(m)
		values := []vli{vliOne, {2}, {}}
		values[2].sub(m, &vliOne)
		for i := 0; i < 50; i++ {
			values = append(values, randomBelowBig(rng, bm))
		}
		for _, a := range values {
			if a.isZero() {
				continue
			}
			r.modInv(&a, m)
			want := new(big.Int).ModInverse(toBig(&a), bm)
			require.Equal(t, 0, toBig(&r).Cmp(want))
		}
	}
}

func TestModMultOrder(t *testing.T) {
	rng := testRand(23)
	values := []vli{{}, vliOne, {}}
	values[2].sub(&curveN, &vliOne)
	for i := 0; i < 100; i++ {
		values = append(values, randomBelowBig(rng, bigN))
	}
	// Unreduced digests are multiplied directly during verification
	values = append(values, edgeValues()...)

	for i, a := range values {
		b := values[(i*5+1)%len(values)]
		var r vli
		r.modMult(&a, &b, &curveN)
		want := new(big.Int).Mul(toBig(&a), toBig(&b))
		want.Mod(want, bigN)
		require.Equal(t, 0, toBig(&r).Cmp(want), "%x * %x", toBig(&a), toBig(&b))
	}
}

func TestHalve(t *testing.T) {
	rng := testRand(24)
	two := big.NewInt(2)
	for i := 0; i < 50; i++ {
		a := randomBelowBig(rng, bigP)
		r := a
		r.halve(&curveP)

		back := new(big.Int).Mul(toBig(&r), two)
		back.Mod(back, bigP)
		require.Equal(t, 0, back.Cmp(toBig(&a)))
		require.Equal(t, -1, r.cmp(&curveP))
	}
}

func TestFieldSqrt(t *testing.T) {
	rng := testRand(25)
	for i := 0; i < 30; i++ {
		a := randomBelowBig(rng, bigP)
		var sq, root, neg vli
		sq.fieldSqr(&a)
		root.fieldSqrt(&sq)
		neg.modSub(&vli{}, &a, &curveP)
		assert.True(t, root == a || root == neg)
	}

	// y^2 of the generator is x^3 - 3x + b
	var rhs, y2 vli
	rhs.curveRHS(&curveG.x)
	y2.fieldSqr(&curveG.y)
	assert.Equal(t, y2, rhs)
}
