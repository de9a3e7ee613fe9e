package p384

import (
	"crypto/elliptic"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ladderScalars returns small scalars, scalars next to the group order and a
// run of random ones
func ladderScalars(seed int64, random int) []vli {
	var scalars []vli
	for i := uint64(1); i <= 20; i++ {
		scalars = append(scalars, vli{i})
	}
	for i := uint64(1); i <= 4; i++ {
		var k vli
		k.sub(&curveN, &vli{i})
		scalars = append(scalars, k)
	}
	// Scalars whose regularised form takes the k+n branch and the k+2n branch
	var edge vli
	edge.sub(&vli{}, &curveN) // 2^384 - n
	scalars = append(scalars, edge, vli{0, 0, 0, 0, 0, 1 << 63})

	rng := testRand(seed)
	for i := 0; i < random; i++ {
		k := randomBelowBig(rng, bigN)
		if k.isZero() {
			continue
		}
		scalars = append(scalars, k)
	}
	return scalars
}

func TestRegularizeScalar(t *testing.T) {
	for _, k := range ladderScalars(40, 10) {
		var r vli
		regularizeScalar(&r, &k)

		full := new(big.Int).Add(toBig(&r), two384)
		diff := new(big.Int).Sub(full, toBig(&k))
		isN := diff.Cmp(bigN) == 0
		is2N := diff.Cmp(new(big.Int).Lsh(bigN, 1)) == 0
		assert.True(t, isN || is2N, "k=%x", toBig(&k))
	}
}

func TestEcmultGen(t *testing.T) {
	for _, k := range ladderScalars(41, 20) {
		var got affinePoint
		ecmultGen(&got, &k)
		want := refBaseMult(&k)
		require.True(t, got.equal(&want), "k=%x", toBig(&k))
		require.True(t, got.isValid())
	}
}

func TestEcmultBlinded(t *testing.T) {
	rng := testRand(42)
	for _, k := range ladderScalars(43, 10) {
		var plain, blinded affinePoint
		z := randomBelowBig(rng, bigP)
		if z.isZero() {
			z = vliOne
		}
		ecmult(&plain, &curveG, &k, nil)
		ecmult(&blinded, &curveG, &k, &z)
		require.True(t, plain.equal(&blinded), "k=%x", toBig(&k))
	}
}

func TestEcmultArbitraryPoint(t *testing.T) {
	curve := elliptic.P384()
	rng := testRand(44)
	d := randomBelowBig(rng, bigN)
	q := refBaseMult(&d)
	qx, qy := pointToBig(&q)

	z := vli{0x1234}
	for _, k := range ladderScalars(45, 10) {
		var got affinePoint
		ecmult(&got, &q, &k, &z)

		var buf [48]byte
		k.getB48(buf[:])
		wx, wy := curve.ScalarMult(qx, qy, buf[:])
		require.True(t, got.equal(&affinePoint{x: fromBig(wx), y: fromBig(wy)}), "k=%x", toBig(&k))
	}
}

func TestEcmultZeroX(t *testing.T) {
	curve := elliptic.P384()
	p := zeroXPoint(t)
	require.True(t, p.isValid())
	px, py := pointToBig(&p)

	for _, k := range ladderScalars(46, 3) {
		var got affinePoint
		ecmult(&got, &p, &k, &vli{99})

		var buf [48]byte
		k.getB48(buf[:])
		wx, wy := curve.ScalarMult(px, py, buf[:])
		require.True(t, got.equal(&affinePoint{x: fromBig(wx), y: fromBig(wy)}), "k=%x", toBig(&k))
	}
}

func TestEcmultDegenerate(t *testing.T) {
	var r, inf affinePoint
	ecmult(&r, &curveG, &vli{}, nil)
	assert.True(t, r.isInfinity())

	ecmult(&r, &inf, &vli{5}, nil)
	assert.True(t, r.isInfinity())

	// n-1 is -1
	var k vli
	k.sub(&curveN, &vliOne)
	ecmultGen(&r, &k)
	var neg affinePoint
	neg.negate(&curveG)
	assert.True(t, r.equal(&neg))
}

func TestEcmultShamir(t *testing.T) {
	curve := elliptic.P384()
	rng := testRand(47)
	d := randomBelowBig(rng, bigN)
	q := refBaseMult(&d)
	qx, qy := pointToBig(&q)

	for i := 0; i < 20; i++ {
		u1 := randomBelowBig(rng, bigN)
		u2 := randomBelowBig(rng, bigN)

		var got affinePoint
		ecmultShamir(&got, &u1, &q, &u2)

		ax, ay := pointToBig(ptr(refBaseMult(&u1)))
		var buf [48]byte
		u2.getB48(buf[:])
		bx, by := curve.ScalarMult(qx, qy, buf[:])
		wx, wy := curve.Add(ax, ay, bx, by)
		require.True(t, got.equal(&affinePoint{x: fromBig(wx), y: fromBig(wy)}))
	}

	// u1 = 0 leaves a plain multiple of q
	var got affinePoint
	u2 := vli{12345}
	ecmultShamir(&got, &vli{}, &q, &u2)
	var want affinePoint
	ecmult(&want, &q, &u2, nil)
	assert.True(t, got.equal(&want))

	// q = G doubles through the table
	ecmultShamir(&got, &vli{3}, &curveG, &vli{5})
	want = refBaseMult(&vli{8})
	assert.True(t, got.equal(&want))

	// q = -G cancels the G + q table entry
	var negG affinePoint
	negG.negate(&curveG)
	ecmultShamir(&got, &vli{7}, &negG, &vli{11})
	want.negate(ptr(refBaseMult(&vli{4})))
	assert.True(t, got.equal(&want))

	ecmultShamir(&got, &vli{}, &q, &vli{})
	assert.True(t, got.isInfinity())
}

func ptr(p affinePoint) *affinePoint {
	return &p
}
