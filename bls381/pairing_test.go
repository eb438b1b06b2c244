package bls381

import (
	"math/big"
	"testing"

	"github.com/curvelab/ecc/bls381/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func pairingGenerators(curve *Curve) (G1Affine, G2Affine) {
	var p G1Affine
	var q G2Affine
	curve.g1Gen.ToAffine(&p)
	curve.g2Gen.ToAffine(&q)
	return p, q
}

func TestPairingNonDegenerate(t *testing.T) {
	curve := BLS381()
	p, q := pairingGenerators(curve)

	res, err := curve.Pair(p, q)
	require.NoError(t, err)
	require.False(t, res.IsOne(), "pairing of the generators should not be 1")
	require.False(t, res.IsZero())

	// e(g1, g2) has order r
	var powR e12
	powR.Exp(res, &curve.frModulus)
	require.True(t, powR.IsOne())
}

func TestPairingBilinear(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 5

	properties := gopter.NewProperties(parameters)
	curve := BLS381()
	g1, g2 := pairingGenerators(curve)

	properties.Property("e(aP, bQ) == e(P, Q)^(ab)", prop.ForAll(
		func(a, b fr.Element) bool {
			var aBig, bBig, ab big.Int
			a.BigInt(&aBig)
			b.BigInt(&bBig)
			ab.Mul(&aBig, &bBig).Mod(&ab, &curve.frModulus)

			var pJac G1Jac
			var qJac G2Jac
			var p G1Affine
			var q G2Affine
			pJac.ScalarMulByGen(curve, &aBig)
			pJac.ToAffine(&p)
			qJac.ScalarMulByGen(curve, &bBig)
			qJac.ToAffine(&q)

			lhs, err := curve.Pair(p, q)
			if err != nil {
				return false
			}
			base, err := curve.Pair(g1, g2)
			if err != nil {
				return false
			}
			var rhs e12
			rhs.Exp(base, &ab)
			return lhs.Equal(&rhs)
		},
		genFr(),
		genFr(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPairingInfinity(t *testing.T) {
	curve := BLS381()
	g1, g2 := pairingGenerators(curve)

	var infP G1Affine
	var infQ G2Affine
	infP.SetInfinity()
	infQ.SetInfinity()

	res, err := curve.Pair(infP, g2)
	require.NoError(t, err)
	require.True(t, res.IsOne())

	res, err = curve.Pair(g1, infQ)
	require.NoError(t, err)
	require.True(t, res.IsOne())

	// infinity pairs contribute the neutral element to a multi-pairing
	res, err = curve.MultiPair([]G1Affine{infP, g1}, []G2Affine{g2, g2})
	require.NoError(t, err)
	single, err := curve.Pair(g1, g2)
	require.NoError(t, err)
	require.True(t, res.Equal(&single))
}

func TestMultiPair(t *testing.T) {
	curve := BLS381()
	g1, g2 := pairingGenerators(curve)

	var p2Jac G1Jac
	var q2Jac G2Jac
	var p2 G1Affine
	var q2 G2Affine
	p2Jac.ScalarMulByGen(curve, big.NewInt(17))
	p2Jac.ToAffine(&p2)
	q2Jac.ScalarMulByGen(curve, big.NewInt(23))
	q2Jac.ToAffine(&q2)

	multi, err := curve.MultiPair([]G1Affine{g1, p2}, []G2Affine{g2, q2})
	require.NoError(t, err)

	e1, err := curve.Pair(g1, g2)
	require.NoError(t, err)
	e2res, err := curve.Pair(p2, q2)
	require.NoError(t, err)

	var product e12
	product.Mul(&e1, &e2res)
	require.True(t, multi.Equal(&product), "multi-pairing should equal the product of pairings")
}

func TestPairingCheck(t *testing.T) {
	curve := BLS381()
	g1, g2 := pairingGenerators(curve)

	var negG1 G1Affine
	negG1.Neg(&g1)

	// e(P, Q) * e(-P, Q) == 1
	ok, err := curve.PairingCheck([]G1Affine{g1, negG1}, []G2Affine{g2, g2})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = curve.PairingCheck([]G1Affine{g1, g1}, []G2Affine{g2, g2})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPairingErrors(t *testing.T) {
	curve := BLS381()
	g1, g2 := pairingGenerators(curve)

	_, err := curve.MultiPair([]G1Affine{g1}, []G2Affine{g2, g2})
	require.ErrorIs(t, err, ErrLengthMismatch)

	// (2, 2) does not satisfy y² = x³ + 4
	var offCurve G1Affine
	offCurve.X.SetString("2")
	offCurve.Y.SetString("2")
	_, err = curve.Pair(offCurve, g2)
	require.ErrorIs(t, err, ErrNotOnCurve)

	var offTwist G2Affine
	offTwist.X.SetString("2", "0")
	offTwist.Y.SetString("2", "0")
	_, err = curve.Pair(g1, offTwist)
	require.ErrorIs(t, err, ErrNotOnCurve)
}

func TestInverseChecked(t *testing.T) {
	var zero, res e12
	_, err := res.InverseChecked(&zero)
	require.ErrorIs(t, err, ErrNoInverse)

	var a e12
	a.SetOne().C0.B1.A0.SetUint64(42)
	inv, err := res.InverseChecked(&a)
	require.NoError(t, err)
	var check e12
	check.Mul(inv, &a)
	require.True(t, check.IsOne())
}

func BenchmarkPairing(b *testing.B) {
	curve := BLS381()
	p, q := pairingGenerators(curve)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = curve.Pair(p, q)
	}
}

func BenchmarkMillerLoop(b *testing.B) {
	curve := BLS381()
	p, q := pairingGenerators(curve)
	P := []G1Affine{p}
	Q := []G2Affine{q}
	var res PairingResult

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = curve.MillerLoop(P, Q, &res)
	}
}

func BenchmarkFinalExponentiation(b *testing.B) {
	curve := BLS381()
	p, q := pairingGenerators(curve)
	var f PairingResult
	if _, err := curve.MillerLoop([]G1Affine{p}, []G2Affine{q}, &f); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		curve.FinalExponentiation(&f)
	}
}
