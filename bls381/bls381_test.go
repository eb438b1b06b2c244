package bls381

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/curvelab/ecc/bls381/fp"
	"github.com/curvelab/ecc/bls381/fr"
	"github.com/stretchr/testify/require"
)

func TestCurveInit(t *testing.T) {
	curve := BLS381()
	require.Same(t, curve, BLS381(), "BLS381() should return the singleton")

	var four fp.Element
	four.SetUint64(4)
	require.True(t, curve.B.Equal(&four))

	var twist e2
	twist.A0.SetUint64(4)
	twist.A1.SetUint64(4)
	require.True(t, curve.bTwist.Equal(&twist))

	require.Equal(t, "bls381", ID.String())
}

func TestCofactors(t *testing.T) {
	curve := BLS381()

	h1, ok := new(big.Int).SetString("396c8c005555e1568c00aaab0000aaab", 16)
	require.True(t, ok)
	require.Zero(t, curve.g1Cofactor.Cmp(h1))

	h2, ok := new(big.Int).SetString("5d543a95414e7f1091d50792876a202cd91de4547085abaa68a205b2e5a7ddfa628f1cb4d9e82ef21537e293a6691ae1616ec6e786f0c70cf1c38e31c7238e5", 16)
	require.True(t, ok)
	require.Zero(t, curve.g2Cofactor.Cmp(h2))

	// #E(Fp) = h1 * r, so the curve order times any point is infinity;
	// mulNaf keeps the scalar unreduced so the check is non-trivial
	var order big.Int
	order.Mul(&curve.g1Cofactor, &curve.frModulus)
	p := g1NonSubgroupPoint()
	var q G1Jac
	q.mulNaf(curve, &p, &order)
	require.True(t, q.IsInfinity())

	// the order itself does not: the point is outside the r-torsion
	q.mulNaf(curve, &p, &curve.frModulus)
	require.False(t, q.IsInfinity())
}

func BenchmarkG1ScalarMultiplication(b *testing.B) {
	curve := BLS381()
	var s fr.Element
	if _, err := s.SetRandom(rand.Reader); err != nil {
		b.Fatal(err)
	}
	k := s.BigInt(new(big.Int))
	var p G1Jac

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.ScalarMultiplication(curve, &curve.g1Gen, k)
	}
}

func BenchmarkG1ScalarMulVarTime(b *testing.B) {
	curve := BLS381()
	var s fr.Element
	if _, err := s.SetRandom(rand.Reader); err != nil {
		b.Fatal(err)
	}
	k := s.BigInt(new(big.Int))
	var p G1Jac

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.ScalarMulVarTime(curve, &curve.g1Gen, k)
	}
}

func BenchmarkG1MultiExp(b *testing.B) {
	curve := BLS381()

	const n = 1000
	points := make([]G1Affine, n)
	scalars := make([]fr.Element, n)
	var jac G1Jac
	var s big.Int
	for i := 0; i < n; i++ {
		s.SetInt64(int64(i + 1))
		jac.ScalarMulByGen(curve, &s)
		jac.ToAffine(&points[i])
		if _, err := scalars[i].SetRandom(rand.Reader); err != nil {
			b.Fatal(err)
		}
	}
	var res G1Jac

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := res.MultiExp(curve, points, scalars); err != nil {
			b.Fatal(err)
		}
	}
}
