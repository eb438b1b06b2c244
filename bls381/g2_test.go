package bls381

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/curvelab/ecc/bls381/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

// genG2Jac yields a uniform point of the r-torsion of the twist
func genG2Jac() gopter.Gen {
	return genFr().Map(func(s fr.Element) G2Jac {
		curve := BLS381()
		var p G2Jac
		p.ScalarMulByGen(curve, s.BigInt(new(big.Int)))
		return p
	})
}

func TestG2Generator(t *testing.T) {
	curve := BLS381()

	require.True(t, curve.g2Gen.IsOnCurve(curve))
	require.True(t, curve.g2Gen.IsInSubgroup(curve))

	var p G2Jac
	p.ScalarMultiplication(curve, &curve.g2Gen, &curve.frModulus)
	require.True(t, p.IsInfinity(), "r * g2Gen should be infinity")
}

func TestG2JacArithmetic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10

	properties := gopter.NewProperties(parameters)
	curve := BLS381()

	properties.Property("add is commutative", prop.ForAll(
		func(a, b G2Jac) bool {
			var l, r G2Jac
			l.Set(&a).Add(curve, &b)
			r.Set(&b).Add(curve, &a)
			return l.Equal(&r)
		},
		genG2Jac(),
		genG2Jac(),
	))

	properties.Property("p + (-p) == infinity", prop.ForAll(
		func(a G2Jac) bool {
			var n, s G2Jac
			n.Neg(&a)
			s.Set(&a).Add(curve, &n)
			return s.IsInfinity()
		},
		genG2Jac(),
	))

	properties.Property("double matches add", prop.ForAll(
		func(a G2Jac) bool {
			var d, s G2Jac
			d.Set(&a).Double()
			s.Set(&a).Add(curve, &a)
			return d.Equal(&s)
		},
		genG2Jac(),
	))

	properties.Property("AddMixed matches Add", prop.ForAll(
		func(a, b G2Jac) bool {
			var bAff G2Affine
			b.ToAffine(&bAff)
			var l, r G2Jac
			l.Set(&a).AddMixed(&bAff)
			r.Set(&a).Add(curve, &b)
			return l.Equal(&r)
		},
		genG2Jac(),
		genG2Jac(),
	))

	properties.Property("scalar multiplication distributes: (a+b)P == aP + bP", prop.ForAll(
		func(p G2Jac, a, b fr.Element) bool {
			var sum fr.Element
			sum.Add(&a, &b)
			var l, r, t G2Jac
			l.ScalarMultiplication(curve, &p, sum.BigInt(new(big.Int)))
			r.ScalarMultiplication(curve, &p, a.BigInt(new(big.Int)))
			t.ScalarMultiplication(curve, &p, b.BigInt(new(big.Int)))
			r.Add(curve, &t)
			return l.Equal(&r)
		},
		genG2Jac(),
		genFr(),
		genFr(),
	))

	properties.Property("constant-time and NAF scalar multiplications agree", prop.ForAll(
		func(p G2Jac, s fr.Element) bool {
			var l, r G2Jac
			l.ScalarMultiplication(curve, &p, s.BigInt(new(big.Int)))
			r.ScalarMulVarTime(curve, &p, s.BigInt(new(big.Int)))
			return l.Equal(&r)
		},
		genG2Jac(),
		genFr(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// g2NonSubgroupPoint returns a point on the twist outside the
// r-torsion, x = u
func g2NonSubgroupPoint() G2Jac {
	var p G2Jac
	p.X.SetString("0", "1")
	p.Y.SetString("1028732146235106349975324479215795277384839936929757896155643118032610843298655225875571310552543014690878354869257",
		"916213116516348343491816388088518324402363009149734196865128782026199120594872186815973697471386619965259207952016")
	p.Z.SetString("1", "0")
	return p
}

func TestG2IsInSubgroup(t *testing.T) {
	curve := BLS381()

	require.True(t, curve.g2Gen.IsInSubgroup(curve))

	p := g2NonSubgroupPoint()
	require.True(t, p.IsOnCurve(curve))

	// r must not annihilate a point outside the r-torsion; the scalar
	// has to reach the group arithmetic unreduced for this to hold
	var q G2Jac
	q.mulNaf(curve, &p, &curve.frModulus)
	require.False(t, q.IsInfinity())
	require.False(t, p.IsInSubgroup(curve))
}

func TestG2ClearCofactor(t *testing.T) {
	curve := BLS381()

	p := g2NonSubgroupPoint()
	require.True(t, p.IsOnCurve(curve))
	require.False(t, p.IsInSubgroup(curve))

	var q G2Jac
	q.ClearCofactor(curve, &p)
	require.True(t, q.IsInSubgroup(curve))
}

func TestG2MultiExp(t *testing.T) {
	curve := BLS381()

	const n = 60
	points := make([]G2Affine, n)
	scalars := make([]fr.Element, n)
	var jac, acc, term G2Jac
	acc.Set(&curve.g2Infinity)
	for i := 0; i < n; i++ {
		var s big.Int
		s.SetInt64(int64(2*i + 1))
		jac.ScalarMulByGen(curve, &s)
		jac.ToAffine(&points[i])
		if _, err := scalars[i].SetRandom(rand.Reader); err != nil {
			t.Fatal(err)
		}
		term.ScalarMulVarTime(curve, &jac, scalars[i].BigInt(new(big.Int)))
		acc.Add(curve, &term)
	}

	var res G2Jac
	_, err := res.MultiExp(curve, points, scalars)
	require.NoError(t, err)
	require.True(t, res.Equal(&acc), "multiexp does not match the naive sum")
}
