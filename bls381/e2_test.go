package bls381

import (
	"math/big"
	"testing"

	"github.com/curvelab/ecc/bls381/fp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
)

func genFp() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		var a fp.Element
		var v big.Int
		v.SetUint64(genParams.NextUint64())
		for i := 1; i < fp.Limbs; i++ {
			v.Lsh(&v, 64)
			v.Add(&v, new(big.Int).SetUint64(genParams.NextUint64()))
		}
		a.SetBigInt(&v)
		return gopter.NewGenResult(a, gopter.NoShrinker)
	}
}

func genE2() gopter.Gen {
	return gopter.CombineGens(genFp(), genFp()).Map(
		func(values []interface{}) e2 {
			return e2{A0: values[0].(fp.Element), A1: values[1].(fp.Element)}
		})
}

func TestE2Arithmetic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("mul is commutative and associative", prop.ForAll(
		func(a, b, c e2) bool {
			var ab, ba, abc, bca e2
			ab.Mul(&a, &b)
			ba.Mul(&b, &a)
			abc.Mul(&ab, &c)
			bca.Mul(&b, &c).Mul(&bca, &a)
			return ab.Equal(&ba) && abc.Equal(&bca)
		},
		genE2(),
		genE2(),
		genE2(),
	))

	properties.Property("mul distributes over add", prop.ForAll(
		func(a, b, c e2) bool {
			var l, r, u e2
			l.Add(&a, &b).Mul(&l, &c)
			r.Mul(&a, &c)
			u.Mul(&b, &c)
			r.Add(&r, &u)
			return l.Equal(&r)
		},
		genE2(),
		genE2(),
		genE2(),
	))

	properties.Property("square matches mul", prop.ForAll(
		func(a e2) bool {
			var s, m e2
			s.Square(&a)
			m.Mul(&a, &a)
			return s.Equal(&m)
		},
		genE2(),
	))

	properties.Property("a * a⁻¹ == 1", prop.ForAll(
		func(a e2) bool {
			if a.IsZero() {
				return true
			}
			var inv, one e2
			inv.Inverse(&a).Mul(&inv, &a)
			one.SetOne()
			return inv.Equal(&one)
		},
		genE2(),
	))

	properties.Property("a * conj(a) is real and equals the norm", prop.ForAll(
		func(a e2) bool {
			var c, n e2
			c.Conjugate(&a)
			n.Mul(&a, &c)
			var norm fp.Element
			norm.Square(&a.A0)
			var t fp.Element
			t.Square(&a.A1)
			norm.Add(&norm, &t)
			return n.A1.IsZero() && n.A0.Equal(&norm)
		},
		genE2(),
	))

	properties.Property("MulByNonResidue matches mul by 1+u", prop.ForAll(
		func(a e2) bool {
			var nonRes e2
			nonRes.A0.SetOne()
			nonRes.A1.SetOne()
			var l, r e2
			l.MulByNonResidue(&a)
			r.Mul(&a, &nonRes)
			return l.Equal(&r)
		},
		genE2(),
	))

	properties.Property("MulByElement matches mul by a real e2", prop.ForAll(
		func(a e2, c fp.Element) bool {
			var real e2
			real.A0 = c
			var l, r e2
			l.MulByElement(&a, &c)
			r.Mul(&a, &real)
			return l.Equal(&r)
		},
		genE2(),
		genFp(),
	))

	properties.Property("x^p == conj(x)", prop.ForAll(
		func(a e2) bool {
			var l, r e2
			l.Exp(a, fp.Modulus())
			r.Conjugate(&a)
			return l.Equal(&r)
		},
		genE2(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestE2SqrtLegendre(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("sqrt of a square recovers ±a", prop.ForAll(
		func(a e2) bool {
			var sq, root, neg e2
			sq.Square(&a)
			if root.Sqrt(&sq) == nil {
				return false
			}
			neg.Neg(&a)
			return root.Equal(&a) || root.Equal(&neg)
		},
		genE2(),
	))

	properties.Property("legendre of a non-zero square is 1", prop.ForAll(
		func(a e2) bool {
			if a.IsZero() {
				return true
			}
			var sq e2
			sq.Square(&a)
			return sq.Legendre() == 1
		},
		genE2(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
