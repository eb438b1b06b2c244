package bls381

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
)

func genE6() gopter.Gen {
	return gopter.CombineGens(genE2(), genE2(), genE2()).Map(
		func(values []interface{}) e6 {
			return e6{B0: values[0].(e2), B1: values[1].(e2), B2: values[2].(e2)}
		})
}

func TestE6Arithmetic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("mul is commutative and associative", prop.ForAll(
		func(a, b, c e6) bool {
			var ab, ba, abc, bca e6
			ab.Mul(&a, &b)
			ba.Mul(&b, &a)
			abc.Mul(&ab, &c)
			bca.Mul(&b, &c).Mul(&bca, &a)
			return ab.Equal(&ba) && abc.Equal(&bca)
		},
		genE6(),
		genE6(),
		genE6(),
	))

	properties.Property("square matches mul", prop.ForAll(
		func(a e6) bool {
			var s, m e6
			s.Square(&a)
			m.Mul(&a, &a)
			return s.Equal(&m)
		},
		genE6(),
	))

	properties.Property("a * a⁻¹ == 1", prop.ForAll(
		func(a e6) bool {
			if a.IsZero() {
				return true
			}
			var inv e6
			inv.Inverse(&a).Mul(&inv, &a)
			var one e6
			one.SetOne()
			return inv.Equal(&one)
		},
		genE6(),
	))

	properties.Property("MulByNonResidue matches mul by v", prop.ForAll(
		func(a e6) bool {
			var v e6
			v.B1.SetOne()
			var l, r e6
			l.MulByNonResidue(&a)
			r.Mul(&a, &v)
			return l.Equal(&r)
		},
		genE6(),
	))

	properties.Property("MulBy01 matches mul by a sparse element", prop.ForAll(
		func(a e6, c0, c1 e2) bool {
			var sparse e6
			sparse.B0 = c0
			sparse.B1 = c1
			var l, r e6
			l.Set(&a).MulBy01(&c0, &c1)
			r.Mul(&a, &sparse)
			return l.Equal(&r)
		},
		genE6(),
		genE2(),
		genE2(),
	))

	properties.Property("MulBy1 matches mul by a sparse element", prop.ForAll(
		func(a e6, c1 e2) bool {
			var sparse e6
			sparse.B1 = c1
			var l, r e6
			l.Set(&a).MulBy1(&c1)
			r.Mul(&a, &sparse)
			return l.Equal(&r)
		},
		genE6(),
		genE2(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
