package bls381

import (
	"io"
	"math/big"
	"math/bits"

	"github.com/curvelab/ecc/bls381/fp"
)

// e12 is a degree-2 extension of e6, with w² = v
type e12 struct {
	C0, C1 e6
}

// Frobenius coefficients: frobCoeffs[n-1][k] multiplies the wᵏ slot when
// applying the Frobenius endomorphism n times.
// frobCoeffs[0][k] = (1+i)^(k(p-1)/6)
var frobCoeffs [3][6]e2

func init() {
	var exp, kExp big.Int
	exp.Sub(fp.Modulus(), big.NewInt(1))
	exp.Div(&exp, big.NewInt(6)) // (p-1)/6, p ≡ 1 mod 6

	var nonRes e2
	nonRes.A0.SetOne()
	nonRes.A1.SetOne()

	for k := 0; k < 6; k++ {
		kExp.Mul(&exp, big.NewInt(int64(k)))
		frobCoeffs[0][k].Exp(nonRes, &kExp)

		// (1+i)^(k(p²-1)/6) = γ̄γ and (1+i)^(k(p³-1)/6) = γ̄γ² for γ the
		// first-power coefficient
		var conj e2
		conj.Conjugate(&frobCoeffs[0][k])
		frobCoeffs[1][k].Mul(&frobCoeffs[0][k], &conj)
		frobCoeffs[2][k].Mul(&frobCoeffs[1][k], &frobCoeffs[0][k])
	}
}

// SetString sets a e12 element from strings
func (z *e12) SetString(s ...string) *e12 {
	if len(s) != 12 {
		panic("e12 needs 12 coordinates")
	}
	z.C0.SetString(s[0], s[1], s[2], s[3], s[4], s[5])
	z.C1.SetString(s[6], s[7], s[8], s[9], s[10], s[11])
	return z
}

// Set z = x and returns z
func (z *e12) Set(x *e12) *e12 {
	z.C0 = x.C0
	z.C1 = x.C1
	return z
}

// SetZero z = 0
func (z *e12) SetZero() *e12 {
	z.C0.SetZero()
	z.C1.SetZero()
	return z
}

// SetOne z = 1
func (z *e12) SetOne() *e12 {
	z.C0.SetOne()
	z.C1.SetZero()
	return z
}

// SetRandom sets z to a uniform random element read from rand
func (z *e12) SetRandom(rand io.Reader) (*e12, error) {
	if _, err := z.C0.SetRandom(rand); err != nil {
		return nil, err
	}
	if _, err := z.C1.SetRandom(rand); err != nil {
		return nil, err
	}
	return z, nil
}

// Equal returns z == x
func (z *e12) Equal(x *e12) bool {
	return z.C0.Equal(&x.C0) && z.C1.Equal(&x.C1)
}

// IsZero returns z == 0
func (z *e12) IsZero() bool {
	return z.C0.IsZero() && z.C1.IsZero()
}

// IsOne returns z == 1
func (z *e12) IsOne() bool {
	var one e12
	one.SetOne()
	return z.Equal(&one)
}

// String puts e12 in string form
func (z *e12) String() string {
	return "(" + z.C0.String() + ")+(" + z.C1.String() + ")*w"
}

// Add z = x + y
func (z *e12) Add(x, y *e12) *e12 {
	z.C0.Add(&x.C0, &y.C0)
	z.C1.Add(&x.C1, &y.C1)
	return z
}

// Sub z = x - y
func (z *e12) Sub(x, y *e12) *e12 {
	z.C0.Sub(&x.C0, &y.C0)
	z.C1.Sub(&x.C1, &y.C1)
	return z
}

// Conjugate z = x̄, the conjugate over e6 (negates C1)
//
// On the cyclotomic subgroup this is the inverse.
func (z *e12) Conjugate(x *e12) *e12 {
	z.C0 = x.C0
	z.C1.Neg(&x.C1)
	return z
}

// Mul z = x * y
func (z *e12) Mul(x, y *e12) *e12 {
	// Algorithm 20 of https://eprint.iacr.org/2010/354.pdf
	var a, b, c e6
	a.Add(&x.C0, &x.C1)
	b.Add(&y.C0, &y.C1)
	a.Mul(&a, &b)
	b.Mul(&x.C0, &y.C0)
	c.Mul(&x.C1, &y.C1)
	z.C1.Sub(&a, &b).Sub(&z.C1, &c)
	z.C0.MulByNonResidue(&c).Add(&z.C0, &b)
	return z
}

// Square z = x * x
func (z *e12) Square(x *e12) *e12 {
	// Algorithm 22 of https://eprint.iacr.org/2010/354.pdf
	var c0, c2, c3 e6
	c0.Sub(&x.C0, &x.C1)
	c3.MulByNonResidue(&x.C1).Neg(&c3).Add(&x.C0, &c3)
	c2.Mul(&x.C0, &x.C1)
	c0.Mul(&c0, &c3).Add(&c0, &c2)
	z.C1.Double(&c2)
	c2.MulByNonResidue(&c2)
	z.C0.Add(&c0, &c2)
	return z
}

// Inverse z = x⁻¹
//
// if x == 0, sets and returns z = x
func (z *e12) Inverse(x *e12) *e12 {
	// Algorithm 23 of https://eprint.iacr.org/2010/354.pdf
	var t0, t1, tmp e6
	t0.Square(&x.C0)
	t1.Square(&x.C1)
	tmp.MulByNonResidue(&t1)
	t0.Sub(&t0, &tmp)
	t1.Inverse(&t0)
	z.C0.Mul(&x.C0, &t1)
	z.C1.Mul(&x.C1, &t1).Neg(&z.C1)
	return z
}

// Exp z = xᵏ
func (z *e12) Exp(x e12, k *big.Int) *e12 {
	if k.IsUint64() && k.Uint64() == 0 {
		return z.SetOne()
	}

	e := k
	if k.Sign() == -1 {
		x.Inverse(&x)
		e = new(big.Int).Neg(k)
	}

	z.Set(&x)
	for i := e.BitLen() - 2; i >= 0; i-- {
		z.Square(z)
		if e.Bit(i) == 1 {
			z.Mul(z, &x)
		}
	}
	return z
}

// MulBy014 multiplication by a sparse element of the form
//
//	(c0, c1, 0) + (0, c4, 0)w
//
// which is the shape of a Miller loop line evaluation
func (z *e12) MulBy014(c0, c1, c4 *e2) *e12 {
	var a, b e6
	var d e2

	a.Set(&z.C0)
	a.MulBy01(c0, c1)

	b.Set(&z.C1)
	b.MulBy1(c4)

	d.Add(c1, c4)

	z.C1.Add(&z.C1, &z.C0)
	z.C1.MulBy01(c0, &d)
	z.C1.Sub(&z.C1, &a)
	z.C1.Sub(&z.C1, &b)
	z.C0.MulByNonResidue(&b)
	z.C0.Add(&z.C0, &a)

	return z
}

// CyclotomicSquare squares x, which must lie in the cyclotomic subgroup
func (z *e12) CyclotomicSquare(x *e12) *e12 {
	// https://eprint.iacr.org/2009/565.pdf, 3.2, via three fp4 squarings
	// over the slots (x0,x4) (x3,x2) (x1,x5)

	var t [9]e2

	t[0].Square(&x.C1.B1)
	t[1].Square(&x.C0.B0)
	t[6].Add(&x.C1.B1, &x.C0.B0).Square(&t[6]).Sub(&t[6], &t[0]).Sub(&t[6], &t[1]) // 2*x4*x0
	t[2].Square(&x.C0.B2)
	t[3].Square(&x.C1.B0)
	t[7].Add(&x.C0.B2, &x.C1.B0).Square(&t[7]).Sub(&t[7], &t[2]).Sub(&t[7], &t[3]) // 2*x2*x3
	t[4].Square(&x.C1.B2)
	t[5].Square(&x.C0.B1)
	t[8].Add(&x.C1.B2, &x.C0.B1).Square(&t[8]).Sub(&t[8], &t[4]).Sub(&t[8], &t[5]).MulByNonResidue(&t[8]) // 2*x5*x1*(1+i)

	t[0].MulByNonResidue(&t[0]).Add(&t[0], &t[1]) // x4²*(1+i) + x0²
	t[2].MulByNonResidue(&t[2]).Add(&t[2], &t[3]) // x2²*(1+i) + x3²
	t[4].MulByNonResidue(&t[4]).Add(&t[4], &t[5]) // x5²*(1+i) + x1²

	z.C0.B0.Sub(&t[0], &x.C0.B0).Double(&z.C0.B0).Add(&z.C0.B0, &t[0])
	z.C0.B1.Sub(&t[2], &x.C0.B1).Double(&z.C0.B1).Add(&z.C0.B1, &t[2])
	z.C0.B2.Sub(&t[4], &x.C0.B2).Double(&z.C0.B2).Add(&z.C0.B2, &t[4])

	z.C1.B0.Add(&t[8], &x.C1.B0).Double(&z.C1.B0).Add(&z.C1.B0, &t[8])
	z.C1.B1.Add(&t[6], &x.C1.B1).Double(&z.C1.B1).Add(&z.C1.B1, &t[6])
	z.C1.B2.Add(&t[7], &x.C1.B2).Double(&z.C1.B2).Add(&z.C1.B2, &t[7])

	return z
}

// Expt z = xᵗ where t is the curve parameter (negative); x must lie in
// the cyclotomic subgroup
func (z *e12) Expt(x *e12) *e12 {
	var result e12
	result.Set(x)

	// |t| has a low Hamming weight, a plain double-and-add is fine
	for i := bits.Len64(tAbsVal) - 2; i >= 0; i-- {
		result.CyclotomicSquare(&result)
		if tAbsVal>>uint(i)&1 == 1 {
			result.Mul(&result, x)
		}
	}

	// t is negative, conjugation inverts on the cyclotomic subgroup
	result.Conjugate(&result)

	return z.Set(&result)
}

// Frobenius applies the Frobenius endomorphism: z = xᵖ
func (z *e12) Frobenius(x *e12) *e12 {
	// φ(a wᵏ) = ā γ₁ᵏ wᵏ with the slots of e12 over e2 ordered
	// C0.B0, C1.B0, C0.B1, C1.B1, C0.B2, C1.B2 → w⁰..w⁵
	var t [6]e2
	t[0].Conjugate(&x.C0.B0)
	t[1].Conjugate(&x.C0.B1).Mul(&t[1], &frobCoeffs[0][2])
	t[2].Conjugate(&x.C0.B2).Mul(&t[2], &frobCoeffs[0][4])
	t[3].Conjugate(&x.C1.B0).Mul(&t[3], &frobCoeffs[0][1])
	t[4].Conjugate(&x.C1.B1).Mul(&t[4], &frobCoeffs[0][3])
	t[5].Conjugate(&x.C1.B2).Mul(&t[5], &frobCoeffs[0][5])

	z.C0.B0 = t[0]
	z.C0.B1 = t[1]
	z.C0.B2 = t[2]
	z.C1.B0 = t[3]
	z.C1.B1 = t[4]
	z.C1.B2 = t[5]

	return z
}

// FrobeniusSquare applies the Frobenius endomorphism twice: z = x^(p²)
func (z *e12) FrobeniusSquare(x *e12) *e12 {
	// the second-power coefficients land in fp, no conjugation needed
	z.C0.B0 = x.C0.B0
	z.C0.B1.Mul(&x.C0.B1, &frobCoeffs[1][2])
	z.C0.B2.Mul(&x.C0.B2, &frobCoeffs[1][4])
	z.C1.B0.Mul(&x.C1.B0, &frobCoeffs[1][1])
	z.C1.B1.Mul(&x.C1.B1, &frobCoeffs[1][3])
	z.C1.B2.Mul(&x.C1.B2, &frobCoeffs[1][5])
	return z
}

// FrobeniusCube applies the Frobenius endomorphism three times: z = x^(p³)
func (z *e12) FrobeniusCube(x *e12) *e12 {
	var t [6]e2
	t[0].Conjugate(&x.C0.B0)
	t[1].Conjugate(&x.C0.B1).Mul(&t[1], &frobCoeffs[2][2])
	t[2].Conjugate(&x.C0.B2).Mul(&t[2], &frobCoeffs[2][4])
	t[3].Conjugate(&x.C1.B0).Mul(&t[3], &frobCoeffs[2][1])
	t[4].Conjugate(&x.C1.B1).Mul(&t[4], &frobCoeffs[2][3])
	t[5].Conjugate(&x.C1.B2).Mul(&t[5], &frobCoeffs[2][5])

	z.C0.B0 = t[0]
	z.C0.B1 = t[1]
	z.C0.B2 = t[2]
	z.C1.B0 = t[3]
	z.C1.B1 = t[4]
	z.C1.B2 = t[5]

	return z
}
