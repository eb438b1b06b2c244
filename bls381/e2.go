package bls381

import (
	"io"
	"math/big"

	"github.com/curvelab/ecc/bls381/fp"
)

// e2 is a degree-2 extension of fp, with i² = -1
type e2 struct {
	A0, A1 fp.Element
}

var (
	twoInv fp.Element

	// exponents used by Sqrt, set once from the base field modulus
	sqrtExp1 big.Int // (p-3)/4
	sqrtExp2 big.Int // (p-1)/2
)

func init() {
	p := fp.Modulus()
	sqrtExp1.Sub(p, big.NewInt(3)).Rsh(&sqrtExp1, 2)
	sqrtExp2.Sub(p, big.NewInt(1)).Rsh(&sqrtExp2, 1)

	twoInv.SetUint64(2)
	twoInv.Inverse(&twoInv)
}

// SetString sets a e2 element from strings
func (z *e2) SetString(s1, s2 string) *e2 {
	z.A0.SetString(s1)
	z.A1.SetString(s2)
	return z
}

// Set z = x and returns z
func (z *e2) Set(x *e2) *e2 {
	z.A0 = x.A0
	z.A1 = x.A1
	return z
}

// SetZero z = 0
func (z *e2) SetZero() *e2 {
	z.A0.SetZero()
	z.A1.SetZero()
	return z
}

// SetOne z = 1
func (z *e2) SetOne() *e2 {
	z.A0.SetOne()
	z.A1.SetZero()
	return z
}

// SetRandom sets z to a uniform random element read from rand
func (z *e2) SetRandom(rand io.Reader) (*e2, error) {
	if _, err := z.A0.SetRandom(rand); err != nil {
		return nil, err
	}
	if _, err := z.A1.SetRandom(rand); err != nil {
		return nil, err
	}
	return z, nil
}

// Equal returns z == x
func (z *e2) Equal(x *e2) bool {
	return z.A0.Equal(&x.A0) && z.A1.Equal(&x.A1)
}

// IsZero returns z == 0
func (z *e2) IsZero() bool {
	return z.A0.IsZero() && z.A1.IsZero()
}

// IsOne returns z == 1
func (z *e2) IsOne() bool {
	return z.A0.IsOne() && z.A1.IsZero()
}

// Add z = x + y
func (z *e2) Add(x, y *e2) *e2 {
	z.A0.Add(&x.A0, &y.A0)
	z.A1.Add(&x.A1, &y.A1)
	return z
}

// Sub z = x - y
func (z *e2) Sub(x, y *e2) *e2 {
	z.A0.Sub(&x.A0, &y.A0)
	z.A1.Sub(&x.A1, &y.A1)
	return z
}

// Double z = x + x
func (z *e2) Double(x *e2) *e2 {
	z.A0.Double(&x.A0)
	z.A1.Double(&x.A1)
	return z
}

// Neg z = -x
func (z *e2) Neg(x *e2) *e2 {
	z.A0.Neg(&x.A0)
	z.A1.Neg(&x.A1)
	return z
}

// String puts e2 in string form
func (z *e2) String() string {
	return z.A0.String() + "+" + z.A1.String() + "*u"
}

// Conjugate z = x̄ (the A1 coefficient is negated)
func (z *e2) Conjugate(x *e2) *e2 {
	z.A0 = x.A0
	z.A1.Neg(&x.A1)
	return z
}

// Mul z = x * y, Karatsuba over the i² = -1 extension
func (z *e2) Mul(x, y *e2) *e2 {
	var a, b, c fp.Element
	a.Add(&x.A0, &x.A1)
	b.Add(&y.A0, &y.A1)
	a.Mul(&a, &b)
	b.Mul(&x.A0, &y.A0)
	c.Mul(&x.A1, &y.A1)
	z.A1.Sub(&a, &b).Sub(&z.A1, &c)
	z.A0.Sub(&b, &c)
	return z
}

// Square z = x * x, complex squaring (a+bi)² = (a+b)(a-b) + 2abi
func (z *e2) Square(x *e2) *e2 {
	var a, b fp.Element
	a.Add(&x.A0, &x.A1)
	b.Sub(&x.A0, &x.A1)
	a.Mul(&a, &b)
	b.Mul(&x.A0, &x.A1).Double(&b)
	z.A0 = a
	z.A1 = b
	return z
}

// MulByElement z = x * (y, 0)
func (z *e2) MulByElement(x *e2, y *fp.Element) *e2 {
	z.A0.Mul(&x.A0, y)
	z.A1.Mul(&x.A1, y)
	return z
}

// MulByNonResidue z = x * (1+i), the sextic non-residue of the tower
func (z *e2) MulByNonResidue(x *e2) *e2 {
	var a fp.Element
	a.Sub(&x.A0, &x.A1)
	z.A1.Add(&x.A0, &x.A1)
	z.A0 = a
	return z
}

// Inverse z = x⁻¹
//
// if x == 0, sets and returns z = x
func (z *e2) Inverse(x *e2) *e2 {
	// Algorithm 8 of https://eprint.iacr.org/2010/354.pdf
	var t0, t1 fp.Element
	t0.Square(&x.A0)
	t1.Square(&x.A1)
	t0.Add(&t0, &t1)
	t1.Inverse(&t0)
	z.A0.Mul(&x.A0, &t1)
	z.A1.Mul(&x.A1, &t1).Neg(&z.A1)
	return z
}

// Select z = x0 if c=0, x1 otherwise; constant-time
func (z *e2) Select(c int, x0, x1 *e2) *e2 {
	z.A0.Select(c, &x0.A0, &x1.A0)
	z.A1.Select(c, &x0.A1, &x1.A1)
	return z
}

// Exp z = xᵏ
func (z *e2) Exp(x e2, k *big.Int) *e2 {
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

// Legendre returns the Legendre symbol of z (either +1, -1, or 0)
func (z *e2) Legendre() int {
	// the norm a0² + a1² lands in fp and carries quadratic residuosity
	var n fp.Element
	n.Square(&z.A0)
	var t fp.Element
	t.Square(&z.A1)
	n.Add(&n, &t)
	return n.Legendre()
}

// Sqrt z = √x, returns nil if x is not a square
func (z *e2) Sqrt(x *e2) *e2 {
	// Algorithm 9 of https://eprint.iacr.org/2012/685.pdf
	// valid since p ≡ 3 mod 4

	var a1, alpha, b, x0, minusone, candidate e2

	minusone.SetOne().Neg(&minusone)

	a1.Exp(*x, &sqrtExp1) // x^((p-3)/4)
	alpha.Square(&a1).Mul(&alpha, x)
	x0.Mul(&a1, x)

	if alpha.Equal(&minusone) {
		// candidate is i*x0
		candidate.A0.Neg(&x0.A1)
		candidate.A1 = x0.A0
	} else {
		var one fp.Element
		one.SetOne()
		alpha.A0.Add(&alpha.A0, &one)
		b.Exp(alpha, &sqrtExp2) // (1+alpha)^((p-1)/2)
		candidate.Mul(&b, &x0)
	}

	var square e2
	square.Square(&candidate)
	if !square.Equal(x) {
		return nil
	}
	return z.Set(&candidate)
}

// LexicographicallyLargest returns true if z is strictly larger than -z
// comparing A1 first, then A0 on ties
func (z *e2) LexicographicallyLargest() bool {
	if z.A1.IsZero() {
		return z.A0.LexicographicallyLargest()
	}
	return z.A1.LexicographicallyLargest()
}
