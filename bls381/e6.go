package bls381

import (
	"io"
)

// e6 is a degree-3 extension of e2, with v³ = 1+i
type e6 struct {
	B0, B1, B2 e2
}

// SetString sets a e6 element from strings
func (z *e6) SetString(s1, s2, s3, s4, s5, s6 string) *e6 {
	z.B0.SetString(s1, s2)
	z.B1.SetString(s3, s4)
	z.B2.SetString(s5, s6)
	return z
}

// Set z = x and returns z
func (z *e6) Set(x *e6) *e6 {
	z.B0 = x.B0
	z.B1 = x.B1
	z.B2 = x.B2
	return z
}

// SetZero z = 0
func (z *e6) SetZero() *e6 {
	z.B0.SetZero()
	z.B1.SetZero()
	z.B2.SetZero()
	return z
}

// SetOne z = 1
func (z *e6) SetOne() *e6 {
	z.B0.SetOne()
	z.B1.SetZero()
	z.B2.SetZero()
	return z
}

// SetRandom sets z to a uniform random element read from rand
func (z *e6) SetRandom(rand io.Reader) (*e6, error) {
	if _, err := z.B0.SetRandom(rand); err != nil {
		return nil, err
	}
	if _, err := z.B1.SetRandom(rand); err != nil {
		return nil, err
	}
	if _, err := z.B2.SetRandom(rand); err != nil {
		return nil, err
	}
	return z, nil
}

// Equal returns z == x
func (z *e6) Equal(x *e6) bool {
	return z.B0.Equal(&x.B0) && z.B1.Equal(&x.B1) && z.B2.Equal(&x.B2)
}

// IsZero returns z == 0
func (z *e6) IsZero() bool {
	return z.B0.IsZero() && z.B1.IsZero() && z.B2.IsZero()
}

// String puts e6 in string form
func (z *e6) String() string {
	return "(" + z.B0.String() + ")+(" + z.B1.String() + ")*v+(" + z.B2.String() + ")*v**2"
}

// Add z = x + y
func (z *e6) Add(x, y *e6) *e6 {
	z.B0.Add(&x.B0, &y.B0)
	z.B1.Add(&x.B1, &y.B1)
	z.B2.Add(&x.B2, &y.B2)
	return z
}

// Sub z = x - y
func (z *e6) Sub(x, y *e6) *e6 {
	z.B0.Sub(&x.B0, &y.B0)
	z.B1.Sub(&x.B1, &y.B1)
	z.B2.Sub(&x.B2, &y.B2)
	return z
}

// Double z = x + x
func (z *e6) Double(x *e6) *e6 {
	z.B0.Double(&x.B0)
	z.B1.Double(&x.B1)
	z.B2.Double(&x.B2)
	return z
}

// Neg z = -x
func (z *e6) Neg(x *e6) *e6 {
	z.B0.Neg(&x.B0)
	z.B1.Neg(&x.B1)
	z.B2.Neg(&x.B2)
	return z
}

// Mul z = x * y
func (z *e6) Mul(x, y *e6) *e6 {
	// Algorithm 13 of https://eprint.iacr.org/2010/354.pdf
	var t0, t1, t2, c0, c1, c2, tmp e2
	t0.Mul(&x.B0, &y.B0)
	t1.Mul(&x.B1, &y.B1)
	t2.Mul(&x.B2, &y.B2)

	c0.Add(&x.B1, &x.B2)
	tmp.Add(&y.B1, &y.B2)
	c0.Mul(&c0, &tmp).Sub(&c0, &t1).Sub(&c0, &t2).MulByNonResidue(&c0).Add(&c0, &t0)

	c1.Add(&x.B0, &x.B1)
	tmp.Add(&y.B0, &y.B1)
	c1.Mul(&c1, &tmp).Sub(&c1, &t0).Sub(&c1, &t1)
	tmp.MulByNonResidue(&t2)
	c1.Add(&c1, &tmp)

	tmp.Add(&x.B0, &x.B2)
	c2.Add(&y.B0, &y.B2).Mul(&c2, &tmp).Sub(&c2, &t0).Sub(&c2, &t2).Add(&c2, &t1)

	z.B0 = c0
	z.B1 = c1
	z.B2 = c2

	return z
}

// Square z = x * x
func (z *e6) Square(x *e6) *e6 {
	// Algorithm 16 (CH-SQR2) of https://eprint.iacr.org/2010/354.pdf
	var c4, c5, c1, c2, c3, c0 e2
	c4.Mul(&x.B0, &x.B1).Double(&c4)
	c5.Square(&x.B2)
	c1.MulByNonResidue(&c5).Add(&c1, &c4)
	c2.Sub(&c4, &c5)
	c3.Square(&x.B0)
	c4.Sub(&x.B0, &x.B1).Add(&c4, &x.B2)
	c5.Mul(&x.B1, &x.B2).Double(&c5)
	c4.Square(&c4)
	c0.MulByNonResidue(&c5).Add(&c0, &c3)
	z.B2.Add(&c2, &c4).Add(&z.B2, &c5).Sub(&z.B2, &c3)
	z.B0 = c0
	z.B1 = c1

	return z
}

// Inverse z = x⁻¹
//
// if x == 0, sets and returns z = x
func (z *e6) Inverse(x *e6) *e6 {
	// Algorithm 17 of https://eprint.iacr.org/2010/354.pdf
	// step 9 is wrong in the paper, it's t1-t4
	var t0, t1, t2, t3, t4, t5, t6, c0, c1, c2, d1, d2 e2
	t0.Square(&x.B0)
	t1.Square(&x.B1)
	t2.Square(&x.B2)
	t3.Mul(&x.B0, &x.B1)
	t4.Mul(&x.B0, &x.B2)
	t5.Mul(&x.B1, &x.B2)
	c0.MulByNonResidue(&t5).Neg(&c0).Add(&c0, &t0)
	c1.MulByNonResidue(&t2).Sub(&c1, &t3)
	c2.Sub(&t1, &t4)
	t6.Mul(&x.B0, &c0)
	d1.Mul(&x.B2, &c1)
	d2.Mul(&x.B1, &c2)
	d1.Add(&d1, &d2).MulByNonResidue(&d1)
	t6.Add(&t6, &d1)
	t6.Inverse(&t6)
	z.B0.Mul(&c0, &t6)
	z.B1.Mul(&c1, &t6)
	z.B2.Mul(&c2, &t6)

	return z
}

// MulByNonResidue z = x * v
func (z *e6) MulByNonResidue(x *e6) *e6 {
	z.B2, z.B1, z.B0 = x.B1, x.B0, x.B2
	z.B0.MulByNonResidue(&z.B0)
	return z
}

// MulByE2 z = x * (y, 0, 0)
func (z *e6) MulByE2(x *e6, y *e2) *e6 {
	z.B0.Mul(&x.B0, y)
	z.B1.Mul(&x.B1, y)
	z.B2.Mul(&x.B2, y)
	return z
}

// MulBy01 multiplication by a sparse element of the form (c0, c1, 0)
func (z *e6) MulBy01(c0, c1 *e2) *e6 {
	var a, b, tmp, t0, t1, t2 e2

	a.Mul(&z.B0, c0)
	b.Mul(&z.B1, c1)

	tmp.Add(&z.B1, &z.B2)
	t0.Mul(c1, &tmp)
	t0.Sub(&t0, &b)
	t0.MulByNonResidue(&t0)
	t0.Add(&t0, &a)

	tmp.Add(&z.B0, &z.B2)
	t2.Mul(c0, &tmp)
	t2.Sub(&t2, &a)
	t2.Add(&t2, &b)

	t1.Add(c0, c1)
	tmp.Add(&z.B0, &z.B1)
	t1.Mul(&t1, &tmp)
	t1.Sub(&t1, &a)
	t1.Sub(&t1, &b)

	z.B0 = t0
	z.B1 = t1
	z.B2 = t2

	return z
}

// MulBy1 multiplication by a sparse element of the form (0, c1, 0)
func (z *e6) MulBy1(c1 *e2) *e6 {
	var b, tmp, t0, t1 e2
	b.Mul(&z.B1, c1)

	tmp.Add(&z.B1, &z.B2)
	t0.Mul(c1, &tmp)
	t0.Sub(&t0, &b)
	t0.MulByNonResidue(&t0)

	tmp.Add(&z.B0, &z.B1)
	t1.Mul(c1, &tmp)
	t1.Sub(&t1, &b)

	z.B0 = t0
	z.B1 = t1
	z.B2 = b

	return z
}
