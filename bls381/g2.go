package bls381

import (
	"math/big"

	"github.com/curvelab/ecc"
)

// G2Affine point in affine coordinates over the twist field; (0,0)
// encodes the point at infinity
type G2Affine struct {
	X, Y e2
}

// G2Jac point in Jacobian coordinates; Z == 0 encodes the point at
// infinity
type G2Jac struct {
	X, Y, Z e2
}

// Set p = a
func (p *G2Jac) Set(a *G2Jac) *G2Jac {
	p.X = a.X
	p.Y = a.Y
	p.Z = a.Z
	return p
}

// Clone returns a copy of p
func (p *G2Jac) Clone() *G2Jac {
	var res G2Jac
	res.Set(p)
	return &res
}

// SetInfinity sets p to the point at infinity
func (p *G2Jac) SetInfinity() *G2Jac {
	p.X.SetOne()
	p.Y.SetOne()
	p.Z.SetZero()
	return p
}

// IsInfinity returns true if p is the point at infinity
func (p *G2Jac) IsInfinity() bool {
	return p.Z.IsZero()
}

// Equal tests equality of the points, comparing the underlying affine
// points
func (p *G2Jac) Equal(a *G2Jac) bool {
	if p.Z.IsZero() || a.Z.IsZero() {
		return p.Z.IsZero() && a.Z.IsZero()
	}

	// x1 z2² == x2 z1²  and  y1 z2³ == y2 z1³
	var z1z1, z2z2, l, r e2
	z1z1.Square(&p.Z)
	z2z2.Square(&a.Z)

	l.Mul(&p.X, &z2z2)
	r.Mul(&a.X, &z1z1)
	if !l.Equal(&r) {
		return false
	}

	l.Mul(&p.Y, &a.Z).Mul(&l, &z2z2)
	r.Mul(&a.Y, &p.Z).Mul(&r, &z1z1)
	return l.Equal(&r)
}

// Neg p = -a
func (p *G2Jac) Neg(a *G2Jac) *G2Jac {
	p.X = a.X
	p.Y.Neg(&a.Y)
	p.Z = a.Z
	return p
}

// Select p = a if c=0, b otherwise; constant-time
func (p *G2Jac) Select(c int, a, b *G2Jac) *G2Jac {
	p.X.Select(c, &a.X, &b.X)
	p.Y.Select(c, &a.Y, &b.Y)
	p.Z.Select(c, &a.Z, &b.Z)
	return p
}

// Add point addition in montgomery form
// no assumptions on z
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#addition-add-2007-bl
func (p *G2Jac) Add(curve *Curve, a *G2Jac) *G2Jac {
	// p is infinity, return a
	if p.Z.IsZero() {
		p.Set(a)
		return p
	}

	// a is infinity, return p
	if a.Z.IsZero() {
		return p
	}

	var Z1Z1, Z2Z2, U1, U2, S1, S2, H, I, J, r, V e2

	Z1Z1.Square(&a.Z)
	Z2Z2.Square(&p.Z)

	U1.Mul(&a.X, &Z2Z2)
	U2.Mul(&p.X, &Z1Z1)

	S1.Mul(&a.Y, &p.Z).Mul(&S1, &Z2Z2)
	S2.Mul(&p.Y, &a.Z).Mul(&S2, &Z1Z1)

	// if p == a, we double instead
	if U1.Equal(&U2) && S1.Equal(&S2) {
		return p.Double()
	}

	H.Sub(&U2, &U1)

	// I = (2*H)^2
	I.Double(&H).Square(&I)

	J.Mul(&H, &I)

	// r = 2*(S2-S1)
	r.Sub(&S2, &S1).Double(&r)

	V.Mul(&U1, &I)

	// res.X = r^2-J-2*V
	p.X.Square(&r).Sub(&p.X, &J).Sub(&p.X, &V).Sub(&p.X, &V)

	// res.Y = r*(V-X3)-2*S1*J
	p.Y.Sub(&V, &p.X).Mul(&p.Y, &r)
	S1.Mul(&S1, &J).Double(&S1)
	p.Y.Sub(&p.Y, &S1)

	// res.Z = ((a.Z+p.Z)^2-Z1Z1-Z2Z2)*H
	p.Z.Add(&p.Z, &a.Z)
	p.Z.Square(&p.Z).Sub(&p.Z, &Z1Z1).Sub(&p.Z, &Z2Z2).Mul(&p.Z, &H)

	return p
}

// AddMixed point addition in montgomery form
// assumes a is in affine coordinates (i.e a.z == 1)
// http://www.hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-0.html#addition-madd-2007-bl
func (p *G2Jac) AddMixed(a *G2Affine) *G2Jac {

	// if a is infinity return p
	if a.X.IsZero() && a.Y.IsZero() {
		return p
	}
	// p is infinity, return a
	if p.Z.IsZero() {
		p.X = a.X
		p.Y = a.Y
		p.Z.SetOne()
		return p
	}

	var Z1Z1, U2, S2, H, HH, I, J, r, V e2

	Z1Z1.Square(&p.Z)

	U2.Mul(&a.X, &Z1Z1)
	S2.Mul(&a.Y, &p.Z).Mul(&S2, &Z1Z1)

	// if p == a, we double instead
	if U2.Equal(&p.X) && S2.Equal(&p.Y) {
		return p.Double()
	}

	H.Sub(&U2, &p.X)
	HH.Square(&H)

	// I = 4*HH
	I.Double(&HH).Double(&I)

	J.Mul(&H, &I)

	// r = 2*(S2-Y1)
	r.Sub(&S2, &p.Y).Double(&r)

	V.Mul(&p.X, &I)

	// res.X = r^2-J-2*V
	p.X.Square(&r).Sub(&p.X, &J).Sub(&p.X, &V).Sub(&p.X, &V)

	// res.Y = r*(V-X3)-2*Y1*J
	J.Mul(&J, &p.Y).Double(&J)
	p.Y.Sub(&V, &p.X).Mul(&p.Y, &r)
	p.Y.Sub(&p.Y, &J)

	// res.Z = (p.Z+H)^2-Z1Z1-HH
	p.Z.Add(&p.Z, &H)
	p.Z.Square(&p.Z).Sub(&p.Z, &Z1Z1).Sub(&p.Z, &HH)

	return p
}

// Double doubles a point in Jacobian coordinates
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#doubling-dbl-2007-bl
func (p *G2Jac) Double() *G2Jac {
	var XX, YY, YYYY, ZZ, S, M, T e2

	XX.Square(&p.X)
	YY.Square(&p.Y)
	YYYY.Square(&YY)
	ZZ.Square(&p.Z)

	// S = 2*((X1+YY)^2-XX-YYYY)
	S.Add(&p.X, &YY)
	S.Square(&S).Sub(&S, &XX).Sub(&S, &YYYY).Double(&S)

	// M = 3*XX (a=0)
	M.Double(&XX).Add(&M, &XX)

	// res.Z = (Y1+Z1)^2-YY-ZZ
	p.Z.Add(&p.Z, &p.Y)
	p.Z.Square(&p.Z).Sub(&p.Z, &YY).Sub(&p.Z, &ZZ)

	// T = M^2-2*S && res.X = T
	T.Square(&M)
	p.X = T
	T.Double(&S)
	p.X.Sub(&p.X, &T)

	// res.Y = M*(S-X3)-8*YYYY
	p.Y.Sub(&S, &p.X).Mul(&p.Y, &M)
	YYYY.Double(&YYYY).Double(&YYYY).Double(&YYYY)
	p.Y.Sub(&p.Y, &YYYY)

	return p
}

// ToAffine converts p to affine coordinates
func (p *G2Jac) ToAffine(res *G2Affine) *G2Affine {
	if p.Z.IsZero() {
		res.X.SetZero()
		res.Y.SetZero()
		return res
	}

	var zinv, zinv2, zinv3 e2
	zinv.Inverse(&p.Z)
	zinv2.Square(&zinv)
	zinv3.Mul(&zinv2, &zinv)
	res.X.Mul(&p.X, &zinv2)
	res.Y.Mul(&p.Y, &zinv3)
	return res
}

// ToJacobian converts p to Jacobian coordinates
func (p *G2Affine) ToJacobian(res *G2Jac) *G2Jac {
	if p.X.IsZero() && p.Y.IsZero() {
		return res.SetInfinity()
	}
	res.X = p.X
	res.Y = p.Y
	res.Z.SetOne()
	return res
}

// Set p = a
func (p *G2Affine) Set(a *G2Affine) *G2Affine {
	p.X = a.X
	p.Y = a.Y
	return p
}

// SetInfinity sets p to the point at infinity
func (p *G2Affine) SetInfinity() *G2Affine {
	p.X.SetZero()
	p.Y.SetZero()
	return p
}

// IsInfinity returns true if p is the point at infinity
func (p *G2Affine) IsInfinity() bool {
	return p.X.IsZero() && p.Y.IsZero()
}

// Equal tests equality of the points
func (p *G2Affine) Equal(a *G2Affine) bool {
	return p.X.Equal(&a.X) && p.Y.Equal(&a.Y)
}

// Neg p = -a
func (p *G2Affine) Neg(a *G2Affine) *G2Affine {
	p.X = a.X
	if a.IsInfinity() {
		p.Y.SetZero()
	} else {
		p.Y.Neg(&a.Y)
	}
	return p
}

// IsOnCurve returns true if p satisfies y² = x³ + 4(u+1), or is the
// point at infinity
func (p *G2Affine) IsOnCurve(curve *Curve) bool {
	if p.IsInfinity() {
		return true
	}
	var l, r e2
	l.Square(&p.Y)
	r.Square(&p.X).Mul(&r, &p.X).Add(&r, &curve.bTwist)
	return l.Equal(&r)
}

// IsOnCurve returns true if p satisfies the twist equation
func (p *G2Jac) IsOnCurve(curve *Curve) bool {
	if p.Z.IsZero() {
		return true
	}
	// y² = x³ + 4(u+1) z⁶
	var l, r, z e2
	l.Square(&p.Y)
	r.Square(&p.X).Mul(&r, &p.X)
	z.Square(&p.Z).Mul(&z, &p.Z).Square(&z).Mul(&z, &curve.bTwist)
	r.Add(&r, &z)
	return l.Equal(&r)
}

// IsInSubgroup returns true if p is on the twist and annihilated by
// the subgroup order r
func (p *G2Jac) IsInSubgroup(curve *Curve) bool {
	if !p.IsOnCurve(curve) {
		return false
	}
	// mulNaf takes the order unreduced; ScalarMulVarTime would reduce
	// it mod r to zero
	var res G2Jac
	res.mulNaf(curve, p, &curve.frModulus)
	return res.IsInfinity()
}

// ScalarMultiplication p = s * a, fixed-shape double-and-add with
// conditional moves; see G1Jac.ScalarMultiplication for the leakage
// contract
func (p *G2Jac) ScalarMultiplication(curve *Curve, a *G2Jac, s *big.Int) *G2Jac {
	var k big.Int
	k.Mod(s, &curve.frModulus)

	var res, sum G2Jac
	res.SetInfinity()

	for i := curve.frModulus.BitLen() - 1; i >= 0; i-- {
		res.Double()
		sum.Set(&res).Add(curve, a)
		res.Select(int(k.Bit(i)), &res, &sum)
	}

	return p.Set(&res)
}

// ScalarMulVarTime p = s * a using a signed digit (NAF) recoding; the
// scalar must not be secret
func (p *G2Jac) ScalarMulVarTime(curve *Curve, a *G2Jac, s *big.Int) *G2Jac {
	var k big.Int
	k.Mod(s, &curve.frModulus)
	return p.mulNaf(curve, a, &k)
}

// mulNaf p = k * a, k non-negative, not necessarily reduced
func (p *G2Jac) mulNaf(curve *Curve, a *G2Jac, k *big.Int) *G2Jac {
	if k.Sign() == 0 {
		return p.SetInfinity()
	}

	var naf [nafSize]int8
	l := ecc.NafDecomposition(k, naf[:])

	var base, baseNeg, res G2Jac
	base.Set(a)
	baseNeg.Neg(a)
	res.SetInfinity()

	for i := l - 1; i >= 0; i-- {
		res.Double()
		switch naf[i] {
		case 1:
			res.Add(curve, &base)
		case -1:
			res.Add(curve, &baseNeg)
		}
	}

	return p.Set(&res)
}

// ScalarMulByGen p = s * g where g is the G2 generator
func (p *G2Jac) ScalarMulByGen(curve *Curve, s *big.Int) *G2Jac {
	return p.ScalarMulVarTime(curve, &curve.g2Gen, s)
}

// ClearCofactor multiplies a by the G2 cofactor, landing in the
// order-r subgroup
func (p *G2Jac) ClearCofactor(curve *Curve, a *G2Jac) *G2Jac {
	// var-time is fine, the cofactor is public
	return p.mulNaf(curve, a, &curve.g2Cofactor)
}
