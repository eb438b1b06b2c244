package bls381

import (
	"math/big"

	"github.com/curvelab/ecc"
	"github.com/curvelab/ecc/bls381/fp"
)

// G1Affine point in affine coordinates; (0,0) encodes the point at
// infinity
type G1Affine struct {
	X, Y fp.Element
}

// G1Jac point in Jacobian coordinates; Z == 0 encodes the point at
// infinity
type G1Jac struct {
	X, Y, Z fp.Element
}

// Set p = a
func (p *G1Jac) Set(a *G1Jac) *G1Jac {
	p.X = a.X
	p.Y = a.Y
	p.Z = a.Z
	return p
}

// Clone returns a copy of p
func (p *G1Jac) Clone() *G1Jac {
	var res G1Jac
	res.Set(p)
	return &res
}

// SetInfinity sets p to the point at infinity
func (p *G1Jac) SetInfinity() *G1Jac {
	p.X.SetOne()
	p.Y.SetOne()
	p.Z.SetZero()
	return p
}

// IsInfinity returns true if p is the point at infinity
func (p *G1Jac) IsInfinity() bool {
	return p.Z.IsZero()
}

// Equal tests equality of the points, comparing the underlying affine
// points
func (p *G1Jac) Equal(a *G1Jac) bool {
	if p.Z.IsZero() || a.Z.IsZero() {
		return p.Z.IsZero() && a.Z.IsZero()
	}

	// x1 z2² == x2 z1²  and  y1 z2³ == y2 z1³
	var z1z1, z2z2, l, r fp.Element
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
func (p *G1Jac) Neg(a *G1Jac) *G1Jac {
	p.X = a.X
	p.Y.Neg(&a.Y)
	p.Z = a.Z
	return p
}

// Select p = a if c=0, b otherwise; constant-time
func (p *G1Jac) Select(c int, a, b *G1Jac) *G1Jac {
	p.X.Select(c, &a.X, &b.X)
	p.Y.Select(c, &a.Y, &b.Y)
	p.Z.Select(c, &a.Z, &b.Z)
	return p
}

// Add point addition in montgomery form
// no assumptions on z
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#addition-add-2007-bl
func (p *G1Jac) Add(curve *Curve, a *G1Jac) *G1Jac {
	// p is infinity, return a
	if p.Z.IsZero() {
		p.Set(a)
		return p
	}

	// a is infinity, return p
	if a.Z.IsZero() {
		return p
	}

	var Z1Z1, Z2Z2, U1, U2, S1, S2, H, I, J, r, V fp.Element

	Z1Z1.Square(&a.Z)
	Z2Z2.Square(&p.Z)

	// U1 = a.X * Z2Z2
	U1.Mul(&a.X, &Z2Z2)

	// U2 = p.X * Z1Z1
	U2.Mul(&p.X, &Z1Z1)

	// S1 = a.Y * p.Z * Z2Z2
	S1.Mul(&a.Y, &p.Z).Mul(&S1, &Z2Z2)

	// S2 = p.Y * a.Z * Z1Z1
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
func (p *G1Jac) AddMixed(a *G1Affine) *G1Jac {

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

	var Z1Z1, U2, S2, H, HH, I, J, r, V fp.Element

	Z1Z1.Square(&p.Z)

	// U2 = a.X * Z1Z1
	U2.Mul(&a.X, &Z1Z1)

	// S2 = a.Y * p.Z * Z1Z1
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
func (p *G1Jac) Double() *G1Jac {
	var XX, YY, YYYY, ZZ, S, M, T fp.Element

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
func (p *G1Jac) ToAffine(res *G1Affine) *G1Affine {
	if p.Z.IsZero() {
		res.X.SetZero()
		res.Y.SetZero()
		return res
	}

	var zinv, zinv2, zinv3 fp.Element
	zinv.Inverse(&p.Z)
	zinv2.Square(&zinv)
	zinv3.Mul(&zinv2, &zinv)
	res.X.Mul(&p.X, &zinv2)
	res.Y.Mul(&p.Y, &zinv3)
	return res
}

// ToJacobian converts p to Jacobian coordinates
func (p *G1Affine) ToJacobian(res *G1Jac) *G1Jac {
	if p.X.IsZero() && p.Y.IsZero() {
		return res.SetInfinity()
	}
	res.X = p.X
	res.Y = p.Y
	res.Z.SetOne()
	return res
}

// BatchJacobianToAffineG1 converts points to affine coordinates using a
// single field inversion for the whole batch
func BatchJacobianToAffineG1(points []G1Jac) []G1Affine {
	res := make([]G1Affine, len(points))

	zs := make([]fp.Element, len(points))
	for i := range points {
		zs[i] = points[i].Z
	}
	zInvs := fp.BatchInvert(zs)

	for i := range points {
		if points[i].Z.IsZero() {
			continue // stays (0,0)
		}
		var zinv2, zinv3 fp.Element
		zinv2.Square(&zInvs[i])
		zinv3.Mul(&zinv2, &zInvs[i])
		res[i].X.Mul(&points[i].X, &zinv2)
		res[i].Y.Mul(&points[i].Y, &zinv3)
	}
	return res
}

// Set p = a
func (p *G1Affine) Set(a *G1Affine) *G1Affine {
	p.X = a.X
	p.Y = a.Y
	return p
}

// SetInfinity sets p to the point at infinity
func (p *G1Affine) SetInfinity() *G1Affine {
	p.X.SetZero()
	p.Y.SetZero()
	return p
}

// IsInfinity returns true if p is the point at infinity
func (p *G1Affine) IsInfinity() bool {
	return p.X.IsZero() && p.Y.IsZero()
}

// Equal tests equality of the points
func (p *G1Affine) Equal(a *G1Affine) bool {
	return p.X.Equal(&a.X) && p.Y.Equal(&a.Y)
}

// Neg p = -a
func (p *G1Affine) Neg(a *G1Affine) *G1Affine {
	p.X = a.X
	if a.IsInfinity() {
		p.Y.SetZero()
	} else {
		p.Y.Neg(&a.Y)
	}
	return p
}

// IsOnCurve returns true if p satisfies y² = x³ + 4, or is the point
// at infinity
func (p *G1Affine) IsOnCurve(curve *Curve) bool {
	if p.IsInfinity() {
		return true
	}
	var l, r fp.Element
	l.Square(&p.Y)
	r.Square(&p.X).Mul(&r, &p.X).Add(&r, &curve.B)
	return l.Equal(&r)
}

// IsOnCurve returns true if p satisfies the curve equation
func (p *G1Jac) IsOnCurve(curve *Curve) bool {
	if p.Z.IsZero() {
		return true
	}
	// y² = x³ + 4 z⁶
	var l, r, z fp.Element
	l.Square(&p.Y)
	r.Square(&p.X).Mul(&r, &p.X)
	z.Square(&p.Z).Mul(&z, &p.Z).Square(&z).Mul(&z, &curve.B)
	r.Add(&r, &z)
	return l.Equal(&r)
}

// IsInSubgroup returns true if p is on the curve and annihilated by the
// subgroup order r
func (p *G1Jac) IsInSubgroup(curve *Curve) bool {
	if !p.IsOnCurve(curve) {
		return false
	}
	// mulNaf takes the order unreduced; ScalarMulVarTime would reduce
	// it mod r to zero
	var res G1Jac
	res.mulNaf(curve, p, &curve.frModulus)
	return res.IsInfinity()
}

// ScalarMultiplication p = s * a, running a fixed-shape double-and-add
// loop selecting with conditional moves; the iteration count depends
// only on the bit size of the subgroup order, so callers may pass
// secret scalars (the underlying Jacobian addition keeps its
// infinity and doubling branches, see the package documentation for
// the exact leakage contract)
func (p *G1Jac) ScalarMultiplication(curve *Curve, a *G1Jac, s *big.Int) *G1Jac {
	var k big.Int
	k.Mod(s, &curve.frModulus)

	var res, sum G1Jac
	res.SetInfinity()

	for i := curve.frModulus.BitLen() - 1; i >= 0; i-- {
		res.Double()
		sum.Set(&res).Add(curve, a)
		res.Select(int(k.Bit(i)), &res, &sum)
	}

	return p.Set(&res)
}

// ScalarMulVarTime p = s * a using a signed digit (NAF) recoding; runs
// faster than ScalarMultiplication but the operation sequence depends
// on the scalar, so the scalar must not be secret
func (p *G1Jac) ScalarMulVarTime(curve *Curve, a *G1Jac, s *big.Int) *G1Jac {
	var k big.Int
	k.Mod(s, &curve.frModulus)
	return p.mulNaf(curve, a, &k)
}

// mulNaf p = k * a, k non-negative, not necessarily reduced
func (p *G1Jac) mulNaf(curve *Curve, a *G1Jac, k *big.Int) *G1Jac {
	if k.Sign() == 0 {
		return p.SetInfinity()
	}

	var naf [nafSize]int8
	l := ecc.NafDecomposition(k, naf[:])

	var base, baseNeg, res G1Jac
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

// ScalarMulByGen p = s * g where g is the G1 generator
func (p *G1Jac) ScalarMulByGen(curve *Curve, s *big.Int) *G1Jac {
	return p.ScalarMulVarTime(curve, &curve.g1Gen, s)
}

// ClearCofactor multiplies a by the G1 cofactor, landing in the
// order-r subgroup
func (p *G1Jac) ClearCofactor(curve *Curve, a *G1Jac) *G1Jac {
	// var-time is fine, the cofactor is public
	return p.mulNaf(curve, a, &curve.g1Cofactor)
}

// NAF of a scalar needs one trit more than its bit length; the G2
// cofactor, the largest scalar used, fits 508 bits
const nafSize = 640
