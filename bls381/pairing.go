package bls381

import (
	"errors"
	"math/bits"

	"github.com/curvelab/ecc/debug"
)

var (
	// ErrNotOnCurve is returned when a pairing input does not satisfy
	// its curve equation.
	ErrNotOnCurve = errors.New("point is not on the curve")
	// ErrNotInSubgroup is returned when a decoded point is not in the
	// order-r subgroup.
	ErrNotInSubgroup = errors.New("point is not in the correct subgroup")
	// ErrLengthMismatch is returned by multi-pairing operations when the
	// input slices have different lengths.
	ErrLengthMismatch = errors.New("input slices have mismatched lengths")
	// ErrNoInverse is returned when inverting the zero element.
	ErrNoInverse = errors.New("element has no inverse")
)

// number of line coefficient rows per pair: one per doubling step plus
// one per set bit of |t| below the leading one
const coeffRows = 68

// g2Proj is a G2 point in homogeneous projective coordinates, used only
// inside the Miller loop
type g2Proj struct {
	x, y, z e2
}

func (p *g2Proj) fromAffine(a *G2Affine) *g2Proj {
	p.x = a.X
	p.y = a.Y
	p.z.SetOne()
	return p
}

// MulByB z = 4(1+i) * x, the twist curve coefficient
func (z *e2) MulByB(x *e2) *e2 {
	z.MulByNonResidue(x)
	z.Double(z).Double(z)
	return z
}

// doublingStep doubles r and computes the tangent line coefficients,
// https://eprint.iacr.org/2013/722.pdf
func doublingStep(coeff *[3]e2, r *g2Proj) {
	var t [8]e2
	t[0].Mul(&r.x, &r.y)
	t[0].MulByElement(&t[0], &twoInv)
	t[1].Square(&r.y)
	t[2].Square(&r.z)
	t[7].Double(&t[2])
	t[7].Add(&t[7], &t[2])
	t[3].MulByB(&t[7])
	t[4].Double(&t[3])
	t[4].Add(&t[4], &t[3])
	t[5].Add(&t[1], &t[4])
	t[5].MulByElement(&t[5], &twoInv)
	t[6].Add(&r.y, &r.z)
	t[6].Square(&t[6])
	t[7].Add(&t[2], &t[1])
	t[6].Sub(&t[6], &t[7])
	coeff[0].Sub(&t[3], &t[1])
	t[7].Square(&r.x)
	t[4].Sub(&t[1], &t[4])
	r.x.Mul(&t[4], &t[0])
	t[2].Square(&t[3])
	t[3].Double(&t[2])
	t[3].Add(&t[3], &t[2])
	t[5].Square(&t[5])
	r.y.Sub(&t[5], &t[3])
	r.z.Mul(&t[1], &t[6])
	t[0].Double(&t[7])
	coeff[1].Add(&t[0], &t[7])
	coeff[2].Neg(&t[6])
}

// additionStep adds the affine point q to r and computes the chord line
// coefficients
func additionStep(coeff *[3]e2, r *g2Proj, q *G2Affine) {
	var t [6]e2
	t[0].Mul(&q.Y, &r.z)
	t[0].Neg(&t[0])
	t[0].Add(&t[0], &r.y)
	t[1].Mul(&q.X, &r.z)
	t[1].Neg(&t[1])
	t[1].Add(&t[1], &r.x)
	t[2].Square(&t[0])
	t[3].Square(&t[1])
	t[4].Mul(&t[1], &t[3])
	t[2].Mul(&r.z, &t[2])
	t[3].Mul(&r.x, &t[3])
	t[5].Double(&t[3])
	t[5].Sub(&t[4], &t[5])
	t[5].Add(&t[5], &t[2])
	r.x.Mul(&t[1], &t[5])
	t[2].Sub(&t[3], &t[5])
	t[2].Mul(&t[2], &t[0])
	t[3].Mul(&r.y, &t[4])
	r.y.Sub(&t[2], &t[3])
	r.z.Mul(&r.z, &t[4])
	t[2].Mul(&t[1], &q.Y)
	t[3].Mul(&t[0], &q.X)
	coeff[0].Sub(&t[3], &t[2])
	coeff[1].Neg(&t[0])
	coeff[2] = t[1]
}

// prepare computes the line coefficients of q for every Miller loop
// iteration
func prepare(ellCoeffs *[coeffRows][3]e2, q *G2Affine) {
	var r g2Proj
	r.fromAffine(q)

	j := 0
	for i := bits.Len64(tAbsVal) - 2; i >= 0; i-- {
		doublingStep(&ellCoeffs[j], &r)
		if tAbsVal>>uint(i)&1 == 1 {
			j++
			additionStep(&ellCoeffs[j], &r, q)
		}
		j++
	}
	debug.Assert(j == coeffRows, "prepared %d line coefficient rows, want %d", j, coeffRows)
}

// MillerLoop computes the product of the Miller functions of the given
// pairs, without the final exponentiation.
//
// Inputs must be on their curves; pairs with a point at infinity are
// skipped, contributing the neutral element.
func (curve *Curve) MillerLoop(P []G1Affine, Q []G2Affine, result *PairingResult) (*PairingResult, error) {
	if len(P) != len(Q) {
		return nil, ErrLengthMismatch
	}

	result.SetOne()

	// collect the pairs that actually contribute; a zero coefficient
	// row would absorb the whole product
	p := make([]G1Affine, 0, len(P))
	q := make([]G2Affine, 0, len(Q))
	for i := range P {
		if !P[i].IsOnCurve(curve) || !Q[i].IsOnCurve(curve) {
			return nil, ErrNotOnCurve
		}
		if P[i].IsInfinity() || Q[i].IsInfinity() {
			continue
		}
		p = append(p, P[i])
		q = append(q, Q[i])
	}
	if len(p) == 0 {
		return result, nil
	}

	ellCoeffs := make([][coeffRows][3]e2, len(p))
	for i := range q {
		prepare(&ellCoeffs[i], &q[i])
	}

	var c1, c4 e2
	eval := func(f *e12, i, j int) {
		// line evaluation at P: the 1 and 4 slots are scaled by the
		// affine coordinates of P
		c1.MulByElement(&ellCoeffs[i][j][1], &p[i].X)
		c4.MulByElement(&ellCoeffs[i][j][2], &p[i].Y)
		f.MulBy014(&ellCoeffs[i][j][0], &c1, &c4)
	}

	// first iteration, without squaring; the leading bit of |t|
	// contributes a doubling and an addition row
	for i := range p {
		eval(result, i, 0)
	}
	for i := range p {
		eval(result, i, 1)
	}

	j := 2
	for i := bits.Len64(tAbsVal) - 3; i >= 0; i-- {
		result.Square(result)
		for k := range p {
			eval(result, k, j)
		}
		if tAbsVal>>uint(i)&1 == 1 {
			j++
			for k := range p {
				eval(result, k, j)
			}
		}
		j++
	}

	// the curve parameter is negative
	result.Conjugate(result)

	return result, nil
}

// FinalExponentiation raises z to (p¹²-1)/r, mapping Miller loop
// outputs to the cyclotomic group where the pairing is defined
func (curve *Curve) FinalExponentiation(z *PairingResult) PairingResult {
	var t [7]e12

	// easy part: z^(p⁶-1)(p²+1)
	t[0].Conjugate(z)
	t[1].Inverse(z)
	t[2].Mul(&t[0], &t[1])
	t[1] = t[2]
	t[2].FrobeniusSquare(&t[2])
	t[2].Mul(&t[2], &t[1])

	// hard part, https://eprint.iacr.org/2016/130.pdf
	t[1].CyclotomicSquare(&t[2])
	t[1].Conjugate(&t[1])
	t[3].Expt(&t[2])
	t[4].CyclotomicSquare(&t[3])
	t[5].Mul(&t[1], &t[3])
	t[1].Expt(&t[5])
	t[0].Expt(&t[1])
	t[6].Expt(&t[0])
	t[6].Mul(&t[6], &t[4])
	t[4].Expt(&t[6])
	t[5].Conjugate(&t[5])
	t[4].Mul(&t[4], &t[5])
	t[4].Mul(&t[4], &t[2])
	t[5].Conjugate(&t[2])
	t[1].Mul(&t[1], &t[2])
	t[1].FrobeniusCube(&t[1])
	t[6].Mul(&t[6], &t[5])
	t[6].Frobenius(&t[6])
	t[3].Mul(&t[3], &t[0])
	t[3].FrobeniusSquare(&t[3])
	t[3].Mul(&t[3], &t[1])
	t[3].Mul(&t[3], &t[6])

	var result PairingResult
	result.Mul(&t[3], &t[4])
	return result
}

// Pair computes the pairing e(P, Q)
//
// Inputs must be on their curves; subgroup membership is the caller's
// responsibility (decode with SetBytes, or check IsInSubgroup)
func (curve *Curve) Pair(P G1Affine, Q G2Affine) (PairingResult, error) {
	return curve.MultiPair([]G1Affine{P}, []G2Affine{Q})
}

// MultiPair computes the product of pairings ∏ e(P[i], Q[i]) sharing a
// single final exponentiation
func (curve *Curve) MultiPair(P []G1Affine, Q []G2Affine) (PairingResult, error) {
	var f PairingResult
	if _, err := curve.MillerLoop(P, Q, &f); err != nil {
		return f, err
	}
	return curve.FinalExponentiation(&f), nil
}

// PairingCheck returns true if ∏ e(P[i], Q[i]) == 1
func (curve *Curve) PairingCheck(P []G1Affine, Q []G2Affine) (bool, error) {
	f, err := curve.MultiPair(P, Q)
	if err != nil {
		return false, err
	}
	return f.IsOne(), nil
}

// InverseChecked z = x⁻¹, returning ErrNoInverse when x == 0 instead
// of the internal x⁻¹ = 0 convention
func (z *e12) InverseChecked(x *e12) (*e12, error) {
	if x.IsZero() {
		return nil, ErrNoInverse
	}
	return z.Inverse(x), nil
}
