// Package bls381 implements the BLS12-381 pairing-friendly curve:
// base and scalar fields, the Fp12 tower, the G1 and G2 groups and the
// optimal Ate pairing between them.
package bls381

import (
	"math/big"
	"sync"

	"github.com/curvelab/ecc"
	"github.com/curvelab/ecc/bls381/fp"
	"github.com/curvelab/ecc/bls381/fr"
	"github.com/curvelab/ecc/logger"
)

// E: y**2=x**3+4
// Etwist: y**2 = x**3+4*(u+1)

var bls381 Curve
var initOnce sync.Once

// ID bls381 ID
const ID = ecc.BLS381

// tAbsVal is the absolute value of the curve parameter t; the parameter
// itself is negative, which shows up as a final conjugation in the
// pairing and in Expt
const tAbsVal uint64 = 15132376222941642752 // 2⁶³ + 2⁶² + 2⁶⁰ + 2⁵⁷ + 2⁴⁸ + 2¹⁶

// PairingResult target group of the pairing
type PairingResult = e12

// BLS381 returns BLS381 curve
func BLS381() *Curve {
	initOnce.Do(initBLS381)
	return &bls381
}

// Curve represents the BLS381 curve and pre-computed constants
type Curve struct {
	B fp.Element // B coefficient of the curve y^2 = x^3 + B

	bTwist e2 // B coefficient of the twist, B*(u+1)

	g1Gen G1Jac // generator of torsion group G1Jac
	g2Gen G2Jac // generator of torsion group G2Jac

	g1Infinity G1Jac // infinity (in Jacobian coords)
	g2Infinity G2Jac

	// cofactors of the curve and twist group orders
	g1Cofactor big.Int
	g2Cofactor big.Int

	// subgroup order r
	frModulus big.Int
}

func initBLS381() {

	// B coeff of the curve in Mont form
	bls381.B.SetUint64(4)

	// B coeff of the twist: 4*(u+1)
	bls381.bTwist.A0.SetUint64(4)
	bls381.bTwist.A1.SetUint64(4)

	// Setting G1Jac
	bls381.g1Gen.X.SetString("2407661716269791519325591009883849385849641130669941829988413640673772478386903154468379397813974815295049686961384")
	bls381.g1Gen.Y.SetString("821462058248938975967615814494474302717441302457255475448080663619194518120412959273482223614332657512049995916067")
	bls381.g1Gen.Z.SetString("1")

	// Setting G2Jac
	bls381.g2Gen.X.SetString("3914881020997020027725320596272602335133880006033342744016315347583472833929664105802124952724390025419912690116411",
		"277275454976865553761595788585036366131740173742845697399904006633521909118147462773311856983264184840438626176168")
	bls381.g2Gen.Y.SetString("253800087101532902362860387055050889666401414686580130872654083467859828854605749525591159464755920666929166876282",
		"1710145663789443622734372402738721070158916073226464929008132596760920130516982819361355832232719175024697380252309")
	bls381.g2Gen.Z.SetString("1",
		"0")

	// infinity point G1
	bls381.g1Infinity.X.SetOne()
	bls381.g1Infinity.Y.SetOne()

	// infinity point G2
	bls381.g2Infinity.X.SetOne()
	bls381.g2Infinity.Y.SetOne()

	bls381.frModulus.Set(fr.Modulus())

	// cofactors, from the curve parameter x (negative):
	// h1 = (x-1)²/3  and  h2 = (x⁸-4x⁷+5x⁶-4x⁴+6x³-4x²-4x+13)/9
	var x, acc big.Int
	x.SetUint64(tAbsVal)
	x.Neg(&x)

	acc.Sub(&x, big.NewInt(1))
	bls381.g1Cofactor.Mul(&acc, &acc).Div(&bls381.g1Cofactor, big.NewInt(3))

	h2 := func() *big.Int {
		coeffs := []int64{13, -4, -4, 6, -4, 0, 5, -4, 1} // low to high degree
		var res, term, pow big.Int
		pow.SetInt64(1)
		for _, c := range coeffs {
			term.Mul(&pow, big.NewInt(c))
			res.Add(&res, &term)
			pow.Mul(&pow, &x)
		}
		return res.Div(&res, big.NewInt(9))
	}
	bls381.g2Cofactor.Set(h2())

	log := logger.Logger()
	log.Debug().Str("curve", ID.String()).Msg("curve constants initialized")
}
