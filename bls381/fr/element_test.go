package fr

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func genElement() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		var a Element
		var v big.Int
		v.SetUint64(genParams.NextUint64())
		for i := 1; i < Limbs; i++ {
			v.Lsh(&v, 64)
			v.Add(&v, new(big.Int).SetUint64(genParams.NextUint64()))
		}
		a.SetBigInt(&v)
		return gopter.NewGenResult(a, gopter.NoShrinker)
	}
}

func TestElementArithmetic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("ring laws hold", prop.ForAll(
		func(a, b, c Element) bool {
			var ab, ba, l, r, tmp Element
			ab.Mul(&a, &b)
			ba.Mul(&b, &a)
			if !ab.Equal(&ba) {
				return false
			}
			l.Add(&a, &b).Mul(&l, &c)
			r.Mul(&a, &c)
			tmp.Mul(&b, &c)
			r.Add(&r, &tmp)
			return l.Equal(&r)
		},
		genElement(),
		genElement(),
		genElement(),
	))

	properties.Property("a * a⁻¹ == 1 for a != 0", prop.ForAll(
		func(a Element) bool {
			if a.IsZero() {
				return true
			}
			var i, p Element
			i.Inverse(&a)
			p.Mul(&a, &i)
			return p.IsOne()
		},
		genElement(),
	))

	properties.Property("mul matches big.Int mul", prop.ForAll(
		func(a, b Element) bool {
			var c Element
			c.Mul(&a, &b)

			var ba, bb, bc, expected big.Int
			a.BigInt(&ba)
			b.BigInt(&bb)
			expected.Mul(&ba, &bb).Mod(&expected, Modulus())
			c.BigInt(&bc)
			return bc.Cmp(&expected) == 0
		},
		genElement(),
		genElement(),
	))

	properties.Property("bytes round trip", prop.ForAll(
		func(a Element) bool {
			b := a.Bytes()
			var c Element
			if err := c.SetBytesCanonical(b[:]); err != nil {
				return false
			}
			return c.Equal(&a)
		},
		genElement(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestElementFixedVectors(t *testing.T) {
	assert := require.New(t)

	var a, b, c Element
	a.SetUint64(2)
	b.SetUint64(3)
	assert.Equal("6", c.Mul(&a, &b).String())

	// q - 1 + 1 == 0
	a.SetString("52435875175126190479447740508185965837690552500527637822603658699938581184512")
	b.SetOne()
	c.Add(&a, &b)
	assert.True(c.IsZero())

	// non-canonical bytes rejected
	var buf [Bytes]byte
	Modulus().FillBytes(buf[:])
	assert.ErrorIs(c.SetBytesCanonical(buf[:]), ErrNonCanonical)
}

func TestElementSetRandom(t *testing.T) {
	assert := require.New(t)

	var a, b Element
	_, err := a.SetRandom(rand.Reader)
	assert.NoError(err)
	_, err = b.SetRandom(rand.Reader)
	assert.NoError(err)
	assert.False(a.Equal(&b), "two random elements should differ")
}

func BenchmarkElementMul(b *testing.B) {
	var x, y Element
	x.SetString("11019358103200512606383071234864109998742382266")
	y.SetString("32435875175126190479447740508185965837690552500")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Mul(&x, &y)
	}
}

func TestElementInverseChecked(t *testing.T) {
	var zero, res Element
	_, err := res.InverseChecked(&zero)
	require.ErrorIs(t, err, ErrNoInverse)

	var a Element
	a.SetUint64(42)
	inv, err := res.InverseChecked(&a)
	require.NoError(t, err)
	var check Element
	check.Mul(inv, &a)
	require.True(t, check.IsOne())
}
