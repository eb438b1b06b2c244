package bls381

import (
	"testing"

	"github.com/curvelab/ecc/bls381/fp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestG1MarshalRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10

	properties := gopter.NewProperties(parameters)
	curve := BLS381()

	properties.Property("compressed round trip", prop.ForAll(
		func(p G1Jac) bool {
			var aff, decoded G1Affine
			p.ToAffine(&aff)
			buf := aff.Bytes()
			n, err := decoded.SetBytes(curve, buf[:])
			return err == nil && n == SizeOfG1AffineCompressed && decoded.Equal(&aff)
		},
		genG1Jac(),
	))

	properties.Property("uncompressed round trip", prop.ForAll(
		func(p G1Jac) bool {
			var aff, decoded G1Affine
			p.ToAffine(&aff)
			buf := aff.RawBytes()
			n, err := decoded.SetBytes(curve, buf[:])
			return err == nil && n == SizeOfG1AffineUncompressed && decoded.Equal(&aff)
		},
		genG1Jac(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestG2MarshalRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10

	properties := gopter.NewProperties(parameters)
	curve := BLS381()

	properties.Property("compressed round trip", prop.ForAll(
		func(p G2Jac) bool {
			var aff, decoded G2Affine
			p.ToAffine(&aff)
			buf := aff.Bytes()
			n, err := decoded.SetBytes(curve, buf[:])
			return err == nil && n == SizeOfG2AffineCompressed && decoded.Equal(&aff)
		},
		genG2Jac(),
	))

	properties.Property("uncompressed round trip", prop.ForAll(
		func(p G2Jac) bool {
			var aff, decoded G2Affine
			p.ToAffine(&aff)
			buf := aff.RawBytes()
			n, err := decoded.SetBytes(curve, buf[:])
			return err == nil && n == SizeOfG2AffineUncompressed && decoded.Equal(&aff)
		},
		genG2Jac(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestMarshalInfinity(t *testing.T) {
	curve := BLS381()

	var p G1Affine
	p.SetInfinity()

	buf := p.Bytes()
	require.Equal(t, byte(0xC0), buf[0])
	for i := 1; i < len(buf); i++ {
		require.Equal(t, byte(0), buf[i])
	}
	var decoded G1Affine
	_, err := decoded.SetBytes(curve, buf[:])
	require.NoError(t, err)
	require.True(t, decoded.IsInfinity())

	raw := p.RawBytes()
	require.Equal(t, byte(0x40), raw[0])
	_, err = decoded.SetBytes(curve, raw[:])
	require.NoError(t, err)
	require.True(t, decoded.IsInfinity())

	var q G2Affine
	q.SetInfinity()
	qBuf := q.Bytes()
	require.Equal(t, byte(0xC0), qBuf[0])
	var qDecoded G2Affine
	_, err = qDecoded.SetBytes(curve, qBuf[:])
	require.NoError(t, err)
	require.True(t, qDecoded.IsInfinity())
}

func TestMarshalErrors(t *testing.T) {
	curve := BLS381()
	var p G1Affine

	// short buffer
	_, err := p.SetBytes(curve, make([]byte, SizeOfG1AffineCompressed-1))
	require.ErrorIs(t, err, ErrInvalidLength)

	// uncompressed flags with a compressed-size buffer
	short := make([]byte, SizeOfG1AffineCompressed)
	_, err = p.SetBytes(curve, short)
	require.ErrorIs(t, err, ErrInvalidLength)

	// reserved flag patterns
	for _, flags := range []byte{0b001 << 5, 0b011 << 5, 0b111 << 5} {
		buf := make([]byte, SizeOfG1AffineUncompressed)
		buf[0] = flags
		_, err = p.SetBytes(curve, buf)
		require.ErrorIs(t, err, ErrInvalidEncoding, "flags %#08b", flags)
	}

	// infinity encoding with stray data
	buf := make([]byte, SizeOfG1AffineCompressed)
	buf[0] = mCompressedInfinity
	buf[20] = 1
	_, err = p.SetBytes(curve, buf)
	require.ErrorIs(t, err, ErrInvalidEncoding)

	// non-canonical x: the modulus itself
	mod := fp.Modulus().Bytes()
	buf = make([]byte, SizeOfG1AffineCompressed)
	copy(buf[SizeOfG1AffineCompressed-len(mod):], mod)
	buf[0] |= mCompressedSmallest
	_, err = p.SetBytes(curve, buf)
	require.ErrorIs(t, err, fp.ErrNonCanonical)

	// x = 1: 1 + 4 = 5 is not a square mod p, no point has this abscissa
	buf = make([]byte, SizeOfG1AffineCompressed)
	buf[SizeOfG1AffineCompressed-1] = 1
	buf[0] |= mCompressedSmallest
	_, err = p.SetBytes(curve, buf)
	require.ErrorIs(t, err, ErrNotOnCurve)

	// on the curve but outside the r-torsion
	outside := g1NonSubgroupPoint()
	var outsideAff G1Affine
	outside.ToAffine(&outsideAff)
	enc := outsideAff.Bytes()
	_, err = p.SetBytes(curve, enc[:])
	require.ErrorIs(t, err, ErrNotInSubgroup)
}

func TestG2MarshalErrors(t *testing.T) {
	curve := BLS381()
	var p G2Affine

	_, err := p.SetBytes(curve, make([]byte, SizeOfG2AffineCompressed-1))
	require.ErrorIs(t, err, ErrInvalidLength)

	// x = 0: 4(u+1) is not a square in Fp2, no point has this abscissa
	buf := make([]byte, SizeOfG2AffineCompressed)
	buf[0] = mCompressedSmallest
	_, err = p.SetBytes(curve, buf)
	require.ErrorIs(t, err, ErrNotOnCurve)

	// on the twist but outside the r-torsion
	outside := g2NonSubgroupPoint()
	var outsideAff G2Affine
	outside.ToAffine(&outsideAff)
	enc := outsideAff.Bytes()
	_, err = p.SetBytes(curve, enc[:])
	require.ErrorIs(t, err, ErrNotInSubgroup)
}

func TestMarshalCompressedFlagSelectsRoot(t *testing.T) {
	curve := BLS381()

	var g, decoded, neg G1Affine
	curve.g1Gen.ToAffine(&g)
	neg.Neg(&g)

	buf := g.Bytes()
	flipped := buf
	// flip the sign bit, expect the other root
	flipped[0] ^= mCompressedSmallest ^ mCompressedLargest
	_, err := decoded.SetBytes(curve, flipped[:])
	require.NoError(t, err)
	require.True(t, decoded.Equal(&neg))
	require.True(t, decoded.IsOnCurve(curve))
}
