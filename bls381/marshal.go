package bls381

import (
	"errors"

	"github.com/curvelab/ecc/bls381/fp"
)

// Binary encodings follow the common BLS12-381 serialization scheme:
// big-endian field elements with three flag bits folded into the top of
// the first byte. The modulus is 381 bits so the top three bits of a
// canonical x coordinate are always free.
//
// msb of the first byte:
//	bit 7: compressed form
//	bit 6: point at infinity
//	bit 5: compressed y is the lexicographically largest of the two roots
const (
	mMask                 byte = 0b111 << 5
	mUncompressed         byte = 0b000 << 5
	mUncompressedInfinity byte = 0b010 << 5
	mCompressedSmallest   byte = 0b100 << 5
	mCompressedLargest    byte = 0b101 << 5
	mCompressedInfinity   byte = 0b110 << 5
)

// encoded point sizes in bytes
const (
	SizeOfG1AffineCompressed   = fp.Bytes
	SizeOfG1AffineUncompressed = 2 * fp.Bytes
	SizeOfG2AffineCompressed   = 2 * fp.Bytes
	SizeOfG2AffineUncompressed = 4 * fp.Bytes
)

var (
	// ErrInvalidLength is returned when a buffer does not have the size
	// its flag bits imply.
	ErrInvalidLength = errors.New("invalid encoding length")
	// ErrInvalidEncoding is returned on malformed flag bits or non-zero
	// padding in an infinity encoding.
	ErrInvalidEncoding = errors.New("invalid point encoding")
)

// Bytes returns the compressed encoding of p: the x coordinate with the
// flag bits set in the first byte
func (p *G1Affine) Bytes() (res [SizeOfG1AffineCompressed]byte) {
	if p.IsInfinity() {
		res[0] = mCompressedInfinity
		return
	}

	tmp := p.X.Bytes()
	copy(res[:], tmp[:])
	if p.Y.LexicographicallyLargest() {
		res[0] |= mCompressedLargest
	} else {
		res[0] |= mCompressedSmallest
	}
	return
}

// RawBytes returns the uncompressed encoding of p, x then y
func (p *G1Affine) RawBytes() (res [SizeOfG1AffineUncompressed]byte) {
	if p.IsInfinity() {
		res[0] = mUncompressedInfinity
		return
	}

	tmp := p.X.Bytes()
	copy(res[:fp.Bytes], tmp[:])
	tmp = p.Y.Bytes()
	copy(res[fp.Bytes:], tmp[:])
	return
}

// SetBytes decodes p from buf, accepting both compressed and
// uncompressed encodings, and returns the number of bytes read.
//
// Decoding validates in order: buffer length, flag bits, canonical
// field encoding, curve membership, subgroup membership. p is left
// unchanged on error.
func (p *G1Affine) SetBytes(curve *Curve, buf []byte) (int, error) {
	if len(buf) < SizeOfG1AffineCompressed {
		return 0, ErrInvalidLength
	}
	mData := buf[0] & mMask

	switch mData {
	case mUncompressed, mUncompressedInfinity:
		if len(buf) < SizeOfG1AffineUncompressed {
			return 0, ErrInvalidLength
		}
		if mData == mUncompressedInfinity {
			if !isZeroed(buf[0]&^mMask, buf[1:SizeOfG1AffineUncompressed]) {
				return 0, ErrInvalidEncoding
			}
			p.SetInfinity()
			return SizeOfG1AffineUncompressed, nil
		}
		var x, y fp.Element
		if err := x.SetBytesCanonical(buf[:fp.Bytes]); err != nil {
			return 0, err
		}
		if err := y.SetBytesCanonical(buf[fp.Bytes:SizeOfG1AffineUncompressed]); err != nil {
			return 0, err
		}
		q := G1Affine{X: x, Y: y}
		if !q.IsOnCurve(curve) {
			return 0, ErrNotOnCurve
		}
		var jac G1Jac
		q.ToJacobian(&jac)
		if !jac.IsInSubgroup(curve) {
			return 0, ErrNotInSubgroup
		}
		p.Set(&q)
		return SizeOfG1AffineUncompressed, nil

	case mCompressedInfinity:
		if !isZeroed(buf[0]&^mMask, buf[1:SizeOfG1AffineCompressed]) {
			return 0, ErrInvalidEncoding
		}
		p.SetInfinity()
		return SizeOfG1AffineCompressed, nil

	case mCompressedSmallest, mCompressedLargest:
		var raw [fp.Bytes]byte
		copy(raw[:], buf[:fp.Bytes])
		raw[0] &^= mMask

		var x fp.Element
		if err := x.SetBytesCanonical(raw[:]); err != nil {
			return 0, err
		}

		// y² = x³ + 4
		var y fp.Element
		y.Square(&x).Mul(&y, &x).Add(&y, &curve.B)
		if y.Sqrt(&y) == nil {
			return 0, ErrNotOnCurve
		}
		if y.LexicographicallyLargest() != (mData == mCompressedLargest) {
			y.Neg(&y)
		}

		q := G1Affine{X: x, Y: y}
		var jac G1Jac
		q.ToJacobian(&jac)
		if !jac.IsInSubgroup(curve) {
			return 0, ErrNotInSubgroup
		}
		p.Set(&q)
		return SizeOfG1AffineCompressed, nil

	default:
		return 0, ErrInvalidEncoding
	}
}

// Bytes returns the compressed encoding of p: the x coordinate as
// A1 ‖ A0 with the flag bits set in the first byte
func (p *G2Affine) Bytes() (res [SizeOfG2AffineCompressed]byte) {
	if p.IsInfinity() {
		res[0] = mCompressedInfinity
		return
	}

	tmp := p.X.A1.Bytes()
	copy(res[:fp.Bytes], tmp[:])
	tmp = p.X.A0.Bytes()
	copy(res[fp.Bytes:], tmp[:])
	if p.Y.LexicographicallyLargest() {
		res[0] |= mCompressedLargest
	} else {
		res[0] |= mCompressedSmallest
	}
	return
}

// RawBytes returns the uncompressed encoding of p, x then y, each
// coordinate as A1 ‖ A0
func (p *G2Affine) RawBytes() (res [SizeOfG2AffineUncompressed]byte) {
	if p.IsInfinity() {
		res[0] = mUncompressedInfinity
		return
	}

	tmp := p.X.A1.Bytes()
	copy(res[:fp.Bytes], tmp[:])
	tmp = p.X.A0.Bytes()
	copy(res[fp.Bytes:2*fp.Bytes], tmp[:])
	tmp = p.Y.A1.Bytes()
	copy(res[2*fp.Bytes:3*fp.Bytes], tmp[:])
	tmp = p.Y.A0.Bytes()
	copy(res[3*fp.Bytes:], tmp[:])
	return
}

// SetBytes decodes p from buf, accepting both compressed and
// uncompressed encodings, and returns the number of bytes read.
//
// The validation order matches G1Affine.SetBytes. p is left unchanged
// on error.
func (p *G2Affine) SetBytes(curve *Curve, buf []byte) (int, error) {
	if len(buf) < SizeOfG2AffineCompressed {
		return 0, ErrInvalidLength
	}
	mData := buf[0] & mMask

	switch mData {
	case mUncompressed, mUncompressedInfinity:
		if len(buf) < SizeOfG2AffineUncompressed {
			return 0, ErrInvalidLength
		}
		if mData == mUncompressedInfinity {
			if !isZeroed(buf[0]&^mMask, buf[1:SizeOfG2AffineUncompressed]) {
				return 0, ErrInvalidEncoding
			}
			p.SetInfinity()
			return SizeOfG2AffineUncompressed, nil
		}
		var x, y e2
		if err := setE2Canonical(&x, buf[:2*fp.Bytes]); err != nil {
			return 0, err
		}
		if err := setE2Canonical(&y, buf[2*fp.Bytes:SizeOfG2AffineUncompressed]); err != nil {
			return 0, err
		}
		q := G2Affine{X: x, Y: y}
		if !q.IsOnCurve(curve) {
			return 0, ErrNotOnCurve
		}
		var jac G2Jac
		q.ToJacobian(&jac)
		if !jac.IsInSubgroup(curve) {
			return 0, ErrNotInSubgroup
		}
		p.Set(&q)
		return SizeOfG2AffineUncompressed, nil

	case mCompressedInfinity:
		if !isZeroed(buf[0]&^mMask, buf[1:SizeOfG2AffineCompressed]) {
			return 0, ErrInvalidEncoding
		}
		p.SetInfinity()
		return SizeOfG2AffineCompressed, nil

	case mCompressedSmallest, mCompressedLargest:
		var raw [2 * fp.Bytes]byte
		copy(raw[:], buf[:2*fp.Bytes])
		raw[0] &^= mMask

		var x e2
		if err := setE2Canonical(&x, raw[:]); err != nil {
			return 0, err
		}

		// y² = x³ + 4(u+1)
		var ySquare, y e2
		ySquare.Square(&x).Mul(&ySquare, &x).Add(&ySquare, &curve.bTwist)
		if y.Sqrt(&ySquare) == nil {
			return 0, ErrNotOnCurve
		}
		if y.LexicographicallyLargest() != (mData == mCompressedLargest) {
			y.Neg(&y)
		}

		q := G2Affine{X: x, Y: y}
		var jac G2Jac
		q.ToJacobian(&jac)
		if !jac.IsInSubgroup(curve) {
			return 0, ErrNotInSubgroup
		}
		p.Set(&q)
		return SizeOfG2AffineCompressed, nil

	default:
		return 0, ErrInvalidEncoding
	}
}

// setE2Canonical decodes an e2 element serialized as A1 ‖ A0
func setE2Canonical(z *e2, buf []byte) error {
	if err := z.A1.SetBytesCanonical(buf[:fp.Bytes]); err != nil {
		return err
	}
	return z.A0.SetBytesCanonical(buf[fp.Bytes : 2*fp.Bytes])
}

// isZeroed checks that the low bits of the flag byte and the rest of an
// infinity encoding carry no stray data
func isZeroed(firstByte byte, buf []byte) bool {
	if firstByte != 0 {
		return false
	}
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}
