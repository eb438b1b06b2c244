// Package fr implements arithmetic modulo r, the prime order of the
// curve subgroups, used as the scalar field.
package fr

import (
	"encoding/binary"
	"errors"
	"io"
	"math/big"
	"math/bits"
)

// Element represents a field element stored on 4 words (uint64)
//
// Element are assumed to be in Montgomery form in all methods.
//
// Modulus q =
//
//	q[base10] = 52435875175126190479447740508185965837690552500527637822603658699938581184513
//	q[base16] = 0x73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001
type Element [4]uint64

const (
	Limbs = 4         // number of 64 bits words needed to represent a Element
	Bits  = 255       // number of bits needed to represent a Element
	Bytes = Limbs * 8 // number of bytes needed to represent a Element
)

// Field modulus q
const (
	q0 uint64 = 18446744069414584321
	q1 uint64 = 6034159408538082302
	q2 uint64 = 3691218898639771653
	q3 uint64 = 8353516859464449352
)

// q + r'.r = 1, i.e., qInvNeg = - q⁻¹ mod r
// used for Montgomery reduction
const qInvNeg uint64 = 18446744069414584319

var (
	// ErrInvalidLength is returned when decoding a byte slice whose size
	// does not match Bytes.
	ErrInvalidLength = errors.New("invalid byte slice length")
	// ErrNonCanonical is returned when decoding bytes that encode an
	// integer larger than or equal to the field modulus.
	ErrNonCanonical = errors.New("byte encoding is not a canonical field element")
	// ErrNoInverse is returned by InverseChecked on the zero element.
	ErrNoInverse = errors.New("element has no inverse")
)

var (
	_modulus        big.Int
	qMinusTwoBigInt big.Int
)

func init() {
	_modulus.SetString("52435875175126190479447740508185965837690552500527637822603658699938581184513", 10)
	qMinusTwoBigInt.Sub(&_modulus, new(big.Int).SetUint64(2))
}

// Modulus returns q as a big.Int
func Modulus() *big.Int {
	return new(big.Int).Set(&_modulus)
}

// SetUint64 sets z to v and returns z
func (z *Element) SetUint64(v uint64) *Element {
	//  sets z LSB to v (non-Montgomery form) and convert z to Montgomery form
	*z = Element{v}
	return z.Mul(z, &rSquare) // z.ToMont()
}

// SetInt64 sets z to v and returns z
func (z *Element) SetInt64(v int64) *Element {

	// absolute value of v
	m := v >> 63
	z.SetUint64(uint64((v ^ m) - m))

	if m != 0 {
		// v is negative
		z.Neg(z)
	}

	return z
}

// Set z = x and returns z
func (z *Element) Set(x *Element) *Element {
	z[0] = x[0]
	z[1] = x[1]
	z[2] = x[2]
	z[3] = x[3]
	return z
}

// SetZero z = 0
func (z *Element) SetZero() *Element {
	z[0] = 0
	z[1] = 0
	z[2] = 0
	z[3] = 0
	return z
}

// SetOne z = 1 (in Montgomery form)
func (z *Element) SetOne() *Element {
	z[0] = 8589934590
	z[1] = 6378425256633387010
	z[2] = 11064306276430008309
	z[3] = 1739710354780652911
	return z
}

// One returns 1
func One() Element {
	var one Element
	one.SetOne()
	return one
}

// Equal returns z == x; constant-time
func (z *Element) Equal(x *Element) bool {
	return z.NotEqual(x) == 0
}

// NotEqual returns 0 if and only if z == x; constant-time
func (z *Element) NotEqual(x *Element) uint64 {
	return (z[3] ^ x[3]) | (z[2] ^ x[2]) | (z[1] ^ x[1]) | (z[0] ^ x[0])
}

// IsZero returns z == 0
func (z *Element) IsZero() bool {
	return (z[3] | z[2] | z[1] | z[0]) == 0
}

// IsOne returns z == 1
func (z *Element) IsOne() bool {
	return (z[3]^1739710354780652911 | z[2]^11064306276430008309 | z[1]^6378425256633387010 | z[0]^8589934590) == 0
}

// smallerThanModulus returns true if z < q
// This is not constant time
func (z *Element) smallerThanModulus() bool {
	return (z[3] < q3 || (z[3] == q3 && (z[2] < q2 || (z[2] == q2 && (z[1] < q1 || (z[1] == q1 && (z[0] < q0)))))))
}

// Mul z = x * y (mod q)
//
// x and y must be strictly inferior to q
func (z *Element) Mul(x, y *Element) *Element {
	// CIOS multiplication, "no carry chain" variant; see fp.Element.Mul
	// for the algorithm references
	_mulGeneric(z, x, y)
	return z
}

// Square z = x * x (mod q)
//
// x must be strictly inferior to q
func (z *Element) Square(x *Element) *Element {
	_mulGeneric(z, x, x)
	return z
}

// FromMont converts z in place (i.e. mutates) from Montgomery to regular representation
// sets and returns z = z * 1
func (z *Element) FromMont() *Element {
	_fromMontGeneric(z)
	return z
}

// Add z = x + y (mod q)
func (z *Element) Add(x, y *Element) *Element {

	var carry uint64
	z[0], carry = bits.Add64(x[0], y[0], 0)
	z[1], carry = bits.Add64(x[1], y[1], carry)
	z[2], carry = bits.Add64(x[2], y[2], carry)
	z[3], _ = bits.Add64(x[3], y[3], carry)

	// if z >= q → z -= q
	if !z.smallerThanModulus() {
		var b uint64
		z[0], b = bits.Sub64(z[0], q0, 0)
		z[1], b = bits.Sub64(z[1], q1, b)
		z[2], b = bits.Sub64(z[2], q2, b)
		z[3], _ = bits.Sub64(z[3], q3, b)
	}
	return z
}

// Double z = x + x (mod q), aka Lsh 1
func (z *Element) Double(x *Element) *Element {

	var carry uint64
	z[0], carry = bits.Add64(x[0], x[0], 0)
	z[1], carry = bits.Add64(x[1], x[1], carry)
	z[2], carry = bits.Add64(x[2], x[2], carry)
	z[3], _ = bits.Add64(x[3], x[3], carry)

	// if z >= q → z -= q
	if !z.smallerThanModulus() {
		var b uint64
		z[0], b = bits.Sub64(z[0], q0, 0)
		z[1], b = bits.Sub64(z[1], q1, b)
		z[2], b = bits.Sub64(z[2], q2, b)
		z[3], _ = bits.Sub64(z[3], q3, b)
	}
	return z
}

// Sub z = x - y (mod q)
func (z *Element) Sub(x, y *Element) *Element {
	var b uint64
	z[0], b = bits.Sub64(x[0], y[0], 0)
	z[1], b = bits.Sub64(x[1], y[1], b)
	z[2], b = bits.Sub64(x[2], y[2], b)
	z[3], b = bits.Sub64(x[3], y[3], b)
	if b != 0 {
		var c uint64
		z[0], c = bits.Add64(z[0], q0, 0)
		z[1], c = bits.Add64(z[1], q1, c)
		z[2], c = bits.Add64(z[2], q2, c)
		z[3], _ = bits.Add64(z[3], q3, c)
	}
	return z
}

// Neg z = q - x
func (z *Element) Neg(x *Element) *Element {
	if x.IsZero() {
		z.SetZero()
		return z
	}
	var borrow uint64
	z[0], borrow = bits.Sub64(q0, x[0], 0)
	z[1], borrow = bits.Sub64(q1, x[1], borrow)
	z[2], borrow = bits.Sub64(q2, x[2], borrow)
	z[3], _ = bits.Sub64(q3, x[3], borrow)
	return z
}

func _mulGeneric(z, x, y *Element) {

	var t [4]uint64
	var c [3]uint64
	{
		// round 0
		v := x[0]
		c[1], c[0] = bits.Mul64(v, y[0])
		m := c[0] * qInvNeg
		c[2] = madd0(m, q0, c[0])
		c[1], c[0] = madd1(v, y[1], c[1])
		c[2], t[0] = madd2(m, q1, c[2], c[0])
		c[1], c[0] = madd1(v, y[2], c[1])
		c[2], t[1] = madd2(m, q2, c[2], c[0])
		c[1], c[0] = madd1(v, y[3], c[1])
		t[3], t[2] = madd3(m, q3, c[0], c[2], c[1])
	}
	{
		// round 1
		v := x[1]
		c[1], c[0] = madd1(v, y[0], t[0])
		m := c[0] * qInvNeg
		c[2] = madd0(m, q0, c[0])
		c[1], c[0] = madd2(v, y[1], c[1], t[1])
		c[2], t[0] = madd2(m, q1, c[2], c[0])
		c[1], c[0] = madd2(v, y[2], c[1], t[2])
		c[2], t[1] = madd2(m, q2, c[2], c[0])
		c[1], c[0] = madd2(v, y[3], c[1], t[3])
		t[3], t[2] = madd3(m, q3, c[0], c[2], c[1])
	}
	{
		// round 2
		v := x[2]
		c[1], c[0] = madd1(v, y[0], t[0])
		m := c[0] * qInvNeg
		c[2] = madd0(m, q0, c[0])
		c[1], c[0] = madd2(v, y[1], c[1], t[1])
		c[2], t[0] = madd2(m, q1, c[2], c[0])
		c[1], c[0] = madd2(v, y[2], c[1], t[2])
		c[2], t[1] = madd2(m, q2, c[2], c[0])
		c[1], c[0] = madd2(v, y[3], c[1], t[3])
		t[3], t[2] = madd3(m, q3, c[0], c[2], c[1])
	}
	{
		// round 3
		v := x[3]
		c[1], c[0] = madd1(v, y[0], t[0])
		m := c[0] * qInvNeg
		c[2] = madd0(m, q0, c[0])
		c[1], c[0] = madd2(v, y[1], c[1], t[1])
		c[2], z[0] = madd2(m, q1, c[2], c[0])
		c[1], c[0] = madd2(v, y[2], c[1], t[2])
		c[2], z[1] = madd2(m, q2, c[2], c[0])
		c[1], c[0] = madd2(v, y[3], c[1], t[3])
		z[3], z[2] = madd3(m, q3, c[0], c[2], c[1])
	}

	// if z >= q → z -= q
	if !z.smallerThanModulus() {
		var b uint64
		z[0], b = bits.Sub64(z[0], q0, 0)
		z[1], b = bits.Sub64(z[1], q1, b)
		z[2], b = bits.Sub64(z[2], q2, b)
		z[3], _ = bits.Sub64(z[3], q3, b)
	}
}

func _fromMontGeneric(z *Element) {
	// z = z * 1, modified CIOS montgomery multiplication
	for i := 0; i < Limbs; i++ {
		// m = z[0]n'[0] mod W
		m := z[0] * qInvNeg
		C := madd0(m, q0, z[0])
		C, z[0] = madd2(m, q1, z[1], C)
		C, z[1] = madd2(m, q2, z[2], C)
		C, z[2] = madd2(m, q3, z[3], C)
		z[3] = C
	}

	// if z >= q → z -= q
	if !z.smallerThanModulus() {
		var b uint64
		z[0], b = bits.Sub64(z[0], q0, 0)
		z[1], b = bits.Sub64(z[1], q1, b)
		z[2], b = bits.Sub64(z[2], q2, b)
		z[3], _ = bits.Sub64(z[3], q3, b)
	}
}

// BitLen returns the minimum number of bits needed to represent z
// returns 0 if z == 0
func (z *Element) BitLen() int {
	if z[3] != 0 {
		return 192 + bits.Len64(z[3])
	}
	if z[2] != 0 {
		return 128 + bits.Len64(z[2])
	}
	if z[1] != 0 {
		return 64 + bits.Len64(z[1])
	}
	return bits.Len64(z[0])
}

// rSquare where r is the Montgommery constant
var rSquare = Element{
	14526898881837571181,
	3129137299524312099,
	419701826671360399,
	524908885293268753,
}

// ToMont converts z to Montgomery form
// sets and returns z = z * r²
func (z *Element) ToMont() *Element {
	return z.Mul(z, &rSquare)
}

// Bytes returns the value of z as a big-endian byte array
func (z *Element) Bytes() (res [Bytes]byte) {
	_z := *z
	_z.FromMont()
	binary.BigEndian.PutUint64(res[24:32], _z[0])
	binary.BigEndian.PutUint64(res[16:24], _z[1])
	binary.BigEndian.PutUint64(res[8:16], _z[2])
	binary.BigEndian.PutUint64(res[0:8], _z[3])

	return
}

// SetBytes interprets e as the big-endian bytes of an integer, reduces
// it mod q and sets z to that value
func (z *Element) SetBytes(e []byte) *Element {
	var v big.Int
	v.SetBytes(e)
	return z.SetBigInt(&v)
}

// SetBytesCanonical decodes exactly Bytes big-endian bytes into z and
// rejects non-canonical encodings; the value must be strictly smaller
// than the modulus
func (z *Element) SetBytesCanonical(e []byte) error {
	if len(e) != Bytes {
		return ErrInvalidLength
	}
	z[0] = binary.BigEndian.Uint64(e[24:32])
	z[1] = binary.BigEndian.Uint64(e[16:24])
	z[2] = binary.BigEndian.Uint64(e[8:16])
	z[3] = binary.BigEndian.Uint64(e[0:8])
	if !z.smallerThanModulus() {
		z.SetZero()
		return ErrNonCanonical
	}
	z.ToMont()
	return nil
}

// SetBigInt sets z to v mod q and returns z
func (z *Element) SetBigInt(v *big.Int) *Element {
	var vv big.Int
	vv.Mod(v, &_modulus)

	var buf [Bytes]byte
	vv.FillBytes(buf[:])
	// value is reduced, decoding cannot fail
	_ = z.SetBytesCanonical(buf[:])
	return z
}

// BigInt sets res to the value of z (in regular form) and returns res
func (z *Element) BigInt(res *big.Int) *big.Int {
	b := z.Bytes()
	return res.SetBytes(b[:])
}

// SetString sets z from a base-10 string and returns z
// panics if the string is not a valid number
func (z *Element) SetString(number string) *Element {
	var v big.Int
	if _, ok := v.SetString(number, 10); !ok {
		panic("invalid number: " + number)
	}
	return z.SetBigInt(&v)
}

func (z *Element) String() string {
	var v big.Int
	return z.BigInt(&v).String()
}

// SetRandom sets z to a uniform random element read from rand.
// Sampling uses rejection so no bias is introduced.
func (z *Element) SetRandom(rand io.Reader) (*Element, error) {
	var bytes [Bytes]byte
	for {
		if _, err := io.ReadFull(rand, bytes[:]); err != nil {
			return nil, err
		}
		z[0] = binary.BigEndian.Uint64(bytes[24:32])
		z[1] = binary.BigEndian.Uint64(bytes[16:24])
		z[2] = binary.BigEndian.Uint64(bytes[8:16])
		z[3] = binary.BigEndian.Uint64(bytes[0:8])
		z[3] &= (uint64(1) << (Bits % 64)) - 1 // drop bits above the modulus size

		if z.smallerThanModulus() {
			return z, nil
		}
	}
}

// Cmp compares (lexicographic order) z and x and returns -1, 0 or +1
func (z *Element) Cmp(x *Element) int {
	_z := *z
	_z.FromMont()
	_x := *x
	_x.FromMont()
	for i := Limbs - 1; i >= 0; i-- {
		if _z[i] > _x[i] {
			return 1
		}
		if _z[i] < _x[i] {
			return -1
		}
	}
	return 0
}

// Exp z = xᵏ (mod q)
func (z *Element) Exp(x Element, k *big.Int) *Element {
	if k.IsUint64() && k.Uint64() == 0 {
		return z.SetOne()
	}

	e := k
	if k.Sign() == -1 {
		// negative k, use x⁻ᵏ = (x⁻¹)ᵏ
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

// Inverse z = x⁻¹ (mod q) using Fermat's little theorem, z = x^(q-2)
//
// if x == 0, sets and returns z = x
func (z *Element) Inverse(x *Element) *Element {
	if x.IsZero() {
		return z.SetZero()
	}
	return z.Exp(*x, &qMinusTwoBigInt)
}

// InverseChecked z = x⁻¹, returning ErrNoInverse when x == 0 instead
// of the internal x⁻¹ = 0 convention
func (z *Element) InverseChecked(x *Element) (*Element, error) {
	if x.IsZero() {
		return nil, ErrNoInverse
	}
	return z.Inverse(x), nil
}
