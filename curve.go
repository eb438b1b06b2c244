// Package ecc provides elliptic curve identifiers and scalar
// decomposition utilities shared by the curve packages.
package ecc

// ID identifies a supported pairing-friendly curve.
type ID uint16

const (
	UNKNOWN ID = iota
	BLS381
)

func (id ID) String() string {
	switch id {
	case BLS381:
		return "bls381"
	default:
		return "unknown"
	}
}
