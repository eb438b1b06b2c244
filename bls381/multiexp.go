package bls381

import (
	"runtime"

	"github.com/curvelab/ecc/bls381/fr"
	"github.com/curvelab/ecc/logger"
	"golang.org/x/sync/errgroup"
)

// multiExpWindow returns the bucket window width in bits for n points.
// Wider windows amortize the bucket reduction over more points; the
// threshold of ~20 points per bucket is empirical.
func multiExpWindow(n int) uint64 {
	c := uint64(4)
	for c < 16 && n/(1<<c) >= 20 {
		c++
	}
	return c
}

// chunkValue reads the k-th c-bit window of a regular-form scalar,
// straddling limb boundaries where needed
func chunkValue(s *fr.Element, k, c uint64) uint64 {
	pos := k * c
	limb := pos / 64
	shift := pos % 64
	v := s[limb] >> shift
	if shift+c > 64 && limb+1 < fr.Limbs {
		v |= s[limb+1] << (64 - shift)
	}
	return v & ((1 << c) - 1)
}

// MultiExp sets p = scalars[0]*points[0] + ... + scalars[n]*points[n]
// using the bucket method, one goroutine per scalar window:
// https://eprint.iacr.org/2012/549.pdf
func (p *G1Jac) MultiExp(curve *Curve, points []G1Affine, scalars []fr.Element) (*G1Jac, error) {
	if len(points) != len(scalars) {
		return nil, ErrLengthMismatch
	}
	p.Set(&curve.g1Infinity)
	if len(points) == 0 {
		return p, nil
	}

	// leave Montgomery form once, the bucket indexing reads raw limbs
	regular := make([]fr.Element, len(scalars))
	for i := range scalars {
		regular[i].Set(&scalars[i]).FromMont()
	}

	c := multiExpWindow(len(points))
	nbChunks := (fr.Bits + c - 1) / c

	log := logger.Logger()
	log.Debug().Int("points", len(points)).Uint64("window", c).
		Uint64("chunks", nbChunks).Msg("g1 multiexp")

	chunkRes := make([]G1Jac, nbChunks)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k := uint64(0); k < nbChunks; k++ {
		k := k
		g.Go(func() error {
			buckets := make([]G1Jac, (1<<c)-1)
			for j := range buckets {
				buckets[j].Set(&curve.g1Infinity)
			}
			for i := range regular {
				if v := chunkValue(&regular[i], k, c); v != 0 {
					buckets[v-1].AddMixed(&points[i])
				}
			}
			// running-sum reduction: bucket j contributes (j+1) times
			sum := curve.g1Infinity
			acc := curve.g1Infinity
			for j := len(buckets) - 1; j >= 0; j-- {
				sum.Add(curve, &buckets[j])
				acc.Add(curve, &sum)
			}
			chunkRes[k].Set(&acc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for k := int(nbChunks) - 1; k >= 0; k-- {
		for j := uint64(0); j < c; j++ {
			p.Double()
		}
		p.Add(curve, &chunkRes[k])
	}
	return p, nil
}

// MultiExp sets p = scalars[0]*points[0] + ... + scalars[n]*points[n]
// using the bucket method, one goroutine per scalar window:
// https://eprint.iacr.org/2012/549.pdf
func (p *G2Jac) MultiExp(curve *Curve, points []G2Affine, scalars []fr.Element) (*G2Jac, error) {
	if len(points) != len(scalars) {
		return nil, ErrLengthMismatch
	}
	p.Set(&curve.g2Infinity)
	if len(points) == 0 {
		return p, nil
	}

	regular := make([]fr.Element, len(scalars))
	for i := range scalars {
		regular[i].Set(&scalars[i]).FromMont()
	}

	c := multiExpWindow(len(points))
	nbChunks := (fr.Bits + c - 1) / c

	log := logger.Logger()
	log.Debug().Int("points", len(points)).Uint64("window", c).
		Uint64("chunks", nbChunks).Msg("g2 multiexp")

	chunkRes := make([]G2Jac, nbChunks)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k := uint64(0); k < nbChunks; k++ {
		k := k
		g.Go(func() error {
			buckets := make([]G2Jac, (1<<c)-1)
			for j := range buckets {
				buckets[j].Set(&curve.g2Infinity)
			}
			for i := range regular {
				if v := chunkValue(&regular[i], k, c); v != 0 {
					buckets[v-1].AddMixed(&points[i])
				}
			}
			sum := curve.g2Infinity
			acc := curve.g2Infinity
			for j := len(buckets) - 1; j >= 0; j-- {
				sum.Add(curve, &buckets[j])
				acc.Add(curve, &sum)
			}
			chunkRes[k].Set(&acc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for k := int(nbChunks) - 1; k >= 0; k-- {
		for j := uint64(0); j < c; j++ {
			p.Double()
		}
		p.Add(curve, &chunkRes[k])
	}
	return p, nil
}
