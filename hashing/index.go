// SPDX-License-Identifier: MIT

package hashing

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// exactRadius is the largest radius searched by enumerating neighbor codes;
// beyond it Search scans every bucket.
const exactRadius = 2

type bucket struct {
	code Code
	ids  *roaring.Bitmap
}

// Index maps codes to the row ids that carry them.
// It is not safe for concurrent mutation; concurrent reads are fine.
type Index struct {
	bits    int
	buckets map[string]*bucket
	size    uint64
}

// NewIndex returns an empty index for k-bit codes.
func NewIndex(k int) *Index {
	return &Index{bits: k, buckets: make(map[string]*bucket)}
}

// Build indexes codes with row ids 0..len(codes)-1.
func Build(k int, codes []Code) (*Index, error) {
	idx := NewIndex(k)
	for i, c := range codes {
		if err := idx.Add(uint32(i), c); err != nil {
			return nil, hashingErrorf("Build", err)
		}
	}

	return idx, nil
}

// Bits returns the code width.
func (x *Index) Bits() int { return x.bits }

// Len returns the number of indexed (id, code) pairs.
func (x *Index) Len() uint64 { return x.size }

// Buckets returns the number of distinct codes.
func (x *Index) Buckets() int { return len(x.buckets) }

func (x *Index) check(c Code) error {
	if len(c) != words(x.bits) {
		return ErrBitWidth
	}

	return nil
}

// Add files id under code c. Re-adding the same pair is a no-op.
func (x *Index) Add(id uint32, c Code) error {
	if err := x.check(c); err != nil {
		return hashingErrorf("Add", err)
	}
	key := c.key()
	b, ok := x.buckets[key]
	if !ok {
		b = &bucket{code: c.Clone(), ids: roaring.New()}
		x.buckets[key] = b
	}
	if b.ids.CheckedAdd(id) {
		x.size++
	}

	return nil
}

// Bucket returns the ids stored under exactly c, ascending.
func (x *Index) Bucket(c Code) ([]uint32, error) {
	if err := x.check(c); err != nil {
		return nil, hashingErrorf("Bucket", err)
	}
	if b, ok := x.buckets[c.key()]; ok {
		return b.ids.ToArray(), nil
	}

	return nil, nil
}

// Search returns the ids whose code is within Hamming distance radius of c,
// ascending. A negative radius matches nothing.
func (x *Index) Search(c Code, radius int) ([]uint32, error) {
	if err := x.check(c); err != nil {
		return nil, hashingErrorf("Search", err)
	}
	if radius < 0 {
		return nil, nil
	}
	acc := roaring.New()
	if radius <= exactRadius && radius < x.bits {
		x.probe(acc, c.Clone(), 0, radius)
	} else {
		for _, b := range x.buckets {
			if Hamming(b.code, c) <= radius {
				acc.Or(b.ids)
			}
		}
	}

	return acc.ToArray(), nil
}

// probe unions the bucket of c and of every code reachable by flipping up to
// left more bits at positions >= from.
func (x *Index) probe(acc *roaring.Bitmap, c Code, from, left int) {
	if b, ok := x.buckets[c.key()]; ok {
		acc.Or(b.ids)
	}
	if left == 0 {
		return
	}
	for j := from; j < x.bits; j++ {
		c.FlipBit(j)
		x.probe(acc, c, j+1, left-1)
		c.FlipBit(j)
	}
}

// Neighbor is one id with its Hamming distance to a query.
type Neighbor struct {
	ID       uint32
	Distance int
}

// Nearest returns up to limit ids ordered by Hamming distance to c, then by
// id. limit <= 0 returns every id.
func (x *Index) Nearest(c Code, limit int) ([]Neighbor, error) {
	if err := x.check(c); err != nil {
		return nil, hashingErrorf("Nearest", err)
	}
	byDist := make(map[int]*roaring.Bitmap)
	for _, b := range x.buckets {
		d := Hamming(b.code, c)
		if byDist[d] == nil {
			byDist[d] = roaring.New()
		}
		byDist[d].Or(b.ids)
	}
	dists := make([]int, 0, len(byDist))
	for d := range byDist {
		dists = append(dists, d)
	}
	sort.Ints(dists)

	var out []Neighbor
	for _, d := range dists {
		it := byDist[d].Iterator()
		for it.HasNext() {
			if limit > 0 && len(out) == limit {
				return out, nil
			}
			out = append(out, Neighbor{ID: it.Next(), Distance: d})
		}
	}

	return out, nil
}
