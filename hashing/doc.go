// SPDX-License-Identifier: MIT

// Package hashing turns a learned projection W (d×K) into binary codes and
// indexes those codes for Hamming-radius lookup.
//
// A row x of the data maps to the K-bit code whose bit j is set iff
// (xW)[j] > 0. Codes are packed little-endian into uint64 words: bit j lives
// in word j/64 at position j%64.
//
// Index keeps one roaring bitmap of row ids per distinct code, so a bucket
// lookup is a map hit and a radius search is a union of bitmaps. Results are
// always returned in ascending id order.
package hashing
