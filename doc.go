// SPDX-License-Identifier: MIT

// Package esh learns binary hash functions by optimizing a spectral
// objective over orthonormal projections.
//
// Given features X (n×d) and an anchor mapping Z (n×m), esh finds W (d×K)
// with orthonormal columns that keeps the anchor-graph affinity
// A = Xᵀ Ẑ Ẑᵀ X while pushing every projection XW towards ±1. The code of a
// row x is sign(xW).
//
// The search runs on the Stiefel manifold: each step moves along a skew
// direction through the Cayley transform, so WᵀW = I holds after every
// iteration (WᵀMW = I for the generalized variant), and the step size adapts
// with the Barzilai–Borwein rule.
//
// Packages:
//
//	matrix/      dense row-major matrices, kernels, LU and Jacobi eigen
//	spectral/    symmetric eigen backends (gonum, Jacobi) and top-K selection
//	affinity/    anchor normalization, affinity A and covariance metric M
//	anchor/      k-means anchors and sparse Gaussian anchor mapping Z
//	manifold/    cost, gradient, Cayley retraction, step size and the solver
//	hashing/     encoding rows to packed codes and Hamming-radius lookup
//	model/       the persisted model and its compressed binary format
//	modelstore/  local, S3, MinIO and Badger model stores
//	config/      YAML, .env and ESH_* configuration for the CLI
//	dataset/     CSV matrices
//	cmd/esh      the command line tool
//
// Quick start:
//
//	res, err := manifold.SolvePlain(ctx, x, z, 32)
//	enc, err := hashing.NewEncoder(res.W)
//	codes, err := enc.Encode(x)
package esh
