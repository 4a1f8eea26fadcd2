// SPDX-License-Identifier: MIT

// Package model is the persisted form of a learned hash function.
//
// A Model carries W together with the solve metadata (variant, alpha, step
// size, trace). Encode produces a self-describing blob:
//
//	"ESH1" | compression (1 byte) | payload length (uint32 LE) | payload
//
// The payload is the msgpack encoding of the Model, optionally compressed
// with LZ4 or Zstd. The length field is the uncompressed payload size.
package model
