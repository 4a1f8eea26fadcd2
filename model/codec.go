// SPDX-License-Identifier: MIT

package model

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"
)

// Compression selects the payload codec.
type Compression uint8

const (
	// None stores the msgpack payload as is.
	None Compression = 0
	// LZ4 uses LZ4 block compression (fast).
	LZ4 Compression = 1
	// Zstd uses Zstandard (better ratio).
	Zstd Compression = 2
)

const (
	magic      = "ESH1"
	headerSize = len(magic) + 1 + 4

	// maxPayload bounds the declared payload size accepted by Decode.
	maxPayload = 1 << 30
)

// String returns the lowercase codec name.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression maps a codec name (case-insensitive) to a Compression.
// The empty string means None.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return None, modelErrorf("ParseCompression", fmt.Errorf("%w: compression %q", ErrUnsupported, s))
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}

	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}

	return zstd.NewReader(nil)
}

// Encode serializes m. Incompressible LZ4 payloads are stored uncompressed.
func Encode(m *Model, c Compression) ([]byte, error) {
	if m == nil {
		return nil, modelErrorf("Encode", ErrNoResult)
	}
	if err := m.Validate(); err != nil {
		return nil, modelErrorf("Encode", err)
	}
	payload, err := msgpack.Marshal(m)
	if err != nil {
		return nil, modelErrorf("Encode", err)
	}

	var body []byte
	switch c {
	case None:
		body = payload
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, buf, nil)
		if err != nil {
			return nil, modelErrorf("Encode", err)
		}
		if n == 0 {
			c, body = None, payload
		} else {
			body = buf[:n]
		}
	case Zstd:
		enc, err := getZstdEncoder()
		if err != nil {
			return nil, modelErrorf("Encode", err)
		}
		body = enc.EncodeAll(payload, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, modelErrorf("Encode", fmt.Errorf("%w: %s", ErrUnsupported, c))
	}

	out := make([]byte, headerSize, headerSize+len(body))
	copy(out, magic)
	out[len(magic)] = byte(c)
	binary.LittleEndian.PutUint32(out[len(magic)+1:], uint32(len(payload)))

	return append(out, body...), nil
}

// Decode parses a blob produced by Encode.
func Decode(data []byte) (*Model, error) {
	if len(data) < headerSize || !bytes.Equal(data[:len(magic)], []byte(magic)) {
		return nil, modelErrorf("Decode", ErrUnsupported)
	}
	c := Compression(data[len(magic)])
	size := binary.LittleEndian.Uint32(data[len(magic)+1:])
	if size > maxPayload {
		return nil, modelErrorf("Decode", ErrCorrupt)
	}
	body := data[headerSize:]

	var payload []byte
	switch c {
	case None:
		payload = body
	case LZ4:
		payload = make([]byte, size)
		n, err := lz4.UncompressBlock(body, payload)
		if err != nil {
			return nil, modelErrorf("Decode", fmt.Errorf("%w: %w", ErrCorrupt, err))
		}
		payload = payload[:n]
	case Zstd:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, modelErrorf("Decode", err)
		}
		payload, err = dec.DecodeAll(body, make([]byte, 0, size))
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, modelErrorf("Decode", fmt.Errorf("%w: %w", ErrCorrupt, err))
		}
	default:
		return nil, modelErrorf("Decode", fmt.Errorf("%w: %s", ErrUnsupported, c))
	}
	if uint32(len(payload)) != size {
		return nil, modelErrorf("Decode", ErrCorrupt)
	}

	var m Model
	if err := msgpack.Unmarshal(payload, &m); err != nil {
		return nil, modelErrorf("Decode", fmt.Errorf("%w: %w", ErrCorrupt, err))
	}
	if err := m.Validate(); err != nil {
		return nil, modelErrorf("Decode", err)
	}

	return &m, nil
}
