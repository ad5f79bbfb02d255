// Package xxhash32 provides the deterministic, cross-platform 32-bit
// hash primitive the weather oracle builds on. It wraps the same
// xxHash32 implementation the reference game binds to, so hashes
// produced here match the reference bit for bit.
package xxhash32

import (
	"encoding/binary"

	"github.com/pierrec/xxHash/xxHash32"
)

// Seed 0 matches StardewValley.Utility's hashing convention; every
// hash in this package uses it.
const seed = 0

// Bytes hashes a byte slice and reinterprets the result as a signed
// 32-bit integer using little-endian two's-complement semantics (the
// high bit becomes the sign bit).
func Bytes(data []byte) int32 {
	h := xxHash32.New(seed)
	_, _ = h.Write(data)
	return int32(h.Sum32())
}

// String hashes the UTF-8 byte sequence of s.
func String(s string) int32 {
	return Bytes([]byte(s))
}

// Ints hashes the concatenation of each value's four little-endian
// bytes of its 32-bit unsigned representation.
func Ints(values ...int32) int32 {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return Bytes(buf)
}

// LocationWeatherHash and SummerRainChanceHash are computed once at
// package initialization and reused for every seed the search driver
// evaluates, per spec: both string hashes are loop-invariant.
var (
	LocationWeatherHash  = String("location_weather")
	SummerRainChanceHash = String("summer_rain_chance")
)
