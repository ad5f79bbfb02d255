// Package rng implements the reference platform's seed-mixing and
// pseudo-random draw primitives: StardewValley.Utility.CreateRandomSeed
// and the first draw of its default PRNG (Random.Next / NextDouble
// under .NET's Net5CompatSeedImpl). Every function here is pure.
package rng

import "weatherseed/internal/xxhash32"

// M31 is the Mersenne prime 2^31-1, the modulus used throughout the
// mixing and LCG steps.
const M31 = 2147483647

// Mix combines five 32-bit integers and a mode flag into a
// deterministic RNG seed, matching StardewValley.Utility.CreateRandomSeed.
//
// Each argument is first reduced modulo M31 using Go's truncated
// (sign-follows-dividend) remainder, which matches the reference's
// integer remainder semantics; the result may be negative and is left
// that way, since the only consumer (FirstRand) takes its absolute
// value.
func Mix(a, b, c, d, e int32, legacy bool) int32 {
	a %= M31
	b %= M31
	c %= M31
	d %= M31
	e %= M31

	if legacy {
		sum := int64(a) + int64(b) + int64(c) + int64(d) + int64(e)
		return int32(sum % M31)
	}
	return xxhash32.Ints(a, b, c, d, e)
}
