package xxhash32

import "testing"

func TestLocationWeatherHashGolden(t *testing.T) {
	got := String("location_weather")
	const want = int32(0x15C7A2F7)
	if got != want {
		t.Fatalf("String(location_weather) = %#x, want %#x", uint32(got), uint32(want))
	}
}

func TestStringDeterministic(t *testing.T) {
	a := String("summer_rain_chance")
	b := String("summer_rain_chance")
	if a != b {
		t.Fatalf("hash not deterministic: %d != %d", a, b)
	}
}

func TestIntsMatchesManualBytes(t *testing.T) {
	got := Ints(1, 2, 3, 4, 5)
	want := Bytes([]byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0, 4, 0, 0, 0, 5, 0, 0, 0})
	if got != want {
		t.Fatalf("Ints(1,2,3,4,5) = %d, want %d", got, want)
	}
}

func TestIntsNegativeValuesEncodeAsUint32(t *testing.T) {
	// Negative inputs are reinterpreted as their 32-bit unsigned
	// two's-complement bit pattern before hashing, matching the
	// reference's BitConverter usage.
	got := Ints(-1, 0, 0, 0, 0)
	want := Bytes([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	if got != want {
		t.Fatalf("Ints(-1,...) = %d, want %d", got, want)
	}
}

func TestCachedConstantsComputedOnce(t *testing.T) {
	if LocationWeatherHash != String("location_weather") {
		t.Fatalf("cached LocationWeatherHash stale")
	}
	if SummerRainChanceHash != String("summer_rain_chance") {
		t.Fatalf("cached SummerRainChanceHash stale")
	}
}
